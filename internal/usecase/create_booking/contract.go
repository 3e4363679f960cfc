package create_booking

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetActiveByRoomsAndSlot(ctx context.Context, roomIDs []int64, date time.Time, startHour int) ([]*domain.Booking, error)
	HasActiveByRequester(ctx context.Context, requester domain.Requester) (bool, error)
}

// RoomRepository интерфейс репозитория комнат
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	List(ctx context.Context, roomType *domain.RoomType) ([]*domain.Room, error)
}

// RequesterRepository интерфейс репозитория пользователей и команд
type RequesterRepository interface {
	GetUser(ctx context.Context, id int64) (*domain.Member, error)
	GetTeam(ctx context.Context, id int64) (*domain.Team, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// SlotLocker in-process мьютексы по строковым ключам
// Сериализуют check-then-reserve по requester и по паре (room, slot)
type SlotLocker interface {
	Lock(key string)
	Unlock(key string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
