package bookings

import (
	"context"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	List(ctx context.Context, filter domain.ListBookingsFilter) ([]*domain.Booking, int, error)
	Cancel(ctx context.Context, id int64) error
}

// SlotLocker in-process мьютексы по строковым ключам
// Отмена берет блокировку пары (комната, слот), чтобы освобождение места
// было полностью видимо конкурентному резервированию того же слота
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
