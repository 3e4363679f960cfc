package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// Request модель запроса на создание бронирования
// Указывается ровно один requester (UserID или TeamID) и цель подбора:
// конкретная комната (RoomID) или тип комнаты (RoomType)
type Request struct {
	RoomID    *int64     // ID конкретной комнаты (опционально)
	RoomType  *string    // Тип комнаты для автоподбора (опционально)
	UserID    *int64     // ID пользователя (для индивидуального бронирования)
	TeamID    *int64     // ID команды (для командного бронирования)
	Date      time.Time  // Дата бронирования (без времени)
	StartHour int        // Час начала слота
	EndHour   int        // Час окончания слота
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID          int64           // ID созданного бронирования
	RoomID      int64           // ID комнаты, в которую попало бронирование
	RoomName    string          // Название комнаты
	RoomType    domain.RoomType // Тип комнаты
	BookingType string          // Вид бронирования: "user" или "team"
	UserID      *int64          // ID пользователя (для индивидуального)
	UserName    *string         // Имя пользователя
	TeamID      *int64          // ID команды (для командного)
	TeamName    *string         // Название команды
	Date        time.Time       // Дата бронирования
	StartHour   int             // Час начала
	EndHour     int             // Час окончания
	Status      string          // Статус бронирования
	Seats       int             // Занятые места (участники от 10 лет)
	Headcount   int             // Общее количество людей

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}

func toResponse(booking *domain.Booking) *Response {
	return &Response{
		ID:          booking.ID,
		RoomID:      booking.RoomID,
		RoomName:    booking.RoomName,
		RoomType:    booking.RoomType,
		BookingType: booking.BookingType(),
		UserID:      booking.UserID,
		UserName:    booking.UserName,
		TeamID:      booking.TeamID,
		TeamName:    booking.TeamName,
		Date:        booking.Date,
		StartHour:   booking.StartHour,
		EndHour:     booking.EndHour(),
		Status:      string(booking.Status),
		Seats:       booking.Seats,
		Headcount:   booking.Headcount,
		CreatedAt:   booking.CreatedAt,
		UpdatedAt:   booking.UpdatedAt,
	}
}
