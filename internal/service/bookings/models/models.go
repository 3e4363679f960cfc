package models

import (
	"errors"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// ListBookingsRequest запрос на постраничный список бронирований
type ListBookingsRequest struct {
	Status *string `json:"status,omitempty"` // Фильтр по статусу (опционально)
	Page   int     `json:"page,omitempty"`   // Номер страницы, начиная с 1
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.ListBookingsFilter, error) {
	filter := domain.ListBookingsFilter{Page: r.Page}
	if filter.Page < 1 {
		filter.Page = 1
	}

	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID          int64  `json:"id"`
	RoomID      int64  `json:"room_id"`
	RoomName    string `json:"room_name"`
	RoomType    string `json:"room_type"`
	BookingType string `json:"booking_type"` // "user" или "team"

	UserID   *int64  `json:"user_id,omitempty"`
	UserName *string `json:"user_name,omitempty"`
	TeamID   *int64  `json:"team_id,omitempty"`
	TeamName *string `json:"team_name,omitempty"`

	Date      string `json:"date"`       // "2024-01-15"
	StartTime string `json:"start_time"` // "10:00"
	EndTime   string `json:"end_time"`   // "11:00"
	Status    string `json:"status"`
	Seats     int    `json:"seats"`
	Headcount int    `json:"headcount"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Pagination данные о странице списка
type Pagination struct {
	Page       int `json:"page"`
	PageSize   int `json:"page_size"`
	TotalPages int `json:"total_pages"`
	TotalItems int `json:"total_items"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings   []BookingResponse `json:"bookings"`
	Pagination Pagination        `json:"pagination"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	return &BookingResponse{
		ID:          b.ID,
		RoomID:      b.RoomID,
		RoomName:    b.RoomName,
		RoomType:    string(b.RoomType),
		BookingType: b.BookingType(),
		UserID:      b.UserID,
		UserName:    b.UserName,
		TeamID:      b.TeamID,
		TeamName:    b.TeamName,
		Date:        b.Date.Format(domain.DateFormat),
		StartTime:   types.NewTimeStringFromHour(b.StartHour).String(),
		EndTime:     types.NewTimeStringFromHour(b.EndHour()).String(),
		Status:      string(b.Status),
		Seats:       b.Seats,
		Headcount:   b.Headcount,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует страницу domain моделей в DTO списка
func FromDomainBookingList(bookings []*domain.Booking, page, total int) *BookingListResponse {
	items := make([]BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		items = append(items, *FromDomainBooking(booking))
	}

	totalPages := total / domain.DefaultPageSize
	if total%domain.DefaultPageSize != 0 {
		totalPages++
	}

	return &BookingListResponse{
		Bookings: items,
		Pagination: Pagination{
			Page:       page,
			PageSize:   domain.DefaultPageSize,
			TotalPages: totalPages,
			TotalItems: total,
		},
	}
}

// ToDomainBookingStatus конвертирует строку в domain статус с валидацией
func ToDomainBookingStatus(s string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(s) {
	case domain.StatusActive, domain.StatusCancelled:
		return domain.BookingStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}
