package create_booking

import (
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
	"github.com/m04kA/SMC-RoomBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	RoomID    *int64  `json:"room_id,omitempty"`
	RoomType  *string `json:"room_type,omitempty"`
	UserID    *int64  `json:"user_id,omitempty"`
	TeamID    *int64  `json:"team_id,omitempty"`
	Date      string  `json:"date"`       // "2024-01-15"
	StartTime string  `json:"start_time"` // "10:00"
	EndTime   string  `json:"end_time"`   // "11:00"
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID          int64   `json:"id"`
	RoomID      int64   `json:"room_id"`
	RoomName    string  `json:"room_name"`
	RoomType    string  `json:"room_type"`
	BookingType string  `json:"booking_type"`
	UserID      *int64  `json:"user_id,omitempty"`
	UserName    *string `json:"user_name,omitempty"`
	TeamID      *int64  `json:"team_id,omitempty"`
	TeamName    *string `json:"team_name,omitempty"`
	Date        string  `json:"date"`
	StartTime   string  `json:"start_time"`
	EndTime     string  `json:"end_time"`
	Status      string  `json:"status"`
	Seats       int     `json:"seats"`
	Headcount   int     `json:"headcount"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest() (*createBooking.Request, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}
	startHour, err := startTime.Hour()
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}
	endHour, err := endTime.Hour()
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		RoomID:    r.RoomID,
		RoomType:  r.RoomType,
		UserID:    r.UserID,
		TeamID:    r.TeamID,
		Date:      date,
		StartHour: startHour,
		EndHour:   endHour,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:          resp.ID,
		RoomID:      resp.RoomID,
		RoomName:    resp.RoomName,
		RoomType:    string(resp.RoomType),
		BookingType: resp.BookingType,
		UserID:      resp.UserID,
		UserName:    resp.UserName,
		TeamID:      resp.TeamID,
		TeamName:    resp.TeamName,
		Date:        resp.Date.Format(domain.DateFormat),
		StartTime:   types.NewTimeStringFromHour(resp.StartHour).String(),
		EndTime:     types.NewTimeStringFromHour(resp.EndHour).String(),
		Status:      resp.Status,
		Seats:       resp.Seats,
		Headcount:   resp.Headcount,
		CreatedAt:   resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   resp.UpdatedAt.Format(time.RFC3339),
	}
}
