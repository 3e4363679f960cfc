package get_available_rooms

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailableRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_rooms"
)

// AvailableRoomResponse HTTP модель комнаты со свободными местами
type AvailableRoomResponse struct {
	ID             int64  `json:"id"`
	Name           string `json:"name"`
	RoomType       string `json:"room_type"`
	Capacity       int    `json:"capacity"`
	AvailableSeats int    `json:"available_seats"`
}

// AvailableRoomsResponse HTTP модель ответа подбора
type AvailableRoomsResponse struct {
	Date    string                  `json:"date"`
	Slot    string                  `json:"slot"`
	Rooms   []AvailableRoomResponse `json:"rooms"`
	Message string                  `json:"message,omitempty"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableRooms.Response) *AvailableRoomsResponse {
	rooms := make([]AvailableRoomResponse, 0, len(resp.Rooms))
	for _, room := range resp.Rooms {
		rooms = append(rooms, AvailableRoomResponse{
			ID:             room.ID,
			Name:           room.Name,
			RoomType:       string(room.RoomType),
			Capacity:       room.Capacity,
			AvailableSeats: room.AvailableSeats,
		})
	}

	return &AvailableRoomsResponse{
		Date:    resp.Date.Format(domain.DateFormat),
		Slot:    resp.Slot,
		Rooms:   rooms,
		Message: resp.Message,
	}
}
