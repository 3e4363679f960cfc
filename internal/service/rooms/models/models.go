package models

import (
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// RoomResponse ответ с данными комнаты
type RoomResponse struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	RoomType string `json:"room_type"`
	Capacity int    `json:"capacity"`
}

// RoomListResponse ответ со списком комнат
type RoomListResponse struct {
	Rooms []RoomResponse `json:"rooms"`
}

// FromDomainRoom конвертирует domain модель в DTO
func FromDomainRoom(r *domain.Room) *RoomResponse {
	if r == nil {
		return nil
	}
	return &RoomResponse{
		ID:       r.ID,
		Name:     r.Name,
		RoomType: string(r.RoomType),
		Capacity: r.Capacity,
	}
}

// FromDomainRoomList конвертирует слайс domain моделей в DTO списка
func FromDomainRoomList(rooms []*domain.Room) *RoomListResponse {
	items := make([]RoomResponse, 0, len(rooms))
	for _, room := range rooms {
		items = append(items, *FromDomainRoom(room))
	}
	return &RoomListResponse{Rooms: items}
}
