package domain

import (
	"errors"
	"time"
)

// RoomType represents the type of a bookable room
type RoomType string

const (
	RoomTypePrivate    RoomType = "private"
	RoomTypeConference RoomType = "conference"
	RoomTypeSharedDesk RoomType = "shared_desk"
)

var (
	// ErrUnknownRoomType возвращается при неизвестном типе комнаты
	ErrUnknownRoomType = errors.New("unknown room type")

	// ErrInvalidCapacity возвращается, когда вместимость не соответствует типу комнаты
	ErrInvalidCapacity = errors.New("room capacity does not match room type")
)

// Room represents a bookable room in the workspace
type Room struct {
	ID        int64
	Name      string
	RoomType  RoomType
	Capacity  int
	CreatedAt time.Time
}

// IsExclusive returns true if the room admits at most one active booking per slot
// Private rooms and conference rooms are exclusive regardless of numeric capacity;
// shared desks are occupied seat by seat
func (r *Room) IsExclusive() bool {
	return r.RoomType == RoomTypePrivate || r.RoomType == RoomTypeConference
}

// SeatCapacity returns the number of seats the room offers per slot
func (r *Room) SeatCapacity() int {
	return r.Capacity
}

// ValidateCapacity проверяет вместимость комнаты по её типу
func (r *Room) ValidateCapacity() error {
	switch r.RoomType {
	case RoomTypePrivate:
		if r.Capacity != PrivateRoomCapacity {
			return ErrInvalidCapacity
		}
	case RoomTypeConference:
		if r.Capacity < MinConferenceCapacity {
			return ErrInvalidCapacity
		}
	case RoomTypeSharedDesk:
		if r.Capacity != SharedDeskCapacity {
			return ErrInvalidCapacity
		}
	default:
		return ErrUnknownRoomType
	}
	return nil
}

// ToRoomType конвертирует строку в RoomType с валидацией
func ToRoomType(s string) (RoomType, error) {
	switch RoomType(s) {
	case RoomTypePrivate, RoomTypeConference, RoomTypeSharedDesk:
		return RoomType(s), nil
	default:
		return "", ErrUnknownRoomType
	}
}
