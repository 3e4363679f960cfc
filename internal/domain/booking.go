package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusActive    BookingStatus = "active"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a room reservation for a single hourly slot
// Exactly one of UserID/TeamID is set; bookings are never physically deleted,
// cancellation flips the status and the history is retained
type Booking struct {
	ID        int64
	RoomID    int64
	UserID    *int64
	TeamID    *int64
	Date      time.Time
	StartHour int
	Status    BookingStatus

	// Seats и Headcount фиксируются в момент создания по составу requester:
	// места считаются только по участникам от 10 лет, headcount по всем
	Seats     int
	Headcount int

	// Denormalized data for listing
	RoomName string
	RoomType RoomType
	UserName *string
	TeamName *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking currently occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusActive
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// CanBeCancelled returns true if the booking can transition to cancelled
// active -> cancelled is the only transition; cancelled is terminal
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusActive
}

// Slot возвращает слот бронирования
func (b *Booking) Slot() Slot {
	return Slot{Date: NormalizeDate(b.Date), StartHour: b.StartHour}
}

// EndHour возвращает час окончания бронирования
func (b *Booking) EndHour() int {
	return b.StartHour + SlotDurationHours
}

// BookingType возвращает вид бронирования ("user" или "team")
func (b *Booking) BookingType() string {
	if b.TeamID != nil {
		return string(RequesterTeam)
	}
	return string(RequesterUser)
}

// Occupancy сводка занятости пары (room, slot):
// количество активных бронирований и суммарно занятые места
type Occupancy struct {
	ActiveBookings int
	SeatsUsed      int
}

// ListBookingsFilter фильтр для постраничного списка бронирований
type ListBookingsFilter struct {
	Status *BookingStatus // Фильтр по статусу (опционально)
	Page   int            // Номер страницы, начиная с 1
}
