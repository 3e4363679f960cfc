package domain

// Operating window constants
const (
	// OpenHour час открытия рабочего пространства (09:00)
	OpenHour = 9

	// CloseHour час закрытия рабочего пространства (18:00)
	CloseHour = 18

	// SlotDurationHours длительность слота бронирования в часах
	SlotDurationHours = 1
)

// Business validation constants
const (
	// PrivateRoomCapacity вместимость приватной комнаты
	PrivateRoomCapacity = 1

	// MinConferenceCapacity минимальная вместимость конференц-комнаты
	MinConferenceCapacity = 3

	// SharedDeskCapacity количество посадочных мест shared desk
	SharedDeskCapacity = 4

	// MinConferenceTeamSize минимальный эффективный размер команды для конференц-комнаты
	MinConferenceTeamSize = 3

	// ChildAgeThreshold возраст, с которого участник занимает отдельное место
	// Дети младше 10 лет сидят с сопровождающим и не занимают место
	ChildAgeThreshold = 10
)

// Pagination constants
const (
	// DefaultPageSize размер страницы списка бронирований
	DefaultPageSize = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ActiveStatuses список активных статусов бронирования
// Используется при подсчёте занятости комнат
var ActiveStatuses = []BookingStatus{
	StatusActive,
}

// InactiveStatuses список неактивных статусов бронирования
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
}
