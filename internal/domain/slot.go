package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

var (
	// ErrInvalidTimeRange возвращается, когда начало слота не раньше конца
	ErrInvalidTimeRange = errors.New("start time must be before end time")

	// ErrSlotNotHourly возвращается, когда запрошенный интервал не равен ровно одному часу
	ErrSlotNotHourly = errors.New("booking must be exactly 1 hour")

	// ErrOutsideOperatingHours возвращается, когда слот выходит за рабочее окно 9:00-18:00
	ErrOutsideOperatingHours = errors.New("booking time must be between 9 AM and 6 PM")

	// ErrInvalidSlotFormat возвращается при некорректном формате слота "HH-HH"
	ErrInvalidSlotFormat = errors.New("invalid slot format, expected HH-HH")
)

// Slot represents a single bookable hour on a specific date
// Two slots conflict iff they share the same date and the same start hour
type Slot struct {
	Date      time.Time
	StartHour int
}

// NewSlot validates a requested time range against the hourly grid
// and returns the corresponding slot
// Rejects non-hourly spans, spans outside [9,18) and inverted ranges
// Pure function, no side effects
func NewSlot(date time.Time, startHour, endHour int) (Slot, error) {
	if startHour >= endHour {
		return Slot{}, ErrInvalidTimeRange
	}
	if endHour-startHour != SlotDurationHours {
		return Slot{}, ErrSlotNotHourly
	}
	if startHour < OpenHour || endHour > CloseHour {
		return Slot{}, ErrOutsideOperatingHours
	}
	return Slot{
		Date:      NormalizeDate(date),
		StartHour: startHour,
	}, nil
}

// EndHour возвращает час окончания слота
func (s Slot) EndHour() int {
	return s.StartHour + SlotDurationHours
}

// ConflictsWith возвращает true, если слоты претендуют на один и тот же час одной даты
func (s Slot) ConflictsWith(other Slot) bool {
	return s.StartHour == other.StartHour && s.Date.Equal(other.Date)
}

// Key возвращает строковый ключ слота (используется для блокировок и map-ключей)
func (s Slot) Key() string {
	return fmt.Sprintf("%s:%02d", s.Date.Format(DateFormat), s.StartHour)
}

// LockKey возвращает ключ блокировки пары (комната, слот)
// Резервирование и отмена обязаны использовать один и тот же ключ
func (s Slot) LockKey(roomID int64) string {
	return fmt.Sprintf("room:%d:%s", roomID, s.Key())
}

// Label возвращает слот в формате "HH-HH" (например, "10-11")
func (s Slot) Label() string {
	return fmt.Sprintf("%d-%d", s.StartHour, s.EndHour())
}

// ParseSlotRange парсит строку слота вида "10-11" в пару часов
// Валидацию против рабочего окна выполняет NewSlot
func ParseSlotRange(s string) (startHour, endHour int, err error) {
	parts := strings.SplitN(s, "-", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}

	startHour, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}

	endHour, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidSlotFormat, s)
	}

	return startHour, endHour, nil
}

// NormalizeDate обнуляет время, оставляя только дату в UTC
// Слоты сравниваются по дате, поэтому все даты храним в нормализованном виде
func NormalizeDate(date time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
}
