package domain

import (
	"errors"
	"sort"
)

var (
	// ErrPrivateRequiresUser возвращается, когда команда пытается забронировать приватную комнату
	ErrPrivateRequiresUser = errors.New("private rooms can only be booked by individual users")

	// ErrConferenceRequiresTeam возвращается, когда пользователь пытается забронировать конференц-комнату
	ErrConferenceRequiresTeam = errors.New("conference rooms can only be booked by teams")

	// ErrTeamTooSmall возвращается, когда эффективный размер команды меньше минимального
	ErrTeamTooSmall = errors.New("conference rooms require teams with at least 3 members (excluding children)")
)

// Eligible реализует политику вместимости по типам комнат:
// private - только индивидуальный пользователь;
// conference - только команда с эффективным размером >= 3;
// shared_desk - любой requester (проверка мест выполняется отдельно по занятости)
func Eligible(room *Room, requester Requester) error {
	switch room.RoomType {
	case RoomTypePrivate:
		if requester.IsTeam() {
			return ErrPrivateRequiresUser
		}
	case RoomTypeConference:
		if !requester.IsTeam() {
			return ErrConferenceRequiresTeam
		}
		if requester.Team.EffectiveSize() < MinConferenceTeamSize {
			return ErrTeamTooSmall
		}
	case RoomTypeSharedDesk:
		// Места проверяются через CanAccommodate по текущей занятости
	default:
		return ErrUnknownRoomType
	}
	return nil
}

// CanAccommodate проверяет, помещается ли requester в комнату при текущей занятости слота
// Эксклюзивные комнаты (private, conference) принимают ровно одно активное бронирование;
// shared desk принимает бронирование, пока occupied_seats + effective_size <= capacity
func CanAccommodate(room *Room, occ Occupancy, requester Requester) bool {
	if room.IsExclusive() {
		return occ.ActiveBookings == 0
	}
	return occ.SeatsUsed+requester.EffectiveSize() <= room.Capacity
}

// OrderCandidates возвращает кандидатов в порядке попыток резервирования
// Для shared desk действует правило последовательного заполнения: частично занятые
// столы (seats_used > 0) идут раньше пустых, внутри групп - по возрастанию id
// Для остальных типов порядок по id
// Это tie-break политика, а не жёсткое ограничение: реализована как явная
// функция сортировки перед циклом reserve
func OrderCandidates(rooms []*Room, occupancy map[int64]Occupancy) []*Room {
	ordered := make([]*Room, len(rooms))
	copy(ordered, rooms)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]

		if a.RoomType == RoomTypeSharedDesk && b.RoomType == RoomTypeSharedDesk {
			aPartial := occupancy[a.ID].SeatsUsed > 0
			bPartial := occupancy[b.ID].SeatsUsed > 0
			if aPartial != bPartial {
				return aPartial
			}
		}

		return a.ID < b.ID
	})

	return ordered
}
