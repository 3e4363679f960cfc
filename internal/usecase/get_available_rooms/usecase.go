package get_available_rooms

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// UseCase use case подбора доступных комнат на слот
// Выполняет обычное чтение без блокировок: результат - снимок на момент
// запроса, гарантию дает только последующий CreateBooking
type UseCase struct {
	bookingRepo  BookingRepository
	roomRepo     RoomRepository
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(bookingRepo BookingRepository, roomRepo RoomRepository, logger Logger) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		roomRepo:     roomRepo,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case подбора доступных комнат
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	// 1. Парсим и валидируем слот
	startHour, endHour, err := domain.ParseSlotRange(req.Slot)
	if err != nil {
		uc.logger.Warn("GetAvailableRooms: invalid slot %q: %v", req.Slot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Дата по умолчанию - сегодня
	date := req.Date
	if date.IsZero() {
		date = uc.timeProvider.Now()
	}

	slot, err := domain.NewSlot(date, startHour, endHour)
	if err != nil {
		uc.logger.Warn("GetAvailableRooms: invalid slot %q: %v", req.Slot, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Валидируем фильтр по типу
	var roomType *domain.RoomType
	if req.RoomType != nil {
		parsed, err := domain.ToRoomType(*req.RoomType)
		if err != nil {
			uc.logger.Warn("GetAvailableRooms: unknown room type %q", *req.RoomType)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		roomType = &parsed
	}

	// 4. Загружаем комнаты
	rooms, err := uc.roomRepo.List(ctx, roomType)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to list rooms: %v", err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	response := &Response{
		Date:  slot.Date,
		Slot:  slot.Label(),
		Rooms: make([]AvailableRoom, 0, len(rooms)),
	}

	if len(rooms) == 0 {
		response.Message = MsgNoRoomAvailable
		return response, nil
	}

	// 5. Читаем занятость слота по всем комнатам одним запросом
	roomIDs := make([]int64, 0, len(rooms))
	for _, room := range rooms {
		roomIDs = append(roomIDs, room.ID)
	}

	active, err := uc.bookingRepo.GetActiveByRoomsAndSlot(ctx, roomIDs, slot.Date, slot.StartHour)
	if err != nil {
		uc.logger.Error("GetAvailableRooms: failed to read occupancy: %v", err)
		return nil, fmt.Errorf("%w: failed to read occupancy: %v", ErrInternal, err)
	}

	occupancy := make(map[int64]domain.Occupancy, len(active))
	for _, booking := range active {
		entry := occupancy[booking.RoomID]
		entry.ActiveBookings++
		entry.SeatsUsed += booking.Seats
		occupancy[booking.RoomID] = entry
	}

	// 6. Отбираем комнаты со свободными местами
	for _, room := range rooms {
		occ := occupancy[room.ID]

		if room.IsExclusive() {
			if occ.ActiveBookings > 0 {
				continue
			}
			response.Rooms = append(response.Rooms, AvailableRoom{
				ID:             room.ID,
				Name:           room.Name,
				RoomType:       room.RoomType,
				Capacity:       room.Capacity,
				AvailableSeats: room.Capacity,
			})
			continue
		}

		free := room.SeatCapacity() - occ.SeatsUsed
		if free <= 0 {
			continue
		}
		response.Rooms = append(response.Rooms, AvailableRoom{
			ID:             room.ID,
			Name:           room.Name,
			RoomType:       room.RoomType,
			Capacity:       room.Capacity,
			AvailableSeats: free,
		})
	}

	if len(response.Rooms) == 0 {
		response.Message = MsgNoRoomAvailable
	}

	return response, nil
}
