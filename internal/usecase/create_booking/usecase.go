package create_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	requesterRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/requester"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// maxSerializableAttempts количество попыток сериализуемой транзакции
// при конфликте сериализации на стороне БД
const maxSerializableAttempts = 3

// UseCase use case создания бронирования: подбор комнаты и атомарный
// check-then-reserve по паре (комната, слот)
type UseCase struct {
	bookingRepo   BookingRepository
	roomRepo      RoomRepository
	requesterRepo RequesterRepository
	txManager     TransactionManager
	locks         SlotLocker
	logger        Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	roomRepo RoomRepository,
	requesterRepo RequesterRepository,
	txManager TransactionManager,
	locks SlotLocker,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:   bookingRepo,
		roomRepo:      roomRepo,
		requesterRepo: requesterRepo,
		txManager:     txManager,
		locks:         locks,
		logger:        logger,
	}
}

// Execute выполняет use case создания бронирования
//
// Кандидаты проверяются последовательно: каждая пара (комната, слот)
// блокируется независимо, занятость перечитывается под блокировкой, и только
// затем создается запись. Проверка "один активный booking на requester"
// выполняется под блокировкой по ключу requester, частичный уникальный индекс
// в БД служит последней линией защиты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: room=%v, roomType=%v, user=%v, team=%v, date=%s, slot=%d-%d",
		ptr.Deref(req.RoomID), ptr.Deref(req.RoomType), ptr.Deref(req.UserID), ptr.Deref(req.TeamID),
		req.Date.Format(domain.DateFormat), req.StartHour, req.EndHour)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Валидация слота против часовой сетки и рабочего окна
	slot, err := domain.NewSlot(req.Date, req.StartHour, req.EndHour)
	if err != nil {
		uc.logger.Warn("CreateBooking: invalid slot: %v", err)
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3. Разрешаем requester (пользователь или команда) с составом
	requester, err := uc.resolveRequester(ctx, req)
	if err != nil {
		return nil, err
	}

	// 4. Собираем кандидатов: конкретная комната или все комнаты типа
	candidates, err := uc.resolveCandidates(ctx, req, requester)
	if err != nil {
		return nil, err
	}

	// 5. Сериализуем все операции этого requester между собой
	requesterKey := requesterLockKey(requester)
	uc.locks.Lock(requesterKey)
	defer uc.locks.Unlock(requesterKey)

	var result *domain.Booking

	// 6. Атомарный check-then-reserve в сериализуемой транзакции
	for attempt := 1; attempt <= maxSerializableAttempts; attempt++ {
		result = nil
		err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
			booking, txErr := uc.allocate(txCtx, candidates, slot, requester)
			if txErr != nil {
				return txErr
			}
			result = booking
			return nil
		})

		if errors.Is(err, bookingRepo.ErrSerialization) {
			uc.logger.Warn("CreateBooking: serialization conflict, attempt %d/%d", attempt, maxSerializableAttempts)
			continue
		}
		break
	}

	if err != nil {
		if errors.Is(err, bookingRepo.ErrRequesterConflict) {
			// Уникальный индекс БД сработал раньше нашей проверки
			uc.logger.Warn("CreateBooking: requester %s already has an active booking (index)", requester.Key())
			return nil, ErrRequesterConflict
		}
		if errors.Is(err, ErrRequesterConflict) || errors.Is(err, ErrNoRoomAvailable) {
			return nil, err
		}
		uc.logger.Error("CreateBooking: transaction failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	uc.logger.Info("CreateBooking: booking id=%d created in room id=%d for %s",
		result.ID, result.RoomID, requester.Key())

	return toResponse(result), nil
}

// resolveRequester загружает пользователя или команду по запросу
func (uc *UseCase) resolveRequester(ctx context.Context, req *Request) (domain.Requester, error) {
	if req.UserID != nil {
		user, err := uc.requesterRepo.GetUser(ctx, *req.UserID)
		if err != nil {
			if errors.Is(err, requesterRepo.ErrUserNotFound) {
				uc.logger.Warn("CreateBooking: user id=%d not found", *req.UserID)
				return domain.Requester{}, ErrUserNotFound
			}
			uc.logger.Error("CreateBooking: failed to get user id=%d: %v", *req.UserID, err)
			return domain.Requester{}, fmt.Errorf("%w: failed to get user: %v", ErrInternal, err)
		}
		return domain.NewUserRequester(user), nil
	}

	team, err := uc.requesterRepo.GetTeam(ctx, *req.TeamID)
	if err != nil {
		if errors.Is(err, requesterRepo.ErrTeamNotFound) {
			uc.logger.Warn("CreateBooking: team id=%d not found", *req.TeamID)
			return domain.Requester{}, ErrTeamNotFound
		}
		uc.logger.Error("CreateBooking: failed to get team id=%d: %v", *req.TeamID, err)
		return domain.Requester{}, fmt.Errorf("%w: failed to get team: %v", ErrInternal, err)
	}
	return domain.NewTeamRequester(team), nil
}

// resolveCandidates собирает список комнат-кандидатов и проверяет
// совместимость requester с их типом
func (uc *UseCase) resolveCandidates(ctx context.Context, req *Request, requester domain.Requester) ([]*domain.Room, error) {
	if req.RoomID != nil {
		room, err := uc.roomRepo.GetByID(ctx, *req.RoomID)
		if err != nil {
			if errors.Is(err, roomRepo.ErrRoomNotFound) {
				uc.logger.Warn("CreateBooking: room id=%d not found", *req.RoomID)
				return nil, ErrRoomNotFound
			}
			uc.logger.Error("CreateBooking: failed to get room id=%d: %v", *req.RoomID, err)
			return nil, fmt.Errorf("%w: failed to get room: %v", ErrInternal, err)
		}

		// Если тип тоже указан, комната обязана ему соответствовать
		if req.RoomType != nil && room.RoomType != domain.RoomType(*req.RoomType) {
			uc.logger.Warn("CreateBooking: room id=%d has type %s, requested %s", room.ID, room.RoomType, *req.RoomType)
			return nil, fmt.Errorf("%w: room %d is not of type %s", ErrInvalidInput, room.ID, *req.RoomType)
		}

		if err := domain.Eligible(room, requester); err != nil {
			uc.logger.Warn("CreateBooking: requester %s is not eligible for room id=%d: %v", requester.Key(), room.ID, err)
			return nil, fmt.Errorf("%w: %w", ErrIneligible, err)
		}

		return []*domain.Room{room}, nil
	}

	roomType := domain.RoomType(*req.RoomType)
	rooms, err := uc.roomRepo.List(ctx, &roomType)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to list rooms of type %s: %v", roomType, err)
		return nil, fmt.Errorf("%w: failed to list rooms: %v", ErrInternal, err)
	}

	if len(rooms) == 0 {
		uc.logger.Warn("CreateBooking: no rooms of type %s exist", roomType)
		return nil, ErrNoRoomAvailable
	}

	// Совместимость с типом одинакова для всех комнат одного типа
	if err := domain.Eligible(rooms[0], requester); err != nil {
		uc.logger.Warn("CreateBooking: requester %s is not eligible for type %s: %v", requester.Key(), roomType, err)
		return nil, fmt.Errorf("%w: %w", ErrIneligible, err)
	}

	return rooms, nil
}

// allocate выполняет подбор комнаты внутри транзакции
// Предварительное чтение занятости задает порядок кандидатов; решение о
// вместимости принимается по свежему чтению под блокировкой конкретной пары
// (комната, слот)
func (uc *UseCase) allocate(ctx context.Context, candidates []*domain.Room, slot domain.Slot, requester domain.Requester) (*domain.Booking, error) {
	// 6.1. Глобальная проверка: один активный booking на requester
	hasActive, err := uc.bookingRepo.HasActiveByRequester(ctx, requester)
	if err != nil {
		return nil, fmt.Errorf("failed to check active bookings: %w", err)
	}
	if hasActive {
		uc.logger.Warn("CreateBooking: requester %s already has an active booking", requester.Key())
		return nil, ErrRequesterConflict
	}

	// 6.2. Предварительное чтение занятости для упорядочивания кандидатов
	candidateIDs := make([]int64, 0, len(candidates))
	for _, room := range candidates {
		candidateIDs = append(candidateIDs, room.ID)
	}

	active, err := uc.bookingRepo.GetActiveByRoomsAndSlot(ctx, candidateIDs, slot.Date, slot.StartHour)
	if err != nil {
		return nil, fmt.Errorf("failed to read slot occupancy: %w", err)
	}

	ordered := domain.OrderCandidates(candidates, occupancyByRoom(active))

	// 6.3. Последовательный обход кандидатов, каждый под своей блокировкой
	for _, room := range ordered {
		booking, reserveErr := uc.tryReserve(ctx, room, slot, requester)
		if reserveErr != nil {
			return nil, reserveErr
		}
		if booking != nil {
			return booking, nil
		}
	}

	uc.logger.Info("CreateBooking: no room available for %s on %s slot %s",
		requester.Key(), slot.Date.Format(domain.DateFormat), slot.Label())

	return nil, ErrNoRoomAvailable
}

// tryReserve пытается занять конкретную комнату на слот
// Возвращает (nil, nil), если комната не вмещает requester
func (uc *UseCase) tryReserve(ctx context.Context, room *domain.Room, slot domain.Slot, requester domain.Requester) (*domain.Booking, error) {
	slotKey := slot.LockKey(room.ID)
	uc.locks.Lock(slotKey)
	defer uc.locks.Unlock(slotKey)

	// Свежее чтение занятости под блокировкой (в транзакции - FOR UPDATE)
	active, err := uc.bookingRepo.GetActiveByRoomsAndSlot(ctx, []int64{room.ID}, slot.Date, slot.StartHour)
	if err != nil {
		return nil, fmt.Errorf("failed to read room occupancy: %w", err)
	}

	occupancy := occupancyByRoom(active)[room.ID]
	if !domain.CanAccommodate(room, occupancy, requester) {
		return nil, nil
	}

	booking := &domain.Booking{
		RoomID:    room.ID,
		Date:      slot.Date,
		StartHour: slot.StartHour,
		Status:    domain.StatusActive,
		Seats:     requester.EffectiveSize(),
		Headcount: requester.Headcount(),
		RoomName:  room.Name,
		RoomType:  room.RoomType,
	}

	if requester.IsTeam() {
		booking.TeamID = ptr.Ptr(requester.Team.ID)
		booking.TeamName = ptr.Ptr(requester.Team.Name)
	} else {
		booking.UserID = ptr.Ptr(requester.User.ID)
		booking.UserName = ptr.Ptr(requester.User.Username)
	}

	created, err := uc.bookingRepo.Create(ctx, booking)
	if err != nil {
		return nil, fmt.Errorf("failed to create booking: %w", err)
	}

	created.RoomName = room.Name
	created.RoomType = room.RoomType
	created.UserName = booking.UserName
	created.TeamName = booking.TeamName

	return created, nil
}

// occupancyByRoom агрегирует активные бронирования в сводку занятости по комнатам
func occupancyByRoom(bookings []*domain.Booking) map[int64]domain.Occupancy {
	occupancy := make(map[int64]domain.Occupancy, len(bookings))
	for _, booking := range bookings {
		entry := occupancy[booking.RoomID]
		entry.ActiveBookings++
		entry.SeatsUsed += booking.Seats
		occupancy[booking.RoomID] = entry
	}
	return occupancy
}

// requesterLockKey ключ in-process блокировки по requester
func requesterLockKey(requester domain.Requester) string {
	return "requester:" + requester.Key()
}
