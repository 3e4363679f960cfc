package bookings

import (
	"context"
	"errors"
	"fmt"

	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	locks       SlotLocker
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(bookingRepo BookingRepository, locks SlotLocker, logger Logger) *Service {
	return &Service{
		bookingRepo: bookingRepo,
		locks:       locks,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBooking(booking), nil
}

// List возвращает страницу истории бронирований, опционально по статусу
// История включает отменённые записи: бронирования никогда не удаляются физически
func (s *Service) List(ctx context.Context, req *models.ListBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("List: fetching bookings page=%d, status=%v", req.Page, req.Status)

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("List: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	bookings, total, err := s.bookingRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d of %d bookings, page=%d", len(bookings), total, filter.Page)
	return models.FromDomainBookingList(bookings, filter.Page, total), nil
}

// Cancel отменяет бронирование: active -> cancelled
// Повторная отмена - явная ошибка, а не тихий успех
//
// Отмена выполняется под блокировкой пары (комната, слот) отменяемого
// бронирования: конкурентное резервирование того же слота увидит либо
// ещё занятое место, либо полностью освобожденное - промежуточных состояний нет
func (s *Service) Cancel(ctx context.Context, id int64) (*models.BookingResponse, error) {
	s.logger.Info("Cancel: cancelling booking id=%d", id)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	slot := booking.Slot()
	slotKey := slot.LockKey(booking.RoomID)
	s.locks.Lock(slotKey)
	defer s.locks.Unlock(slotKey)

	if err := s.bookingRepo.Cancel(ctx, id); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrAlreadyCancelled):
			s.logger.Warn("Cancel: booking id=%d already cancelled", id)
			return nil, ErrAlreadyCancelled
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("Cancel: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		default:
			s.logger.Error("Cancel: repository error for booking id=%d: %v", id, err)
			return nil, fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}
	}

	cancelled, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		s.logger.Error("Cancel: failed to reload booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: Cancel - reload error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: booking id=%d cancelled, room id=%d slot %s freed", id, cancelled.RoomID, slot.Label())
	return models.FromDomainBooking(cancelled), nil
}
