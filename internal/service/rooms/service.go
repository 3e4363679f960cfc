package rooms

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms/models"
)

// Service сервис справочника комнат
type Service struct {
	roomRepo RoomRepository
	logger   Logger
}

// NewService создает новый экземпляр сервиса комнат
func NewService(roomRepo RoomRepository, logger Logger) *Service {
	return &Service{
		roomRepo: roomRepo,
		logger:   logger,
	}
}

// List возвращает справочник комнат, опционально отфильтрованный по типу
func (s *Service) List(ctx context.Context, roomType *string) (*models.RoomListResponse, error) {
	s.logger.Info("List: fetching rooms, type=%v", roomType)

	var filter *domain.RoomType
	if roomType != nil {
		parsed, err := domain.ToRoomType(*roomType)
		if err != nil {
			s.logger.Warn("List: unknown room type %q", *roomType)
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		filter = &parsed
	}

	rooms, err := s.roomRepo.List(ctx, filter)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainRoomList(rooms), nil
}
