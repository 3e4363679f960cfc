package create_booking

import (
	"fmt"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
// Слот (форма интервала, рабочее окно) валидируется отдельно через domain.NewSlot
func validateRequest(req *Request) error {
	if req.UserID == nil && req.TeamID == nil {
		return fmt.Errorf("%w: either userID or teamID is required", ErrInvalidInput)
	}

	if req.UserID != nil && req.TeamID != nil {
		return fmt.Errorf("%w: userID and teamID are mutually exclusive", ErrInvalidInput)
	}

	if req.UserID != nil && *req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.TeamID != nil && *req.TeamID <= 0 {
		return fmt.Errorf("%w: teamID must be positive", ErrInvalidInput)
	}

	if req.RoomID == nil && req.RoomType == nil {
		return fmt.Errorf("%w: either roomID or roomType is required", ErrInvalidInput)
	}

	if req.RoomID != nil && *req.RoomID <= 0 {
		return fmt.Errorf("%w: roomID must be positive", ErrInvalidInput)
	}

	if req.RoomType != nil {
		if _, err := domain.ToRoomType(*req.RoomType); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	return nil
}
