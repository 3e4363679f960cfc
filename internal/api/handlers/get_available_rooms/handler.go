package get_available_rooms

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	getAvailableRooms "github.com/m04kA/SMC-RoomBookingService/internal/usecase/get_available_rooms"
)

const (
	msgInvalidDate = "Invalid date format, expected YYYY-MM-DD."
	msgInvalidSlot = "Invalid slot, expected HH-HH within working hours 9-18."
	msgMissingSlot = "Query parameter slot is required."
)

type Handler struct {
	useCase GetAvailableRoomsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableRoomsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms/available?date=2024-01-15&slot=10-11&room_type=shared_desk
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	slot := query.Get("slot")
	if slot == "" {
		h.logger.Warn("GET /rooms/available - Missing slot parameter")
		handlers.RespondBadRequest(w, msgMissingSlot)
		return
	}

	req := &getAvailableRooms.Request{Slot: slot}

	if dateParam := query.Get("date"); dateParam != "" {
		date, err := time.Parse(domain.DateFormat, dateParam)
		if err != nil {
			h.logger.Warn("GET /rooms/available - Invalid date %q: %v", dateParam, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
		req.Date = date
	}

	if roomType := query.Get("room_type"); roomType != "" {
		req.RoomType = &roomType
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableRooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms/available - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidSlot)

		default:
			h.logger.Error("GET /rooms/available - Failed to get available rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
