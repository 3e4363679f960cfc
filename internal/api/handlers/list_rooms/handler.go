package list_rooms

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/rooms"
)

const msgInvalidRoomType = "Invalid room type, expected private, conference or shared_desk."

type Handler struct {
	service RoomService
	logger  Logger
}

func NewHandler(service RoomService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/rooms?room_type=private
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var roomType *string
	if param := r.URL.Query().Get("room_type"); param != "" {
		roomType = &param
	}

	result, err := h.service.List(r.Context(), roomType)
	if err != nil {
		switch {
		case errors.Is(err, rooms.ErrInvalidInput):
			h.logger.Warn("GET /rooms - Invalid room type: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRoomType)

		default:
			h.logger.Error("GET /rooms - Failed to list rooms: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
