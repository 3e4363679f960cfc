package create_booking

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RoomBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	createBooking "github.com/m04kA/SMC-RoomBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "Invalid request body."
	msgInvalidDateOrTime  = "Invalid date or time format, expected YYYY-MM-DD and HH:MM."
	msgInvalidInput       = "Invalid booking request."
	msgSlotNotHourly      = "Booking must be exactly 1 hour."
	msgOutsideHours       = "Booking time must be between 9 AM and 6 PM."
	msgInvalidTimeRange   = "Start time must be before end time."
	msgPrivateUsersOnly   = "Private rooms can only be booked by individual users."
	msgConferenceTeams    = "Conference rooms can only be booked by teams."
	msgTeamTooSmall       = "Conference rooms require teams with at least 3 members."
	msgRoomNotFound       = "Room not found."
	msgUserNotFound       = "User not found."
	msgTeamNotFound       = "Team not found."
	msgRequesterConflict  = "Requester already has an active booking."
	msgNoRoomAvailable    = "No available room for the selected slot and type."
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSlotNotHourly):
			h.logger.Warn("POST /bookings - Slot is not hourly")
			handlers.RespondBadRequest(w, msgSlotNotHourly)

		case errors.Is(err, domain.ErrOutsideOperatingHours):
			h.logger.Warn("POST /bookings - Slot outside operating hours")
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, domain.ErrInvalidTimeRange):
			h.logger.Warn("POST /bookings - Inverted time range")
			handlers.RespondBadRequest(w, msgInvalidTimeRange)

		case errors.Is(err, domain.ErrPrivateRequiresUser):
			h.logger.Warn("POST /bookings - Team requested a private room")
			handlers.RespondBadRequest(w, msgPrivateUsersOnly)

		case errors.Is(err, domain.ErrConferenceRequiresTeam):
			h.logger.Warn("POST /bookings - Individual requested a conference room")
			handlers.RespondBadRequest(w, msgConferenceTeams)

		case errors.Is(err, domain.ErrTeamTooSmall):
			h.logger.Warn("POST /bookings - Team below conference minimum")
			handlers.RespondBadRequest(w, msgTeamTooSmall)

		case errors.Is(err, createBooking.ErrInvalidInput),
			errors.Is(err, createBooking.ErrIneligible):
			h.logger.Warn("POST /bookings - Validation failed: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, createBooking.ErrRoomNotFound):
			h.logger.Warn("POST /bookings - Room not found")
			handlers.RespondNotFound(w, msgRoomNotFound)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /bookings - User not found")
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrTeamNotFound):
			h.logger.Warn("POST /bookings - Team not found")
			handlers.RespondNotFound(w, msgTeamNotFound)

		case errors.Is(err, createBooking.ErrRequesterConflict):
			h.logger.Warn("POST /bookings - Requester conflict")
			handlers.RespondConflict(w, msgRequesterConflict)

		case errors.Is(err, createBooking.ErrNoRoomAvailable):
			h.logger.Info("POST /bookings - No room available")
			handlers.RespondConflict(w, msgNoRoomAvailable)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings - Booking created: booking_id=%d, room_id=%d", result.ID, result.RoomID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
