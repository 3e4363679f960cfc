package get_available_rooms

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type fakeBookingStore struct {
	bookings []*domain.Booking
}

func (s *fakeBookingStore) GetActiveByRoomsAndSlot(_ context.Context, roomIDs []int64, date time.Time, startHour int) ([]*domain.Booking, error) {
	ids := make(map[int64]bool, len(roomIDs))
	for _, id := range roomIDs {
		ids[id] = true
	}

	var result []*domain.Booking
	for _, booking := range s.bookings {
		if booking.IsActive() && ids[booking.RoomID] && booking.StartHour == startHour && booking.Date.Equal(date) {
			result = append(result, booking)
		}
	}
	return result, nil
}

type fakeRoomStore struct {
	rooms []*domain.Room
}

func (s *fakeRoomStore) List(_ context.Context, roomType *domain.RoomType) ([]*domain.Room, error) {
	var result []*domain.Room
	for _, room := range s.rooms {
		if roomType == nil || room.RoomType == *roomType {
			result = append(result, room)
		}
	}
	return result, nil
}

type fixedTimeProvider struct {
	now time.Time
}

func (p *fixedTimeProvider) Now() time.Time {
	return p.now
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func newUseCase(rooms []*domain.Room, bookings []*domain.Booking) *UseCase {
	uc := NewUseCase(&fakeBookingStore{bookings: bookings}, &fakeRoomStore{rooms: rooms}, &noopLogger{})
	uc.timeProvider = &fixedTimeProvider{now: time.Date(2024, 1, 15, 12, 30, 0, 0, time.UTC)}
	return uc
}

func testRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 1, Name: "Private Room 1", RoomType: domain.RoomTypePrivate, Capacity: 1},
		{ID: 2, Name: "Conference Room 1", RoomType: domain.RoomTypeConference, Capacity: 5},
		{ID: 3, Name: "Shared Desk 1", RoomType: domain.RoomTypeSharedDesk, Capacity: 4},
	}
}

func activeBooking(roomID int64, seats int) *domain.Booking {
	return &domain.Booking{
		RoomID:    roomID,
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		StartHour: 10,
		Status:    domain.StatusActive,
		Seats:     seats,
	}
}

func TestExecute_AllRoomsFreeSlot(t *testing.T) {
	uc := newUseCase(testRooms(), nil)

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Slot: "10-11",
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Message)
	assert.Len(t, resp.Rooms, 3)
	assert.Equal(t, "10-11", resp.Slot)
}

func TestExecute_ExclusiveRoomWithBookingIsHidden(t *testing.T) {
	uc := newUseCase(testRooms(), []*domain.Booking{activeBooking(1, 1), activeBooking(2, 3)})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Slot: "10-11",
	})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, int64(3), resp.Rooms[0].ID)
}

func TestExecute_SharedDeskReportsRemainingSeats(t *testing.T) {
	uc := newUseCase(testRooms(), []*domain.Booking{activeBooking(3, 1), activeBooking(3, 2)})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Slot:     "10-11",
		RoomType: ptr.Ptr(string(domain.RoomTypeSharedDesk)),
	})

	require.NoError(t, err)
	require.Len(t, resp.Rooms, 1)
	assert.Equal(t, 1, resp.Rooms[0].AvailableSeats)
}

func TestExecute_FullSharedDeskIsHidden(t *testing.T) {
	uc := newUseCase(testRooms(), []*domain.Booking{activeBooking(3, 4)})

	resp, err := uc.Execute(context.Background(), &Request{
		Date:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Slot:     "10-11",
		RoomType: ptr.Ptr(string(domain.RoomTypeSharedDesk)),
	})

	require.NoError(t, err)
	assert.Empty(t, resp.Rooms)
	assert.Equal(t, MsgNoRoomAvailable, resp.Message)
}

func TestExecute_BookingOnOtherSlotDoesNotAffectAvailability(t *testing.T) {
	uc := newUseCase(testRooms(), []*domain.Booking{activeBooking(1, 1)})

	resp, err := uc.Execute(context.Background(), &Request{
		Date: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		Slot: "14-15",
	})

	require.NoError(t, err)
	assert.Len(t, resp.Rooms, 3)
}

func TestExecute_DateDefaultsToToday(t *testing.T) {
	uc := newUseCase(testRooms(), []*domain.Booking{activeBooking(1, 1)})

	resp, err := uc.Execute(context.Background(), &Request{Slot: "10-11"})

	require.NoError(t, err)
	// fixedTimeProvider дает 2024-01-15, бронирование комнаты 1 на эту дату видно
	assert.Equal(t, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), resp.Date)
	assert.Len(t, resp.Rooms, 2)
}

func TestExecute_InvalidInput(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{name: "bad slot format", req: &Request{Slot: "ten-eleven"}},
		{name: "missing slot", req: &Request{}},
		{name: "two hour slot", req: &Request{Slot: "10-12"}},
		{name: "outside operating hours", req: &Request{Slot: "8-9"}},
		{name: "unknown room type", req: &Request{Slot: "10-11", RoomType: ptr.Ptr("hot_desk")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := newUseCase(testRooms(), nil)
			_, err := uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}
