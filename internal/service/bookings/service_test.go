package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	bookingRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/booking"
	"github.com/m04kA/SMC-RoomBookingService/internal/service/bookings/models"
	"github.com/m04kA/SMC-RoomBookingService/pkg/keymutex"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

type fakeBookingRepo struct {
	bookings map[int64]*domain.Booking
}

func newFakeBookingRepo(bookings ...*domain.Booking) *fakeBookingRepo {
	repo := &fakeBookingRepo{bookings: make(map[int64]*domain.Booking)}
	for _, booking := range bookings {
		repo.bookings[booking.ID] = booking
	}
	return repo
}

func (r *fakeBookingRepo) GetByID(_ context.Context, id int64) (*domain.Booking, error) {
	if booking, ok := r.bookings[id]; ok {
		copied := *booking
		return &copied, nil
	}
	return nil, bookingRepo.ErrBookingNotFound
}

func (r *fakeBookingRepo) List(_ context.Context, filter domain.ListBookingsFilter) ([]*domain.Booking, int, error) {
	var matched []*domain.Booking
	for _, booking := range r.bookings {
		if filter.Status == nil || booking.Status == *filter.Status {
			matched = append(matched, booking)
		}
	}

	total := len(matched)
	offset := (filter.Page - 1) * domain.DefaultPageSize
	if offset >= total {
		return nil, total, nil
	}
	end := offset + domain.DefaultPageSize
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, id int64) error {
	booking, ok := r.bookings[id]
	if !ok {
		return bookingRepo.ErrBookingNotFound
	}
	if booking.IsCancelled() {
		return bookingRepo.ErrAlreadyCancelled
	}
	booking.Status = domain.StatusCancelled
	booking.UpdatedAt = time.Now()
	return nil
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

func newService(repo *fakeBookingRepo) *Service {
	return NewService(repo, keymutex.New(), &noopLogger{})
}

func activeBooking(id int64) *domain.Booking {
	return &domain.Booking{
		ID:        id,
		RoomID:    1,
		UserID:    ptr.Ptr(int64(7)),
		Date:      time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		StartHour: 10,
		Status:    domain.StatusActive,
		Seats:     1,
		Headcount: 1,
		RoomName:  "Private Room 1",
		RoomType:  domain.RoomTypePrivate,
		UserName:  ptr.Ptr("john_doe"),
	}
}

func TestGetByID(t *testing.T) {
	svc := newService(newFakeBookingRepo(activeBooking(1)))

	resp, err := svc.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)
	assert.Equal(t, "Private Room 1", resp.RoomName)
	assert.Equal(t, "user", resp.BookingType)
	assert.Equal(t, "10:00", resp.StartTime)
	assert.Equal(t, "11:00", resp.EndTime)

	_, err = svc.GetByID(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}

func TestList_PaginationEnvelope(t *testing.T) {
	repo := newFakeBookingRepo()
	for id := int64(1); id <= 45; id++ {
		booking := activeBooking(id)
		booking.UserID = ptr.Ptr(id)
		repo.bookings[id] = booking
	}
	svc := newService(repo)

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Page: 1})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, domain.DefaultPageSize)
	assert.Equal(t, 1, resp.Pagination.Page)
	assert.Equal(t, domain.DefaultPageSize, resp.Pagination.PageSize)
	assert.Equal(t, 3, resp.Pagination.TotalPages)
	assert.Equal(t, 45, resp.Pagination.TotalItems)

	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{Page: 3})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 5)

	// Страница за пределами данных - пустой список, не ошибка
	resp, err = svc.List(context.Background(), &models.ListBookingsRequest{Page: 9})
	require.NoError(t, err)
	assert.Empty(t, resp.Bookings)
	assert.Equal(t, 45, resp.Pagination.TotalItems)
}

func TestList_StatusFilter(t *testing.T) {
	cancelled := activeBooking(2)
	cancelled.Status = domain.StatusCancelled
	svc := newService(newFakeBookingRepo(activeBooking(1), cancelled))

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr(string(domain.StatusCancelled)),
		Page:   1,
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(2), resp.Bookings[0].ID)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{
		Status: ptr.Ptr("archived"),
		Page:   1,
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestCancel(t *testing.T) {
	svc := newService(newFakeBookingRepo(activeBooking(1)))

	resp, err := svc.Cancel(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), resp.Status)

	// Повторная отмена - явная ошибка
	_, err = svc.Cancel(context.Background(), 1)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)

	_, err = svc.Cancel(context.Background(), 404)
	assert.ErrorIs(t, err, ErrBookingNotFound)
}
