package create_booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	requesterRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/requester"
	roomRepo "github.com/m04kA/SMC-RoomBookingService/internal/infra/storage/room"
	"github.com/m04kA/SMC-RoomBookingService/pkg/keymutex"
	"github.com/m04kA/SMC-RoomBookingService/pkg/ptr"
)

// --- фейки ---

type fakeBookingStore struct {
	mu       sync.Mutex
	nextID   int64
	bookings []*domain.Booking
}

func newFakeBookingStore() *fakeBookingStore {
	return &fakeBookingStore{nextID: 1}
}

func (s *fakeBookingStore) Create(_ context.Context, booking *domain.Booking) (*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := *booking
	stored.ID = s.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	s.nextID++
	s.bookings = append(s.bookings, &stored)

	result := stored
	return &result, nil
}

func (s *fakeBookingStore) GetActiveByRoomsAndSlot(_ context.Context, roomIDs []int64, date time.Time, startHour int) ([]*domain.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make(map[int64]bool, len(roomIDs))
	for _, id := range roomIDs {
		ids[id] = true
	}

	var result []*domain.Booking
	for _, booking := range s.bookings {
		if booking.IsActive() && ids[booking.RoomID] && booking.StartHour == startHour && booking.Date.Equal(date) {
			copied := *booking
			result = append(result, &copied)
		}
	}
	return result, nil
}

func (s *fakeBookingStore) HasActiveByRequester(_ context.Context, requester domain.Requester) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, booking := range s.bookings {
		if !booking.IsActive() {
			continue
		}
		if requester.IsTeam() && booking.TeamID != nil && *booking.TeamID == requester.Team.ID {
			return true, nil
		}
		if !requester.IsTeam() && booking.UserID != nil && *booking.UserID == requester.User.ID {
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeBookingStore) activeInRoom(roomID int64) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	count := 0
	for _, booking := range s.bookings {
		if booking.IsActive() && booking.RoomID == roomID {
			count++
		}
	}
	return count
}

type fakeRoomStore struct {
	rooms []*domain.Room
}

func (s *fakeRoomStore) GetByID(_ context.Context, id int64) (*domain.Room, error) {
	for _, room := range s.rooms {
		if room.ID == id {
			return room, nil
		}
	}
	return nil, roomRepo.ErrRoomNotFound
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

type fakeRequesterStore struct {
	users map[int64]*domain.Member
	teams map[int64]*domain.Team
}

func (s *fakeRequesterStore) GetUser(_ context.Context, id int64) (*domain.Member, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, requesterRepo.ErrUserNotFound
}

func (s *fakeRequesterStore) GetTeam(_ context.Context, id int64) (*domain.Team, error) {
	if team, ok := s.teams[id]; ok {
		return team, nil
	}
	return nil, requesterRepo.ErrTeamNotFound
}

type fakeTxManager struct{}

func (m *fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type noopLogger struct{}

func (l *noopLogger) Info(string, ...interface{})  {}
func (l *noopLogger) Warn(string, ...interface{})  {}
func (l *noopLogger) Error(string, ...interface{}) {}

// --- окружение ---

type env struct {
	store *fakeBookingStore
	uc    *UseCase
}

func newEnv(rooms []*domain.Room, users map[int64]*domain.Member, teams map[int64]*domain.Team) *env {
	store := newFakeBookingStore()
	uc := NewUseCase(
		store,
		&fakeRoomStore{rooms: rooms},
		&fakeRequesterStore{users: users, teams: teams},
		&fakeTxManager{},
		keymutex.New(),
		&noopLogger{},
	)
	return &env{store: store, uc: uc}
}

func defaultRooms() []*domain.Room {
	return []*domain.Room{
		{ID: 1, Name: "Private Room 1", RoomType: domain.RoomTypePrivate, Capacity: 1},
		{ID: 2, Name: "Private Room 2", RoomType: domain.RoomTypePrivate, Capacity: 1},
		{ID: 3, Name: "Conference Room 1", RoomType: domain.RoomTypeConference, Capacity: 5},
		{ID: 4, Name: "Shared Desk 1", RoomType: domain.RoomTypeSharedDesk, Capacity: 4},
		{ID: 5, Name: "Shared Desk 2", RoomType: domain.RoomTypeSharedDesk, Capacity: 4},
	}
}

func defaultUsers() map[int64]*domain.Member {
	users := make(map[int64]*domain.Member)
	for id := int64(1); id <= 20; id++ {
		users[id] = &domain.Member{ID: id, Username: "user", Age: 25}
	}
	users[99] = &domain.Member{ID: 99, Username: "kid", Age: 8}
	return users
}

func defaultTeams() map[int64]*domain.Team {
	return map[int64]*domain.Team{
		1: {ID: 1, Name: "Development Team", Members: []domain.Member{
			{ID: 1, Age: 30}, {ID: 2, Age: 28}, {ID: 3, Age: 35},
		}},
		2: {ID: 2, Name: "Design Team", Members: []domain.Member{
			{ID: 4, Age: 30}, {ID: 5, Age: 28}, {ID: 6, Age: 35},
		}},
		3: {ID: 3, Name: "Small Team", Members: []domain.Member{
			{ID: 7, Age: 30}, {ID: 8, Age: 28},
		}},
		4: {ID: 4, Name: "Family Team", Members: []domain.Member{
			{ID: 9, Age: 30}, {ID: 10, Age: 28}, {ID: 11, Age: 8},
		}},
	}
}

func bookingDate() time.Time {
	return time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
}

func userRequest(userID int64, roomID int64) *Request {
	return &Request{
		RoomID:    ptr.Ptr(roomID),
		UserID:    ptr.Ptr(userID),
		Date:      bookingDate(),
		StartHour: 10,
		EndHour:   11,
	}
}

func userTypeRequest(userID int64, roomType domain.RoomType) *Request {
	return &Request{
		RoomType:  ptr.Ptr(string(roomType)),
		UserID:    ptr.Ptr(userID),
		Date:      bookingDate(),
		StartHour: 10,
		EndHour:   11,
	}
}

func teamRequest(teamID int64, roomType domain.RoomType) *Request {
	return &Request{
		RoomType:  ptr.Ptr(string(roomType)),
		TeamID:    ptr.Ptr(teamID),
		Date:      bookingDate(),
		StartHour: 10,
		EndHour:   11,
	}
}

// --- тесты ---

func TestExecute_BooksPrivateRoomByID(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	resp, err := e.uc.Execute(context.Background(), userRequest(1, 1))

	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.RoomID)
	assert.Equal(t, "Private Room 1", resp.RoomName)
	assert.Equal(t, "user", resp.BookingType)
	assert.Equal(t, string(domain.StatusActive), resp.Status)
	assert.Equal(t, 1, resp.Seats)
	assert.Equal(t, 1, resp.Headcount)
	assert.Equal(t, 10, resp.StartHour)
	assert.Equal(t, 11, resp.EndHour)
}

func TestExecute_PrivateRoomIsExclusive(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	_, err := e.uc.Execute(context.Background(), userRequest(1, 1))
	require.NoError(t, err)

	_, err = e.uc.Execute(context.Background(), userRequest(2, 1))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestExecute_FallsOverToNextRoomOfType(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	first, err := e.uc.Execute(context.Background(), userTypeRequest(1, domain.RoomTypePrivate))
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.RoomID)

	second, err := e.uc.Execute(context.Background(), userTypeRequest(2, domain.RoomTypePrivate))
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.RoomID)

	_, err = e.uc.Execute(context.Background(), userTypeRequest(3, domain.RoomTypePrivate))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestExecute_EligibilityRules(t *testing.T) {
	tests := []struct {
		name    string
		req     *Request
		wantErr error
	}{
		{
			name:    "team cannot book private room",
			req:     teamRequest(1, domain.RoomTypePrivate),
			wantErr: ErrIneligible,
		},
		{
			name:    "individual cannot book conference room",
			req:     userTypeRequest(1, domain.RoomTypeConference),
			wantErr: ErrIneligible,
		},
		{
			name:    "team of two adults cannot book conference room",
			req:     teamRequest(3, domain.RoomTypeConference),
			wantErr: ErrIneligible,
		},
		{
			name:    "children do not count toward the conference minimum",
			req:     teamRequest(4, domain.RoomTypeConference),
			wantErr: ErrIneligible,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestExecute_ConferenceRoomIsExclusiveDespiteCapacity(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	first, err := e.uc.Execute(context.Background(), teamRequest(1, domain.RoomTypeConference))
	require.NoError(t, err)
	assert.Equal(t, 3, first.Seats)

	// Вместимость 5 не позволяет второй команде разделить комнату
	_, err = e.uc.Execute(context.Background(), teamRequest(2, domain.RoomTypeConference))
	assert.ErrorIs(t, err, ErrNoRoomAvailable)
}

func TestExecute_SharedDeskFillsSequentially(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	for userID := int64(1); userID <= 4; userID++ {
		resp, err := e.uc.Execute(context.Background(), userTypeRequest(userID, domain.RoomTypeSharedDesk))
		require.NoError(t, err)
		// Первая комната забивается полностью до перехода ко второй
		assert.Equal(t, int64(4), resp.RoomID, "user %d", userID)
	}

	resp, err := e.uc.Execute(context.Background(), userTypeRequest(5, domain.RoomTypeSharedDesk))
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.RoomID)
}

func TestExecute_SharedDeskPrefersPartiallyFilled(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	// Занимаем место во второй комнате напрямую
	_, err := e.uc.Execute(context.Background(), userRequest(1, 5))
	require.NoError(t, err)

	// Подбор по типу предпочитает частично занятую комнату пустой
	resp, err := e.uc.Execute(context.Background(), userTypeRequest(2, domain.RoomTypeSharedDesk))
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.RoomID)
}

func TestExecute_ChildTakesNoSeatButCountsInHeadcount(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	resp, err := e.uc.Execute(context.Background(), teamRequest(4, domain.RoomTypeSharedDesk))

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Seats)
	assert.Equal(t, 3, resp.Headcount)
}

func TestExecute_RequesterConflict(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	_, err := e.uc.Execute(context.Background(), userRequest(1, 1))
	require.NoError(t, err)

	// Второй запрос того же пользователя на другой слот и другую комнату
	req := userRequest(1, 2)
	req.StartHour = 14
	req.EndHour = 15
	_, err = e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrRequesterConflict)
}

func TestExecute_ValidationErrors(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
	}{
		{
			name: "no requester",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 10,
				EndHour:   11,
			},
		},
		{
			name: "both user and team",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(1)),
				TeamID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 10,
				EndHour:   11,
			},
		},
		{
			name: "neither room nor type",
			req: &Request{
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 10,
				EndHour:   11,
			},
		},
		{
			name: "unknown room type",
			req: &Request{
				RoomType:  ptr.Ptr("hot_desk"),
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 10,
				EndHour:   11,
			},
		},
		{
			name: "two hour slot",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 10,
				EndHour:   12,
			},
		},
		{
			name: "before opening",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 8,
				EndHour:   9,
			},
		},
		{
			name: "after closing",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 18,
				EndHour:   19,
			},
		},
		{
			name: "inverted range",
			req: &Request{
				RoomID:    ptr.Ptr(int64(1)),
				UserID:    ptr.Ptr(int64(1)),
				Date:      bookingDate(),
				StartHour: 11,
				EndHour:   10,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())
			_, err := e.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestExecute_NotFoundErrors(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	_, err := e.uc.Execute(context.Background(), userRequest(1, 404))
	assert.ErrorIs(t, err, ErrRoomNotFound)

	_, err = e.uc.Execute(context.Background(), userRequest(404, 1))
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = e.uc.Execute(context.Background(), teamRequest(404, domain.RoomTypeConference))
	assert.ErrorIs(t, err, ErrTeamNotFound)
}

func TestExecute_RoomIDWithMismatchedType(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	req := userRequest(1, 1)
	req.RoomType = ptr.Ptr(string(domain.RoomTypeSharedDesk))

	_, err := e.uc.Execute(context.Background(), req)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestExecute_ConcurrentUsersNeverOverbookExclusiveRooms(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	const workers = 10
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for userID := int64(1); userID <= workers; userID++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := e.uc.Execute(context.Background(), userTypeRequest(id, domain.RoomTypePrivate))
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrNoRoomAvailable)
		}
	}

	// Две private комнаты - ровно два победителя
	assert.Equal(t, 2, succeeded)
	assert.Equal(t, 1, e.store.activeInRoom(1))
	assert.Equal(t, 1, e.store.activeInRoom(2))
}

func TestExecute_ConcurrentSharedDeskNeverExceedsCapacity(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	const workers = 12
	results := make(chan error, workers)

	var wg sync.WaitGroup
	for userID := int64(1); userID <= workers; userID++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			_, err := e.uc.Execute(context.Background(), userTypeRequest(id, domain.RoomTypeSharedDesk))
			results <- err
		}(userID)
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrNoRoomAvailable)
		}
	}

	// Два shared desk по 4 места - ровно восемь победителей
	assert.Equal(t, 8, succeeded)
	assert.LessOrEqual(t, e.store.activeInRoom(4), 4)
	assert.LessOrEqual(t, e.store.activeInRoom(5), 4)
}

func TestExecute_ConcurrentSameRequesterGetsSingleBooking(t *testing.T) {
	e := newEnv(defaultRooms(), defaultUsers(), defaultTeams())

	const attempts = 5
	results := make(chan error, attempts)

	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.uc.Execute(context.Background(), userTypeRequest(1, domain.RoomTypePrivate))
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	succeeded := 0
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, ErrRequesterConflict)
		}
	}

	assert.Equal(t, 1, succeeded)
}
