package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Коды ошибок Postgres
const (
	pgUniqueViolation      = "23505"
	pgSerializationFailure = "40001"
)

// Имена частичных уникальных индексов "одно активное бронирование на requester"
const (
	activeUserIndex = "bookings_one_active_per_user"
	activeTeamIndex = "bookings_one_active_per_team"
)

// Repository репозиторий для работы с бронированиями
// Вместе с таблицей bookings образует журнал занятости: пара (room, slot)
// определяется колонками (room_id, booking_date, start_hour), занятые места
// считаются по активным строкам
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование
// Если в контексте передана активная транзакция (через context.Value), использует её
//
// Вставка конкурентно защищена дважды:
// - проверка занятости слота выполняется в той же сериализуемой транзакции (FOR UPDATE),
// - частичный уникальный индекс по requester ловит второе активное бронирование
//   даже в обход usecase
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"room_id",
			"user_id",
			"team_id",
			"booking_date",
			"start_hour",
			"status",
			"seats",
			"headcount",
		).
		Values(
			booking.RoomID,
			booking.UserID,
			booking.TeamID,
			booking.Date,
			booking.StartHour,
			booking.Status,
			booking.Seats,
			booking.Headcount,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, mapPQError("Create", err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID вместе с денормализованными данными
// комнаты и requester для ответа API
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectBookings().
		Where(squirrel.Eq{"b.id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, err
	}
	if len(bookings) == 0 {
		return nil, ErrBookingNotFound
	}

	return bookings[0], nil
}

// List возвращает страницу бронирований и общее количество записей под фильтром
// Сортировка: сначала новые (как в истории бронирований)
func (r *Repository) List(ctx context.Context, filter domain.ListBookingsFilter) ([]*domain.Booking, int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	page := filter.Page
	if page < 1 {
		page = 1
	}

	countBuilder := psqlbuilder.Select("COUNT(*)").From("bookings b")
	listBuilder := selectBookings().
		OrderBy("b.created_at DESC, b.id DESC").
		Limit(uint64(domain.DefaultPageSize)).
		Offset(uint64((page - 1) * domain.DefaultPageSize))

	if filter.Status != nil {
		countBuilder = countBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
		listBuilder = listBuilder.Where(squirrel.Eq{"b.status": *filter.Status})
	}

	countQuery, countArgs, err := countBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build count query: %v", ErrBuildQuery, err)
	}

	var total int
	if err := executor.QueryRowContext(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute count: %v", ErrExecQuery, err)
	}

	query, args, err := listBuilder.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings, err := r.scanBookings(rows)
	if err != nil {
		return nil, 0, err
	}

	return bookings, total, nil
}

// GetActiveByRoomsAndSlot получает активные бронирования указанных комнат на слот
// Если вызов идет внутри транзакции, строки блокируются FOR UPDATE -
// это атомарная часть протокола check-then-reserve
func (r *Repository) GetActiveByRoomsAndSlot(ctx context.Context, roomIDs []int64, date time.Time, startHour int) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectBookings().
		Where(squirrel.Eq{"b.room_id": roomIDs}).
		Where(squirrel.Eq{"b.booking_date": domain.NormalizeDate(date)}).
		Where(squirrel.Eq{"b.start_hour": startHour}).
		Where(squirrel.Eq{"b.status": domain.StatusActive}).
		OrderBy("b.room_id ASC, b.created_at ASC")

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE OF b")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByRoomsAndSlot - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapPQError("GetActiveByRoomsAndSlot", err)
	}
	defer rows.Close()

	return r.scanBookings(rows)
}

// HasActiveByRequester проверяет глобальный инвариант
// "одно активное бронирование на requester" по всем комнатам и датам
// Внутри транзакции существующая строка блокируется FOR UPDATE
func (r *Repository) HasActiveByRequester(ctx context.Context, requester domain.Requester) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select("id").
		From("bookings").
		Where(squirrel.Eq{"status": domain.StatusActive}).
		Limit(1)

	if requester.IsTeam() {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"team_id": requester.ID()})
	} else {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"user_id": requester.ID()})
	}

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: HasActiveByRequester - build select query: %v", ErrBuildQuery, err)
	}

	var id int64
	err = executor.QueryRowContext(ctx, query, args...).Scan(&id)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, mapPQError("HasActiveByRequester", err)
	}

	return true, nil
}

// Cancel переводит бронирование active -> cancelled
// Guard по статусу в WHERE делает повторную отмену видимой ошибкой,
// а не тихим no-op, даже при конкурентных запросах отмены
func (r *Repository) Cancel(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("status", domain.StatusCancelled).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		Where(squirrel.Eq{"status": domain.StatusActive}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return mapPQError("Cancel", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Cancel - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		// Либо бронирования нет, либо оно уже отменено - различаем отдельным запросом
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrAlreadyCancelled
	}

	return nil
}

// selectBookings общий SELECT бронирований с JOIN комнаты и requester
func selectBookings() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"b.id",
		"b.room_id",
		"b.user_id",
		"b.team_id",
		"b.booking_date",
		"b.start_hour",
		"b.status",
		"b.seats",
		"b.headcount",
		"r.name AS room_name",
		"r.room_type",
		"u.username",
		"t.name AS team_name",
		"b.created_at",
		"b.updated_at",
	).
		From("bookings b").
		Join("rooms r ON r.id = b.room_id").
		LeftJoin("users u ON u.id = b.user_id").
		LeftJoin("teams t ON t.id = b.team_id")
}

// scanBookings сканирует результаты запроса в слайс бронирований
func (r *Repository) scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		var booking domain.Booking
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&booking.ID,
			&booking.RoomID,
			&booking.UserID,
			&booking.TeamID,
			&booking.Date,
			&booking.StartHour,
			&booking.Status,
			&booking.Seats,
			&booking.Headcount,
			&booking.RoomName,
			&booking.RoomType,
			&booking.UserName,
			&booking.TeamName,
			&createdAt,
			&updatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}

		booking.CreatedAt = createdAt.Time
		booking.UpdatedAt = updatedAt.Time

		bookings = append(bookings, &booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// mapPQError конвертирует низкоуровневые ошибки Postgres в sentinel-ошибки репозитория
func mapPQError(op string, err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch string(pqErr.Code) {
		case pgUniqueViolation:
			if pqErr.Constraint == activeUserIndex || pqErr.Constraint == activeTeamIndex {
				return fmt.Errorf("%w: %s", ErrRequesterConflict, op)
			}
		case pgSerializationFailure:
			return fmt.Errorf("%w: %s", ErrSerialization, op)
		}
	}
	return fmt.Errorf("%w: %s: %v", ErrExecQuery, op, err)
}
