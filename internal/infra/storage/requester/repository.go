package requester

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-RoomBookingService/internal/domain"
	"github.com/m04kA/SMC-RoomBookingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RoomBookingService/pkg/psqlbuilder"
)

// Repository репозиторий пользователей и команд
// Пользователи и команды - справочные данные, создаются вне сервиса (миграциями)
type Repository struct {
	db dbmetrics.DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db dbmetrics.DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetUser получает пользователя по ID вместе с возрастом
func (r *Repository) GetUser(ctx context.Context, id int64) (*domain.Member, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"id",
		"username",
		"age",
	).
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - build select query: %v", ErrBuildQuery, err)
	}

	var member domain.Member
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&member.ID,
		&member.Username,
		&member.Age,
	)

	if err == sql.ErrNoRows {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetUser - scan user: %v", ErrScanRow, err)
	}

	return &member, nil
}

// GetTeam получает команду по ID вместе с составом участников
// Состав нужен для подсчета эффективного размера (участники от 10 лет) и headcount
func (r *Repository) GetTeam(ctx context.Context, id int64) (*domain.Team, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	teamQuery, teamArgs, err := psqlbuilder.Select(
		"id",
		"name",
		"created_at",
	).
		From("teams").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - build select query: %v", ErrBuildQuery, err)
	}

	var team domain.Team
	var createdAt sql.NullTime

	err = executor.QueryRowContext(ctx, teamQuery, teamArgs...).Scan(
		&team.ID,
		&team.Name,
		&createdAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrTeamNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - scan team: %v", ErrScanRow, err)
	}

	team.CreatedAt = createdAt.Time

	membersQuery, membersArgs, err := psqlbuilder.Select(
		"u.id",
		"u.username",
		"u.age",
	).
		From("team_members tm").
		Join("users u ON u.id = tm.user_id").
		Where(squirrel.Eq{"tm.team_id": id}).
		OrderBy("u.id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - build members query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, membersQuery, membersArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetTeam - execute members query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	for rows.Next() {
		var member domain.Member
		if err := rows.Scan(&member.ID, &member.Username, &member.Age); err != nil {
			return nil, fmt.Errorf("%w: GetTeam - scan member: %v", ErrScanRow, err)
		}
		team.Members = append(team.Members, member)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetTeam - rows error: %v", ErrScanRow, err)
	}

	return &team, nil
}
