package storage

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"jobcrawler/internal/domain"
	"jobcrawler/internal/ports"
)

// UserStore reads subscriber profiles. Profiles are written by the
// account service; this side only needs the fields a scrape cycle and
// an alert digest consume.
type UserStore struct {
	pool *pgxpool.Pool
}

var _ ports.UserStore = (*UserStore)(nil)

func NewUserStore(pool *pgxpool.Pool) *UserStore {
	return &UserStore{pool: pool}
}

// ListUsersWithSkills returns every user who has at least one skill on
// file. Users without skills cannot seed queries and are skipped.
func (s *UserStore) ListUsersWithSkills(ctx context.Context) ([]domain.UserProfile, error) {
	sql, args, err := psql.Select("id", "email", "skills", "preferred_location", "alerts_enabled").
		From("users").
		Where("array_length(skills, 1) > 0").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build user list: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var users []domain.UserProfile
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// GetUser fetches one profile by id.
func (s *UserStore) GetUser(ctx context.Context, id string) (domain.UserProfile, error) {
	sql, args, err := psql.Select("id", "email", "skills", "preferred_location", "alerts_enabled").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("build user get: %w", err)
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return domain.UserProfile{}, fmt.Errorf("get user: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return domain.UserProfile{}, err
		}
		return domain.UserProfile{}, pgx.ErrNoRows
	}
	return scanUser(rows)
}

func scanUser(rows pgx.Rows) (domain.UserProfile, error) {
	var u domain.UserProfile
	var location *string
	if err := rows.Scan(&u.ID, &u.Email, &u.Skills, &location, &u.AlertsEnabled); err != nil {
		return domain.UserProfile{}, fmt.Errorf("scan user: %w", err)
	}
	if location != nil {
		u.PreferredLocation = *location
	}
	return u, nil
}
