// Package postgres provides pgx-backed persistence for the gym service.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// uniqueViolation is the Postgres error code for unique-index conflicts.
const uniqueViolation = "23505"

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// UserRepository provides Postgres-backed persistence for users.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository constructs a UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

const userColumns = `user_id, name, email, password_hash, role,
        membership_plan_id, membership_start, membership_end, membership_status,
        created_at, updated_at`

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	const stmt = `INSERT INTO users (user_id, name, email, password_hash, role,
        membership_plan_id, membership_start, membership_end, membership_status,
        created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := r.pool.Exec(ctx, stmt,
		user.ID,
		user.Name,
		user.Email,
		user.PasswordHash,
		user.Role,
		nullIfEmpty(user.Membership.PlanID),
		nullIfZeroTime(user.Membership.Start),
		nullIfZeroTime(user.Membership.End),
		user.Membership.Status,
		user.CreatedAt,
		user.UpdatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrEmailTaken
	}
	return err
}

// Get retrieves a user by id, or nil when absent.
func (r *UserRepository) Get(ctx context.Context, id string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE user_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByEmail retrieves a user by email, or nil when absent.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, email))
}

// ListByRole returns users holding the given role, oldest first.
func (r *UserRepository) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	const query = `SELECT ` + userColumns + ` FROM users WHERE role=$1 ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	return users, rows.Err()
}

// UpdateMembership replaces the embedded membership sub-record.
func (r *UserRepository) UpdateMembership(ctx context.Context, userID string, membership domain.Membership) error {
	const stmt = `UPDATE users SET membership_plan_id=$2, membership_start=$3,
        membership_end=$4, membership_status=$5, updated_at=now()
        WHERE user_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, userID,
		nullIfEmpty(membership.PlanID),
		nullIfZeroTime(membership.Start),
		nullIfZeroTime(membership.End),
		membership.Status,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// UpdateRole changes a user's role.
func (r *UserRepository) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	const stmt = `UPDATE users SET role=$2, updated_at=now() WHERE user_id=$1`

	tag, err := r.pool.Exec(ctx, stmt, userID, role)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepository) scanOne(row pgx.Row) (*domain.User, error) {
	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		user   domain.User
		planID *string
		start  *time.Time
		end    *time.Time
	)
	err := row.Scan(&user.ID, &user.Name, &user.Email, &user.PasswordHash, &user.Role,
		&planID, &start, &end, &user.Membership.Status,
		&user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return domain.User{}, err
	}
	if planID != nil {
		user.Membership.PlanID = *planID
	}
	if start != nil {
		user.Membership.Start = *start
	}
	if end != nil {
		user.Membership.End = *end
	}
	return user, nil
}

func nullIfEmpty(value string) interface{} {
	if value == "" {
		return nil
	}
	return value
}

func nullIfZeroTime(value time.Time) interface{} {
	if value.IsZero() {
		return nil
	}
	return value
}
