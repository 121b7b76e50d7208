package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// ExerciseRepository provides Postgres-backed persistence for the
// exercise catalog.
type ExerciseRepository struct {
	pool *pgxpool.Pool
}

// NewExerciseRepository constructs an ExerciseRepository.
func NewExerciseRepository(pool *pgxpool.Pool) *ExerciseRepository {
	return &ExerciseRepository{pool: pool}
}

const exerciseColumns = `exercise_id, name, category, description, created_at`

// Create inserts a new catalog entry.
func (r *ExerciseRepository) Create(ctx context.Context, exercise domain.Exercise) error {
	const stmt = `INSERT INTO exercises (exercise_id, name, category, description, created_at)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, stmt,
		exercise.ID, exercise.Name, exercise.Category, exercise.Description, exercise.CreatedAt)
	if isUniqueViolation(err) {
		return domain.ErrExerciseExists
	}
	return err
}

// Get retrieves an exercise by id, or nil when absent.
func (r *ExerciseRepository) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	const query = `SELECT ` + exerciseColumns + ` FROM exercises WHERE exercise_id=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, id))
}

// GetByName retrieves an exercise by its unique name, or nil when absent.
func (r *ExerciseRepository) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	const query = `SELECT ` + exerciseColumns + ` FROM exercises WHERE name=$1`
	return r.scanOne(r.pool.QueryRow(ctx, query, name))
}

// List returns the full catalog sorted by name.
func (r *ExerciseRepository) List(ctx context.Context) ([]domain.Exercise, error) {
	const query = `SELECT ` + exerciseColumns + ` FROM exercises ORDER BY name`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exercises []domain.Exercise
	for rows.Next() {
		var exercise domain.Exercise
		if err := rows.Scan(&exercise.ID, &exercise.Name, &exercise.Category,
			&exercise.Description, &exercise.CreatedAt); err != nil {
			return nil, err
		}
		exercises = append(exercises, exercise)
	}
	return exercises, rows.Err()
}

func (r *ExerciseRepository) scanOne(row pgx.Row) (*domain.Exercise, error) {
	var exercise domain.Exercise
	err := row.Scan(&exercise.ID, &exercise.Name, &exercise.Category,
		&exercise.Description, &exercise.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &exercise, nil
}
