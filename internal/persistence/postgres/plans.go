package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// PlanRepository provides Postgres-backed persistence for plans.
type PlanRepository struct {
	pool *pgxpool.Pool
}

// NewPlanRepository constructs a PlanRepository.
func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

const planColumns = `plan_id, name, price, duration_days, description, is_available, created_at, updated_at`

// Create inserts a new plan row.
func (r *PlanRepository) Create(ctx context.Context, plan domain.Plan) error {
	const stmt = `INSERT INTO plans (plan_id, name, price, duration_days, description, is_available, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.pool.Exec(ctx, stmt,
		plan.ID, plan.Name, plan.Price, plan.DurationDays,
		plan.Description, plan.IsAvailable, plan.CreatedAt, plan.UpdatedAt)
	return err
}

// Get retrieves a plan by id, or nil when absent.
func (r *PlanRepository) Get(ctx context.Context, id string) (*domain.Plan, error) {
	const query = `SELECT ` + planColumns + ` FROM plans WHERE plan_id=$1`

	plan, err := scanPlan(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &plan, nil
}

// List returns plans sorted by price ascending, optionally restricted to
// available ones.
func (r *PlanRepository) List(ctx context.Context, availableOnly bool) ([]domain.Plan, error) {
	query := `SELECT ` + planColumns + ` FROM plans`
	if availableOnly {
		query += ` WHERE is_available`
	}
	query += ` ORDER BY price`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}
	return plans, rows.Err()
}

// Update replaces a plan row.
func (r *PlanRepository) Update(ctx context.Context, plan domain.Plan) error {
	const stmt = `UPDATE plans SET name=$2, price=$3, duration_days=$4,
        description=$5, is_available=$6, updated_at=$7
        WHERE plan_id=$1`

	tag, err := r.pool.Exec(ctx, stmt,
		plan.ID, plan.Name, plan.Price, plan.DurationDays,
		plan.Description, plan.IsAvailable, plan.UpdatedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrPlanNotFound
	}
	return nil
}

func scanPlan(row pgx.Row) (domain.Plan, error) {
	var plan domain.Plan
	err := row.Scan(&plan.ID, &plan.Name, &plan.Price, &plan.DurationDays,
		&plan.Description, &plan.IsAvailable, &plan.CreatedAt, &plan.UpdatedAt)
	return plan, err
}
