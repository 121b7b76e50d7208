package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// WorkoutRepository provides Postgres-backed persistence for workout
// logs. Exercise entries are stored as a JSONB document on the log row,
// keeping the record append-only and read back in one piece.
type WorkoutRepository struct {
	pool *pgxpool.Pool
}

// NewWorkoutRepository constructs a WorkoutRepository.
func NewWorkoutRepository(pool *pgxpool.Pool) *WorkoutRepository {
	return &WorkoutRepository{pool: pool}
}

// Create inserts a new immutable log row.
func (r *WorkoutRepository) Create(ctx context.Context, log domain.WorkoutLog) error {
	entries, err := json.Marshal(log.Entries)
	if err != nil {
		return fmt.Errorf("encode entries: %w", err)
	}

	const stmt = `INSERT INTO workout_logs (log_id, member_id, logged_at, duration_min, entries, notes, created_at)
        VALUES ($1,$2,$3,$4,$5,$6,$3)`

	_, err = r.pool.Exec(ctx, stmt,
		log.ID, log.MemberID, log.LoggedAt, log.DurationMin, entries, log.Notes)
	return err
}

// ListByMember returns the member's logs newest first, capped at limit.
func (r *WorkoutRepository) ListByMember(ctx context.Context, memberID string, limit int) ([]domain.WorkoutLog, error) {
	const query = `SELECT log_id, member_id, logged_at, duration_min, entries, notes
        FROM workout_logs WHERE member_id=$1
        ORDER BY logged_at DESC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, memberID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

// ListByMemberWithExercise returns the member's logs containing at least
// one entry for the exercise, via a JSONB containment filter.
func (r *WorkoutRepository) ListByMemberWithExercise(ctx context.Context, memberID, exerciseID string) ([]domain.WorkoutLog, error) {
	const query = `SELECT log_id, member_id, logged_at, duration_min, entries, notes
        FROM workout_logs
        WHERE member_id=$1 AND entries @> jsonb_build_array(jsonb_build_object('exercise_id', $2::text))
        ORDER BY logged_at`

	rows, err := r.pool.Query(ctx, query, memberID, exerciseID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectLogs(rows)
}

func collectLogs(rows pgx.Rows) ([]domain.WorkoutLog, error) {
	var logs []domain.WorkoutLog
	for rows.Next() {
		var (
			log     domain.WorkoutLog
			entries []byte
		)
		if err := rows.Scan(&log.ID, &log.MemberID, &log.LoggedAt,
			&log.DurationMin, &entries, &log.Notes); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(entries, &log.Entries); err != nil {
			return nil, fmt.Errorf("decode entries for log %s: %w", log.ID, err)
		}
		logs = append(logs, log)
	}
	return logs, rows.Err()
}
