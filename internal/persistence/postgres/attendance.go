package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

// AttendanceRepository provides Postgres-backed persistence for
// check-in records.
type AttendanceRepository struct {
	pool *pgxpool.Pool
}

// NewAttendanceRepository constructs an AttendanceRepository.
func NewAttendanceRepository(pool *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{pool: pool}
}

// Create inserts a check-in row. A second insert for the same member on
// the same calendar day trips the day-scoped unique index and reports
// the duplicate check-in.
func (r *AttendanceRepository) Create(ctx context.Context, record domain.AttendanceRecord) error {
	const stmt = `INSERT INTO attendance (attendance_id, member_id, check_in_time, check_out_time, scanner_id)
        VALUES ($1,$2,$3,$4,$5)`

	_, err := r.pool.Exec(ctx, stmt,
		record.ID, record.MemberID, record.CheckInTime, record.CheckOutTime, record.ScannerID)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyCheckedIn
	}
	return err
}

// FindForMemberBetween returns the member's record with a check-in time
// inside [from, to), or nil when none exists.
func (r *AttendanceRepository) FindForMemberBetween(ctx context.Context, memberID string, from, to time.Time) (*domain.AttendanceRecord, error) {
	const query = `SELECT attendance_id, member_id, check_in_time, check_out_time, scanner_id
        FROM attendance
        WHERE member_id=$1 AND check_in_time >= $2 AND check_in_time < $3`

	var record domain.AttendanceRecord
	err := r.pool.QueryRow(ctx, query, memberID, from, to).Scan(
		&record.ID, &record.MemberID, &record.CheckInTime, &record.CheckOutTime, &record.ScannerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// ListBetween returns every check-in inside [from, to) joined with the
// member's display details.
func (r *AttendanceRepository) ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceEntry, error) {
	const query = `SELECT a.attendance_id, a.member_id, a.check_in_time, a.check_out_time, a.scanner_id,
            u.name, u.email, u.membership_plan_id, u.membership_start, u.membership_end, u.membership_status
        FROM attendance a
        JOIN users u ON u.user_id = a.member_id
        WHERE a.check_in_time >= $1 AND a.check_in_time < $2
        ORDER BY a.check_in_time`

	rows, err := r.pool.Query(ctx, query, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []domain.AttendanceEntry
	for rows.Next() {
		var (
			entry  domain.AttendanceEntry
			planID *string
			start  *time.Time
			end    *time.Time
		)
		if err := rows.Scan(
			&entry.Record.ID, &entry.Record.MemberID, &entry.Record.CheckInTime,
			&entry.Record.CheckOutTime, &entry.Record.ScannerID,
			&entry.MemberName, &entry.MemberEmail,
			&planID, &start, &end, &entry.MemberMembership.Status,
		); err != nil {
			return nil, err
		}
		if planID != nil {
			entry.MemberMembership.PlanID = *planID
		}
		if start != nil {
			entry.MemberMembership.Start = *start
		}
		if end != nil {
			entry.MemberMembership.End = *end
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
