package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
)

// DefaultScannerID is assumed when a check-in does not name its scanner.
const DefaultScannerID = "MAIN_ENTRANCE"

// AttendanceRecord is a single check-in event.
type AttendanceRecord struct {
	ID           string     `json:"id"`
	MemberID     string     `json:"member_id"`
	CheckInTime  time.Time  `json:"check_in_time"`
	CheckOutTime *time.Time `json:"check_out_time,omitempty"`
	ScannerID    string     `json:"scanner_id"`
}

// AttendanceEntry is an attendance record joined with member details for
// the staff roster view.
type AttendanceEntry struct {
	Record           AttendanceRecord `json:"record"`
	MemberName       string           `json:"member_name"`
	MemberEmail      string           `json:"member_email"`
	MemberMembership Membership       `json:"member_membership"`
}

// AttendanceRepository captures attendance persistence.
type AttendanceRepository interface {
	Create(ctx context.Context, record AttendanceRecord) error
	// FindForMemberBetween returns the member's record inside
	// [from, to), or nil if none exists.
	FindForMemberBetween(ctx context.Context, memberID string, from, to time.Time) (*AttendanceRecord, error)
	ListBetween(ctx context.Context, from, to time.Time) ([]AttendanceEntry, error)
}

// AttendanceService gates and records gym check-ins.
type AttendanceService struct {
	users      UserRepository
	attendance AttendanceRepository
	now        func() time.Time
}

// NewAttendanceService constructs an AttendanceService.
func NewAttendanceService(users UserRepository, attendance AttendanceRepository) *AttendanceService {
	return &AttendanceService{
		users:      users,
		attendance: attendance,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// CheckInResult reports a successful check-in.
type CheckInResult struct {
	Record     AttendanceRecord
	MemberName string
}

// CheckIn records one visit for the member. Gates run in order: the id
// must resolve to a user with the member role, the membership must be
// active right now, and the member must not have checked in yet today.
// The day-scoped unique index in the store backs the last gate under
// concurrent scans.
func (s *AttendanceService) CheckIn(ctx context.Context, memberID, scannerID string) (CheckInResult, error) {
	user, err := s.users.Get(ctx, memberID)
	if err != nil {
		return CheckInResult{}, err
	}
	if user == nil || user.Role != RoleMember {
		return CheckInResult{}, ErrNotMember
	}

	now := s.now()
	if !user.Membership.ActiveAt(now) {
		return CheckInResult{}, ErrMembershipInactive
	}

	dayStart, dayEnd := dayWindow(now)
	existing, err := s.attendance.FindForMemberBetween(ctx, memberID, dayStart, dayEnd)
	if err != nil {
		return CheckInResult{}, err
	}
	if existing != nil {
		return CheckInResult{}, ErrAlreadyCheckedIn
	}

	if strings.TrimSpace(scannerID) == "" {
		scannerID = DefaultScannerID
	}
	record := AttendanceRecord{
		ID:          uuid.NewString(),
		MemberID:    memberID,
		CheckInTime: now,
		ScannerID:   scannerID,
	}
	if err := s.attendance.Create(ctx, record); err != nil {
		return CheckInResult{}, err
	}

	return CheckInResult{Record: record, MemberName: user.Name}, nil
}

// ListToday returns every check-in of the current calendar day joined
// with member details. Read-only; role enforcement lives at the handler.
func (s *AttendanceService) ListToday(ctx context.Context) ([]AttendanceEntry, error) {
	dayStart, dayEnd := dayWindow(s.now())
	return s.attendance.ListBetween(ctx, dayStart, dayEnd)
}

// dayWindow returns the half-open [00:00 today, 00:00 tomorrow) range
// containing t, in t's location.
func dayWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}
