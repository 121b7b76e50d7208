package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/yanab-1/GYMANIA/internal/auth"
	"github.com/yanab-1/GYMANIA/internal/domain"
)

func newTestHandler(users *mockUserRepo, attendance *mockAttendanceRepo) *Handler {
	plans := &mockPlanRepo{}
	exercises := &mockExerciseRepo{}
	workouts := &mockWorkoutRepo{}
	equipment := &mockEquipmentRepo{}

	return NewHandler(
		domain.NewAccountService(users),
		domain.NewMembershipService(users, plans),
		domain.NewAttendanceService(users, attendance),
		domain.NewWorkoutService(workouts, exercises),
		domain.NewCatalogService(plans, exercises, equipment),
		auth.Config{Secret: "test-secret", Issuer: "gymania.test", TokenTTL: time.Hour},
	)
}

func withClaims(req *http.Request, userID string, role domain.Role) *http.Request {
	claims := &auth.Claims{
		Subject:   userID,
		Role:      role,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	return req.WithContext(auth.WithClaims(req.Context(), claims))
}

func TestCheckInInactiveMembershipCarriesRedirect(t *testing.T) {
	users := &mockUserRepo{user: &domain.User{
		ID:   "user-1",
		Name: "Jamie",
		Role: domain.RoleMember,
		Membership: domain.Membership{
			Status: domain.MembershipExpired,
			End:    time.Now().Add(-24 * time.Hour),
		},
	}}
	attendance := &mockAttendanceRepo{}
	handler := newTestHandler(users, attendance)

	req := httptest.NewRequest(http.MethodPost, "/v1/attendance/checkin", strings.NewReader(`{}`))
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.checkIn(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["redirect"] != "/purchase-plan" {
		t.Fatalf("expected purchase redirect hint, got %q", resp["redirect"])
	}
	if len(attendance.created) != 0 {
		t.Fatalf("no attendance record should be created, got %d", len(attendance.created))
	}
}

func TestCheckInSuccessIncludesClockTime(t *testing.T) {
	users := &mockUserRepo{user: &domain.User{
		ID:   "user-1",
		Name: "Jamie",
		Role: domain.RoleMember,
		Membership: domain.Membership{
			Status: domain.MembershipActive,
			End:    time.Now().Add(24 * time.Hour),
		},
	}}
	attendance := &mockAttendanceRepo{}
	handler := newTestHandler(users, attendance)

	req := httptest.NewRequest(http.MethodPost, "/v1/attendance/checkin", strings.NewReader(`{"scanner_id":"SIDE_DOOR"}`))
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.checkIn(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rr.Code, rr.Body.String())
	}

	var resp CheckInResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.CheckInID == "" {
		t.Fatal("expected a check-in id")
	}
	if !strings.Contains(resp.Message, "Welcome, Jamie!") {
		t.Fatalf("unexpected message %q", resp.Message)
	}
	if len(attendance.created) != 1 {
		t.Fatalf("expected one record, got %d", len(attendance.created))
	}
	if attendance.created[0].ScannerID != "SIDE_DOOR" {
		t.Fatalf("unexpected scanner id %q", attendance.created[0].ScannerID)
	}
}

func TestCheckInRequiresMemberRole(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/attendance/checkin", nil)
	req = withClaims(req, "trainer-1", domain.RoleTrainer)

	rr := httptest.NewRecorder()
	handler.checkIn(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestTodayAttendanceRejectsMembers(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/attendance/today", nil)
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.todayAttendance(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestTodayAttendanceRequiresToken(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/attendance/today", nil)

	rr := httptest.NewRecorder()
	handler.todayAttendance(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", rr.Code)
	}
}

func TestStrengthProgressStaffNeedsMemberID(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/workouts/progress/ex-1", nil)
	req = withClaims(req, "trainer-1", domain.RoleTrainer)

	rr := httptest.NewRecorder()
	handler.strengthProgress(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestStrengthProgressUnknownExercise(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodGet, "/v1/workouts/progress/missing", nil)
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.strengthProgress(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPurchaseRequiresPlanID(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/users/membership/purchase", strings.NewReader(`{}`))
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.purchaseMembership(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", rr.Code)
	}
}

func TestAppendWorkoutLogRejectsEmpty(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodPost, "/v1/workouts/log", strings.NewReader(`{"exercises":[]}`))
	req = withClaims(req, "user-1", domain.RoleMember)

	rr := httptest.NewRecorder()
	handler.appendWorkoutLog(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d: %s", rr.Code, rr.Body.String())
	}
}

func TestUpdateStaffRoleRejectsNonAdmin(t *testing.T) {
	handler := newTestHandler(&mockUserRepo{}, &mockAttendanceRepo{})

	req := httptest.NewRequest(http.MethodPut, "/v1/users/staff/user-2", strings.NewReader(`{"role":"trainer"}`))
	req = withClaims(req, "trainer-1", domain.RoleTrainer)

	rr := httptest.NewRecorder()
	handler.updateStaffRole(rr, req)

	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 got %d", rr.Code)
	}
}

func TestPublicRoute(t *testing.T) {
	get := httptest.NewRequest(http.MethodGet, "/v1/plans", nil)
	if !PublicRoute(get) {
		t.Fatal("GET /v1/plans should be public")
	}
	post := httptest.NewRequest(http.MethodPost, "/v1/plans", nil)
	if PublicRoute(post) {
		t.Fatal("POST /v1/plans should require a token")
	}
	login := httptest.NewRequest(http.MethodPost, "/v1/auth/login", nil)
	if !PublicRoute(login) {
		t.Fatal("login should be public")
	}
	profile := httptest.NewRequest(http.MethodGet, "/v1/users/profile", nil)
	if PublicRoute(profile) {
		t.Fatal("profile should require a token")
	}
}

// --- mocks ---

type mockUserRepo struct {
	user *domain.User
}

func (m *mockUserRepo) Create(ctx context.Context, user domain.User) error { return nil }

func (m *mockUserRepo) Get(ctx context.Context, id string) (*domain.User, error) {
	if m.user != nil && m.user.ID == id {
		copied := *m.user
		return &copied, nil
	}
	return nil, nil
}

func (m *mockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.user != nil && m.user.Email == email {
		copied := *m.user
		return &copied, nil
	}
	return nil, nil
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role domain.Role) ([]domain.User, error) {
	return nil, nil
}

func (m *mockUserRepo) UpdateMembership(ctx context.Context, userID string, membership domain.Membership) error {
	return nil
}

func (m *mockUserRepo) UpdateRole(ctx context.Context, userID string, role domain.Role) error {
	return nil
}

type mockAttendanceRepo struct {
	created []domain.AttendanceRecord
	today   []domain.AttendanceEntry
}

func (m *mockAttendanceRepo) Create(ctx context.Context, record domain.AttendanceRecord) error {
	m.created = append(m.created, record)
	return nil
}

func (m *mockAttendanceRepo) FindForMemberBetween(ctx context.Context, memberID string, from, to time.Time) (*domain.AttendanceRecord, error) {
	for _, record := range m.created {
		if record.MemberID == memberID && !record.CheckInTime.Before(from) && record.CheckInTime.Before(to) {
			copied := record
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]domain.AttendanceEntry, error) {
	return m.today, nil
}

type mockPlanRepo struct {
	plans []domain.Plan
}

func (m *mockPlanRepo) Create(ctx context.Context, plan domain.Plan) error {
	m.plans = append(m.plans, plan)
	return nil
}

func (m *mockPlanRepo) Get(ctx context.Context, id string) (*domain.Plan, error) {
	for _, plan := range m.plans {
		if plan.ID == id {
			copied := plan
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockPlanRepo) List(ctx context.Context, availableOnly bool) ([]domain.Plan, error) {
	return m.plans, nil
}

func (m *mockPlanRepo) Update(ctx context.Context, plan domain.Plan) error { return nil }

type mockExerciseRepo struct {
	exercises []domain.Exercise
}

func (m *mockExerciseRepo) Create(ctx context.Context, exercise domain.Exercise) error {
	m.exercises = append(m.exercises, exercise)
	return nil
}

func (m *mockExerciseRepo) Get(ctx context.Context, id string) (*domain.Exercise, error) {
	for _, exercise := range m.exercises {
		if exercise.ID == id {
			copied := exercise
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockExerciseRepo) GetByName(ctx context.Context, name string) (*domain.Exercise, error) {
	for _, exercise := range m.exercises {
		if exercise.Name == name {
			copied := exercise
			return &copied, nil
		}
	}
	return nil, nil
}

func (m *mockExerciseRepo) List(ctx context.Context) ([]domain.Exercise, error) {
	return m.exercises, nil
}

type mockWorkoutRepo struct {
	logs []domain.WorkoutLog
}

func (m *mockWorkoutRepo) Create(ctx context.Context, log domain.WorkoutLog) error {
	m.logs = append(m.logs, log)
	return nil
}

func (m *mockWorkoutRepo) ListByMember(ctx context.Context, memberID string, limit int) ([]domain.WorkoutLog, error) {
	return m.logs, nil
}

func (m *mockWorkoutRepo) ListByMemberWithExercise(ctx context.Context, memberID, exerciseID string) ([]domain.WorkoutLog, error) {
	return m.logs, nil
}

type mockEquipmentRepo struct {
	items []domain.Equipment
}

func (m *mockEquipmentRepo) Create(ctx context.Context, equipment domain.Equipment) error {
	m.items = append(m.items, equipment)
	return nil
}

func (m *mockEquipmentRepo) Get(ctx context.Context, id string) (*domain.Equipment, error) {
	return nil, nil
}

func (m *mockEquipmentRepo) GetByIdentifier(ctx context.Context, identifier string) (*domain.Equipment, error) {
	return nil, nil
}

func (m *mockEquipmentRepo) List(ctx context.Context) ([]domain.Equipment, error) {
	return m.items, nil
}

func (m *mockEquipmentRepo) Update(ctx context.Context, equipment domain.Equipment) error {
	return nil
}
