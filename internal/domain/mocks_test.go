package domain

import (
	"context"
	"time"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]User
}

func newFakeUserRepo(users ...User) *fakeUserRepo {
	repo := &fakeUserRepo{users: make(map[string]User)}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (r *fakeUserRepo) Create(ctx context.Context, user User) error {
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return ErrEmailTaken
		}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Get(ctx context.Context, id string) (*User, error) {
	user, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return &user, nil
}

func (r *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*User, error) {
	for _, user := range r.users {
		if user.Email == email {
			copied := user
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) ListByRole(ctx context.Context, role Role) ([]User, error) {
	var out []User
	for _, user := range r.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (r *fakeUserRepo) UpdateMembership(ctx context.Context, userID string, membership Membership) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Membership = membership
	r.users[userID] = user
	return nil
}

func (r *fakeUserRepo) UpdateRole(ctx context.Context, userID string, role Role) error {
	user, ok := r.users[userID]
	if !ok {
		return ErrUserNotFound
	}
	user.Role = role
	r.users[userID] = user
	return nil
}

type fakePlanRepo struct {
	plans map[string]Plan
}

func newFakePlanRepo(plans ...Plan) *fakePlanRepo {
	repo := &fakePlanRepo{plans: make(map[string]Plan)}
	for _, plan := range plans {
		repo.plans[plan.ID] = plan
	}
	return repo
}

func (r *fakePlanRepo) Create(ctx context.Context, plan Plan) error {
	r.plans[plan.ID] = plan
	return nil
}

func (r *fakePlanRepo) Get(ctx context.Context, id string) (*Plan, error) {
	plan, ok := r.plans[id]
	if !ok {
		return nil, nil
	}
	return &plan, nil
}

func (r *fakePlanRepo) List(ctx context.Context, availableOnly bool) ([]Plan, error) {
	var out []Plan
	for _, plan := range r.plans {
		if availableOnly && !plan.IsAvailable {
			continue
		}
		out = append(out, plan)
	}
	return out, nil
}

func (r *fakePlanRepo) Update(ctx context.Context, plan Plan) error {
	if _, ok := r.plans[plan.ID]; !ok {
		return ErrPlanNotFound
	}
	r.plans[plan.ID] = plan
	return nil
}

type fakeExerciseRepo struct {
	exercises map[string]Exercise
}

func newFakeExerciseRepo(exercises ...Exercise) *fakeExerciseRepo {
	repo := &fakeExerciseRepo{exercises: make(map[string]Exercise)}
	for _, exercise := range exercises {
		repo.exercises[exercise.ID] = exercise
	}
	return repo
}

func (r *fakeExerciseRepo) Create(ctx context.Context, exercise Exercise) error {
	r.exercises[exercise.ID] = exercise
	return nil
}

func (r *fakeExerciseRepo) Get(ctx context.Context, id string) (*Exercise, error) {
	exercise, ok := r.exercises[id]
	if !ok {
		return nil, nil
	}
	return &exercise, nil
}

func (r *fakeExerciseRepo) GetByName(ctx context.Context, name string) (*Exercise, error) {
	for _, exercise := range r.exercises {
		if exercise.Name == name {
			copied := exercise
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeExerciseRepo) List(ctx context.Context) ([]Exercise, error) {
	var out []Exercise
	for _, exercise := range r.exercises {
		out = append(out, exercise)
	}
	return out, nil
}

type fakeWorkoutRepo struct {
	logs []WorkoutLog
}

func (r *fakeWorkoutRepo) Create(ctx context.Context, log WorkoutLog) error {
	r.logs = append(r.logs, log)
	return nil
}

func (r *fakeWorkoutRepo) ListByMember(ctx context.Context, memberID string, limit int) ([]WorkoutLog, error) {
	var out []WorkoutLog
	for i := len(r.logs) - 1; i >= 0 && len(out) < limit; i-- {
		if r.logs[i].MemberID == memberID {
			out = append(out, r.logs[i])
		}
	}
	return out, nil
}

func (r *fakeWorkoutRepo) ListByMemberWithExercise(ctx context.Context, memberID, exerciseID string) ([]WorkoutLog, error) {
	var out []WorkoutLog
	for _, log := range r.logs {
		if log.MemberID != memberID {
			continue
		}
		for _, entry := range log.Entries {
			if entry.ExerciseID == exerciseID {
				out = append(out, log)
				break
			}
		}
	}
	return out, nil
}

type fakeAttendanceRepo struct {
	records []AttendanceRecord
	entries []AttendanceEntry
}

func (r *fakeAttendanceRepo) Create(ctx context.Context, record AttendanceRecord) error {
	r.records = append(r.records, record)
	return nil
}

func (r *fakeAttendanceRepo) FindForMemberBetween(ctx context.Context, memberID string, from, to time.Time) (*AttendanceRecord, error) {
	for _, record := range r.records {
		if record.MemberID != memberID {
			continue
		}
		if !record.CheckInTime.Before(from) && record.CheckInTime.Before(to) {
			copied := record
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeAttendanceRepo) ListBetween(ctx context.Context, from, to time.Time) ([]AttendanceEntry, error) {
	return r.entries, nil
}

type fakeEquipmentRepo struct {
	items map[string]Equipment
}

func newFakeEquipmentRepo() *fakeEquipmentRepo {
	return &fakeEquipmentRepo{items: make(map[string]Equipment)}
}

func (r *fakeEquipmentRepo) Create(ctx context.Context, equipment Equipment) error {
	r.items[equipment.ID] = equipment
	return nil
}

func (r *fakeEquipmentRepo) Get(ctx context.Context, id string) (*Equipment, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, nil
	}
	return &item, nil
}

func (r *fakeEquipmentRepo) GetByIdentifier(ctx context.Context, identifier string) (*Equipment, error) {
	for _, item := range r.items {
		if item.Identifier == identifier {
			copied := item
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeEquipmentRepo) List(ctx context.Context) ([]Equipment, error) {
	var out []Equipment
	for _, item := range r.items {
		out = append(out, item)
	}
	return out, nil
}

func (r *fakeEquipmentRepo) Update(ctx context.Context, equipment Equipment) error {
	if _, ok := r.items[equipment.ID]; !ok {
		return ErrEquipmentNotFound
	}
	r.items[equipment.ID] = equipment
	return nil
}
