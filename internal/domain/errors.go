package domain

import "errors"

var (
	// ErrUserNotFound is returned when a user id or email does not resolve.
	ErrUserNotFound = errors.New("user not found")
	// ErrPlanNotFound is returned when a plan id does not resolve.
	ErrPlanNotFound = errors.New("plan not found")
	// ErrExerciseNotFound is returned when an exercise id does not resolve.
	ErrExerciseNotFound = errors.New("exercise not found")
	// ErrEquipmentNotFound is returned when an equipment id does not resolve.
	ErrEquipmentNotFound = errors.New("equipment not found")
	// ErrNotMember indicates the target user exists but is not a member.
	ErrNotMember = errors.New("user is not a member")
	// ErrMembershipInactive indicates an expired, frozen, or pending membership.
	ErrMembershipInactive = errors.New("membership expired or inactive")
	// ErrAlreadyCheckedIn indicates a second check-in on the same calendar day.
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	// ErrEmailTaken indicates a registration against an existing email.
	ErrEmailTaken = errors.New("email already registered")
	// ErrExerciseExists indicates a duplicate exercise name.
	ErrExerciseExists = errors.New("exercise already exists")
	// ErrEquipmentExists indicates a duplicate equipment identifier.
	ErrEquipmentExists = errors.New("equipment identifier already exists")
	// ErrSelfDemotion indicates an admin changing their own role away from admin.
	ErrSelfDemotion = errors.New("cannot demote yourself")
	// ErrInvalidCredentials is returned for a failed login.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmptyWorkout indicates a log with no exercise entries left after
	// zero-rep filtering.
	ErrEmptyWorkout = errors.New("a workout must contain at least one exercise")
)
