package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AccountService handles registration, authentication, and staff
// management.
type AccountService struct {
	users UserRepository
	now   func() time.Time
}

// NewAccountService constructs an AccountService.
func NewAccountService(users UserRepository) *AccountService {
	return &AccountService{
		users: users,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// RegisterInput captures a new account request.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     Role
}

// Validate checks the required registration fields.
func (in RegisterInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Email) == "" || in.Password == "" {
		return errors.New("name, email, and password are required")
	}
	if in.Role != "" && !in.Role.Valid() {
		return errors.New("unknown role")
	}
	return nil
}

// Register creates a user with a hashed credential. The role defaults to
// member; the membership sub-record starts pending with no window.
func (s *AccountService) Register(ctx context.Context, input RegisterInput) (User, error) {
	if err := input.Validate(); err != nil {
		return User{}, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	existing, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return User{}, err
	}
	if existing != nil {
		return User{}, ErrEmailTaken
	}

	hash, err := hashPassword(input.Password)
	if err != nil {
		return User{}, err
	}

	role := input.Role
	if role == "" {
		role = RoleMember
	}

	now := s.now()
	user := User{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Membership:   Membership{Status: MembershipPending},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

// Authenticate verifies an email/password pair.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (User, error) {
	user, err := s.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		return User{}, err
	}
	if user == nil || !verifyPassword(user.PasswordHash, password) {
		return User{}, ErrInvalidCredentials
	}
	return *user, nil
}

// Profile fetches a user by id.
func (s *AccountService) Profile(ctx context.Context, userID string) (User, error) {
	user, err := s.users.Get(ctx, userID)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		return User{}, ErrUserNotFound
	}
	return *user, nil
}

// ListMembers returns every user holding the member role.
func (s *AccountService) ListMembers(ctx context.Context) ([]User, error) {
	return s.users.ListByRole(ctx, RoleMember)
}

// UpdateRole changes a user's role. An admin cannot demote themself:
// changing the caller's own role to anything but admin is refused.
func (s *AccountService) UpdateRole(ctx context.Context, callerID, targetID string, role Role) (User, error) {
	if !role.Valid() {
		return User{}, errors.New("invalid role provided")
	}
	if callerID == targetID && role != RoleAdmin {
		return User{}, ErrSelfDemotion
	}

	user, err := s.users.Get(ctx, targetID)
	if err != nil {
		return User{}, err
	}
	if user == nil {
		return User{}, ErrUserNotFound
	}

	if err := s.users.UpdateRole(ctx, targetID, role); err != nil {
		return User{}, err
	}
	user.Role = role
	user.UpdatedAt = s.now()
	return *user, nil
}
