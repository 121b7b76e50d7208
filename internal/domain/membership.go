package domain

import (
	"context"
	"time"
)

// UserRepository captures user persistence.
type UserRepository interface {
	Create(ctx context.Context, user User) error
	Get(ctx context.Context, id string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	ListByRole(ctx context.Context, role Role) ([]User, error)
	UpdateMembership(ctx context.Context, userID string, membership Membership) error
	UpdateRole(ctx context.Context, userID string, role Role) error
}

// MembershipService computes and mutates membership windows.
type MembershipService struct {
	users UserRepository
	plans PlanRepository
	now   func() time.Time
}

// NewMembershipService constructs a MembershipService.
func NewMembershipService(users UserRepository, plans PlanRepository) *MembershipService {
	return &MembershipService{
		users: users,
		plans: plans,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// PurchaseResult reports the outcome of a plan purchase.
type PurchaseResult struct {
	Membership Membership
	PlanName   string
}

// Purchase applies a plan to a member's account. A still-active membership
// stacks: the new window starts where the current one ends, so renewing
// early never costs paid time. Anything else starts the window now. The
// membership sub-record is replaced wholesale and forced active.
func (s *MembershipService) Purchase(ctx context.Context, memberID, planID string) (PurchaseResult, error) {
	plan, err := s.plans.Get(ctx, planID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if plan == nil {
		return PurchaseResult{}, ErrPlanNotFound
	}

	user, err := s.users.Get(ctx, memberID)
	if err != nil {
		return PurchaseResult{}, err
	}
	if user == nil {
		return PurchaseResult{}, ErrUserNotFound
	}

	now := s.now()
	start := now
	current := user.Membership
	if current.ActiveAt(now) && current.End.After(now) {
		start = current.End
	}

	membership := Membership{
		PlanID: plan.ID,
		Start:  start,
		End:    start.AddDate(0, 0, plan.DurationDays),
		Status: MembershipActive,
	}

	if err := s.users.UpdateMembership(ctx, user.ID, membership); err != nil {
		return PurchaseResult{}, err
	}

	return PurchaseResult{Membership: membership, PlanName: plan.Name}, nil
}
