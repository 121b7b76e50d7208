// Package domain defines the business logic for the gym service.
package domain

import "time"

// Role classifies what a user is allowed to do.
type Role string

const (
	RoleMember  Role = "member"
	RoleTrainer Role = "trainer"
	RoleAdmin   Role = "admin"
)

// Valid reports whether the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleMember, RoleTrainer, RoleAdmin:
		return true
	}
	return false
}

// Staff reports whether the role grants trainer-level access.
func (r Role) Staff() bool {
	return r == RoleTrainer || r == RoleAdmin
}

// MembershipStatus is the lifecycle state of a user's membership.
type MembershipStatus string

const (
	MembershipActive  MembershipStatus = "active"
	MembershipExpired MembershipStatus = "expired"
	MembershipFrozen  MembershipStatus = "frozen"
	MembershipPending MembershipStatus = "pending"
)

// Membership is the single embedded sub-record tracking a user's paid
// window. A purchase replaces it wholesale; no history is retained.
type Membership struct {
	PlanID string           `json:"plan_id,omitempty"`
	Start  time.Time        `json:"start_date,omitempty"`
	End    time.Time        `json:"end_date,omitempty"`
	Status MembershipStatus `json:"status"`
}

// ActiveAt reports whether the membership grants access at the given
// instant. Active means the status field says so and the window has not
// closed; the end boundary itself still counts as active.
func (m *Membership) ActiveAt(now time.Time) bool {
	if m == nil || m.Status != MembershipActive {
		return false
	}
	return !m.End.Before(now)
}

// User is a registered account: member, trainer, or admin.
type User struct {
	ID           string     `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"`
	Role         Role       `json:"role"`
	Membership   Membership `json:"membership"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
