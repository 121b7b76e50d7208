package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Plan is a purchasable membership plan.
type Plan struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	DurationDays int       `json:"duration_days"`
	Description  string    `json:"description"`
	IsAvailable  bool      `json:"is_available"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// ExerciseCategory is the closed set of catalog categories.
type ExerciseCategory string

const (
	CategoryChest     ExerciseCategory = "Chest"
	CategoryBack      ExerciseCategory = "Back"
	CategoryLegs      ExerciseCategory = "Legs"
	CategoryShoulders ExerciseCategory = "Shoulders"
	CategoryArms      ExerciseCategory = "Arms"
	CategoryCore      ExerciseCategory = "Core"
	CategoryCardio    ExerciseCategory = "Cardio"
	CategoryOther     ExerciseCategory = "Other"
)

// Valid reports whether the category is part of the catalog enumeration.
func (c ExerciseCategory) Valid() bool {
	switch c {
	case CategoryChest, CategoryBack, CategoryLegs, CategoryShoulders,
		CategoryArms, CategoryCore, CategoryCardio, CategoryOther:
		return true
	}
	return false
}

// Exercise is a catalog entry referenced by id from workout logs.
type Exercise struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Category    ExerciseCategory `json:"category"`
	Description string           `json:"description"`
	CreatedAt   time.Time        `json:"created_at"`
}

// EquipmentStatus tracks the serviceability of a piece of equipment.
type EquipmentStatus string

const (
	EquipmentOperational  EquipmentStatus = "Operational"
	EquipmentNeedsRepair  EquipmentStatus = "Needs Repair"
	EquipmentOutOfService EquipmentStatus = "Out of Service"
)

// Valid reports whether the status is one of the known states.
func (s EquipmentStatus) Valid() bool {
	switch s {
	case EquipmentOperational, EquipmentNeedsRepair, EquipmentOutOfService:
		return true
	}
	return false
}

// Equipment is an inventory record maintained by admins.
type Equipment struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Identifier          string          `json:"identifier"`
	Location            string          `json:"location"`
	Status              EquipmentStatus `json:"status"`
	LastMaintenanceDate *time.Time      `json:"last_maintenance_date,omitempty"`
	Notes               string          `json:"notes"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

// PlanRepository captures plan persistence.
type PlanRepository interface {
	Create(ctx context.Context, plan Plan) error
	Get(ctx context.Context, id string) (*Plan, error)
	List(ctx context.Context, availableOnly bool) ([]Plan, error)
	Update(ctx context.Context, plan Plan) error
}

// ExerciseRepository captures exercise catalog persistence.
type ExerciseRepository interface {
	Create(ctx context.Context, exercise Exercise) error
	Get(ctx context.Context, id string) (*Exercise, error)
	GetByName(ctx context.Context, name string) (*Exercise, error)
	List(ctx context.Context) ([]Exercise, error)
}

// EquipmentRepository captures equipment persistence.
type EquipmentRepository interface {
	Create(ctx context.Context, equipment Equipment) error
	Get(ctx context.Context, id string) (*Equipment, error)
	GetByIdentifier(ctx context.Context, identifier string) (*Equipment, error)
	List(ctx context.Context) ([]Equipment, error)
	Update(ctx context.Context, equipment Equipment) error
}

// CatalogService manages plans, the exercise catalog, and equipment.
type CatalogService struct {
	plans     PlanRepository
	exercises ExerciseRepository
	equipment EquipmentRepository
	now       func() time.Time
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(plans PlanRepository, exercises ExerciseRepository, equipment EquipmentRepository) *CatalogService {
	return &CatalogService{
		plans:     plans,
		exercises: exercises,
		equipment: equipment,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// ListPlans returns plans visible to the caller. Public callers see only
// available plans, sorted by price ascending; admins see everything.
func (s *CatalogService) ListPlans(ctx context.Context, includeUnavailable bool) ([]Plan, error) {
	return s.plans.List(ctx, !includeUnavailable)
}

// CreatePlanInput captures the admin payload for a new plan.
type CreatePlanInput struct {
	Name         string
	Price        float64
	DurationDays int
	Description  string
}

// Validate ensures all plan details are present.
func (in CreatePlanInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if in.Price <= 0 {
		return errors.New("price must be > 0")
	}
	if in.DurationDays < 1 {
		return errors.New("duration_days must be >= 1")
	}
	if strings.TrimSpace(in.Description) == "" {
		return errors.New("description is required")
	}
	return nil
}

// CreatePlan persists a new plan, available by default.
func (s *CatalogService) CreatePlan(ctx context.Context, input CreatePlanInput) (Plan, error) {
	if err := input.Validate(); err != nil {
		return Plan{}, err
	}
	now := s.now()
	plan := Plan{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(input.Name),
		Price:        input.Price,
		DurationDays: input.DurationDays,
		Description:  input.Description,
		IsAvailable:  true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.plans.Create(ctx, plan); err != nil {
		return Plan{}, err
	}
	return plan, nil
}

// UpdatePlanInput carries the optional fields of a plan edit. Nil fields
// keep their current values.
type UpdatePlanInput struct {
	Name         *string
	Price        *float64
	DurationDays *int
	Description  *string
	IsAvailable  *bool
}

// UpdatePlan merges the provided fields into an existing plan.
func (s *CatalogService) UpdatePlan(ctx context.Context, id string, input UpdatePlanInput) (Plan, error) {
	plan, err := s.plans.Get(ctx, id)
	if err != nil {
		return Plan{}, err
	}
	if plan == nil {
		return Plan{}, ErrPlanNotFound
	}

	if input.Name != nil && strings.TrimSpace(*input.Name) != "" {
		plan.Name = strings.TrimSpace(*input.Name)
	}
	if input.Price != nil && *input.Price > 0 {
		plan.Price = *input.Price
	}
	if input.DurationDays != nil && *input.DurationDays >= 1 {
		plan.DurationDays = *input.DurationDays
	}
	if input.Description != nil && strings.TrimSpace(*input.Description) != "" {
		plan.Description = *input.Description
	}
	if input.IsAvailable != nil {
		plan.IsAvailable = *input.IsAvailable
	}
	plan.UpdatedAt = s.now()

	if err := s.plans.Update(ctx, *plan); err != nil {
		return Plan{}, err
	}
	return *plan, nil
}

// ListExercises returns the full exercise catalog.
func (s *CatalogService) ListExercises(ctx context.Context) ([]Exercise, error) {
	return s.exercises.List(ctx)
}

// CreateExerciseInput captures a new catalog entry.
type CreateExerciseInput struct {
	Name        string
	Category    ExerciseCategory
	Description string
}

// Validate checks required fields and the closed category set.
func (in CreateExerciseInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return errors.New("name is required")
	}
	if !in.Category.Valid() {
		return errors.New("unknown exercise category")
	}
	return nil
}

// CreateExercise adds a catalog entry, rejecting duplicate names.
func (s *CatalogService) CreateExercise(ctx context.Context, input CreateExerciseInput) (Exercise, error) {
	if err := input.Validate(); err != nil {
		return Exercise{}, err
	}

	name := strings.TrimSpace(input.Name)
	existing, err := s.exercises.GetByName(ctx, name)
	if err != nil {
		return Exercise{}, err
	}
	if existing != nil {
		return Exercise{}, ErrExerciseExists
	}

	exercise := Exercise{
		ID:          uuid.NewString(),
		Name:        name,
		Category:    input.Category,
		Description: input.Description,
		CreatedAt:   s.now(),
	}
	if err := s.exercises.Create(ctx, exercise); err != nil {
		return Exercise{}, err
	}
	return exercise, nil
}

// ListEquipment returns all equipment records.
func (s *CatalogService) ListEquipment(ctx context.Context) ([]Equipment, error) {
	return s.equipment.List(ctx)
}

// CreateEquipmentInput captures a new inventory record.
type CreateEquipmentInput struct {
	Name       string
	Identifier string
	Location   string
	Status     EquipmentStatus
	Notes      string
}

// Validate requires name and identifier; status defaults to operational.
func (in CreateEquipmentInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Identifier) == "" {
		return errors.New("name and identifier are required")
	}
	if in.Status != "" && !in.Status.Valid() {
		return errors.New("unknown equipment status")
	}
	return nil
}

// CreateEquipment adds an inventory record, rejecting duplicate identifiers.
func (s *CatalogService) CreateEquipment(ctx context.Context, input CreateEquipmentInput) (Equipment, error) {
	if err := input.Validate(); err != nil {
		return Equipment{}, err
	}

	identifier := strings.TrimSpace(input.Identifier)
	existing, err := s.equipment.GetByIdentifier(ctx, identifier)
	if err != nil {
		return Equipment{}, err
	}
	if existing != nil {
		return Equipment{}, ErrEquipmentExists
	}

	status := input.Status
	if status == "" {
		status = EquipmentOperational
	}
	now := s.now()
	equipment := Equipment{
		ID:         uuid.NewString(),
		Name:       strings.TrimSpace(input.Name),
		Identifier: identifier,
		Location:   input.Location,
		Status:     status,
		Notes:      input.Notes,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.equipment.Create(ctx, equipment); err != nil {
		return Equipment{}, err
	}
	return equipment, nil
}

// UpdateEquipmentInput carries the optional fields of an equipment edit.
type UpdateEquipmentInput struct {
	Status              *EquipmentStatus
	Notes               *string
	LastMaintenanceDate *time.Time
}

// UpdateEquipment merges status, notes, and maintenance date into an
// existing record.
func (s *CatalogService) UpdateEquipment(ctx context.Context, id string, input UpdateEquipmentInput) (Equipment, error) {
	equipment, err := s.equipment.Get(ctx, id)
	if err != nil {
		return Equipment{}, err
	}
	if equipment == nil {
		return Equipment{}, ErrEquipmentNotFound
	}

	if input.Status != nil {
		if !input.Status.Valid() {
			return Equipment{}, errors.New("unknown equipment status")
		}
		equipment.Status = *input.Status
	}
	if input.Notes != nil {
		equipment.Notes = *input.Notes
	}
	if input.LastMaintenanceDate != nil {
		equipment.LastMaintenanceDate = input.LastMaintenanceDate
	}
	equipment.UpdatedAt = s.now()

	if err := s.equipment.Update(ctx, *equipment); err != nil {
		return Equipment{}, err
	}
	return *equipment, nil
}
