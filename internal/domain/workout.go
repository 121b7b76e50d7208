package domain

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
)

// historyLimit bounds the history read to the most recent logs.
const historyLimit = 20

// WorkoutSet is one performed set of an exercise.
type WorkoutSet struct {
	Reps   int     `json:"reps"`
	Weight float64 `json:"weight"`
}

// WorkoutEntry groups the sets performed for one exercise within a log.
// The exercise reference is deliberately not validated against the
// catalog at append time; the original system kept this coupling loose.
type WorkoutEntry struct {
	ExerciseID string       `json:"exercise_id"`
	Sets       []WorkoutSet `json:"sets"`
}

// WorkoutLog is one immutable logged session.
type WorkoutLog struct {
	ID          string         `json:"id"`
	MemberID    string         `json:"member_id"`
	LoggedAt    time.Time      `json:"logged_at"`
	DurationMin int            `json:"duration_min"`
	Entries     []WorkoutEntry `json:"entries"`
	Notes       string         `json:"notes,omitempty"`
}

// ProgressPoint is one day of a strength-progress series.
type ProgressPoint struct {
	Date      string  `json:"date"`
	MaxWeight float64 `json:"max_weight"`
}

// ProgressSeries is the chart payload for one exercise and member.
type ProgressSeries struct {
	ExerciseName string          `json:"exercise_name"`
	Points       []ProgressPoint `json:"data"`
}

// WorkoutRepository captures workout log persistence.
type WorkoutRepository interface {
	Create(ctx context.Context, log WorkoutLog) error
	// ListByMember returns logs newest first, capped at limit.
	ListByMember(ctx context.Context, memberID string, limit int) ([]WorkoutLog, error)
	// ListByMemberWithExercise returns the member's logs that contain at
	// least one entry referencing the exercise.
	ListByMemberWithExercise(ctx context.Context, memberID, exerciseID string) ([]WorkoutLog, error)
}

// WorkoutService appends logs and computes progress series.
type WorkoutService struct {
	workouts  WorkoutRepository
	exercises ExerciseRepository
	now       func() time.Time
}

// NewWorkoutService constructs a WorkoutService.
func NewWorkoutService(workouts WorkoutRepository, exercises ExerciseRepository) *WorkoutService {
	return &WorkoutService{
		workouts:  workouts,
		exercises: exercises,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// AppendLogInput captures a session to record.
type AppendLogInput struct {
	MemberID    string
	DurationMin int
	Entries     []WorkoutEntry
	Notes       string
}

// AppendLog stores one immutable workout record. Sets without positive
// reps are stripped before storage; an entry with nothing left is
// dropped, and a log with no entries after filtering is rejected.
func (s *WorkoutService) AppendLog(ctx context.Context, input AppendLogInput) (WorkoutLog, error) {
	entries := filterEntries(input.Entries)
	if len(entries) == 0 {
		return WorkoutLog{}, ErrEmptyWorkout
	}

	log := WorkoutLog{
		ID:          uuid.NewString(),
		MemberID:    input.MemberID,
		LoggedAt:    s.now(),
		DurationMin: input.DurationMin,
		Entries:     entries,
		Notes:       input.Notes,
	}
	if err := s.workouts.Create(ctx, log); err != nil {
		return WorkoutLog{}, err
	}
	return log, nil
}

// History returns the member's most recent logs, newest first. The cap
// keeps the response bounded; older entries are out of reach by design.
func (s *WorkoutService) History(ctx context.Context, memberID string) ([]WorkoutLog, error) {
	return s.workouts.ListByMember(ctx, memberID, historyLimit)
}

// StrengthProgress builds the per-day peak-load series for one exercise.
func (s *WorkoutService) StrengthProgress(ctx context.Context, exerciseID, memberID string) (ProgressSeries, error) {
	exercise, err := s.exercises.Get(ctx, exerciseID)
	if err != nil {
		return ProgressSeries{}, err
	}
	if exercise == nil {
		return ProgressSeries{}, ErrExerciseNotFound
	}

	logs, err := s.workouts.ListByMemberWithExercise(ctx, memberID, exerciseID)
	if err != nil {
		return ProgressSeries{}, err
	}

	return ProgressSeries{
		ExerciseName: exercise.Name,
		Points:       BuildStrengthSeries(logs, exerciseID),
	}, nil
}

// BuildStrengthSeries flattens logs to entries matching the exercise,
// takes the peak weight per entry, collapses entries on the same
// calendar day to the day's maximum, and sorts ascending by date. Days
// without data produce no point; the series is sparse.
func BuildStrengthSeries(logs []WorkoutLog, exerciseID string) []ProgressPoint {
	byDay := make(map[string]float64)
	for _, log := range logs {
		day := log.LoggedAt.Format("2006-01-02")
		for _, entry := range log.Entries {
			if entry.ExerciseID != exerciseID || len(entry.Sets) == 0 {
				continue
			}
			peak := entry.Sets[0].Weight
			for _, set := range entry.Sets[1:] {
				if set.Weight > peak {
					peak = set.Weight
				}
			}
			if current, ok := byDay[day]; !ok || peak > current {
				byDay[day] = peak
			}
		}
	}

	points := make([]ProgressPoint, 0, len(byDay))
	for day, weight := range byDay {
		points = append(points, ProgressPoint{Date: day, MaxWeight: weight})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}

// filterEntries drops zero-rep sets and entries left without sets.
func filterEntries(entries []WorkoutEntry) []WorkoutEntry {
	out := make([]WorkoutEntry, 0, len(entries))
	for _, entry := range entries {
		sets := make([]WorkoutSet, 0, len(entry.Sets))
		for _, set := range entry.Sets {
			if set.Reps > 0 {
				sets = append(sets, set)
			}
		}
		if len(sets) == 0 {
			continue
		}
		out = append(out, WorkoutEntry{ExerciseID: entry.ExerciseID, Sets: sets})
	}
	return out
}
