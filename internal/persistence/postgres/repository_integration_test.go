//go:build integration

package postgres

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
	postgrescontainer "github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/yanab-1/GYMANIA/internal/domain"
)

func TestRepositoriesAgainstPostgres(t *testing.T) {
	ctx := context.Background()

	pg, err := postgrescontainer.RunContainer(ctx,
		postgrescontainer.WithDatabase("gym"),
		postgrescontainer.WithUsername("gym"),
		postgrescontainer.WithPassword("gym"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pg.Terminate(ctx) })

	connStr, err := pg.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	require.NoError(t, waitForDatabase(ctx, connStr))
	runMigrations(t, ctx, connStr)

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	t.Cleanup(func() { pool.Close() })

	t.Run("duplicate email", func(t *testing.T) {
		repo := NewUserRepository(pool)

		user := newTestUser("dup@example.com")
		require.NoError(t, repo.Create(ctx, user))

		other := newTestUser("dup@example.com")
		require.ErrorIs(t, repo.Create(ctx, other), domain.ErrEmailTaken)
	})

	t.Run("membership round trip", func(t *testing.T) {
		repo := NewUserRepository(pool)

		user := newTestUser("member@example.com")
		require.NoError(t, repo.Create(ctx, user))

		membership := domain.Membership{
			PlanID: uuid.NewString(),
			Start:  time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
			End:    time.Date(2026, time.January, 31, 0, 0, 0, 0, time.UTC),
			Status: domain.MembershipActive,
		}
		require.NoError(t, repo.UpdateMembership(ctx, user.ID, membership))

		stored, err := repo.Get(ctx, user.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Equal(t, membership.PlanID, stored.Membership.PlanID)
		require.Equal(t, domain.MembershipActive, stored.Membership.Status)
		require.True(t, membership.End.Equal(stored.Membership.End))
	})

	t.Run("same day attendance conflict", func(t *testing.T) {
		users := NewUserRepository(pool)
		repo := NewAttendanceRepository(pool)

		user := newTestUser("visitor@example.com")
		require.NoError(t, users.Create(ctx, user))

		first := domain.AttendanceRecord{
			ID:          uuid.NewString(),
			MemberID:    user.ID,
			CheckInTime: time.Date(2026, time.May, 4, 10, 0, 0, 0, time.UTC),
			ScannerID:   domain.DefaultScannerID,
		}
		require.NoError(t, repo.Create(ctx, first))

		// The day-scoped unique index rejects a second row even when
		// the service-level pre-check is bypassed.
		second := first
		second.ID = uuid.NewString()
		second.CheckInTime = first.CheckInTime.Add(2 * time.Hour)
		second.ScannerID = "SIDE_DOOR"
		require.ErrorIs(t, repo.Create(ctx, second), domain.ErrAlreadyCheckedIn)

		from, to := first.CheckInTime.Truncate(24*time.Hour), first.CheckInTime.Truncate(24*time.Hour).AddDate(0, 0, 1)
		found, err := repo.FindForMemberBetween(ctx, user.ID, from, to)
		require.NoError(t, err)
		require.NotNil(t, found)
		require.Equal(t, first.ID, found.ID)
	})

	t.Run("workout entries round trip and exercise filter", func(t *testing.T) {
		users := NewUserRepository(pool)
		repo := NewWorkoutRepository(pool)

		user := newTestUser("lifter@example.com")
		require.NoError(t, users.Create(ctx, user))

		benchLog := domain.WorkoutLog{
			ID:       uuid.NewString(),
			MemberID: user.ID,
			LoggedAt: time.Now().UTC(),
			Entries: []domain.WorkoutEntry{
				{ExerciseID: "bench", Sets: []domain.WorkoutSet{{Reps: 5, Weight: 80}}},
			},
		}
		squatLog := domain.WorkoutLog{
			ID:       uuid.NewString(),
			MemberID: user.ID,
			LoggedAt: time.Now().UTC().Add(time.Minute),
			Entries: []domain.WorkoutEntry{
				{ExerciseID: "squat", Sets: []domain.WorkoutSet{{Reps: 5, Weight: 100}}},
			},
		}
		require.NoError(t, repo.Create(ctx, benchLog))
		require.NoError(t, repo.Create(ctx, squatLog))

		history, err := repo.ListByMember(ctx, user.ID, 20)
		require.NoError(t, err)
		require.Len(t, history, 2)
		require.Equal(t, squatLog.ID, history[0].ID, "newest first")
		require.Equal(t, benchLog.Entries, history[1].Entries)

		filtered, err := repo.ListByMemberWithExercise(ctx, user.ID, "bench")
		require.NoError(t, err)
		require.Len(t, filtered, 1)
		require.Equal(t, benchLog.ID, filtered[0].ID)
	})

	t.Run("plan conflict and equipment identifier", func(t *testing.T) {
		plans := NewPlanRepository(pool)
		equipment := NewEquipmentRepository(pool)

		plan := domain.Plan{
			ID:           uuid.NewString(),
			Name:         "Monthly " + uuid.NewString(),
			Price:        29.99,
			DurationDays: 30,
			Description:  "One month of access",
			IsAvailable:  true,
			CreatedAt:    time.Now().UTC(),
			UpdatedAt:    time.Now().UTC(),
		}
		require.NoError(t, plans.Create(ctx, plan))

		missing, err := plans.Get(ctx, uuid.NewString())
		require.NoError(t, err)
		require.Nil(t, missing)

		item := domain.Equipment{
			ID:         uuid.NewString(),
			Name:       "Treadmill",
			Identifier: "Treadmill-" + uuid.NewString(),
			Status:     domain.EquipmentOperational,
			CreatedAt:  time.Now().UTC(),
			UpdatedAt:  time.Now().UTC(),
		}
		require.NoError(t, equipment.Create(ctx, item))

		dup := item
		dup.ID = uuid.NewString()
		require.ErrorIs(t, equipment.Create(ctx, dup), domain.ErrEquipmentExists)
	})
}

func newTestUser(email string) domain.User {
	now := time.Now().UTC()
	return domain.User{
		ID:           uuid.NewString(),
		Name:         "Test User",
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleMember,
		Membership:   domain.Membership{Status: domain.MembershipPending},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func runMigrations(t *testing.T, ctx context.Context, connStr string) {
	files := []string{
		"../../../db/postgres/migrations/0001_init.up.sql",
	}

	pool, err := pgxpool.New(ctx, connStr)
	require.NoError(t, err)
	defer pool.Close()

	for _, rel := range files {
		path := resolvePath(t, rel)
		contents, readErr := os.ReadFile(path)
		require.NoError(t, readErr)

		_, execErr := pool.Exec(ctx, string(contents))
		require.NoError(t, execErr)
	}
}

func resolvePath(t *testing.T, rel string) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	require.True(t, ok)
	return filepath.Join(filepath.Dir(file), rel)
}

func waitForDatabase(ctx context.Context, connStr string) error {
	deadline := time.Now().Add(30 * time.Second)
	for {
		pool, err := pgxpool.New(ctx, connStr)
		if err == nil {
			err = pool.Ping(ctx)
			pool.Close()
			if err == nil {
				return nil
			}
		}
		if time.Now().After(deadline) {
			return err
		}
		time.Sleep(time.Second)
	}
}
