package services

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
)

func setupTestDB(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := pgxpool.New(context.Background(), dbURL)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, EnsureSchema(context.Background(), db))
	return db
}

func TestPGLogStore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := NewPGLogStore(db)
	p := session.Principal{UserID: "pg-test-" + uuid.NewString()}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM daily_logs WHERE user_id = $1`, p.UserID)
	})

	require.NoError(t, store.Ping(ctx))

	none, err := store.LatestLog(ctx, p)
	require.NoError(t, err)
	assert.Nil(t, none)

	first, err := store.CreateLog(ctx, p, newLogInput(1))
	require.NoError(t, err)
	assert.Equal(t, may(1), first.Date)
	require.NotNil(t, first.WaterCups)
	assert.Nil(t, first.SleepHours)

	second, err := store.CreateLog(ctx, p, newLogInput(3))
	require.NoError(t, err)

	logs, err := store.ListLogs(ctx, p)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, second.ID, logs[0].ID, "newest date first")

	latest, err := store.LatestLog(ctx, p)
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID)

	in := newLogInput(3)
	in.Notes = "slept badly"
	updated, err := store.UpdateLog(ctx, p, second.ID, in)
	require.NoError(t, err)
	assert.Equal(t, "slept badly", updated.Notes)

	stranger := session.Principal{UserID: "someone-else"}
	_, err = store.GetLog(ctx, stranger, first.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
	_, err = store.GetLog(ctx, p, "not-a-uuid")
	assert.ErrorIs(t, err, apperror.ErrNotFound)

	require.NoError(t, store.DeleteLog(ctx, p, first.ID))
	assert.ErrorIs(t, store.DeleteLog(ctx, p, first.ID), apperror.ErrNotFound)
}

func TestPGGoalStore(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	store := NewPGGoalStore(db)
	p := session.Principal{UserID: "pg-test-" + uuid.NewString()}
	t.Cleanup(func() {
		_, _ = db.Exec(context.Background(), `DELETE FROM goals WHERE user_id = $1`, p.UserID)
	})

	in := (&goal.Input{
		Title:       "Sleep more",
		Description: "Eight hours",
		TargetValue: 8,
		StartDate:   may(1),
		EndDate:     may(31),
	}).WithDefaults()
	created, err := store.CreateGoal(ctx, p, &in)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusActive, created.Status)
	assert.Equal(t, may(31), created.EndDate)

	in.Status = goal.StatusCompleted
	updated, err := store.UpdateGoal(ctx, p, created.ID, &in)
	require.NoError(t, err)
	assert.Equal(t, goal.StatusCompleted, updated.Status)

	goals, err := store.ListGoals(ctx, p)
	require.NoError(t, err)
	require.Len(t, goals, 1)

	require.NoError(t, store.DeleteGoal(ctx, p, created.ID))
	_, err = store.GetGoal(ctx, p, created.ID)
	assert.ErrorIs(t, err, apperror.ErrNotFound)
}
