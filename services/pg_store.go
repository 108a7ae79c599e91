package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS daily_logs (
	id             UUID PRIMARY KEY,
	user_id        TEXT NOT NULL,
	date           DATE NOT NULL,
	mood           TEXT NOT NULL,
	stress_level   INT NOT NULL,
	focus_level    INT NOT NULL,
	sleep_hours    DOUBLE PRECISION,
	exercise_min   DOUBLE PRECISION,
	meditation_min DOUBLE PRECISION,
	water_cups     DOUBLE PRECISION,
	diet_score     DOUBLE PRECISION,
	screen_hours   DOUBLE PRECISION,
	work_hours     DOUBLE PRECISION,
	hobby_min      DOUBLE PRECISION,
	location       TEXT NOT NULL DEFAULT '',
	weather        TEXT NOT NULL DEFAULT '',
	notes          TEXT NOT NULL DEFAULT '',
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_daily_logs_user_date ON daily_logs (user_id, date DESC);

CREATE TABLE IF NOT EXISTS goals (
	id            UUID PRIMARY KEY,
	user_id       TEXT NOT NULL,
	title         TEXT NOT NULL,
	description   TEXT NOT NULL,
	target_metric TEXT NOT NULL,
	target_value  DOUBLE PRECISION NOT NULL,
	start_date    DATE NOT NULL,
	end_date      DATE NOT NULL,
	status        TEXT NOT NULL,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_goals_user ON goals (user_id);
`

// EnsureSchema creates the tables used by the postgres stores.
func EnsureSchema(ctx context.Context, db *pgxpool.Pool) error {
	if _, err := db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

const logColumns = `id, user_id, date, mood, stress_level, focus_level,
	sleep_hours, exercise_min, meditation_min, water_cups, diet_score,
	screen_hours, work_hours, hobby_min, location, weather, notes, created_at, updated_at`

// PGLogStore keeps daily logs in postgres.
type PGLogStore struct {
	db *pgxpool.Pool
}

func NewPGLogStore(db *pgxpool.Pool) *PGLogStore {
	return &PGLogStore{db: db}
}

func (s *PGLogStore) Ping(ctx context.Context) error {
	return s.db.Ping(ctx)
}

func scanLog(row pgx.Row) (*dailylog.DailyLog, error) {
	var (
		l      dailylog.DailyLog
		id     uuid.UUID
		userID string
		day    time.Time
		mood   string
	)
	err := row.Scan(
		&id, &userID, &day, &mood, &l.StressLevel, &l.FocusLevel,
		&l.SleepHours, &l.ExerciseMin, &l.MeditationMin, &l.WaterCups, &l.DietScore,
		&l.ScreenHours, &l.WorkHours, &l.HobbyMin, &l.Location, &l.Weather, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	l.ID = id.String()
	l.UserID = dailylog.OwnerID(userID)
	l.Date = calendar.FromTime(day)
	l.Mood = dailylog.Mood(mood)
	return &l, nil
}

func (s *PGLogStore) ListLogs(ctx context.Context, p session.Principal) ([]dailylog.DailyLog, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC`, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily logs: %w", err)
	}
	defer rows.Close()

	logs := []dailylog.DailyLog{}
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily log: %w", err)
		}
		logs = append(logs, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily logs: %w", err)
	}
	return logs, nil
}

func (s *PGLogStore) LatestLog(ctx context.Context, p session.Principal) (*dailylog.DailyLog, error) {
	l, err := scanLog(s.db.QueryRow(ctx, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE user_id = $1
		ORDER BY date DESC, created_at DESC
		LIMIT 1`, p.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get latest daily log: %w", err)
	}
	return l, nil
}

func (s *PGLogStore) GetLog(ctx context.Context, p session.Principal, id string) (*dailylog.DailyLog, error) {
	logID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	l, err := scanLog(s.db.QueryRow(ctx, `
		SELECT `+logColumns+`
		FROM daily_logs
		WHERE id = $1 AND user_id = $2`, logID, p.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get daily log: %w", err)
	}
	return l, nil
}

func (s *PGLogStore) CreateLog(ctx context.Context, p session.Principal, in *dailylog.Input) (*dailylog.DailyLog, error) {
	l, err := scanLog(s.db.QueryRow(ctx, `
		INSERT INTO daily_logs (id, user_id, date, mood, stress_level, focus_level,
			sleep_hours, exercise_min, meditation_min, water_cups, diet_score,
			screen_hours, work_hours, hobby_min, location, weather, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING `+logColumns,
		uuid.New(), p.UserID, in.Date.Time, string(in.Mood), in.StressLevel, in.FocusLevel,
		in.SleepHours, in.ExerciseMin, in.MeditationMin, in.WaterCups, in.DietScore,
		in.ScreenHours, in.WorkHours, in.HobbyMin, in.Location, in.Weather, in.Notes,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert daily log: %w", err)
	}
	return l, nil
}

func (s *PGLogStore) UpdateLog(ctx context.Context, p session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error) {
	logID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	l, err := scanLog(s.db.QueryRow(ctx, `
		UPDATE daily_logs SET
			date = $3, mood = $4, stress_level = $5, focus_level = $6,
			sleep_hours = $7, exercise_min = $8, meditation_min = $9, water_cups = $10,
			diet_score = $11, screen_hours = $12, work_hours = $13, hobby_min = $14,
			location = $15, weather = $16, notes = $17, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING `+logColumns,
		logID, p.UserID, in.Date.Time, string(in.Mood), in.StressLevel, in.FocusLevel,
		in.SleepHours, in.ExerciseMin, in.MeditationMin, in.WaterCups, in.DietScore,
		in.ScreenHours, in.WorkHours, in.HobbyMin, in.Location, in.Weather, in.Notes,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update daily log: %w", err)
	}
	return l, nil
}

func (s *PGLogStore) DeleteLog(ctx context.Context, p session.Principal, id string) error {
	logID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM daily_logs WHERE id = $1 AND user_id = $2`, logID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete daily log: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}

const goalColumns = `id, user_id, title, description, target_metric, target_value,
	start_date, end_date, status, created_at`

// PGGoalStore keeps goals in postgres.
type PGGoalStore struct {
	db *pgxpool.Pool
}

func NewPGGoalStore(db *pgxpool.Pool) *PGGoalStore {
	return &PGGoalStore{db: db}
}

func scanGoal(row pgx.Row) (*goal.Goal, error) {
	var (
		g          goal.Goal
		id         uuid.UUID
		userID     string
		start, end time.Time
		status     string
	)
	err := row.Scan(&id, &userID, &g.Title, &g.Description, &g.TargetMetric, &g.TargetValue,
		&start, &end, &status, &g.CreatedAt)
	if err != nil {
		return nil, err
	}
	g.ID = id.String()
	g.UserID = dailylog.OwnerID(userID)
	g.StartDate = calendar.FromTime(start)
	g.EndDate = calendar.FromTime(end)
	g.Status = goal.Status(status)
	return &g, nil
}

func (s *PGGoalStore) ListGoals(ctx context.Context, p session.Principal) ([]goal.Goal, error) {
	rows, err := s.db.Query(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE user_id = $1
		ORDER BY created_at ASC`, p.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goals: %w", err)
	}
	defer rows.Close()

	goals := []goal.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal: %w", err)
		}
		goals = append(goals, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goals: %w", err)
	}
	return goals, nil
}

func (s *PGGoalStore) GetGoal(ctx context.Context, p session.Principal, id string) (*goal.Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	g, err := scanGoal(s.db.QueryRow(ctx, `
		SELECT `+goalColumns+`
		FROM goals
		WHERE id = $1 AND user_id = $2`, goalID, p.UserID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	return g, nil
}

func (s *PGGoalStore) CreateGoal(ctx context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error) {
	g, err := scanGoal(s.db.QueryRow(ctx, `
		INSERT INTO goals (id, user_id, title, description, target_metric, target_value,
			start_date, end_date, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING `+goalColumns,
		uuid.New(), p.UserID, in.Title, in.Description, in.TargetMetric, in.TargetValue,
		in.StartDate.Time, in.EndDate.Time, string(in.Status),
	))
	if err != nil {
		return nil, fmt.Errorf("failed to insert goal: %w", err)
	}
	return g, nil
}

func (s *PGGoalStore) UpdateGoal(ctx context.Context, p session.Principal, id string, in *goal.Input) (*goal.Goal, error) {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return nil, apperror.ErrNotFound
	}

	g, err := scanGoal(s.db.QueryRow(ctx, `
		UPDATE goals SET
			title = $3, description = $4, target_metric = $5, target_value = $6,
			start_date = $7, end_date = $8, status = $9
		WHERE id = $1 AND user_id = $2
		RETURNING `+goalColumns,
		goalID, p.UserID, in.Title, in.Description, in.TargetMetric, in.TargetValue,
		in.StartDate.Time, in.EndDate.Time, string(in.Status),
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.ErrNotFound
		}
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return g, nil
}

func (s *PGGoalStore) DeleteGoal(ctx context.Context, p session.Principal, id string) error {
	goalID, err := uuid.Parse(id)
	if err != nil {
		return apperror.ErrNotFound
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM goals WHERE id = $1 AND user_id = $2`, goalID, p.UserID)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.ErrNotFound
	}
	return nil
}
