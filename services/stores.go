package services

import (
	"context"

	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
	"mindmetrics/internal/weather"
)

// LogStore is where a user's daily logs live. Every call is scoped to the principal.
type LogStore interface {
	ListLogs(ctx context.Context, p session.Principal) ([]dailylog.DailyLog, error)
	GetLog(ctx context.Context, p session.Principal, id string) (*dailylog.DailyLog, error)
	CreateLog(ctx context.Context, p session.Principal, in *dailylog.Input) (*dailylog.DailyLog, error)
	UpdateLog(ctx context.Context, p session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error)
	DeleteLog(ctx context.Context, p session.Principal, id string) error
}

// LatestLogStore is implemented by log stores that can fetch the newest log
// without listing them all. A user without logs gives (nil, nil).
type LatestLogStore interface {
	LatestLog(ctx context.Context, p session.Principal) (*dailylog.DailyLog, error)
}

type GoalStore interface {
	ListGoals(ctx context.Context, p session.Principal) ([]goal.Goal, error)
	GetGoal(ctx context.Context, p session.Principal, id string) (*goal.Goal, error)
	CreateGoal(ctx context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error)
	UpdateGoal(ctx context.Context, p session.Principal, id string, in *goal.Input) (*goal.Goal, error)
	DeleteGoal(ctx context.Context, p session.Principal, id string) error
}

// ContextProvider returns the user's latest log and the weather where it was written.
type ContextProvider interface {
	LatestContext(ctx context.Context, p session.Principal) (*weather.LatestContext, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
