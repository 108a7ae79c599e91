package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/insights"
	"mindmetrics/internal/session"
	"mindmetrics/internal/weather"
)

// DashboardService fetches a user's logs, goals and latest context and runs
// them through the insights pipeline.
type DashboardService struct {
	logs           LogStore
	goals          GoalStore
	latest         ContextProvider
	guard          *FetchGuard
	rules          insights.Rules
	pick           insights.Picker
	contextTimeout time.Duration
	log            *zap.Logger
}

// DefaultContextTimeout bounds the latest-context fetch of one dashboard load.
const DefaultContextTimeout = 3 * time.Second

type DashboardOption func(*DashboardService)

// WithRules replaces the default rule tables.
func WithRules(r insights.Rules) DashboardOption {
	return func(s *DashboardService) { s.rules = r }
}

// WithPicker replaces the random weather message picker.
func WithPicker(p insights.Picker) DashboardOption {
	return func(s *DashboardService) { s.pick = p }
}

// WithContextTimeout bounds how long a load waits for the latest context.
// Non-positive values keep the default.
func WithContextTimeout(d time.Duration) DashboardOption {
	return func(s *DashboardService) {
		if d > 0 {
			s.contextTimeout = d
		}
	}
}

// NewDashboardService wires the collaborators. latest may be nil, in which
// case the dashboard never carries weather.
func NewDashboardService(logs LogStore, goals GoalStore, latest ContextProvider, guard *FetchGuard, log *zap.Logger, opts ...DashboardOption) *DashboardService {
	s := &DashboardService{
		logs:           logs,
		goals:          goals,
		latest:         latest,
		guard:          guard,
		rules:          insights.DefaultRules(),
		pick:           insights.RandomPicker,
		contextTimeout: DefaultContextTimeout,
		log:            log,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *DashboardService) Rules() insights.Rules {
	return s.rules
}

// Load builds the dashboard for period. Failed log or goal fetches count as
// empty data. A failed or slow context fetch leaves the weather slice empty,
// even when ctx ends while the fetch is still running. If a
// newer load for the same user starts, or the user signs out, before this one
// finishes, Load returns apperror.ErrStale and no result.
func (s *DashboardService) Load(ctx context.Context, p session.Principal, period int) (*insights.Result, error) {
	if !insights.ValidPeriod(period) {
		return nil, fmt.Errorf("%w: %d", apperror.ErrInvalidPeriod, period)
	}

	ticket := s.guard.Begin(p.UserID)
	defer s.guard.Finish(ticket)

	weatherCh := make(chan *weather.LatestContext, 1)
	go func() {
		weatherCh <- s.fetchLatest(ctx, p)
	}()

	var (
		logs  []dailylog.DailyLog
		goals []goal.Goal
	)
	var g errgroup.Group
	g.Go(func() error {
		res, err := s.logs.ListLogs(ctx, p)
		if err != nil {
			s.log.Warn("dashboard: fetch logs failed", zap.String("user_id", p.UserID), zap.Error(err))
			return nil
		}
		logs = res
		return nil
	})
	g.Go(func() error {
		res, err := s.goals.ListGoals(ctx, p)
		if err != nil {
			s.log.Warn("dashboard: fetch goals failed", zap.String("user_id", p.UserID), zap.Error(err))
			return nil
		}
		goals = res
		return nil
	})
	_ = g.Wait()

	if err := ctx.Err(); err != nil {
		dashboardBuilds.WithLabelValues("canceled").Inc()
		return nil, err
	}
	if !s.guard.Valid(ticket) {
		dashboardBuilds.WithLabelValues("stale").Inc()
		return nil, apperror.ErrStale
	}

	res := insights.Build(insights.Input{
		Logs:   logs,
		Goals:  goals,
		Period: period,
		Rules:  s.rules,
	})
	if res.DroppedGoals > 0 {
		goalsDropped.Add(float64(res.DroppedGoals))
		s.log.Debug("dashboard: goals with unknown metric skipped",
			zap.String("user_id", p.UserID),
			zap.Int("count", res.DroppedGoals))
	}

	select {
	case latest := <-weatherCh:
		insights.AttachWeather(&res, latest, s.rules, s.pick)
	case <-ctx.Done():
		s.log.Info("dashboard: built without weather",
			zap.String("user_id", p.UserID),
			zap.Error(ctx.Err()))
	}

	if !s.guard.Valid(ticket) {
		dashboardBuilds.WithLabelValues("stale").Inc()
		return nil, apperror.ErrStale
	}

	if res.NoData {
		dashboardBuilds.WithLabelValues("no_data").Inc()
	} else {
		dashboardBuilds.WithLabelValues("ok").Inc()
	}
	return &res, nil
}

// SignOut discards every in-flight dashboard load of the user.
func (s *DashboardService) SignOut(userID string) {
	s.guard.Invalidate(userID)
}

func (s *DashboardService) fetchLatest(ctx context.Context, p session.Principal) *weather.LatestContext {
	if s.latest == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.contextTimeout)
	defer cancel()

	lc, err := s.latest.LatestContext(ctx, p)
	if err != nil {
		s.log.Info("dashboard: latest context unavailable", zap.String("user_id", p.UserID), zap.Error(err))
		return nil
	}
	return lc
}
