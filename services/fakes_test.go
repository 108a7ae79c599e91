package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
	"mindmetrics/internal/weather"
)

var alice = session.Principal{UserID: "user-alice", Token: "token-alice"}

func f64(v float64) *float64 { return &v }

func may(d int) calendar.Date {
	return calendar.NewDate(2024, time.May, d)
}

func logOn(d, stress, focus int) dailylog.DailyLog {
	return dailylog.DailyLog{
		ID:          fmt.Sprintf("log-%d", d),
		UserID:      dailylog.OwnerID(alice.UserID),
		Date:        may(d),
		Mood:        dailylog.MoodHappy,
		StressLevel: stress,
		FocusLevel:  focus,
	}
}

// fakeLogStore is an in-memory LogStore. onList runs before every ListLogs.
type fakeLogStore struct {
	mu      sync.Mutex
	logs    []dailylog.DailyLog
	listErr error
	onList  func(ctx context.Context)
	created []dailylog.Input
	nextID  int
}

func (f *fakeLogStore) ListLogs(ctx context.Context, _ session.Principal) ([]dailylog.DailyLog, error) {
	if f.onList != nil {
		f.onList(ctx)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]dailylog.DailyLog, len(f.logs))
	copy(out, f.logs)
	return out, nil
}

func (f *fakeLogStore) GetLog(_ context.Context, _ session.Principal, id string) (*dailylog.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.logs {
		if f.logs[i].ID == id {
			l := f.logs[i]
			return &l, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeLogStore) CreateLog(_ context.Context, p session.Principal, in *dailylog.Input) (*dailylog.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	l := dailylog.DailyLog{ID: fmt.Sprintf("new-%d", f.nextID), UserID: dailylog.OwnerID(p.UserID)}
	in.Apply(&l)
	f.logs = append(f.logs, l)
	f.created = append(f.created, *in)
	return &l, nil
}

func (f *fakeLogStore) UpdateLog(_ context.Context, _ session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.logs {
		if f.logs[i].ID == id {
			in.Apply(&f.logs[i])
			l := f.logs[i]
			return &l, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeLogStore) DeleteLog(_ context.Context, _ session.Principal, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.logs {
		if f.logs[i].ID == id {
			f.logs = append(f.logs[:i], f.logs[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

type fakeGoalStore struct {
	mu      sync.Mutex
	goals   []goal.Goal
	listErr error
	created []goal.Input
}

func (f *fakeGoalStore) ListGoals(context.Context, session.Principal) ([]goal.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]goal.Goal, len(f.goals))
	copy(out, f.goals)
	return out, nil
}

func (f *fakeGoalStore) GetGoal(_ context.Context, _ session.Principal, id string) (*goal.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == id {
			g := f.goals[i]
			return &g, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeGoalStore) CreateGoal(_ context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	g := goal.Goal{ID: fmt.Sprintf("goal-%d", len(f.goals)+1), UserID: dailylog.OwnerID(p.UserID)}
	in.Apply(&g)
	f.goals = append(f.goals, g)
	f.created = append(f.created, *in)
	return &g, nil
}

func (f *fakeGoalStore) UpdateGoal(_ context.Context, _ session.Principal, id string, in *goal.Input) (*goal.Goal, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == id {
			in.Apply(&f.goals[i])
			g := f.goals[i]
			return &g, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (f *fakeGoalStore) DeleteGoal(_ context.Context, _ session.Principal, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.goals {
		if f.goals[i].ID == id {
			f.goals = append(f.goals[:i], f.goals[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

type fakeContext struct {
	lc  *weather.LatestContext
	err error
	// wait, when set, is called before answering
	wait func(ctx context.Context) error
}

func (f *fakeContext) LatestContext(ctx context.Context, _ session.Principal) (*weather.LatestContext, error) {
	if f.wait != nil {
		if err := f.wait(ctx); err != nil {
			return nil, err
		}
	}
	return f.lc, f.err
}

type fakeWeather struct {
	current *weather.Current
	err     error
	asked   []string
}

func (f *fakeWeather) Current(_ context.Context, location string) (*weather.Current, error) {
	f.asked = append(f.asked, location)
	return f.current, f.err
}
