package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/insights"
	"mindmetrics/internal/session"
	"mindmetrics/services"
)

var alice = session.Principal{UserID: "user-alice", Token: "token-alice"}

// memStore keeps logs and goals per user in memory.
type memStore struct {
	mu    sync.Mutex
	seq   int
	logs  map[string][]dailylog.DailyLog
	goals map[string][]goal.Goal
}

func newMemStore() *memStore {
	return &memStore{
		logs:  map[string][]dailylog.DailyLog{},
		goals: map[string][]goal.Goal{},
	}
}

func (m *memStore) nextID(prefix string) string {
	m.seq++
	return fmt.Sprintf("%s-%d", prefix, m.seq)
}

func (m *memStore) ListLogs(_ context.Context, p session.Principal) ([]dailylog.DailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]dailylog.DailyLog(nil), m.logs[p.UserID]...), nil
}

func (m *memStore) GetLog(_ context.Context, p session.Principal, id string) (*dailylog.DailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.logs[p.UserID] {
		if l.ID == id {
			return &l, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memStore) CreateLog(_ context.Context, p session.Principal, in *dailylog.Input) (*dailylog.DailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	l := dailylog.DailyLog{ID: m.nextID("log"), UserID: dailylog.OwnerID(p.UserID)}
	in.Apply(&l)
	m.logs[p.UserID] = append(m.logs[p.UserID], l)
	return &l, nil
}

func (m *memStore) UpdateLog(_ context.Context, p session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := m.logs[p.UserID]
	for i := range logs {
		if logs[i].ID == id {
			in.Apply(&logs[i])
			l := logs[i]
			return &l, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memStore) DeleteLog(_ context.Context, p session.Principal, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	logs := m.logs[p.UserID]
	for i := range logs {
		if logs[i].ID == id {
			m.logs[p.UserID] = append(logs[:i], logs[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

func (m *memStore) ListGoals(_ context.Context, p session.Principal) ([]goal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]goal.Goal(nil), m.goals[p.UserID]...), nil
}

func (m *memStore) GetGoal(_ context.Context, p session.Principal, id string) (*goal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, g := range m.goals[p.UserID] {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memStore) CreateGoal(_ context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	g := goal.Goal{ID: m.nextID("goal"), UserID: dailylog.OwnerID(p.UserID)}
	in.Apply(&g)
	m.goals[p.UserID] = append(m.goals[p.UserID], g)
	return &g, nil
}

func (m *memStore) UpdateGoal(_ context.Context, p session.Principal, id string, in *goal.Input) (*goal.Goal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	goals := m.goals[p.UserID]
	for i := range goals {
		if goals[i].ID == id {
			in.Apply(&goals[i])
			g := goals[i]
			return &g, nil
		}
	}
	return nil, apperror.ErrNotFound
}

func (m *memStore) DeleteGoal(_ context.Context, p session.Principal, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	goals := m.goals[p.UserID]
	for i := range goals {
		if goals[i].ID == id {
			m.goals[p.UserID] = append(goals[:i], goals[i+1:]...)
			return nil
		}
	}
	return apperror.ErrNotFound
}

func f64(v float64) *float64 { return &v }

func may(d int) calendar.Date {
	return calendar.NewDate(2024, time.May, d)
}

func (m *memStore) addLog(userID string, d, stress, focus int, water *float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.logs[userID] = append(m.logs[userID], dailylog.DailyLog{
		ID:          m.nextID("log"),
		UserID:      dailylog.OwnerID(userID),
		Date:        may(d),
		Mood:        dailylog.MoodCalm,
		StressLevel: stress,
		FocusLevel:  focus,
		WaterCups:   water,
	})
}

// testServer wires the handlers the way main does, minus auth: the
// principal is injected straight into the request context.
type testServer struct {
	store  *memStore
	router *mux.Router
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := zaptest.NewLogger(t)
	store := newMemStore()
	rules := insights.DefaultRules()
	validate, err := NewValidator(rules)
	require.NoError(t, err)

	dashboard := services.NewDashboardService(store, store, nil, services.NewFetchGuard(), log,
		services.WithPicker(insights.FirstPicker))
	dh := NewDashboardHandler(dashboard, 7, log)
	lh := NewDailyLogHandler(services.NewDailyLogService(store, log), validate, log)
	gh := NewGoalHandler(services.NewGoalService(store, log), validate, log)

	r := mux.NewRouter()
	r.HandleFunc("/health", NewHealthHandler(nil, log).Health).Methods(http.MethodGet)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/dashboard", dh.GetDashboard).Methods(http.MethodGet)
	api.HandleFunc("/session/signout", dh.SignOut).Methods(http.MethodPost)
	api.HandleFunc("/dailylogs", lh.ListLogs).Methods(http.MethodGet)
	api.HandleFunc("/dailylogs", lh.CreateLog).Methods(http.MethodPost)
	api.HandleFunc("/dailylogs/today", lh.GetToday).Methods(http.MethodGet)
	api.HandleFunc("/dailylogs/{id}", lh.GetLog).Methods(http.MethodGet)
	api.HandleFunc("/dailylogs/{id}", lh.UpdateLog).Methods(http.MethodPut)
	api.HandleFunc("/dailylogs/{id}", lh.DeleteLog).Methods(http.MethodDelete)
	api.HandleFunc("/goals", gh.ListGoals).Methods(http.MethodGet)
	api.HandleFunc("/goals", gh.CreateGoal).Methods(http.MethodPost)
	api.HandleFunc("/goals/{id}", gh.GetGoal).Methods(http.MethodGet)
	api.HandleFunc("/goals/{id}", gh.UpdateGoal).Methods(http.MethodPut)
	api.HandleFunc("/goals/{id}", gh.DeleteGoal).Methods(http.MethodDelete)

	return &testServer{store: store, router: r}
}

// do sends a request as p; an empty p sends it unauthenticated.
func (s *testServer) do(t *testing.T, p session.Principal, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if p.UserID != "" {
		req = req.WithContext(session.WithPrincipal(req.Context(), p))
	}
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}
