package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
)

func TestGetDashboard(t *testing.T) {
	s := newTestServer(t)
	s.store.addLog(alice.UserID, 1, 2, 3, f64(7))
	s.store.addLog(alice.UserID, 3, 5, 1, nil)
	s.store.addLog(alice.UserID, 2, 4, 3, f64(7.4))
	s.store.goals[alice.UserID] = []goal.Goal{{
		ID: "g1", Title: "Hydrate", TargetMetric: "Water Cups", TargetValue: 6,
		StartDate: may(1), EndDate: may(31), Status: goal.StatusActive,
	}}

	rec := s.do(t, alice, http.MethodGet, "/api/v1/dashboard?period=3", nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Period           int    `json:"period"`
		NoData           bool   `json:"noData"`
		StressAvgDisplay string `json:"stressAvgDisplay"`
		ChartSeries      []struct {
			Date   string `json:"date"`
			Stress int    `json:"stress"`
		} `json:"chartSeries"`
		EvaluatedGoals []struct {
			ID    string   `json:"_id"`
			Value *float64 `json:"value"`
			Met   *bool    `json:"met"`
		} `json:"evaluatedGoals"`
		Recommendations []string `json:"recommendations"`
		WeatherMessage  *string  `json:"weatherMessage"`
	}
	decodeBody(t, rec, &body)

	assert.Equal(t, 3, body.Period)
	assert.False(t, body.NoData)
	assert.Equal(t, "3.7", body.StressAvgDisplay)
	require.Len(t, body.ChartSeries, 3)
	assert.Equal(t, "05/01/2024", body.ChartSeries[0].Date)
	assert.Equal(t, "05/03/2024", body.ChartSeries[2].Date)
	require.Len(t, body.EvaluatedGoals, 1)
	assert.Equal(t, 7.2, *body.EvaluatedGoals[0].Value)
	assert.True(t, *body.EvaluatedGoals[0].Met)
	assert.NotEmpty(t, body.Recommendations)
	assert.Nil(t, body.WeatherMessage)
}

func TestGetDashboard_DefaultPeriodAndNoData(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, alice, http.MethodGet, "/api/v1/dashboard", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	decodeBody(t, rec, &body)
	assert.Equal(t, true, body["noData"])
	assert.EqualValues(t, 7, body["period"])
	assert.EqualValues(t, 0, body["stressAvg"])
	assert.Equal(t, []interface{}{}, body["chartSeries"])
	assert.Nil(t, body["weatherMessage"])
}

func TestGetDashboard_BadRequests(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name       string
		p          session.Principal
		path       string
		wantStatus int
	}{
		{name: "period not offered", p: alice, path: "/api/v1/dashboard?period=5", wantStatus: http.StatusBadRequest},
		{name: "period not a number", p: alice, path: "/api/v1/dashboard?period=week", wantStatus: http.StatusBadRequest},
		{name: "no principal", path: "/api/v1/dashboard", wantStatus: http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := s.do(t, tt.p, http.MethodGet, tt.path, nil)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			decodeBody(t, rec, &body)
			assert.NotEmpty(t, body["error"])
		})
	}
}

func TestSignOut(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, alice, http.MethodPost, "/api/v1/session/signout", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = s.do(t, session.Principal{}, http.MethodPost, "/api/v1/session/signout", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t)
	rec := s.do(t, session.Principal{}, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
