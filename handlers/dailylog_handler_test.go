package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/session"
)

func validLog(date string) map[string]interface{} {
	return map[string]interface{}{
		"date":        date,
		"mood":        "Happy",
		"stressLevel": 2,
		"focusLevel":  4,
		"exerciseMin": 30,
		"waterCups":   6,
		"location":    "Lisbon",
	}
}

func TestCreateLog(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, alice, http.MethodPost, "/api/v1/dailylogs", validLog("2024-05-10"))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var first dailylog.CreateResponse
	decodeBody(t, rec, &first)
	require.NotNil(t, first.Log)
	assert.Equal(t, may(10), first.Log.Date)
	assert.Equal(t, dailylog.OwnerID(alice.UserID), first.Log.UserID)
	assert.Empty(t, first.Warning)

	// same day again is accepted with a warning
	rec = s.do(t, alice, http.MethodPost, "/api/v1/dailylogs", validLog("2024-05-10T18:30:00Z"))
	require.Equal(t, http.StatusCreated, rec.Code)
	var second dailylog.CreateResponse
	decodeBody(t, rec, &second)
	assert.Equal(t, dailylog.DuplicateDayWarning, second.Warning)

	rec = s.do(t, alice, http.MethodGet, "/api/v1/dailylogs", nil)
	var logs []dailylog.DailyLog
	decodeBody(t, rec, &logs)
	assert.Len(t, logs, 2)
}

func TestCreateLog_Validation(t *testing.T) {
	s := newTestServer(t)

	tests := []struct {
		name      string
		mutate    func(map[string]interface{})
		wantField string
	}{
		{name: "missing date", mutate: func(m map[string]interface{}) { delete(m, "date") }, wantField: "date"},
		{name: "unknown mood", mutate: func(m map[string]interface{}) { m["mood"] = "Bored" }, wantField: "mood"},
		{name: "stress out of range", mutate: func(m map[string]interface{}) { m["stressLevel"] = 6 }, wantField: "stressLevel"},
		{name: "focus missing", mutate: func(m map[string]interface{}) { delete(m, "focusLevel") }, wantField: "focusLevel"},
		{name: "exercise off step", mutate: func(m map[string]interface{}) { m["exerciseMin"] = 32 }, wantField: "exerciseMin"},
		{name: "meditation too long", mutate: func(m map[string]interface{}) { m["meditationMin"] = 125 }, wantField: "meditationMin"},
		{name: "negative water", mutate: func(m map[string]interface{}) { m["waterCups"] = -1 }, wantField: "waterCups"},
		{name: "sleep over a day", mutate: func(m map[string]interface{}) { m["sleepHours"] = 25 }, wantField: "sleepHours"},
		{name: "diet score zero", mutate: func(m map[string]interface{}) { m["dietScore"] = 0 }, wantField: "dietScore"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := validLog("2024-05-10")
			tt.mutate(body)

			rec := s.do(t, alice, http.MethodPost, "/api/v1/dailylogs", body)
			require.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())

			var resp struct {
				Error  string              `json:"error"`
				Fields []map[string]string `json:"fields"`
			}
			decodeBody(t, rec, &resp)
			assert.Equal(t, "Validation failed", resp.Error)
			require.Len(t, resp.Fields, 1)
			assert.Contains(t, resp.Fields[0], tt.wantField)
		})
	}
}

func TestCreateLog_BadJSON(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, alice, http.MethodPost, "/api/v1/dailylogs", `{"date": `)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = s.do(t, alice, http.MethodPost, "/api/v1/dailylogs", `{"date": "yesterday", "mood": "Happy"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDailyLogCRUD(t *testing.T) {
	s := newTestServer(t)
	s.store.addLog(alice.UserID, 1, 3, 3, nil)
	id := s.store.logs[alice.UserID][0].ID

	rec := s.do(t, alice, http.MethodGet, "/api/v1/dailylogs/"+id, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	update := validLog("2024-05-01")
	update["notes"] = "long day"
	rec = s.do(t, alice, http.MethodPut, "/api/v1/dailylogs/"+id, update)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var updated dailylog.DailyLog
	decodeBody(t, rec, &updated)
	assert.Equal(t, "long day", updated.Notes)

	bob := session.Principal{UserID: "user-bob", Token: "token-bob"}
	rec = s.do(t, bob, http.MethodGet, "/api/v1/dailylogs/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code, "logs are scoped to their owner")

	rec = s.do(t, alice, http.MethodDelete, "/api/v1/dailylogs/"+id, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	rec = s.do(t, alice, http.MethodDelete, "/api/v1/dailylogs/"+id, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetToday_NotFound(t *testing.T) {
	s := newTestServer(t)
	s.store.addLog(alice.UserID, 1, 3, 3, nil)

	rec := s.do(t, alice, http.MethodGet, "/api/v1/dailylogs/today", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
