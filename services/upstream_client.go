package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/goal"
	"mindmetrics/internal/session"
	"mindmetrics/internal/weather"
)

// UpstreamClient talks to the remote REST API that owns logs and goals.
// The caller's bearer token is forwarded on every request.
type UpstreamClient struct {
	baseURL string
	http    *http.Client
	log     *zap.Logger
}

func NewUpstreamClient(baseURL string, timeout time.Duration, log *zap.Logger) *UpstreamClient {
	return &UpstreamClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

func (c *UpstreamClient) ListLogs(ctx context.Context, p session.Principal) ([]dailylog.DailyLog, error) {
	var logs []dailylog.DailyLog
	if err := c.do(ctx, http.MethodGet, "/dailylogs", p.Token, nil, &logs); err != nil {
		return nil, fmt.Errorf("list daily logs: %w", err)
	}
	return logs, nil
}

func (c *UpstreamClient) GetLog(ctx context.Context, p session.Principal, id string) (*dailylog.DailyLog, error) {
	var l dailylog.DailyLog
	if err := c.do(ctx, http.MethodGet, "/dailylogs/"+url.PathEscape(id), p.Token, nil, &l); err != nil {
		return nil, fmt.Errorf("get daily log: %w", err)
	}
	return &l, nil
}

func (c *UpstreamClient) CreateLog(ctx context.Context, p session.Principal, in *dailylog.Input) (*dailylog.DailyLog, error) {
	var l dailylog.DailyLog
	if err := c.do(ctx, http.MethodPost, "/dailylogs", p.Token, in, &l); err != nil {
		return nil, fmt.Errorf("create daily log: %w", err)
	}
	return &l, nil
}

func (c *UpstreamClient) UpdateLog(ctx context.Context, p session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error) {
	var l dailylog.DailyLog
	if err := c.do(ctx, http.MethodPut, "/dailylogs/"+url.PathEscape(id), p.Token, in, &l); err != nil {
		return nil, fmt.Errorf("update daily log: %w", err)
	}
	return &l, nil
}

func (c *UpstreamClient) DeleteLog(ctx context.Context, p session.Principal, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/dailylogs/"+url.PathEscape(id), p.Token, nil, nil); err != nil {
		return fmt.Errorf("delete daily log: %w", err)
	}
	return nil
}

func (c *UpstreamClient) ListGoals(ctx context.Context, p session.Principal) ([]goal.Goal, error) {
	var goals []goal.Goal
	if err := c.do(ctx, http.MethodGet, "/goals", p.Token, nil, &goals); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return goals, nil
}

func (c *UpstreamClient) GetGoal(ctx context.Context, p session.Principal, id string) (*goal.Goal, error) {
	var g goal.Goal
	if err := c.do(ctx, http.MethodGet, "/goals/"+url.PathEscape(id), p.Token, nil, &g); err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return &g, nil
}

func (c *UpstreamClient) CreateGoal(ctx context.Context, p session.Principal, in *goal.Input) (*goal.Goal, error) {
	var g goal.Goal
	if err := c.do(ctx, http.MethodPost, "/goals", p.Token, in, &g); err != nil {
		return nil, fmt.Errorf("create goal: %w", err)
	}
	return &g, nil
}

func (c *UpstreamClient) UpdateGoal(ctx context.Context, p session.Principal, id string, in *goal.Input) (*goal.Goal, error) {
	var g goal.Goal
	if err := c.do(ctx, http.MethodPut, "/goals/"+url.PathEscape(id), p.Token, in, &g); err != nil {
		return nil, fmt.Errorf("update goal: %w", err)
	}
	return &g, nil
}

func (c *UpstreamClient) DeleteGoal(ctx context.Context, p session.Principal, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/goals/"+url.PathEscape(id), p.Token, nil, nil); err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return nil
}

// LatestContext asks the upstream for the user's latest log and its weather.
func (c *UpstreamClient) LatestContext(ctx context.Context, p session.Principal) (*weather.LatestContext, error) {
	var lc weather.LatestContext
	path := "/users/" + url.PathEscape(p.UserID) + "/latest-context"
	if err := c.do(ctx, http.MethodGet, path, p.Token, nil, &lc); err != nil {
		return nil, fmt.Errorf("latest context: %w", err)
	}
	return &lc, nil
}

func (c *UpstreamClient) do(ctx context.Context, method, path, token string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		upstreamDuration.WithLabelValues(method, "error").Observe(time.Since(start).Seconds())
		return err
	}
	defer resp.Body.Close()
	upstreamDuration.WithLabelValues(method, strconv.Itoa(resp.StatusCode)).Observe(time.Since(start).Seconds())

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	data, ok := safeJSON(raw)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.log.Debug("upstream request failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode))
		return &apperror.UpstreamError{Status: resp.StatusCode, Message: apperror.UpstreamMessage(resp.StatusCode, data)}
	}
	if !ok {
		return &apperror.UpstreamError{Status: resp.StatusCode, Message: apperror.UpstreamMessage(resp.StatusCode, data)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// safeJSON decodes a response body for error reporting. A body that is not
// JSON comes back as {"err": <text>} with ok false.
func safeJSON(raw []byte) (body map[string]any, ok bool) {
	if len(raw) == 0 {
		return map[string]any{}, true
	}
	if !json.Valid(raw) {
		msg := strings.TrimSpace(string(raw))
		if msg == "" {
			msg = apperror.InvalidJSONMessage
		}
		return map[string]any{"err": msg}, false
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		// valid JSON that is not an object, e.g. a list
		return map[string]any{}, true
	}
	return obj, true
}
