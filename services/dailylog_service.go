package services

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"mindmetrics/internal/apperror"
	"mindmetrics/internal/calendar"
	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/session"
)

type DailyLogService struct {
	store LogStore
	log   *zap.Logger
	now   func() time.Time
}

func NewDailyLogService(store LogStore, log *zap.Logger) *DailyLogService {
	return &DailyLogService{store: store, log: log, now: time.Now}
}

func (s *DailyLogService) List(ctx context.Context, p session.Principal) ([]dailylog.DailyLog, error) {
	logs, err := s.store.ListLogs(ctx, p)
	if err != nil {
		return nil, err
	}
	if logs == nil {
		logs = []dailylog.DailyLog{}
	}
	return logs, nil
}

func (s *DailyLogService) Get(ctx context.Context, p session.Principal, id string) (*dailylog.DailyLog, error) {
	return s.store.GetLog(ctx, p, id)
}

// Today returns the user's log for the current UTC date.
func (s *DailyLogService) Today(ctx context.Context, p session.Principal) (*dailylog.DailyLog, error) {
	logs, err := s.store.ListLogs(ctx, p)
	if err != nil {
		return nil, err
	}
	today := calendar.FromTime(s.now())
	if l := findOnDate(logs, today); l != nil {
		return l, nil
	}
	return nil, apperror.ErrNotFound
}

// Create stores a new log. A second log for the same date is accepted but
// comes back with a warning.
func (s *DailyLogService) Create(ctx context.Context, p session.Principal, in *dailylog.Input) (*dailylog.CreateResponse, error) {
	var warning string
	existing, err := s.store.ListLogs(ctx, p)
	if err != nil {
		s.log.Warn("duplicate day check skipped", zap.String("user_id", p.UserID), zap.Error(err))
	} else if findOnDate(existing, in.Date) != nil {
		warning = dailylog.DuplicateDayWarning
	}

	created, err := s.store.CreateLog(ctx, p, in)
	if err != nil {
		return nil, err
	}
	s.log.Info("daily log created",
		zap.String("user_id", p.UserID),
		zap.String("log_id", created.ID),
		zap.String("date", created.Date.String()))
	return &dailylog.CreateResponse{Log: created, Warning: warning}, nil
}

func (s *DailyLogService) Update(ctx context.Context, p session.Principal, id string, in *dailylog.Input) (*dailylog.DailyLog, error) {
	updated, err := s.store.UpdateLog(ctx, p, id, in)
	if err != nil {
		return nil, err
	}
	return updated, nil
}

func (s *DailyLogService) Delete(ctx context.Context, p session.Principal, id string) error {
	if err := s.store.DeleteLog(ctx, p, id); err != nil {
		return fmt.Errorf("delete log %s: %w", id, err)
	}
	return nil
}

func findOnDate(logs []dailylog.DailyLog, day calendar.Date) *dailylog.DailyLog {
	for i := range logs {
		if logs[i].Date.Equal(day) {
			return &logs[i]
		}
	}
	return nil
}
