package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"mindmetrics/internal/dailylog"
	"mindmetrics/internal/session"
	"mindmetrics/internal/weather"
)

// WeatherSource looks up the current weather for a free-text location.
type WeatherSource interface {
	Current(ctx context.Context, location string) (*weather.Current, error)
}

// LocalContextProvider builds the latest context from the log store and a
// weather API, for deployments without the upstream context endpoint.
type LocalContextProvider struct {
	logs    LogStore
	weather WeatherSource
	log     *zap.Logger
}

func NewLocalContextProvider(logs LogStore, ws WeatherSource, log *zap.Logger) *LocalContextProvider {
	return &LocalContextProvider{logs: logs, weather: ws, log: log}
}

func (p *LocalContextProvider) LatestContext(ctx context.Context, pr session.Principal) (*weather.LatestContext, error) {
	latest, err := p.latestLog(ctx, pr)
	if err != nil {
		return nil, fmt.Errorf("latest context: %w", err)
	}

	lc := &weather.LatestContext{LatestLog: latest}
	if latest == nil || latest.Location == "" || p.weather == nil {
		return lc, nil
	}

	current, err := p.weather.Current(ctx, latest.Location)
	if err != nil {
		p.log.Info("weather lookup failed",
			zap.String("location", latest.Location),
			zap.Error(err))
		return lc, nil
	}
	lc.Weather = current
	return lc, nil
}

func (p *LocalContextProvider) latestLog(ctx context.Context, pr session.Principal) (*dailylog.DailyLog, error) {
	if ls, ok := p.logs.(LatestLogStore); ok {
		return ls.LatestLog(ctx, pr)
	}
	logs, err := p.logs.ListLogs(ctx, pr)
	if err != nil {
		return nil, err
	}
	return newestLog(logs), nil
}

// newestLog picks the log with the newest date, then the newest creation time.
func newestLog(logs []dailylog.DailyLog) *dailylog.DailyLog {
	var best *dailylog.DailyLog
	for i := range logs {
		l := &logs[i]
		if best == nil ||
			l.Date.After(best.Date) ||
			(l.Date.Equal(best.Date) && l.CreatedAt.After(best.CreatedAt)) {
			best = l
		}
	}
	return best
}
