package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/vzahanych/weather-dashboard/internal/config"
	"github.com/vzahanych/weather-dashboard/internal/dashboard"
	"go.uber.org/zap"
)

// Renderer receives every view the watcher produces.
type Renderer func(view dashboard.View, state dashboard.State)

// Watcher keeps a session current: the hourly view is re-filtered on every
// tick and the forecast is refetched on the refresh interval.
type Watcher struct {
	session   *dashboard.Session
	scheduler *gocron.Scheduler
	tick      time.Duration
	refresh   time.Duration
	render    Renderer
	logger    *zap.Logger

	mu  sync.Mutex
	ctx context.Context
}

func New(session *dashboard.Session, cfg config.WatchConfig, render Renderer, logger *zap.Logger) *Watcher {
	tick := time.Duration(cfg.TickSeconds) * time.Second
	if tick <= 0 {
		tick = time.Minute
	}
	refresh := time.Duration(cfg.RefreshMinutes) * time.Minute
	if refresh <= 0 {
		refresh = 15 * time.Minute
	}
	return newWatcher(session, tick, refresh, render, logger)
}

func newWatcher(session *dashboard.Session, tick, refresh time.Duration, render Renderer, logger *zap.Logger) *Watcher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Watcher{
		session:   session,
		scheduler: gocron.NewScheduler(time.UTC),
		tick:      tick,
		refresh:   refresh,
		render:    render,
		logger:    logger,
		ctx:       context.Background(),
	}
}

// Start schedules both jobs. The first tick and refresh happen one interval
// from now; callers load the session before starting.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	w.ctx = ctx
	w.mu.Unlock()

	if _, err := w.scheduler.Every(w.tick).WaitForSchedule().Do(w.Tick); err != nil {
		return fmt.Errorf("schedule tick: %w", err)
	}
	if _, err := w.scheduler.Every(w.refresh).WaitForSchedule().Do(w.Refresh); err != nil {
		return fmt.Errorf("schedule refresh: %w", err)
	}

	w.logger.Info("Watching forecast",
		zap.Duration("tick", w.tick),
		zap.Duration("refresh", w.refresh))

	w.scheduler.StartAsync()
	return nil
}

func (w *Watcher) Stop() {
	w.scheduler.Stop()
}

// Tick re-renders the current snapshot against the clock.
func (w *Watcher) Tick() {
	w.emit(w.session.State())
}

// Refresh refetches the current location. Overlapping refreshes are allowed;
// the session keeps the newest.
func (w *Watcher) Refresh() {
	w.mu.Lock()
	ctx := w.ctx
	w.mu.Unlock()

	if ctx.Err() != nil {
		return
	}

	state := w.session.Refresh(ctx)
	if state.Error != nil {
		w.logger.Warn("Forecast refresh failed, keeping last snapshot",
			zap.String("code", state.Error.Code),
			zap.Error(state.Error.Unwrap()))
	}
	w.emit(state)
}

func (w *Watcher) emit(state dashboard.State) {
	if w.render != nil {
		w.render(w.session.View(), state)
	}
}
