package dashboard

import (
	"context"
	"sync"

	"github.com/vzahanych/weather-dashboard/internal/location"
	"github.com/vzahanych/weather-dashboard/internal/units"
	"go.uber.org/zap"
)

// Session holds the state of one dashboard view. Loads may overlap; the
// most recently begun load wins and earlier results are dropped.
type Session struct {
	dashboard *Dashboard
	logger    *zap.Logger

	mu       sync.Mutex
	state    State
	selected string
}

func NewSession(d *Dashboard, u units.Units) *Session {
	return &Session{
		dashboard: d,
		logger:    d.logger,
		state:     NewState(u),
	}
}

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Load fetches loc in the session's current units.
func (s *Session) Load(ctx context.Context, loc location.Location) State {
	s.mu.Lock()
	var req Request
	s.state, req = Begin(s.state)
	s.mu.Unlock()

	snap, err := s.dashboard.Snapshot(ctx, loc, req.Units)

	s.mu.Lock()
	defer s.mu.Unlock()

	next, applied := Complete(s.state, req, snap, err)
	if !applied {
		s.logger.Debug("Discarding superseded forecast",
			zap.Uint64("generation", req.Generation),
			zap.Uint64("current_generation", s.state.Generation))
		return s.state
	}
	s.state = next
	return s.state
}

// Refresh reloads the current location. Without a snapshot it is a no-op.
func (s *Session) Refresh(ctx context.Context) State {
	s.mu.Lock()
	snap := s.state.Snapshot
	s.mu.Unlock()

	if snap == nil {
		return s.State()
	}
	return s.Load(ctx, snap.Location)
}

// SetUnits persists u and refetches the loaded location in the new units.
func (s *Session) SetUnits(ctx context.Context, u units.Units) State {
	s.dashboard.saveUnits(ctx, u)

	s.mu.Lock()
	s.state = WithUnits(s.state, u)
	snap := s.state.Snapshot
	s.mu.Unlock()

	if snap == nil {
		return s.State()
	}
	return s.Load(ctx, snap.Location)
}

func (s *Session) ClearError() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = ClearError(s.state)
	return s.state
}

// Select records the day the user picked.
func (s *Session) Select(date string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = date
}

// View renders the current snapshot at the dashboard clock, advancing the
// selected day when its hours have all passed.
func (s *Session) View() View {
	now := s.dashboard.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	v := BuildView(s.state.Snapshot, now, s.selected)
	s.selected = v.SelectedDay
	return v
}
