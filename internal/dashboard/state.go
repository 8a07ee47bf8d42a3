package dashboard

import (
	"github.com/vzahanych/weather-dashboard/internal/forecast"
	"github.com/vzahanych/weather-dashboard/internal/units"
	apperrors "github.com/vzahanych/weather-dashboard/pkg/errors"
)

// State is the application state owned by one dashboard session. Functions
// in this file return a new State and never mutate their argument.
type State struct {
	Snapshot   *forecast.Snapshot     `json:"snapshot"`
	Units      units.Units            `json:"units"`
	Loading    bool                   `json:"loading"`
	Error      *apperrors.WeatherError `json:"error,omitempty"`
	Generation uint64                 `json:"generation"`
}

// Request identifies one in-flight load.
type Request struct {
	Generation uint64
	Units      units.Units
}

func NewState(u units.Units) State {
	if !u.Valid() {
		u = units.Default
	}
	return State{Units: u}
}

// Begin starts a load. Any load begun earlier is superseded.
func Begin(s State) (State, Request) {
	s.Generation++
	s.Loading = true
	return s, Request{Generation: s.Generation, Units: s.Units}
}

// Complete applies the outcome of req. Results of superseded requests are
// discarded and reported with applied == false. A failure keeps the last
// good snapshot and records the error.
func Complete(s State, req Request, snap *forecast.Snapshot, err error) (next State, applied bool) {
	if req.Generation != s.Generation {
		return s, false
	}

	s.Loading = false
	if err != nil {
		werr, ok := apperrors.As(err)
		if !ok {
			werr = apperrors.FetchFailed(err)
		}
		s.Error = werr
		return s, true
	}

	s.Snapshot = snap
	s.Error = nil
	return s, true
}

// WithUnits switches the active unit system. The caller refetches when a
// snapshot is loaded.
func WithUnits(s State, u units.Units) State {
	s.Units = u
	return s
}

func ClearError(s State) State {
	s.Error = nil
	return s
}
