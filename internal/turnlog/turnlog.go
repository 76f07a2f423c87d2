// Package turnlog detects winning-regressions between consecutive
// analyses of the same game line, mirroring the original driver's
// winning/new_winning check in PlayGame — a bug detector for the
// analyzer, not a gameplay feature.
package turnlog

import (
	"github.com/rs/zerolog"

	"nonet/internal/analyzer"
)

// Tracker remembers the outcome of the most recent analysis for one game
// line and warns when a later analysis regresses from winning to
// losing, which should never happen for the same underlying position
// reached via different move orders.
type Tracker struct {
	logger  zerolog.Logger
	known   bool
	winning bool
}

// New returns a Tracker that logs regressions to logger.
func New(logger zerolog.Logger) *Tracker {
	return &Tracker{logger: logger}
}

// Observe records the outcome of a completed analysis and logs a
// warning if it regresses from winning to losing relative to the prior
// observation.
func (t *Tracker) Observe(outcome analyzer.Outcome) {
	winning := outcome != analyzer.Loss
	if t.known && t.winning && !winning {
		t.logger.Warn().
			Str("previous", "winning").
			Str("current", outcome.String()).
			Msg("winning regression detected between consecutive analyses")
	}
	t.known = true
	t.winning = winning
}

// Reset forgets prior observations, for starting a new game line.
func (t *Tracker) Reset() {
	t.known = false
	t.winning = false
}
