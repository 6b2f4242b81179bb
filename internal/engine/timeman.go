package engine

import (
	"time"
)

// TimeManager decides whether another, deeper search iteration fits in the
// time left for this move. A single iteration always runs to completion.
type TimeManager struct {
	optimumTime time.Duration // Target time for this move
	maximumTime time.Duration // Never start an iteration past this
	startTime   time.Time     // When search started
}

// NewTimeManager creates a new time manager.
func NewTimeManager() *TimeManager {
	return &TimeManager{}
}

// Init initializes the time manager for a new search.
// remaining is our clock (0 = untimed), moveTime a fixed per-move budget
// that takes precedence, and stonesLeft the number of empty points, which
// bounds how many moves we still have to make.
func (tm *TimeManager) Init(remaining, moveTime time.Duration, stonesLeft int) {
	tm.startTime = time.Now()

	// Fixed move time mode
	if moveTime > 0 {
		tm.optimumTime = moveTime
		tm.maximumTime = moveTime
		return
	}

	// Untimed
	if remaining <= 0 {
		tm.optimumTime = time.Hour
		tm.maximumTime = time.Hour
		return
	}

	// Each side fills roughly half the empty points; passes and recaptures
	// add a few more turns.
	mtg := stonesLeft/2 + 3
	if mtg < 4 {
		mtg = 4
	}

	tm.optimumTime = remaining / time.Duration(mtg)

	// Maximum time: 3x optimum or half of remaining, whichever is smaller
	tm.maximumTime = min(tm.optimumTime*3, remaining/2)

	// Minimum times
	if tm.optimumTime < 10*time.Millisecond {
		tm.optimumTime = 10 * time.Millisecond
	}
	if tm.maximumTime < 20*time.Millisecond {
		tm.maximumTime = 20 * time.Millisecond
	}
}

// Elapsed returns the time elapsed since search started.
func (tm *TimeManager) Elapsed() time.Duration {
	return time.Since(tm.startTime)
}

// OptimumTime returns the target time for this move.
func (tm *TimeManager) OptimumTime() time.Duration {
	return tm.optimumTime
}

// MaximumTime returns the maximum time allowed.
func (tm *TimeManager) MaximumTime() time.Duration {
	return tm.maximumTime
}

// CanDeepen reports whether the next iteration should start, given how long
// the last one took. Each iteration is assumed to cost several times the
// previous one.
func (tm *TimeManager) CanDeepen(lastIteration time.Duration) bool {
	elapsed := tm.Elapsed()
	if elapsed >= tm.optimumTime {
		return false
	}
	return elapsed+lastIteration*4 < tm.maximumTime
}
