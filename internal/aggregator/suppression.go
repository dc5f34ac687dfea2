package aggregator

import (
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// Policy holds the per-kind suppression knobs. The source system carried a
// broad 60s "can trigger" interval and a separate 10s in-loop dedup
// interval; both are kept as named fields and a firing requires both.
type Policy struct {
	TriggerInterval time.Duration
	DedupInterval   time.Duration
	DrainOnFire     bool
}

type suppressionKey struct {
	kind     models.Kind
	cameraID int
}

// suppressionState maps (kind, camera) to last-fired timestamps. Owned and
// mutated exclusively by the aggregator goroutine, so no locking. Lives for
// the process lifetime and resets on restart.
type suppressionState struct {
	lastTrigger map[suppressionKey]time.Time
	lastDedup   map[suppressionKey]time.Time
}

func newSuppressionState() *suppressionState {
	return &suppressionState{
		lastTrigger: make(map[suppressionKey]time.Time),
		lastDedup:   make(map[suppressionKey]time.Time),
	}
}

// allow reports whether a (kind, camera) firing is outside both windows.
func (s *suppressionState) allow(kind models.Kind, cameraID int, now time.Time, pol Policy) bool {
	key := suppressionKey{kind: kind, cameraID: cameraID}

	if last, ok := s.lastTrigger[key]; ok && now.Sub(last) < pol.TriggerInterval {
		return false
	}
	if last, ok := s.lastDedup[key]; ok && now.Sub(last) < pol.DedupInterval {
		return false
	}
	return true
}

// markFired stamps both windows for the key.
func (s *suppressionState) markFired(kind models.Kind, cameraID int, now time.Time) {
	key := suppressionKey{kind: kind, cameraID: cameraID}
	s.lastTrigger[key] = now
	s.lastDedup[key] = now
}
