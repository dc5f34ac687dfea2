// Package health tracks per-camera capture liveness for the watchdog.
package health

import (
	"sync"
	"time"
)

type cameraHealth struct {
	lastFrame  time.Time
	frameCount int64
	stopped    bool
}

// Registry is written by capture producers and read by the watchdog.
type Registry struct {
	mu      sync.Mutex
	cameras map[int]*cameraHealth
}

func NewRegistry() *Registry {
	return &Registry{cameras: make(map[int]*cameraHealth)}
}

// MarkFrame records a successful frame write for the camera.
func (r *Registry) MarkFrame(cameraID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.cameras[cameraID]
	if h == nil {
		h = &cameraHealth{}
		r.cameras[cameraID] = h
	}
	h.lastFrame = time.Now()
	h.frameCount++
	h.stopped = false
}

// MarkStopped records that the camera's capture producer terminated.
func (r *Registry) MarkStopped(cameraID int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.cameras[cameraID]
	if h == nil {
		h = &cameraHealth{}
		r.cameras[cameraID] = h
	}
	h.stopped = true
}

// FrameCount returns the number of frames written for the camera.
func (r *Registry) FrameCount(cameraID int) int64 {
	r.mu.Lock()
	defer r.mu.Unlock()

	if h := r.cameras[cameraID]; h != nil {
		return h.frameCount
	}
	return 0
}

// Stalled returns the ids of cameras that are not stopped but have produced
// no frame within the given interval.
func (r *Registry) Stalled(interval time.Duration) []int {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := time.Now().Add(-interval)
	var stalled []int
	for id, h := range r.cameras {
		if !h.stopped && h.lastFrame.Before(cutoff) {
			stalled = append(stalled, id)
		}
	}
	return stalled
}
