// Package worker runs one detection loop per (camera, kind) against the
// camera's shared frame channel.
package worker

import (
	"context"
	"log"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/queue"
)

// Detector is the capability a worker runs against each frame. A nil event
// with a nil error means the frame did not qualify.
type Detector interface {
	Detect(f frame.Frame) (*models.DetectionEvent, error)
}

// Worker polls its frame channel, runs the detector, and pushes qualifying
// events onto the kind's queue. It never consults suppression state; piling
// up duplicate events between suppression windows is the aggregator's
// problem by design.
type Worker struct {
	cameraID int
	kind     models.Kind
	channel  *frame.Channel
	detector Detector
	queues   *queue.Set
	snaps    *Snapshotter
	interval time.Duration

	lastSeq uint64
}

func New(cameraID int, kind models.Kind, channel *frame.Channel, detector Detector, queues *queue.Set, snaps *Snapshotter, interval time.Duration) *Worker {
	return &Worker{
		cameraID: cameraID,
		kind:     kind,
		channel:  channel,
		detector: detector,
		queues:   queues,
		snaps:    snaps,
		interval: interval,
	}
}

// Run loops until the context is cancelled. If the upstream capture producer
// dies the worker simply starves: no new frames, no new events, no crash.
func (w *Worker) Run(ctx context.Context) {
	log.Printf("Worker cam%d/%s: started", w.cameraID, w.kind)

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Worker cam%d/%s: stopped", w.cameraID, w.kind)
			return
		case <-ticker.C:
			w.step(ctx)
		}
	}
}

func (w *Worker) step(ctx context.Context) {
	seq := w.channel.Seq()
	if seq == w.lastSeq {
		// Nothing new since the last pass.
		return
	}

	f := w.channel.Read()
	if f.Empty() || len(f.Data) != w.channel.Size() {
		log.Printf("[ERROR] Worker cam%d/%s: invalid frame received", w.cameraID, w.kind)
		return
	}
	w.lastSeq = seq

	event, err := w.detector.Detect(f)
	if err != nil {
		log.Printf("Worker cam%d/%s: detection error: %v", w.cameraID, w.kind, err)
		return
	}
	if event == nil {
		return
	}

	// Snapshot failure degrades the event, it never suppresses it.
	if path, err := w.snaps.Save(ctx, w.kind, f); err != nil {
		log.Printf("[WARNING] Worker cam%d/%s: detected but failed to save frame: %v", w.cameraID, w.kind, err)
	} else {
		event.ImagePath = path
	}

	w.queues.ForKind(w.kind).Push(*event)
}
