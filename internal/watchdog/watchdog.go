// Package watchdog reports cameras whose capture has stalled.
package watchdog

import (
	"context"
	"log"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/health"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

const watchInterval = 30 * time.Second

// HeartbeatSink receives liveness reports; the Kafka producer implements it.
type HeartbeatSink interface {
	SendHeartbeat(msg models.Heartbeat) error
}

// Watchdog periodically scans the health registry. A camera without frames
// for a full interval is logged and reported as a stop heartbeat so an
// operator (or orchestration) can restart it; the pipeline itself keeps
// running on the remaining cameras.
type Watchdog struct {
	registry *health.Registry
	sink     HeartbeatSink
	interval time.Duration
}

func New(registry *health.Registry, sink HeartbeatSink) *Watchdog {
	return &Watchdog{
		registry: registry,
		sink:     sink,
		interval: watchInterval,
	}
}

func (w *Watchdog) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Println("Watchdog stopped")
			return
		case <-ticker.C:
			w.checkCameras()
		}
	}
}

func (w *Watchdog) checkCameras() {
	for _, cameraID := range w.registry.Stalled(w.interval) {
		log.Printf("Watchdog: camera %d produced no frames for %v", cameraID, w.interval)

		if w.sink == nil {
			continue
		}
		if err := w.sink.SendHeartbeat(models.Heartbeat{
			CameraID:  cameraID,
			Action:    models.CommandStop,
			Frame:     w.registry.FrameCount(cameraID),
			TimeStamp: time.Now().UTC(),
		}); err != nil {
			log.Printf("Watchdog: failed to send stall heartbeat for camera %d: %v", cameraID, err)
		}
	}
}
