// Package capture runs one frame producer per camera, writing into that
// camera's frame channel.
package capture

import (
	"context"
	"errors"
	"io"
	"log"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/health"
)

// Source yields successive raw RGB frames for one camera. Next returns
// io.EOF when the source is exhausted and any other error on a hard read
// failure.
type Source interface {
	Next(ctx context.Context) ([]byte, error)
}

// Producer reads frames from a source and overwrites the camera's channel.
type Producer struct {
	cameraID int
	source   Source
	channel  *frame.Channel
	registry *health.Registry
	interval time.Duration
}

func NewProducer(cameraID int, source Source, channel *frame.Channel, registry *health.Registry, interval time.Duration) *Producer {
	return &Producer{
		cameraID: cameraID,
		source:   source,
		channel:  channel,
		registry: registry,
		interval: interval,
	}
}

// Run loops until the context is cancelled or the source fails hard. A hard
// failure only ends this producer; downstream workers starve instead of
// crashing, and the watchdog reports the stall.
func (p *Producer) Run(ctx context.Context) {
	log.Printf("Capture cam%d: started", p.cameraID)
	defer p.registry.MarkStopped(p.cameraID)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			log.Printf("Capture cam%d: stopped", p.cameraID)
			return
		case <-ticker.C:
			data, err := p.source.Next(ctx)
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return
				}
				if errors.Is(err, io.EOF) {
					log.Printf("Capture cam%d: source exhausted", p.cameraID)
				} else {
					log.Printf("[ERROR] Capture cam%d: unable to read from source: %v", p.cameraID, err)
				}
				return
			}

			if err := p.channel.Write(data, time.Now()); err != nil {
				// Short or oversized read. Skip it, the source may recover.
				log.Printf("[ERROR] Capture cam%d: %v", p.cameraID, err)
				continue
			}
			p.registry.MarkFrame(p.cameraID)
		}
	}
}
