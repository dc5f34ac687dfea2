// Package control starts and stops capture producers, both at boot and in
// response to camera commands arriving over Kafka.
package control

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"sync"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/capture"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/kafka"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// SourceFactory builds a fresh frame source for a camera, so a restarted
// camera replays from the beginning of its source.
type SourceFactory func(ctx context.Context, cam models.CameraConfig) (capture.Source, error)

// ProducerFactory builds the capture producer for a camera and source.
type ProducerFactory func(cam models.CameraConfig, source capture.Source) *capture.Producer

// Manager owns the running capture producers. The aggregator's camera
// snapshot is unaffected by runtime commands; stopping a camera only starves
// its workers.
type Manager struct {
	cameras      map[int]models.CameraConfig
	newSource    SourceFactory
	newProducer  ProducerFactory
	consumer     *kafka.Consumer

	mu      sync.Mutex
	running map[int]context.CancelFunc
}

func NewManager(cameras []models.CameraConfig, newSource SourceFactory, newProducer ProducerFactory, consumer *kafka.Consumer) *Manager {
	byID := make(map[int]models.CameraConfig, len(cameras))
	for _, cam := range cameras {
		byID[cam.CameraID] = cam
	}
	return &Manager{
		cameras:     byID,
		newSource:   newSource,
		newProducer: newProducer,
		consumer:    consumer,
		running:     make(map[int]context.CancelFunc),
	}
}

// StartAll launches a capture producer for every configured camera. A camera
// whose source cannot be opened is logged and skipped; its workers starve,
// the rest of the pipeline is unaffected.
func (m *Manager) StartAll(ctx context.Context) {
	for id := range m.cameras {
		if err := m.StartCamera(ctx, id); err != nil {
			log.Printf("Control: camera %d not started: %v", id, err)
		}
	}
}

func (m *Manager) StartCamera(ctx context.Context, cameraID int) error {
	cam, ok := m.cameras[cameraID]
	if !ok {
		return fmt.Errorf("unknown camera %d", cameraID)
	}

	m.mu.Lock()
	if _, running := m.running[cameraID]; running {
		m.mu.Unlock()
		log.Printf("Control: capture for camera %d already running", cameraID)
		return nil
	}
	m.mu.Unlock()

	source, err := m.newSource(ctx, cam)
	if err != nil {
		return fmt.Errorf("open source for camera %d: %w", cameraID, err)
	}

	childCtx, cancel := context.WithCancel(ctx)
	m.mu.Lock()
	m.running[cameraID] = cancel
	m.mu.Unlock()

	producer := m.newProducer(cam, source)
	go func() {
		defer func() {
			m.mu.Lock()
			delete(m.running, cameraID)
			m.mu.Unlock()
			log.Printf("Control: capture for camera %d finished", cameraID)
		}()
		producer.Run(childCtx)
	}()

	return nil
}

func (m *Manager) StopCamera(cameraID int) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cancel, ok := m.running[cameraID]; ok {
		cancel()
		log.Printf("Control: capture for camera %d stopped", cameraID)
		return true
	}
	return false
}

// ListenAndRun processes camera commands until the context is cancelled.
// Messages are acked only after successful handling.
func (m *Manager) ListenAndRun(ctx context.Context) {
	if m.consumer == nil {
		return
	}
	log.Println("Control: listening for camera commands")

	for {
		select {
		case <-ctx.Done():
			log.Println("Control: shutting down")
			return
		case msg, ok := <-m.consumer.Messages():
			if !ok {
				return
			}

			var cmd models.CameraCommand
			if err := json.Unmarshal(msg.Value, &cmd); err != nil {
				log.Printf("Control: invalid command format: %v", err)
				continue
			}
			log.Printf("Control: received command %+v", cmd)

			var err error
			switch cmd.Action {
			case models.CommandStart:
				err = m.StartCamera(ctx, cmd.CameraID)
			case models.CommandStop:
				m.StopCamera(cmd.CameraID)
			default:
				log.Printf("Control: unknown command: %s", cmd.Action)
			}

			if err != nil {
				log.Printf("Control: error processing command: %v", err)
				continue
			}
			msg.Ack()
		}
	}
}
