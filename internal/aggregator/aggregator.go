// Package aggregator turns queued detection events into deduplicated,
// persisted alerts with notifications. It is the single consumer of all
// three event queues and the only owner of suppression state.
package aggregator

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/queue"
)

// AlertStore persists fired alerts.
type AlertStore interface {
	InsertAlert(ctx context.Context, alert *models.AlertRecord) error
}

// Notifier delivers side-effect notifications. Failures are the notifier's
// to log; the aggregator never rolls back a persisted alert over them.
type Notifier interface {
	Notify(ctx context.Context, subject, message, imagePath string)
	NotifyLocal(title, message string)
}

// AlertPublisher publishes fired alerts to the alert stream.
type AlertPublisher interface {
	PublishAlert(event models.AlertEvent) error
}

// Aggregator polls the queues in a fixed order each cycle (face, motion,
// object) followed by a short idle sleep. The order gives face events a soft
// priority when every queue has pending work.
type Aggregator struct {
	queues    *queue.Set
	cameras   map[int]models.CameraConfig
	policies  map[models.Kind]Policy
	state     *suppressionState
	store     AlertStore
	alertLog  *AlertLog
	notifier  Notifier
	publisher AlertPublisher
	idleSleep time.Duration
}

// New snapshots the camera configuration once; it is not reloaded within a
// run.
func New(
	queues *queue.Set,
	cameras []models.CameraConfig,
	policies map[models.Kind]Policy,
	store AlertStore,
	alertLog *AlertLog,
	notifier Notifier,
	publisher AlertPublisher,
	idleSleep time.Duration,
) *Aggregator {
	return &Aggregator{
		queues: queues,
		cameras: lo.KeyBy(cameras, func(c models.CameraConfig) int {
			return c.CameraID
		}),
		policies:  policies,
		state:     newSuppressionState(),
		store:     store,
		alertLog:  alertLog,
		notifier:  notifier,
		publisher: publisher,
		idleSleep: idleSleep,
	}
}

// Run cycles until the context is cancelled. No failure inside a cycle ever
// stops the loop; everything degrades to "no alert" or "delayed alert".
func (a *Aggregator) Run(ctx context.Context) {
	log.Printf("Aggregator: started with %d cameras", len(a.cameras))
	for {
		select {
		case <-ctx.Done():
			log.Println("Aggregator: shutting down")
			return
		default:
			a.Cycle(ctx)
			time.Sleep(a.idleSleep)
		}
	}
}

// Cycle checks each queue once, in the fixed face, motion, object order.
func (a *Aggregator) Cycle(ctx context.Context) {
	a.check(ctx, a.queues.Face)
	a.check(ctx, a.queues.Motion)
	a.check(ctx, a.queues.Object)
}

func (a *Aggregator) check(ctx context.Context, q *queue.Queue) {
	ev, ok := q.TryPop()
	if !ok {
		return
	}

	// Unknown camera or disabled kind: silent discard.
	cam, ok := a.cameras[ev.CameraID]
	if !ok || !cam.Enabled(ev.Kind) {
		return
	}

	pol := a.policies[ev.Kind]
	now := time.Now()
	if !a.state.allow(ev.Kind, ev.CameraID, now, pol) {
		// Only this event is dropped; the queue is not drained here.
		return
	}

	a.fire(ctx, ev, pol, q, now)
}

func (a *Aggregator) fire(ctx context.Context, ev models.DetectionEvent, pol Policy, q *queue.Queue, now time.Time) {
	message := buildMessage(ev)
	subject := subjectFor(ev.Kind)

	if err := a.alertLog.Append(ev.Kind, ev.CameraID, ev.Severity, message, ev.ImagePath, now); err != nil {
		log.Printf("Aggregator: failed to write alert log: %v", err)
	}

	record := &models.AlertRecord{
		ID:       uuid.New().String(),
		Camera:   fmt.Sprintf("Camera %d", ev.CameraID),
		Location: locationFor(ev.Kind),
		Time:     now,
		Message:  message,
		Severity: ev.Severity,
		Status:   models.StatusNew,
	}
	if err := a.store.InsertAlert(ctx, record); err != nil {
		log.Printf("Aggregator: failed to persist alert %s for camera %d: %v", record.ID, ev.CameraID, err)
	}

	if a.publisher != nil {
		if err := a.publisher.PublishAlert(models.AlertEvent{
			AlertID:   record.ID,
			CameraID:  ev.CameraID,
			Kind:      ev.Kind,
			Severity:  ev.Severity,
			Message:   message,
			ImagePath: ev.ImagePath,
			TimeStamp: now.UTC(),
		}); err != nil {
			log.Printf("Aggregator: failed to publish alert event: %v", err)
		}
	}

	a.notifier.Notify(ctx, subject, message, ev.ImagePath)
	a.notifier.NotifyLocal(subject, message)

	a.state.markFired(ev.Kind, ev.CameraID, now)
	log.Printf("Aggregator: %s alert fired for camera %d: %s", ev.Kind, ev.CameraID, message)

	if pol.DrainOnFire {
		if n := q.Drain(); n > 0 {
			log.Printf("Aggregator: drained %d queued %s events after firing", n, ev.Kind)
		}
	}
}

func buildMessage(ev models.DetectionEvent) string {
	switch ev.Kind {
	case models.KindMotion:
		return fmt.Sprintf("Motion detected with score %d", ev.MotionScore)
	case models.KindObject:
		return fmt.Sprintf("Object detected: %s", ev.Label)
	case models.KindWeapon:
		return fmt.Sprintf("Weapon detected: %s", ev.Label)
	case models.KindFace:
		return fmt.Sprintf("Face detected: %s", ev.Label)
	}
	return "Detection"
}

func subjectFor(kind models.Kind) string {
	switch kind {
	case models.KindMotion:
		return "Motion Detected"
	case models.KindObject:
		return "Object Detected"
	case models.KindWeapon:
		return "Weapon Detected"
	case models.KindFace:
		return "Face Detected"
	}
	return "Alert"
}

func locationFor(kind models.Kind) string {
	switch kind {
	case models.KindMotion:
		return "Motion Detection"
	case models.KindObject:
		return "Object Detection"
	case models.KindWeapon:
		return "Weapon Detection"
	case models.KindFace:
		return "Face Recognition"
	}
	return "Unknown"
}
