package watchdog

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/health"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

type recordingSink struct {
	beats []models.Heartbeat
}

func (s *recordingSink) SendHeartbeat(msg models.Heartbeat) error {
	s.beats = append(s.beats, msg)
	return nil
}

func TestWatchdogReportsStalledCamera(t *testing.T) {
	registry := health.NewRegistry()
	sink := &recordingSink{}
	w := &Watchdog{registry: registry, sink: sink, interval: time.Millisecond}

	registry.MarkFrame(3)
	registry.MarkFrame(3)
	time.Sleep(5 * time.Millisecond)

	w.checkCameras()

	require.Len(t, sink.beats, 1)
	assert.Equal(t, 3, sink.beats[0].CameraID)
	assert.Equal(t, models.CommandStop, sink.beats[0].Action)
	assert.EqualValues(t, 2, sink.beats[0].Frame)
}

func TestWatchdogQuietWhenCamerasHealthy(t *testing.T) {
	registry := health.NewRegistry()
	sink := &recordingSink{}
	w := &Watchdog{registry: registry, sink: sink, interval: time.Minute}

	registry.MarkFrame(0)
	w.checkCameras()

	assert.Empty(t, sink.beats)
}

func TestWatchdogNilSinkOnlyLogs(t *testing.T) {
	registry := health.NewRegistry()
	w := &Watchdog{registry: registry, interval: time.Millisecond}

	registry.MarkFrame(0)
	time.Sleep(5 * time.Millisecond)

	assert.NotPanics(t, func() { w.checkCameras() })
}
