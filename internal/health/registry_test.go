package health

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRegistryFrameCount(t *testing.T) {
	r := NewRegistry()

	assert.Zero(t, r.FrameCount(0))
	r.MarkFrame(0)
	r.MarkFrame(0)
	r.MarkFrame(1)
	assert.EqualValues(t, 2, r.FrameCount(0))
	assert.EqualValues(t, 1, r.FrameCount(1))
}

func TestRegistryStalledIgnoresActiveCameras(t *testing.T) {
	r := NewRegistry()
	r.MarkFrame(0)

	// A generous interval: the camera just produced a frame.
	assert.Empty(t, r.Stalled(time.Minute))
}

func TestRegistryStalledDetectsSilentCamera(t *testing.T) {
	r := NewRegistry()
	r.MarkFrame(0)

	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, []int{0}, r.Stalled(time.Millisecond))
}

func TestRegistryStoppedCameraIsNotStalled(t *testing.T) {
	r := NewRegistry()
	r.MarkFrame(0)
	r.MarkStopped(0)

	time.Sleep(5 * time.Millisecond)
	assert.Empty(t, r.Stalled(time.Millisecond))
}

func TestRegistryFrameAfterStopClearsStoppedFlag(t *testing.T) {
	r := NewRegistry()
	r.MarkStopped(0)
	r.MarkFrame(0)

	assert.Empty(t, r.Stalled(time.Minute))
	time.Sleep(5 * time.Millisecond)
	assert.Equal(t, []int{0}, r.Stalled(time.Millisecond))
}
