// Package frame implements the shared last-frame buffer between one capture
// producer and many detection workers.
package frame

import (
	"fmt"
	"sync/atomic"
	"time"
)

// Frame is one fixed-shape raw video frame (Height*Width*Channels bytes).
type Frame struct {
	CameraID  int
	Width     int
	Height    int
	Channels  int
	Data      []byte
	Timestamp time.Time
}

// Empty reports whether the frame carries no pixel data.
func (f *Frame) Empty() bool {
	return f == nil || len(f.Data) == 0
}

// Channel holds the latest frame for one camera. A single writer overwrites
// it continuously; any number of readers copy the latest published frame.
//
// Two fixed buffers are alternated: the writer fills the inactive one and
// publishes its index with an atomic store. Each buffer carries a version
// counter that is odd while a write is in progress, so a reader that lags a
// full writer cycle detects the overlap and retries instead of returning a
// torn frame. The writer never blocks on readers.
type Channel struct {
	cameraID int
	width    int
	height   int
	channels int

	bufs   [2][]byte
	vers   [2]atomic.Uint64 // odd while the buffer is being written
	stamps [2]int64         // unix nanos, published together with the version
	active atomic.Int32
	seq    atomic.Uint64
}

// NewChannel allocates a channel for the given fixed shape.
func NewChannel(cameraID, width, height, channels int) *Channel {
	size := width * height * channels
	c := &Channel{
		cameraID: cameraID,
		width:    width,
		height:   height,
		channels: channels,
	}
	c.bufs[0] = make([]byte, size)
	c.bufs[1] = make([]byte, size)
	return c
}

// Size returns the byte length of one frame.
func (c *Channel) Size() int {
	return c.width * c.height * c.channels
}

// Write replaces the channel contents with data. The slice must match the
// channel's shape exactly; anything else is rejected so a short capture read
// never reaches the workers.
func (c *Channel) Write(data []byte, ts time.Time) error {
	if len(data) != c.Size() {
		return fmt.Errorf("camera %d: frame size %d does not match shape %dx%dx%d",
			c.cameraID, len(data), c.height, c.width, c.channels)
	}

	next := 1 - c.active.Load()
	c.vers[next].Add(1) // odd: write in progress
	copy(c.bufs[next], data)
	atomic.StoreInt64(&c.stamps[next], ts.UnixNano())
	c.vers[next].Add(1) // even: write complete
	c.active.Store(next)
	c.seq.Add(1)
	return nil
}

// Read returns a copy of the latest published frame, or an empty frame if
// nothing has been written yet. Read never blocks the writer; it retries the
// copy if the writer cycled back onto the buffer being read.
func (c *Channel) Read() Frame {
	if c.seq.Load() == 0 {
		return Frame{CameraID: c.cameraID}
	}

	data := make([]byte, c.Size())
	var idx int32
	for {
		idx = c.active.Load()
		before := c.vers[idx].Load()
		if before%2 != 0 {
			continue
		}
		copy(data, c.bufs[idx])
		if c.vers[idx].Load() == before {
			break
		}
	}

	return Frame{
		CameraID:  c.cameraID,
		Width:     c.width,
		Height:    c.height,
		Channels:  c.channels,
		Data:      data,
		Timestamp: time.Unix(0, atomic.LoadInt64(&c.stamps[idx])),
	}
}

// Seq returns the number of frames written so far.
func (c *Channel) Seq() uint64 {
	return c.seq.Load()
}
