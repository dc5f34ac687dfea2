package frame

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChannelReadBeforeWrite(t *testing.T) {
	c := NewChannel(0, 4, 4, 3)

	f := c.Read()
	assert.True(t, f.Empty())
	assert.Equal(t, 0, f.CameraID)
}

func TestChannelWriteRead(t *testing.T) {
	c := NewChannel(1, 2, 2, 3)

	data := bytes.Repeat([]byte{7}, c.Size())
	ts := time.Now()
	require.NoError(t, c.Write(data, ts))

	f := c.Read()
	require.False(t, f.Empty())
	assert.Equal(t, data, f.Data)
	assert.Equal(t, 1, f.CameraID)
	assert.Equal(t, ts.UnixNano(), f.Timestamp.UnixNano())
}

func TestChannelRejectsWrongShape(t *testing.T) {
	c := NewChannel(0, 2, 2, 3)

	err := c.Write([]byte{1, 2, 3}, time.Now())
	require.Error(t, err)
	assert.EqualValues(t, 0, c.Seq())
}

func TestChannelReadIsACopy(t *testing.T) {
	c := NewChannel(0, 2, 2, 1)

	require.NoError(t, c.Write([]byte{1, 2, 3, 4}, time.Now()))
	f := c.Read()
	f.Data[0] = 99

	assert.Equal(t, []byte{1, 2, 3, 4}, c.Read().Data)
}

func TestChannelLatestWins(t *testing.T) {
	c := NewChannel(0, 2, 2, 1)

	require.NoError(t, c.Write([]byte{1, 1, 1, 1}, time.Now()))
	require.NoError(t, c.Write([]byte{2, 2, 2, 2}, time.Now()))
	require.NoError(t, c.Write([]byte{3, 3, 3, 3}, time.Now()))

	assert.Equal(t, []byte{3, 3, 3, 3}, c.Read().Data)
	assert.EqualValues(t, 3, c.Seq())
}

// A reader under continuous overwrites must only ever observe whole frames,
// never a mix of two writes.
func TestChannelNoTornFrames(t *testing.T) {
	c := NewChannel(0, 16, 16, 3)

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		v := byte(0)
		for {
			select {
			case <-done:
				return
			default:
			}
			v++
			_ = c.Write(bytes.Repeat([]byte{v}, c.Size()), time.Now())
		}
	}()

	for i := 0; i < 1000; i++ {
		f := c.Read()
		if f.Empty() {
			continue
		}
		first := f.Data[0]
		for _, b := range f.Data {
			require.Equal(t, first, b, "torn frame observed")
		}
	}

	close(done)
	wg.Wait()
}

func TestHubDuplicateCamera(t *testing.T) {
	h := NewHub()

	_, err := h.Add(0, 4, 4, 3)
	require.NoError(t, err)
	_, err = h.Add(0, 4, 4, 3)
	require.Error(t, err)

	assert.NotNil(t, h.Get(0))
	assert.Nil(t, h.Get(5))
}
