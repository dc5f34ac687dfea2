package imaging

import (
	"bytes"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeJPEGProducesDecodableImage(t *testing.T) {
	const w, h = 8, 6
	raw := make([]byte, w*h*3)
	for i := range raw {
		raw[i] = byte(i % 251)
	}

	data, err := EncodeJPEG(raw, w, h)
	require.NoError(t, err)

	img, err := jpeg.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, w, img.Bounds().Dx())
	assert.Equal(t, h, img.Bounds().Dy())
}

func TestEncodeJPEGRejectsWrongSize(t *testing.T) {
	_, err := EncodeJPEG(make([]byte, 10), 8, 6)
	assert.Error(t, err)
}

func TestDecodeToRawScalesToRequestedShape(t *testing.T) {
	raw := make([]byte, 16*16*3)
	for i := range raw {
		raw[i] = 128
	}
	data, err := EncodeJPEG(raw, 16, 16)
	require.NoError(t, err)

	out, err := DecodeToRaw(data, 8, 4)
	require.NoError(t, err)
	assert.Len(t, out, 8*4*3)
}

func TestDecodeToRawRejectsGarbage(t *testing.T) {
	_, err := DecodeToRaw([]byte("not a jpeg"), 8, 8)
	assert.Error(t, err)
}

func TestGrayUsesLumaWeights(t *testing.T) {
	// Pure red, pure green, pure blue, white.
	data := []byte{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
		255, 255, 255,
	}
	gray := Gray(data)
	require.Len(t, gray, 4)
	assert.Equal(t, byte(76), gray[0])
	assert.Equal(t, byte(149), gray[1])
	assert.Equal(t, byte(29), gray[2])
	assert.Equal(t, byte(255), gray[3])
}
