// Package imaging converts between the pipeline's raw interleaved RGB frames
// and JPEG, the format detectors and snapshots use.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
)

// EncodeJPEG encodes a raw RGB frame (height*width*3 bytes) as JPEG.
func EncodeJPEG(data []byte, width, height int) ([]byte, error) {
	if len(data) != width*height*3 {
		return nil, fmt.Errorf("frame size %d does not match %dx%dx3", len(data), width, height)
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := (y*width + x) * 3
			img.SetNRGBA(x, y, color.NRGBA{R: data[i], G: data[i+1], B: data[i+2], A: 255})
		}
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 85}); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}

	return buf.Bytes(), nil
}

// DecodeToRaw decodes a JPEG and scales it to width x height, returning raw
// interleaved RGB bytes. Nearest-neighbor is enough for replayed frames.
func DecodeToRaw(jpegData []byte, width, height int) ([]byte, error) {
	img, _, err := image.Decode(bytes.NewReader(jpegData))
	if err != nil {
		return nil, fmt.Errorf("decode frame: %w", err)
	}

	bounds := img.Bounds()
	srcW := bounds.Dx()
	srcH := bounds.Dy()
	if srcW == 0 || srcH == 0 {
		return nil, fmt.Errorf("decoded frame is empty")
	}

	out := make([]byte, width*height*3)
	for y := 0; y < height; y++ {
		sy := bounds.Min.Y + y*srcH/height
		for x := 0; x < width; x++ {
			sx := bounds.Min.X + x*srcW/width
			r, g, b, _ := img.At(sx, sy).RGBA()
			i := (y*width + x) * 3
			out[i] = byte(r >> 8)
			out[i+1] = byte(g >> 8)
			out[i+2] = byte(b >> 8)
		}
	}

	return out, nil
}

// Gray converts a raw RGB frame to one luma byte per pixel.
func Gray(data []byte) []byte {
	gray := make([]byte, len(data)/3)
	for i := range gray {
		r := int(data[i*3])
		g := int(data[i*3+1])
		b := int(data[i*3+2])
		// BT.601 integer approximation
		gray[i] = byte((299*r + 587*g + 114*b) / 1000)
	}
	return gray
}
