package capture

import (
	"context"
	"fmt"
	"io"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/imaging"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/s3"
)

// ReplaySource streams JPEG frame objects from an S3 folder in name order,
// decoded and scaled to the pipeline's fixed frame shape. When loop is set
// the source wraps around instead of returning io.EOF, which turns a stored
// clip into an endless simulated camera.
type ReplaySource struct {
	client *s3.Client
	folder string
	width  int
	height int
	loop   bool

	keys []string
	next int
}

func NewReplaySource(ctx context.Context, client *s3.Client, folder string, width, height int, loop bool) (*ReplaySource, error) {
	keys, err := client.ListFrameObjects(ctx, folder)
	if err != nil {
		return nil, fmt.Errorf("list frames in %q: %w", folder, err)
	}
	if len(keys) == 0 {
		return nil, fmt.Errorf("no frames found in %q", folder)
	}

	return &ReplaySource{
		client: client,
		folder: folder,
		width:  width,
		height: height,
		loop:   loop,
		keys:   keys,
	}, nil
}

func (r *ReplaySource) Next(ctx context.Context) ([]byte, error) {
	if r.next >= len(r.keys) {
		if !r.loop {
			return nil, io.EOF
		}
		r.next = 0
	}

	key := r.keys[r.next]
	r.next++

	jpegData, err := r.client.DownloadFrame(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("download frame %q: %w", key, err)
	}

	return imaging.DecodeToRaw(jpegData, r.width, r.height)
}
