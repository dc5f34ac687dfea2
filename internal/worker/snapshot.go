package worker

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/imaging"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// SnapshotUploader mirrors saved snapshots into object storage.
type SnapshotUploader interface {
	UploadSnapshot(ctx context.Context, localPath string, data []byte) error
}

// Snapshotter writes a JPEG of the qualifying frame under
// <dir>/<kind>_alerts/<kind>_cam<id>_<timestamp>.jpg and mirrors it to
// object storage when an uploader is configured.
type Snapshotter struct {
	dir      string
	uploader SnapshotUploader
}

func NewSnapshotter(dir string, uploader SnapshotUploader) *Snapshotter {
	return &Snapshotter{dir: dir, uploader: uploader}
}

// Save returns the local path of the written snapshot. The mirror upload is
// best-effort: its failure is logged and does not fail the save.
func (s *Snapshotter) Save(ctx context.Context, kind models.Kind, f frame.Frame) (string, error) {
	jpegData, err := imaging.EncodeJPEG(f.Data, f.Width, f.Height)
	if err != nil {
		return "", fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Join(s.dir, fmt.Sprintf("%s_alerts", kind))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create snapshot dir: %w", err)
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_cam%d_%s.jpg", kind, f.CameraID, timestamp))

	if err := os.WriteFile(path, jpegData, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}

	if s.uploader != nil {
		if err := s.uploader.UploadSnapshot(ctx, path, jpegData); err != nil {
			log.Printf("Snapshot cam%d: mirror upload failed: %v", f.CameraID, err)
		}
	}

	return path, nil
}
