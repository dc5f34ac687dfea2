package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// ListCameraSettings returns the stored camera configuration. Detections are
// stored as a comma-separated list of kinds.
func (d *Database) ListCameraSettings(ctx context.Context) ([]models.CameraConfig, error) {
	rows, err := d.querier(ctx).QueryContext(ctx, `
		SELECT camera_id, source, detections
		FROM camera_settings
		ORDER BY camera_id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cameras []models.CameraConfig
	for rows.Next() {
		var cam models.CameraConfig
		var detections string
		if err := rows.Scan(&cam.CameraID, &cam.Source, &detections); err != nil {
			return nil, err
		}
		cam.Detections = lo.Map(strings.Split(detections, ","), func(s string, _ int) models.Kind {
			return models.Kind(strings.TrimSpace(s))
		})
		cameras = append(cameras, cam)
	}

	return cameras, nil
}

// SyncCameraSettings stores the given camera configuration in one
// transaction, so a crash mid-sync never leaves a partial camera list for
// the next boot to read back.
func (d *Database) SyncCameraSettings(ctx context.Context, cameras []models.CameraConfig) error {
	return d.InTx(ctx, func(ctx context.Context) error {
		for _, cam := range cameras {
			if err := d.UpsertCameraSettings(ctx, cam); err != nil {
				return fmt.Errorf("sync camera %d: %w", cam.CameraID, err)
			}
		}
		return nil
	})
}

// UpsertCameraSettings stores the configuration for one camera.
func (d *Database) UpsertCameraSettings(ctx context.Context, cam models.CameraConfig) error {
	detections := strings.Join(lo.Map(cam.Detections, func(k models.Kind, _ int) string {
		return string(k)
	}), ",")

	_, err := d.querier(ctx).ExecContext(ctx,
		`INSERT INTO camera_settings (camera_id, source, detections) VALUES ($1, $2, $3)
		 ON CONFLICT (camera_id) DO UPDATE SET source = $2, detections = $3`,
		cam.CameraID,
		cam.Source,
		detections,
	)

	return err
}
