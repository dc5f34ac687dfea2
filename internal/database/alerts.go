package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// InsertAlert persists a new alert record.
func (d *Database) InsertAlert(ctx context.Context, alert *models.AlertRecord) error {
	_, err := d.querier(ctx).ExecContext(ctx,
		`INSERT INTO alerts (id, camera, location, time, message, severity, status, is_true_detection)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		alert.ID,
		alert.Camera,
		alert.Location,
		alert.Time,
		alert.Message,
		alert.Severity,
		alert.Status,
		alert.IsTrueDetection,
	)
	if err != nil {
		return fmt.Errorf("failed to insert alert: %w", err)
	}

	return nil
}

// GetAlert returns one alert by id, or nil when not found.
func (d *Database) GetAlert(ctx context.Context, id string) (*models.AlertRecord, error) {
	row := d.querier(ctx).QueryRowContext(ctx, `
		SELECT id, camera, location, time, message, severity, status, is_true_detection
		FROM alerts
		WHERE id = $1
	`, id)

	var alert models.AlertRecord
	err := row.Scan(
		&alert.ID,
		&alert.Camera,
		&alert.Location,
		&alert.Time,
		&alert.Message,
		&alert.Severity,
		&alert.Status,
		&alert.IsTrueDetection,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get alert: %w", err)
	}

	return &alert, nil
}

// ListAlerts returns the newest alerts, most recent first.
func (d *Database) ListAlerts(ctx context.Context, limit int) ([]models.AlertRecord, error) {
	rows, err := d.querier(ctx).QueryContext(ctx, `
		SELECT id, camera, location, time, message, severity, status, is_true_detection
		FROM alerts
		ORDER BY time DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var alerts []models.AlertRecord
	for rows.Next() {
		var a models.AlertRecord
		err := rows.Scan(
			&a.ID,
			&a.Camera,
			&a.Location,
			&a.Time,
			&a.Message,
			&a.Severity,
			&a.Status,
			&a.IsTrueDetection,
		)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}

	return alerts, nil
}

// ReviewAlert records a reviewer's verdict. The pipeline itself never calls
// this; alerts are mutated only through the review API.
func (d *Database) ReviewAlert(ctx context.Context, id, status string, isTrueDetection *bool) error {
	res, err := d.querier(ctx).ExecContext(ctx,
		"UPDATE alerts SET status = $1, is_true_detection = $2 WHERE id = $3",
		status,
		isTrueDetection,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to review alert: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}

	return nil
}
