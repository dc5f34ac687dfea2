package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

func newMockDB(t *testing.T) (*Database, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return &Database{DB: db}, mock
}

func TestSyncCameraSettingsRunsInOneTransaction(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO camera_settings").
		WithArgs(0, "frames/cam0", "motion,face").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO camera_settings").
		WithArgs(1, "frames/cam1", "weapon").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := d.SyncCameraSettings(context.Background(), []models.CameraConfig{
		{CameraID: 0, Source: "frames/cam0", Detections: []models.Kind{models.KindMotion, models.KindFace}},
		{CameraID: 1, Source: "frames/cam1", Detections: []models.Kind{models.KindWeapon}},
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSyncCameraSettingsRollsBackOnFailure(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO camera_settings").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO camera_settings").
		WillReturnError(errors.New("connection reset"))
	mock.ExpectRollback()

	err := d.SyncCameraSettings(context.Background(), []models.CameraConfig{
		{CameraID: 0, Source: "frames/cam0"},
		{CameraID: 1, Source: "frames/cam1"},
	})

	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInTxNestedCallsReuseTransaction(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE alerts").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	valid := true
	err := d.InTx(context.Background(), func(ctx context.Context) error {
		return d.InTx(ctx, func(ctx context.Context) error {
			return d.ReviewAlert(ctx, "alert-1", models.StatusReviewed, &valid)
		})
	})

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet(), "inner InTx must not open a second transaction")
}

func TestInTxRollsBackOnError(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectBegin()
	mock.ExpectRollback()

	sentinel := errors.New("verdict rejected")
	err := d.InTx(context.Background(), func(ctx context.Context) error {
		return sentinel
	})

	assert.ErrorIs(t, err, sentinel)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewAlertReportsMissingAlert(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectExec("UPDATE alerts").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := d.ReviewAlert(context.Background(), "absent", models.StatusDismissed, nil)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestGetAlertNotFoundReturnsNil(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery("SELECT id, camera, location, time, message, severity, status, is_true_detection").
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "camera", "location", "time", "message", "severity", "status", "is_true_detection",
		}))

	alert, err := d.GetAlert(context.Background(), "absent")
	require.NoError(t, err)
	assert.Nil(t, alert)
}

func TestListCameraSettingsParsesDetections(t *testing.T) {
	d, mock := newMockDB(t)

	mock.ExpectQuery("SELECT camera_id, source, detections").
		WillReturnRows(sqlmock.NewRows([]string{"camera_id", "source", "detections"}).
			AddRow(0, "frames/cam0", "motion, face").
			AddRow(1, "frames/cam1", "weapon"))

	cameras, err := d.ListCameraSettings(context.Background())
	require.NoError(t, err)
	require.Len(t, cameras, 2)
	assert.Equal(t, []models.Kind{models.KindMotion, models.KindFace}, cameras[0].Detections)
	assert.True(t, cameras[1].Enabled(models.KindWeapon))
}
