package aggregator

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

func TestAlertLogLineFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.txt")
	l := NewAlertLog(path)

	ts := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)
	require.NoError(t, l.Append(models.KindMotion, 0, models.SeverityMedium, "Motion detected with score 150", "/snapshots/motion_cam0.jpg", ts))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		"[2026-03-14 09:26:53] MOTION ALERT - Camera: 0 | Severity: medium | Message: Motion detected with score 150 | Image: /snapshots/motion_cam0.jpg\n",
		string(data))
}

func TestAlertLogMissingImageWritesNone(t *testing.T) {
	path := filepath.Join(t.TempDir(), "alerts_log.txt")
	l := NewAlertLog(path)

	require.NoError(t, l.Append(models.KindFace, 3, models.SeverityHigh, "Face detected: Unknown", "", time.Now()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "| Image: none")
}

func TestAlertLogAppendsAcrossWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log", "alerts_log.txt")
	l := NewAlertLog(path)

	now := time.Now()
	require.NoError(t, l.Append(models.KindObject, 1, models.SeverityHigh, "Object detected: car", "a.jpg", now))
	require.NoError(t, l.Append(models.KindWeapon, 1, models.SeverityHigh, "Weapon detected: pistol", "b.jpg", now))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(data), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "OBJECT ALERT")
	assert.Contains(t, lines[1], "WEAPON ALERT")
}
