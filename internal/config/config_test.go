package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, `
postgres:
  dsn: "postgres://localhost/aegis?sslmode=disable"
cameras:
  - camera_id: 0
    detections: [motion, face]
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, 640, cfg.Frames.Width)
	assert.Equal(t, 480, cfg.Frames.Height)
	assert.Equal(t, 3, cfg.Frames.Channels)
	assert.Equal(t, 100, cfg.Detection.MotionThreshold)
	assert.Equal(t, 50*time.Millisecond, cfg.IdleSleep())
	assert.Equal(t, 100*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, ":8080", cfg.API.Addr)

	require.Len(t, cfg.Cameras, 1)
	assert.True(t, cfg.Cameras[0].Enabled(models.KindFace))
	assert.False(t, cfg.Cameras[0].Enabled(models.KindObject))
}

func TestLoadConfigPolicyDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `{}`))
	require.NoError(t, err)

	for _, kind := range []models.Kind{models.KindMotion, models.KindObject, models.KindWeapon, models.KindFace} {
		pol := cfg.PolicyFor(kind)
		assert.Equal(t, 60*time.Second, pol.TriggerInterval(), "kind %s", kind)
		assert.Equal(t, 10*time.Second, pol.DedupInterval(), "kind %s", kind)
	}

	assert.False(t, cfg.PolicyFor(models.KindMotion).Drain(), "motion never drains by default")
	assert.True(t, cfg.PolicyFor(models.KindObject).Drain())
	assert.True(t, cfg.PolicyFor(models.KindWeapon).Drain())
	assert.True(t, cfg.PolicyFor(models.KindFace).Drain())
}

func TestLoadConfigExplicitDrainFalseSurvivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
alerting:
  face:
    drain_on_fire: false
`))
	require.NoError(t, err)

	assert.False(t, cfg.PolicyFor(models.KindFace).Drain())
	assert.True(t, cfg.PolicyFor(models.KindObject).Drain(), "other kinds keep their default")
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	t.Setenv("MOTION_THRESHOLD", "250")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092,kafka-2:9092")

	cfg, err := LoadConfig(writeConfig(t, `
detection:
  motion_threshold: 80
kafka:
  brokers: [localhost:9092]
`))
	require.NoError(t, err)

	assert.Equal(t, 250, cfg.Detection.MotionThreshold)
	assert.Equal(t, []string{"kafka-1:9092", "kafka-2:9092"}, cfg.Kafka.Brokers)
}

func TestLoadConfigCustomIntervals(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
alerting:
  idle_sleep_ms: 25
  motion:
    trigger_interval_sec: 120
    dedup_interval_sec: 15
`))
	require.NoError(t, err)

	assert.Equal(t, 25*time.Millisecond, cfg.IdleSleep())
	pol := cfg.PolicyFor(models.KindMotion)
	assert.Equal(t, 2*time.Minute, pol.TriggerInterval())
	assert.Equal(t, 15*time.Second, pol.DedupInterval())
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}
