package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// KindPolicy holds the suppression knobs for one detection kind. The source
// system carried two independent intervals (a broad 60s "can trigger" gate
// and a 10s in-aggregator dedup gate); both are kept as named fields rather
// than collapsed, and a firing requires both to have elapsed.
type KindPolicy struct {
	TriggerIntervalSec int `yaml:"trigger_interval_sec"`
	DedupIntervalSec   int `yaml:"dedup_interval_sec"`
	// DrainOnFire is a pointer so an explicit false in YAML survives the
	// defaulting pass.
	DrainOnFire *bool `yaml:"drain_on_fire"`
}

func (p KindPolicy) Drain() bool {
	return p.DrainOnFire != nil && *p.DrainOnFire
}

func (p KindPolicy) TriggerInterval() time.Duration {
	return time.Duration(p.TriggerIntervalSec) * time.Second
}

func (p KindPolicy) DedupInterval() time.Duration {
	return time.Duration(p.DedupIntervalSec) * time.Second
}

// Config is the full pipeline configuration.
type Config struct {
	Postgres struct {
		DSN string `yaml:"dsn" env:"DATABASE_DSN"`
	} `yaml:"postgres"`

	Minio struct {
		Endpoint       string `yaml:"endpoint" env:"MINIO_ENDPOINT"`
		AccessKey      string `yaml:"access_key" env:"MINIO_ACCESS_KEY"`
		SecretKey      string `yaml:"secret_key" env:"MINIO_SECRET_KEY"`
		FrameBucket    string `yaml:"frame_bucket" env:"MINIO_FRAME_BUCKET"`
		SnapshotBucket string `yaml:"snapshot_bucket" env:"MINIO_SNAPSHOT_BUCKET"`
	} `yaml:"minio"`

	Kafka struct {
		Brokers        []string `yaml:"brokers" env:"KAFKA_BROKERS" envSeparator:","`
		GroupID        string   `yaml:"group_id" env:"KAFKA_GROUP_ID"`
		CommandTopic   string   `yaml:"command_topic" env:"COMMAND_TOPIC"`
		AlertTopic     string   `yaml:"alert_topic" env:"ALERT_TOPIC"`
		HeartbeatTopic string   `yaml:"heartbeat_topic" env:"HEARTBEAT_TOPIC"`
	} `yaml:"kafka"`

	Detection struct {
		MotionThreshold int    `yaml:"motion_threshold" env:"MOTION_THRESHOLD"`
		ObjectEndpoint  string `yaml:"object_endpoint" env:"OBJECT_ENDPOINT"`
		WeaponEndpoint  string `yaml:"weapon_endpoint" env:"WEAPON_ENDPOINT"`
		FaceEndpoint    string `yaml:"face_endpoint" env:"FACE_ENDPOINT"`
		PollIntervalMs  int    `yaml:"poll_interval_ms" env:"DETECTION_POLL_INTERVAL_MS"`
	} `yaml:"detection"`

	Frames struct {
		Width    int `yaml:"width" env:"FRAME_WIDTH"`
		Height   int `yaml:"height" env:"FRAME_HEIGHT"`
		Channels int `yaml:"channels" env:"FRAME_CHANNELS"`
	} `yaml:"frames"`

	Alerting struct {
		LogPath      string     `yaml:"log_path" env:"ALERT_LOG_PATH"`
		SnapshotDir  string     `yaml:"snapshot_dir" env:"SNAPSHOT_DIR"`
		IdleSleepMs  int        `yaml:"idle_sleep_ms" env:"AGGREGATOR_IDLE_SLEEP_MS"`
		QueueCap     int        `yaml:"queue_capacity" env:"EVENT_QUEUE_CAPACITY"`
		Motion       KindPolicy `yaml:"motion"`
		Object       KindPolicy `yaml:"object"`
		Weapon       KindPolicy `yaml:"weapon"`
		Face         KindPolicy `yaml:"face"`
	} `yaml:"alerting"`

	Email struct {
		Enabled    bool   `yaml:"enabled" env:"ENABLE_EMAIL_NOTIFICATIONS"`
		SMTPHost   string `yaml:"smtp_host" env:"SMTP_HOST"`
		SMTPPort   int    `yaml:"smtp_port" env:"SMTP_PORT"`
		Username   string `yaml:"username" env:"MAIL_USERNAME"`
		Password   string `yaml:"password" env:"MAIL_PASSWORD"`
		AdminEmail string `yaml:"admin_email" env:"ADMIN_EMAIL"`
	} `yaml:"email"`

	MQTT struct {
		Enabled  bool   `yaml:"enabled" env:"ENABLE_MQTT_NOTIFICATIONS"`
		Broker   string `yaml:"broker" env:"MQTT_BROKER"`
		ClientID string `yaml:"client_id" env:"MQTT_CLIENT_ID"`
		Topic    string `yaml:"topic" env:"MQTT_TOPIC"`
	} `yaml:"mqtt"`

	API struct {
		Addr string `yaml:"addr" env:"API_ADDR"`
	} `yaml:"api"`

	Cameras []models.CameraConfig `yaml:"cameras"`
}

// PolicyFor returns the suppression policy for the given kind.
func (c *Config) PolicyFor(kind models.Kind) KindPolicy {
	switch kind {
	case models.KindMotion:
		return c.Alerting.Motion
	case models.KindObject:
		return c.Alerting.Object
	case models.KindWeapon:
		return c.Alerting.Weapon
	case models.KindFace:
		return c.Alerting.Face
	}
	return KindPolicy{}
}

// IdleSleep returns the aggregator's per-cycle sleep.
func (c *Config) IdleSleep() time.Duration {
	return time.Duration(c.Alerting.IdleSleepMs) * time.Millisecond
}

// PollInterval returns the worker's between-frame sleep.
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.Detection.PollIntervalMs) * time.Millisecond
}

func LoadConfig(filename string) (*Config, error) {
	cfg := &Config{}

	if filename == "" {
		filename = "internal/config/local.yaml"
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// Environment variables take priority over the YAML file
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Frames.Width == 0 {
		c.Frames.Width = 640
	}
	if c.Frames.Height == 0 {
		c.Frames.Height = 480
	}
	if c.Frames.Channels == 0 {
		c.Frames.Channels = 3
	}
	if c.Detection.MotionThreshold == 0 {
		c.Detection.MotionThreshold = 100
	}
	if c.Detection.PollIntervalMs == 0 {
		c.Detection.PollIntervalMs = 100
	}
	if c.Alerting.IdleSleepMs == 0 {
		c.Alerting.IdleSleepMs = 50
	}
	if c.Alerting.LogPath == "" {
		c.Alerting.LogPath = "data/alerts/alerts_log.txt"
	}
	if c.Alerting.SnapshotDir == "" {
		c.Alerting.SnapshotDir = "data/alerts"
	}
	if c.API.Addr == "" {
		c.API.Addr = ":8080"
	}

	// Source values: 60s trigger gate, 10s dedup gate, drain after firing
	// for face and object/weapon but not motion.
	apply := func(p *KindPolicy, drain bool) {
		if p.TriggerIntervalSec == 0 {
			p.TriggerIntervalSec = 60
		}
		if p.DedupIntervalSec == 0 {
			p.DedupIntervalSec = 10
		}
		if p.DrainOnFire == nil {
			p.DrainOnFire = &drain
		}
	}
	apply(&c.Alerting.Motion, false)
	apply(&c.Alerting.Object, true)
	apply(&c.Alerting.Weapon, true)
	apply(&c.Alerting.Face, true)
}
