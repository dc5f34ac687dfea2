package models

import "time"

// Kind is the detection category an event belongs to.
type Kind string

const (
	KindMotion Kind = "motion"
	KindObject Kind = "object"
	KindWeapon Kind = "weapon"
	KindFace   Kind = "face"
)

// Severity levels for alerts
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Alert statuses. Set to StatusNew by the pipeline, changed only by a reviewer.
const (
	StatusNew       = "New"
	StatusReviewed  = "Reviewed"
	StatusDismissed = "Dismissed"
)

// Detection is one raw detector result.
type Detection struct {
	Label      string    `json:"label"`
	Confidence float64   `json:"confidence"`
	Box        []float64 `json:"box"` // [x1, y1, x2, y2]
}

// DetectionEvent is the tagged payload a worker pushes onto an event queue.
// Label, Confidence and ImagePath are kind-specific and may be empty.
type DetectionEvent struct {
	CameraID    int       `json:"camera_id"`
	Kind        Kind      `json:"kind"`
	Label       string    `json:"label,omitempty"`
	Confidence  float64   `json:"confidence,omitempty"`
	MotionScore int       `json:"motion_score,omitempty"`
	ImagePath   string    `json:"image_path,omitempty"`
	Severity    Severity  `json:"severity"`
	Timestamp   time.Time `json:"timestamp"`
}

// CameraConfig is the per-camera configuration snapshot entry.
type CameraConfig struct {
	CameraID   int    `json:"camera_id" yaml:"camera_id"`
	Source     string `json:"source" yaml:"source"`
	Detections []Kind `json:"detections" yaml:"detections"`
}

// Enabled reports whether the given kind is switched on for this camera.
func (c CameraConfig) Enabled(kind Kind) bool {
	for _, k := range c.Detections {
		if k == kind {
			return true
		}
	}
	return false
}

// AlertRecord is the persisted form of a fired alert.
type AlertRecord struct {
	ID              string    `json:"id"`
	Camera          string    `json:"camera"`
	Location        string    `json:"location"`
	Time            time.Time `json:"time"`
	Message         string    `json:"message"`
	Severity        Severity  `json:"severity"`
	Status          string    `json:"status"`
	IsTrueDetection *bool     `json:"is_true_detection"`
}

// AlertEvent is the payload published to the alerts Kafka topic on each firing.
type AlertEvent struct {
	AlertID   string    `json:"alert_id"`
	CameraID  int       `json:"camera_id"`
	Kind      Kind      `json:"kind"`
	Severity  Severity  `json:"severity"`
	Message   string    `json:"message"`
	ImagePath string    `json:"image_path,omitempty"`
	TimeStamp time.Time `json:"timestamp"`
}

type CommandAction string

const (
	CommandStart CommandAction = "start"
	CommandStop  CommandAction = "stop"
)

// CameraCommand controls a capture producer at runtime.
type CameraCommand struct {
	CameraID int           `json:"camera_id"`
	Action   CommandAction `json:"action"`
}

// Heartbeat reports capture liveness for one camera.
type Heartbeat struct {
	CameraID  int           `json:"CameraID"`
	Action    CommandAction `json:"Action"`
	Frame     int64         `json:"Frame"`
	TimeStamp time.Time     `json:"TimeStamp"`
}
