package detect

import (
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/imaging"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// pixelDelta is the per-pixel luma difference below which a pixel does not
// count towards the motion score.
const pixelDelta = 25

// Motion scores frames by differencing against a running background. The
// score is the count of pixels whose luma moved more than pixelDelta since
// the previous frame, roughly what the source's background subtractor
// produced. Not safe for concurrent use; each worker owns one instance.
type Motion struct {
	threshold int
	prev      []byte
}

func NewMotion(threshold int) *Motion {
	return &Motion{threshold: threshold}
}

// Score returns the motion intensity for the frame. The first frame always
// scores zero, it only seeds the background.
func (m *Motion) Score(f frame.Frame) int {
	gray := imaging.Gray(f.Data)

	if m.prev == nil || len(m.prev) != len(gray) {
		m.prev = gray
		return 0
	}

	score := 0
	for i := range gray {
		d := int(gray[i]) - int(m.prev[i])
		if d < 0 {
			d = -d
		}
		if d > pixelDelta {
			score++
		}
	}

	m.prev = gray
	return score
}

// Detect emits a motion event when the score clears the threshold.
func (m *Motion) Detect(f frame.Frame) (*models.DetectionEvent, error) {
	score := m.Score(f)
	if score <= m.threshold {
		return nil, nil
	}

	return &models.DetectionEvent{
		CameraID:    f.CameraID,
		Kind:        models.KindMotion,
		MotionScore: score,
		Severity:    models.SeverityMedium,
		Timestamp:   time.Now(),
	}, nil
}
