package aggregator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// AlertLog appends one line per firing to the alert log file. The file is
// opened and closed per write; safe under the single-aggregator assumption,
// not safe if two aggregators ever shared the path.
type AlertLog struct {
	path string
}

func NewAlertLog(path string) *AlertLog {
	return &AlertLog{path: path}
}

// Append writes one alert line:
// [YYYY-MM-DD HH:MM:SS] <KIND> ALERT - Camera: <id> | Severity: <level> | Message: <text> | Image: <path>
// A missing image path is written as "none".
func (l *AlertLog) Append(kind models.Kind, cameraID int, severity models.Severity, message, imagePath string, ts time.Time) error {
	if err := os.MkdirAll(filepath.Dir(l.path), 0755); err != nil {
		return fmt.Errorf("create alert log dir: %w", err)
	}

	if imagePath == "" {
		imagePath = "none"
	}
	line := fmt.Sprintf("[%s] %s ALERT - Camera: %d | Severity: %s | Message: %s | Image: %s\n",
		ts.Format("2006-01-02 15:04:05"),
		strings.ToUpper(string(kind)),
		cameraID,
		severity,
		message,
		imagePath,
	)

	f, err := os.OpenFile(l.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("open alert log: %w", err)
	}
	defer f.Close()

	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("write alert log: %w", err)
	}

	return nil
}
