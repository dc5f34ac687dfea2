// Package detect holds the detector capabilities workers run against frames:
// an in-process motion scorer and HTTP clients for the ML detector services.
package detect

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"time"

	"github.com/samber/lo"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/frame"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/imaging"
	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

// Client sends frames to one ML detector service and turns its detections
// into events of the configured kind.
type Client struct {
	URL  string
	Kind models.Kind

	httpClient *http.Client
}

func NewClient(baseURL string, kind models.Kind) *Client {
	return &Client{
		URL:        baseURL,
		Kind:       kind,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Analyze posts the JPEG bytes to /predict and decodes the detections.
func (c *Client) Analyze(imageData []byte) ([]models.Detection, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="frame.jpg"`)
	h.Set("Content-Type", "image/jpeg")

	part, err := writer.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("create form part: %w", err)
	}

	if _, err := part.Write(imageData); err != nil {
		return nil, fmt.Errorf("write image data: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close writer: %w", err)
	}

	req, err := http.NewRequest("POST", c.URL+"/predict", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("bad status: %s, error: %s", resp.Status, bodyBytes)
	}

	var detections []models.Detection
	if err := json.NewDecoder(resp.Body).Decode(&detections); err != nil {
		return nil, fmt.Errorf("decode detections: %w", err)
	}

	return detections, nil
}

// Detect runs the frame through the detector service. A result with no
// detections is not an event; anything labeled fires with severity high,
// carrying the highest-confidence label. Face detections without an identity
// are reported as "Unknown".
func (c *Client) Detect(f frame.Frame) (*models.DetectionEvent, error) {
	jpegData, err := imaging.EncodeJPEG(f.Data, f.Width, f.Height)
	if err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}

	detections, err := c.Analyze(jpegData)
	if err != nil {
		return nil, err
	}
	if len(detections) == 0 {
		return nil, nil
	}

	best := lo.MaxBy(detections, func(a, b models.Detection) bool {
		return a.Confidence > b.Confidence
	})

	label := best.Label
	if c.Kind == models.KindFace && label == "" {
		label = "Unknown"
	}

	return &models.DetectionEvent{
		CameraID:   f.CameraID,
		Kind:       c.Kind,
		Label:      label,
		Confidence: best.Confidence,
		Severity:   models.SeverityHigh,
		Timestamp:  time.Now(),
	}, nil
}
