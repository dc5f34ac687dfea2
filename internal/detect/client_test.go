package detect

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

func detectorServer(t *testing.T, detections []models.Detection) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/predict", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "frame.jpg", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(detections))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestClientPicksHighestConfidenceDetection(t *testing.T) {
	srv := detectorServer(t, []models.Detection{
		{Label: "person", Confidence: 0.61},
		{Label: "backpack", Confidence: 0.93},
		{Label: "car", Confidence: 0.52},
	})
	c := NewClient(srv.URL, models.KindObject)

	ev, err := c.Detect(flatFrame(1, 8, 8, 128))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "backpack", ev.Label)
	assert.Equal(t, 0.93, ev.Confidence)
	assert.Equal(t, models.KindObject, ev.Kind)
	assert.Equal(t, models.SeverityHigh, ev.Severity)
	assert.Equal(t, 1, ev.CameraID)
}

func TestClientNoDetectionsMeansNoEvent(t *testing.T) {
	srv := detectorServer(t, []models.Detection{})
	c := NewClient(srv.URL, models.KindWeapon)

	ev, err := c.Detect(flatFrame(0, 8, 8, 128))
	require.NoError(t, err)
	assert.Nil(t, ev)
}

func TestClientUnidentifiedFaceLabeledUnknown(t *testing.T) {
	srv := detectorServer(t, []models.Detection{{Label: "", Confidence: 0.88}})
	c := NewClient(srv.URL, models.KindFace)

	ev, err := c.Detect(flatFrame(0, 8, 8, 128))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Equal(t, "Unknown", ev.Label)
}

func TestClientUnlabeledObjectKeepsEmptyLabel(t *testing.T) {
	srv := detectorServer(t, []models.Detection{{Label: "", Confidence: 0.7}})
	c := NewClient(srv.URL, models.KindObject)

	ev, err := c.Detect(flatFrame(0, 8, 8, 128))
	require.NoError(t, err)
	require.NotNil(t, ev)
	assert.Empty(t, ev.Label)
}

func TestClientErrorStatusSurfacesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "model not loaded", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)
	c := NewClient(srv.URL, models.KindObject)

	ev, err := c.Detect(flatFrame(0, 8, 8, 128))
	assert.Error(t, err)
	assert.Nil(t, ev)
}
