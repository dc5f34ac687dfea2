package frame

import "fmt"

// Hub owns one Channel per camera. Built once at startup, read-only after.
type Hub struct {
	channels map[int]*Channel
}

func NewHub() *Hub {
	return &Hub{channels: make(map[int]*Channel)}
}

// Add registers a channel for the camera. Returns an error on duplicates.
func (h *Hub) Add(cameraID, width, height, channels int) (*Channel, error) {
	if _, ok := h.channels[cameraID]; ok {
		return nil, fmt.Errorf("camera %d already registered", cameraID)
	}
	ch := NewChannel(cameraID, width, height, channels)
	h.channels[cameraID] = ch
	return ch, nil
}

// Get returns the channel for the camera, or nil if unknown.
func (h *Hub) Get(cameraID int) *Channel {
	return h.channels[cameraID]
}
