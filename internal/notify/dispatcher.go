// Package notify delivers alert notifications: email to registered users,
// MQTT for integrations, and a local on-device notification sink.
package notify

import (
	"context"
	"log"
)

// Dispatcher fans an alert out to the configured transports. Any transport
// failure is logged and swallowed; a notification never blocks or rolls
// back alert processing.
type Dispatcher struct {
	email *Email
	mqtt  *MQTT
}

func NewDispatcher(email *Email, mqtt *MQTT) *Dispatcher {
	return &Dispatcher{email: email, mqtt: mqtt}
}

func (d *Dispatcher) Notify(ctx context.Context, subject, message, imagePath string) {
	if d.email != nil {
		d.email.Send(ctx, subject, message, imagePath)
	}
	if d.mqtt != nil {
		if err := d.mqtt.Publish(subject, message, imagePath); err != nil {
			log.Printf("Notify: MQTT publish failed: %v", err)
		}
	}
}

// NotifyLocal is the on-device notification boundary. Without a desktop
// environment it degrades to a log line.
func (d *Dispatcher) NotifyLocal(title, message string) {
	log.Printf("[NOTIFY] %s: %s", title, message)
}
