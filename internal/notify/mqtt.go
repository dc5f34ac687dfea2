package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// MQTT publishes alerts to a broker topic for downstream integrations.
type MQTT struct {
	client mqtt.Client
	topic  string
}

type mqttAlert struct {
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ImagePath string `json:"image_path,omitempty"`
	Timestamp string `json:"timestamp"`
}

func NewMQTT(broker, clientID, topic string) (*MQTT, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(5 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("connect to MQTT broker %s: %w", broker, token.Error())
	}

	return &MQTT{client: client, topic: topic}, nil
}

func (m *MQTT) Publish(subject, message, imagePath string) error {
	payload, err := json.Marshal(mqttAlert{
		Subject:   subject,
		Message:   message,
		ImagePath: imagePath,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return err
	}

	token := m.client.Publish(m.topic, 0, false, payload)
	token.Wait()
	return token.Error()
}

func (m *MQTT) Close() {
	m.client.Disconnect(250)
}
