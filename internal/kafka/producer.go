package kafka

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/IBM/sarama"

	"github.com/chetanyadav256/Aegis-Surveillance-System/internal/models"
)

type Producer struct {
	producer       sarama.SyncProducer
	alertTopic     string
	heartbeatTopic string
}

// NewProducer creates a sync producer that waits for full acks.
func NewProducer(brokers []string, alertTopic, heartbeatTopic string) (*Producer, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.RequiredAcks = sarama.WaitForAll

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, err
	}

	return &Producer{
		producer:       producer,
		alertTopic:     alertTopic,
		heartbeatTopic: heartbeatTopic,
	}, nil
}

func (p *Producer) Close() error {
	if err := p.producer.Close(); err != nil {
		return fmt.Errorf("failed to close Kafka producer: %w", err)
	}
	return nil
}

// PublishAlert sends one fired alert to the alert topic, keyed by camera so
// per-camera ordering is preserved.
func (p *Producer) PublishAlert(event models.AlertEvent) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: p.alertTopic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.CameraID)),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = p.producer.SendMessage(kafkaMsg)
	return err
}

// SendHeartbeat reports capture liveness for one camera.
func (p *Producer) SendHeartbeat(msg models.Heartbeat) error {
	payload, err := json.Marshal(msg)
	if err != nil {
		return err
	}

	kafkaMsg := &sarama.ProducerMessage{
		Topic: p.heartbeatTopic,
		Key:   sarama.StringEncoder(strconv.Itoa(msg.CameraID)),
		Value: sarama.ByteEncoder(payload),
	}

	_, _, err = p.producer.SendMessage(kafkaMsg)
	return err
}
