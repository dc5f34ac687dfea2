package kafka

import (
	"context"
	"log"
	"time"

	"github.com/IBM/sarama"
)

const consumeRetryDelay = 5 * time.Second

// ConsumerMessage carries one Kafka message plus the session needed to ack
// it after successful processing.
type ConsumerMessage struct {
	Value   []byte
	Session sarama.ConsumerGroupSession
	Message *sarama.ConsumerMessage
}

// Ack marks the message as processed. Unacked messages are redelivered on
// the next group rebalance.
func (m ConsumerMessage) Ack() {
	m.Session.MarkMessage(m.Message, "")
}

// Consumer wraps a sarama consumer group and exposes its messages as a
// channel, re-entering the consume loop on rebalances and broker errors.
type Consumer struct {
	group    sarama.ConsumerGroup
	topic    string
	messages chan ConsumerMessage
	closed   chan struct{}
}

func NewConsumer(brokers []string, groupID, topic string) (*Consumer, error) {
	config := sarama.NewConfig()
	config.Version = sarama.V2_6_0_0
	config.Consumer.Offsets.Initial = sarama.OffsetOldest

	group, err := sarama.NewConsumerGroup(brokers, groupID, config)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:    group,
		topic:    topic,
		messages: make(chan ConsumerMessage),
		closed:   make(chan struct{}),
	}, nil
}

// StartListening consumes in the background until the context is cancelled.
func (c *Consumer) StartListening(ctx context.Context) {
	handler := &groupHandler{messages: c.messages, closed: c.closed}

	go func() {
		defer close(c.messages)

		for {
			if ctx.Err() != nil {
				log.Println("Consumer: context cancelled, stopping")
				return
			}

			// Consume returns on every rebalance; errors are retried
			// with a fixed delay.
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				log.Printf("Consumer: consume error: %v, retrying in %v", err, consumeRetryDelay)
				select {
				case <-ctx.Done():
					return
				case <-time.After(consumeRetryDelay):
				}
			}
		}
	}()
}

// Messages returns the channel the consume loop feeds.
func (c *Consumer) Messages() <-chan ConsumerMessage {
	return c.messages
}

func (c *Consumer) Close() error {
	close(c.closed)
	return c.group.Close()
}

type groupHandler struct {
	messages chan<- ConsumerMessage
	closed   <-chan struct{}
}

func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error   { return nil }
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error { return nil }

func (h *groupHandler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case msg, ok := <-claim.Messages():
			if !ok {
				return nil
			}
			select {
			case h.messages <- ConsumerMessage{Value: msg.Value, Session: sess, Message: msg}:
			case <-sess.Context().Done():
				return nil
			case <-h.closed:
				return nil
			}
		case <-sess.Context().Done():
			return nil
		case <-h.closed:
			return nil
		}
	}
}
