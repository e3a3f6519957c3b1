package notification

import (
	"context"

	"github.com/IBM/sarama"
	"github.com/goccy/go-json"
)

// KafkaPublisher writes events to a single topic keyed by hotel.
type KafkaPublisher struct {
	producer sarama.SyncProducer
	topic    string
}

// NewKafkaConfig returns an idempotent producer config.
func NewKafkaConfig(clientID string) *sarama.Config {
	cfg := sarama.NewConfig()
	cfg.ClientID = clientID
	cfg.Version = sarama.V2_8_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Idempotent = true
	cfg.Producer.Return.Successes = true
	cfg.Net.MaxOpenRequests = 1
	return cfg
}

func NewKafkaPublisher(brokers []string, topic string, cfg *sarama.Config) (*KafkaPublisher, error) {
	if cfg == nil {
		cfg = NewKafkaConfig("hotelcore")
	}
	p, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, err
	}
	return &KafkaPublisher{producer: p, topic: topic}, nil
}

// NewKafkaPublisherWithProducer wraps an existing producer.
func NewKafkaPublisherWithProducer(p sarama.SyncProducer, topic string) *KafkaPublisher {
	return &KafkaPublisher{producer: p, topic: topic}
}

func (k *KafkaPublisher) Publish(_ context.Context, e Event) error {
	payload, err := json.Marshal(e)
	if err != nil {
		return err
	}
	msg := &sarama.ProducerMessage{
		Topic: k.topic,
		Key:   sarama.StringEncoder(e.Key()),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte("event-type"), Value: []byte(e.Type)},
		},
	}
	_, _, err = k.producer.SendMessage(msg)
	return err
}

func (k *KafkaPublisher) Close() error {
	if k.producer == nil {
		return nil
	}
	return k.producer.Close()
}
