package config

import (
	"hotelcore/services/logger"
	"hotelcore/services/notification"
)

// ConnectKafka tạo producer khi có KAFKA_BROKERS, nếu không thì bỏ qua
func ConnectKafka(c Config, log logger.Logger) (*notification.KafkaPublisher, error) {
	if len(c.KafkaBrokers) == 0 {
		return nil, nil
	}
	pub, err := notification.NewKafkaPublisher(c.KafkaBrokers, c.KafkaTopic, notification.NewKafkaConfig("hotelcore-"+c.Env))
	if err != nil {
		return nil, err
	}
	log.Info("kafka producer ready", "brokers", c.KafkaBrokers, "topic", c.KafkaTopic)
	return pub, nil
}
