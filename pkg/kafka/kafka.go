package kafka

import (
	"time"

	"github.com/IBM/sarama"
)

const ReservationTopic = "library.reservations"

type Config struct {
	Addrs        []string      `envconfig:"KAFKA_ADDRS"`
	Topic        string        `envconfig:"KAFKA_RESERVATION_TOPIC"`
	ClientID     string        `envconfig:"KAFKA_CLIENT_ID" default:"library-booking"`
	WriteTimeout time.Duration `envconfig:"KAFKA_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether brokers are configured.
func (c Config) Enabled() bool {
	return len(c.Addrs) > 0
}

// ReservationTopicName is the configured topic, ReservationTopic when unset.
func (c Config) ReservationTopicName() string {
	if c.Topic == "" {
		return ReservationTopic
	}
	return c.Topic
}

func NewProducer(cfg Config) (sarama.SyncProducer, error) {
	return sarama.NewSyncProducer(cfg.Addrs, producerConfig(cfg))
}

func producerConfig(cfg Config) *sarama.Config {
	defaultCfg := sarama.NewConfig()
	if cfg.ClientID != "" {
		defaultCfg.ClientID = cfg.ClientID
	}
	defaultCfg.Producer.RequiredAcks = sarama.WaitForAll
	defaultCfg.Producer.Return.Successes = true
	defaultCfg.Producer.Partitioner = sarama.NewHashPartitioner
	if cfg.WriteTimeout > 0 {
		defaultCfg.Producer.Timeout = cfg.WriteTimeout
		defaultCfg.Net.WriteTimeout = cfg.WriteTimeout
	}
	return defaultCfg
}
