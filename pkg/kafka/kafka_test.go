package kafka

import (
	"testing"
	"time"

	"github.com/IBM/sarama"
	"github.com/stretchr/testify/require"
)

func TestConfig_Enabled(t *testing.T) {
	require.False(t, Config{}.Enabled())
	require.True(t, Config{Addrs: []string{"localhost:9092"}}.Enabled())
}

func TestConfig_ReservationTopicName(t *testing.T) {
	require.Equal(t, ReservationTopic, Config{}.ReservationTopicName())
	require.Equal(t, "custom.topic", Config{Topic: "custom.topic"}.ReservationTopicName())
}

func TestProducerConfig(t *testing.T) {
	cfg := producerConfig(Config{ClientID: "test-client", WriteTimeout: 2 * time.Second})

	require.Equal(t, "test-client", cfg.ClientID)
	require.Equal(t, sarama.WaitForAll, cfg.Producer.RequiredAcks)
	require.True(t, cfg.Producer.Return.Successes)
	require.Equal(t, 2*time.Second, cfg.Producer.Timeout)
	require.NoError(t, cfg.Validate())
}
