package events

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/pkg/circuit_breaker"
	"github.com/Astemirdum/library-booking/pkg/kafka"
	"github.com/IBM/sarama"
	"github.com/IBM/sarama/mocks"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testEvent() model.ReservationEvent {
	return model.ReservationEvent{
		ID:            "8f0c7a8e-2b7e-4d8a-9d1e-0d3c1a9b6f11",
		Type:          model.EventReservationCreated,
		ReservationID: 42,
		CustomerID:    1,
		BookID:        7,
		OccurredAt:    time.Date(2023, 10, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestKafkaPublisher_Publish(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	event := testEvent()
	producer.ExpectSendMessageWithMessageCheckerFunctionAndSucceed(func(msg *sarama.ProducerMessage) error {
		assert.Equal(t, kafka.ReservationTopic, msg.Topic)
		key, err := msg.Key.Encode()
		require.NoError(t, err)
		assert.Equal(t, "42", string(key))

		value, err := msg.Value.Encode()
		require.NoError(t, err)
		var got model.ReservationEvent
		require.NoError(t, jsoniter.Unmarshal(value, &got))
		assert.Equal(t, event, got)
		return nil
	})

	p := NewKafkaPublisher(producer, kafka.ReservationTopic, zap.NewNop())
	require.NoError(t, p.Publish(context.Background(), event))
}

func TestKafkaPublisher_OpensBreaker(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	sendErr := errors.New("broker down")
	cfg := circuit_breaker.DefaultConfig()
	trips := int(cfg.Percentile * float64(cfg.RecordLength))
	for i := 0; i < trips; i++ {
		producer.ExpectSendMessageAndFail(sendErr)
	}

	p := NewKafkaPublisher(producer, kafka.ReservationTopic, zap.NewNop())
	for i := 0; i < trips; i++ {
		err := p.Publish(context.Background(), testEvent())
		require.ErrorIs(t, err, sendErr)
	}

	err := p.Publish(context.Background(), testEvent())
	require.ErrorIs(t, err, circuit_breaker.ErrOpenCB)
}

func TestKafkaPublisher_CanceledContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewKafkaPublisher(producer, kafka.ReservationTopic, zap.NewNop())
	require.ErrorIs(t, p.Publish(ctx, testEvent()), context.Canceled)
}

func TestKafkaPublisher_DetachedContext(t *testing.T) {
	producer := mocks.NewSyncProducer(t, nil)
	defer func() { require.NoError(t, producer.Close()) }()
	producer.ExpectSendMessageAndSucceed()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewKafkaPublisher(producer, kafka.ReservationTopic, zap.NewNop())
	require.NoError(t, p.Publish(context.WithoutCancel(ctx), testEvent()))
}

func TestNopPublisher(t *testing.T) {
	require.NoError(t, NewNopPublisher().Publish(context.Background(), testEvent()))
}
