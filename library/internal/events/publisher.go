package events

import (
	"context"
	"strconv"

	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/pkg/circuit_breaker"
	"github.com/IBM/sarama"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type Publisher interface {
	Publish(ctx context.Context, event model.ReservationEvent) error
}

type kafkaPublisher struct {
	log      *zap.Logger
	producer sarama.SyncProducer
	topic    string
	cb       circuit_breaker.CircuitBreaker
}

// NewKafkaPublisher sends reservation events to topic, keyed by reservation id
// so that events of one reservation keep their order.
func NewKafkaPublisher(producer sarama.SyncProducer, topic string, log *zap.Logger) Publisher {
	return &kafkaPublisher{
		log:      log.Named("events"),
		producer: producer,
		topic:    topic,
		cb:       circuit_breaker.New(circuit_breaker.DefaultConfig()),
	}
}

func (p *kafkaPublisher) Publish(ctx context.Context, event model.ReservationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := jsoniter.Marshal(event)
	if err != nil {
		return errors.Wrap(err, "marshal event")
	}
	msg := &sarama.ProducerMessage{
		Topic: p.topic,
		Key:   sarama.StringEncoder(strconv.Itoa(event.ReservationID)),
		Value: sarama.ByteEncoder(data),
	}

	return p.cb.Call(func() error {
		partition, offset, err := p.producer.SendMessage(msg)
		if err != nil {
			return errors.Wrapf(err, "send %s", event.Type)
		}
		p.log.Debug("event published",
			zap.String("type", string(event.Type)),
			zap.Int("reservation_id", event.ReservationID),
			zap.Int32("partition", partition),
			zap.Int64("offset", offset),
		)
		return nil
	})
}

type nopPublisher struct{}

// NewNopPublisher drops every event. Used when no brokers are configured.
func NewNopPublisher() Publisher {
	return nopPublisher{}
}

func (nopPublisher) Publish(context.Context, model.ReservationEvent) error {
	return nil
}
