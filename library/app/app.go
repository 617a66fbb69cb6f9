package app

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Astemirdum/library-booking/library/config"
	"github.com/Astemirdum/library-booking/library/internal/events"
	"github.com/Astemirdum/library-booking/library/internal/handler"
	"github.com/Astemirdum/library-booking/library/internal/repository"
	"github.com/Astemirdum/library-booking/library/internal/server"
	"github.com/Astemirdum/library-booking/library/internal/service"
	"github.com/Astemirdum/library-booking/library/migrations"
	"github.com/Astemirdum/library-booking/pkg/kafka"
	"github.com/Astemirdum/library-booking/pkg/logger"
	"github.com/Astemirdum/library-booking/pkg/postgres"
	"github.com/pkg/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const shutdownTimeout = 5 * time.Second

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "library")
	defer log.Sync() //nolint:errcheck

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewPostgresDB(ctx, &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return errors.Wrap(err, "db init")
	}
	defer db.Close()

	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return errors.Wrap(err, "repo")
	}

	publisher := events.NewNopPublisher()
	if cfg.Kafka.Enabled() {
		producer, err := kafka.NewProducer(cfg.Kafka)
		if err != nil {
			return errors.Wrap(err, "kafka.NewProducer")
		}
		defer func() {
			if err := producer.Close(); err != nil {
				log.Warn("kafka producer close", zap.Error(err))
			}
		}()
		topic := cfg.Kafka.ReservationTopicName()
		publisher = events.NewKafkaPublisher(producer, topic, log)
		log.Info("reservation events enabled",
			zap.Strings("brokers", cfg.Kafka.Addrs), zap.String("topic", topic))
	} else {
		log.Info("kafka is not configured, reservation events are dropped")
	}

	h := handler.New(
		service.NewBookService(repo, log),
		service.NewCustomerService(repo, log),
		service.NewReservationService(repo, publisher, log),
		log,
	)
	srv := server.NewServer(cfg.Server, h.NewRouter())

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("http server start ON: ", zap.String("addr", srv.Addr()))
		return srv.Run()
	})
	g.Go(func() error {
		<-gCtx.Done()
		log.Debug("Graceful shutdown")

		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	if err = g.Wait(); err != nil {
		return errors.Wrap(err, "server")
	}
	log.Info("Graceful shutdown finished")
	return nil
}
