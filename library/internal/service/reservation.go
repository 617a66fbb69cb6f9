package service

import (
	"context"
	"time"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/events"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/repository"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type ReservationService struct {
	log       *zap.Logger
	repo      repository.Repository
	publisher events.Publisher
	now       func() time.Time
}

type ReservationOption func(s *ReservationService)

// WithClock replaces time.Now as the source of reservation dates.
func WithClock(now func() time.Time) ReservationOption {
	return func(s *ReservationService) {
		s.now = now
	}
}

func NewReservationService(
	repo repository.Repository,
	publisher events.Publisher,
	log *zap.Logger,
	opts ...ReservationOption,
) *ReservationService {
	s := &ReservationService{
		log:       log.Named("reservations"),
		repo:      repo,
		publisher: publisher,
		now:       time.Now,
	}
	for _, op := range opts {
		op(s)
	}
	return s
}

func (s *ReservationService) Get(ctx context.Context, id int) (model.Reservation, error) {
	s.log.Info("retrieving reservation", zap.Int("reservation_id", id))
	reservation, err := s.repo.GetReservation(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("reservation not found", zap.Int("reservation_id", id))
		}
		return model.Reservation{}, err
	}
	return reservation, nil
}

// Create reserves an available book for the customer for ReservationPeriod
// and marks the book Unavailable.
func (s *ReservationService) Create(ctx context.Context, customerID, bookID int) (model.Reservation, error) {
	log := s.log.With(zap.Int("customer_id", customerID), zap.Int("book_id", bookID))
	log.Info("adding reservation")

	var created model.Reservation
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		book, err := s.repo.GetBookForUpdate(ctx, bookID)
		switch {
		case errors.Is(err, errs.ErrNotFound):
			log.Warn("book not found")
			return errs.ErrBookUnavailable
		case err != nil:
			return err
		case book.Status != model.BookStatusAvailable:
			log.Warn("book is not available", zap.String("status", string(book.Status)))
			return errs.ErrBookUnavailable
		}

		if _, err = s.repo.GetCustomer(ctx, customerID); err != nil {
			if errors.Is(err, errs.ErrNotFound) {
				log.Warn("customer not found")
				return errs.ErrCustomerNotFound
			}
			return err
		}

		_, err = s.repo.FindReservation(ctx, customerID, bookID)
		switch {
		case err == nil:
			log.Warn("reservation already exists")
			return errs.ErrAlreadyReserved
		case !errors.Is(err, errs.ErrNotFound):
			return err
		}

		if err = writeErr(s.repo.SetBookStatus(ctx, bookID, model.BookStatusUnavailable)); err != nil {
			return errors.Wrap(err, "mark book unavailable")
		}
		created, err = s.repo.CreateReservation(ctx, model.NewReservation(customerID, bookID, s.now()))
		return err
	})
	if err != nil {
		return model.Reservation{}, err
	}

	log.Info("reservation added", zap.Int("reservation_id", created.ID))
	s.publish(ctx, model.EventReservationCreated, created)
	return created, nil
}

// Delete cancels the reservation and puts its book back on the shelf.
func (s *ReservationService) Delete(ctx context.Context, id int) error {
	log := s.log.With(zap.Int("reservation_id", id))
	log.Info("deleting reservation")

	var reservation model.Reservation
	err := s.repo.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		reservation, err = s.repo.GetReservation(ctx, id)
		if err != nil {
			return err
		}

		// The book may be gone already; that is not an error.
		res, err := s.repo.SetBookStatus(ctx, reservation.BookID, model.BookStatusAvailable)
		if res != model.WriteNotFound {
			if err = writeErr(res, err); err != nil {
				return errors.Wrap(err, "mark book available")
			}
		}

		return writeErr(s.repo.DeleteReservation(ctx, id))
	})
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			log.Warn("reservation not found")
		}
		return err
	}

	log.Info("reservation deleted", zap.Int("book_id", reservation.BookID))
	s.publish(ctx, model.EventReservationCancelled, reservation)
	return nil
}

// publish runs after commit, so it must not depend on the caller still waiting.
func (s *ReservationService) publish(ctx context.Context, typ model.EventType, r model.Reservation) {
	ctx = context.WithoutCancel(ctx)
	event := model.ReservationEvent{
		ID:            uuid.NewString(),
		Type:          typ,
		ReservationID: r.ID,
		CustomerID:    r.CustomerID,
		BookID:        r.BookID,
		OccurredAt:    s.now().UTC(),
	}
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.log.Warn("publish reservation event",
			zap.String("type", string(typ)),
			zap.Int("reservation_id", r.ID),
			zap.Error(err),
		)
	}
}
