package repository

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"go.uber.org/zap"
)

func (r *repository) GetReservation(ctx context.Context, id int) (model.Reservation, error) {
	reservation, err := r.reservations.findByID(ctx, r.conn(ctx), id, false)
	return reservation.UTC(), err
}

func (r *repository) FindReservation(ctx context.Context, customerID, bookID int) (model.Reservation, error) {
	sb := qb.Select(r.reservations.columns...).
		From(reservationsTableName).
		Where(sq.Eq{"customer_id": customerID, "book_id": bookID}).
		Limit(1)
	reservation, err := r.reservations.findOne(ctx, r.conn(ctx), sb)
	return reservation.UTC(), err
}

func (r *repository) CreateReservation(ctx context.Context, reservation model.Reservation) (model.Reservation, error) {
	created, err := r.reservations.insert(ctx, r.conn(ctx), map[string]any{
		"customer_id":      reservation.CustomerID,
		"book_id":          reservation.BookID,
		"reservation_date": reservation.ReservationDate,
		"expiration_date":  reservation.ExpirationDate,
	})
	if err != nil {
		if isUniqueViolation(err) {
			r.log.Warn("CreateReservation duplicate",
				zap.Int("customer_id", reservation.CustomerID), zap.Int("book_id", reservation.BookID))
			return model.Reservation{}, errs.ErrAlreadyReserved
		}
		return model.Reservation{}, err
	}
	return created.UTC(), nil
}

func (r *repository) DeleteReservation(ctx context.Context, id int) (model.WriteResult, error) {
	return r.reservations.delete(ctx, r.conn(ctx), id)
}
