package model

import (
	"time"
)

// ReservationPeriod is the fixed loan window.
const ReservationPeriod = 7 * 24 * time.Hour

type Reservation struct {
	ID              int        `json:"id" db:"id"`
	CustomerID      int        `json:"customerId" db:"customer_id"`
	BookID          int        `json:"bookId" db:"book_id"`
	ReservationDate *time.Time `json:"reservationDate" db:"reservation_date"`
	ExpirationDate  *time.Time `json:"expirationDate" db:"expiration_date"`
}

func NewReservation(customerID, bookID int, now time.Time) Reservation {
	reserved := now.UTC()
	expires := reserved.Add(ReservationPeriod)
	return Reservation{
		CustomerID:      customerID,
		BookID:          bookID,
		ReservationDate: &reserved,
		ExpirationDate:  &expires,
	}
}

// UTC returns r with both dates in UTC; pgx decodes timestamptz into the local zone.
func (r Reservation) UTC() Reservation {
	if r.ReservationDate != nil {
		t := r.ReservationDate.UTC()
		r.ReservationDate = &t
	}
	if r.ExpirationDate != nil {
		t := r.ExpirationDate.UTC()
		r.ExpirationDate = &t
	}
	return r
}

type EventType string

const (
	EventReservationCreated   EventType = "reservation.created"
	EventReservationCancelled EventType = "reservation.cancelled"
)

type ReservationEvent struct {
	ID            string    `json:"id"`
	Type          EventType `json:"type"`
	ReservationID int       `json:"reservationId"`
	CustomerID    int       `json:"customerId"`
	BookID        int       `json:"bookId"`
	OccurredAt    time.Time `json:"occurredAt"`
}
