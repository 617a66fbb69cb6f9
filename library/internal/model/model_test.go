package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBookStatus(t *testing.T) {
	tests := []struct {
		in      string
		want    BookStatus
		wantErr bool
	}{
		{in: "Available", want: BookStatusAvailable},
		{in: "available", want: BookStatusAvailable},
		{in: "UNAVAILABLE", want: BookStatusUnavailable},
		{in: "Lost", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseBookStatus(tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestBookFilter_Matches(t *testing.T) {
	dune := Book{Title: "Dune", Author: "Frank Herbert", Status: BookStatusAvailable}

	assert.True(t, BookFilter{}.IsEmpty())
	assert.True(t, BookFilter{}.Matches(dune))
	assert.True(t, BookFilter{Title: "un"}.Matches(dune))
	assert.False(t, BookFilter{Title: "dune"}.Matches(dune))
	assert.True(t, BookFilter{Author: "Herbert", Status: BookStatusAvailable}.Matches(dune))
	assert.False(t, BookFilter{Author: "Herbert", Status: BookStatusUnavailable}.Matches(dune))
	assert.False(t, BookFilter{Status: BookStatusUnavailable}.IsEmpty())
}

func TestNewReservation(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	now := time.Date(2023, 12, 28, 23, 0, 0, 0, msk)

	r := NewReservation(1, 2, now)
	require.NotNil(t, r.ReservationDate)
	require.NotNil(t, r.ExpirationDate)
	assert.Equal(t, time.UTC, r.ReservationDate.Location())
	assert.True(t, now.Equal(*r.ReservationDate))
	assert.Equal(t, 7*24*time.Hour, r.ExpirationDate.Sub(*r.ReservationDate))
	assert.Equal(t, "2024-01-04T20:00:00Z", r.ExpirationDate.Format(time.RFC3339))
}

func TestWriteResult_String(t *testing.T) {
	assert.Equal(t, "not_found", WriteNotFound.String())
	assert.Equal(t, "unknown", WriteResult(42).String())
}

func TestReservation_UTC(t *testing.T) {
	msk := time.FixedZone("MSK", 3*60*60)
	reserved := time.Date(2023, 10, 1, 12, 30, 0, 0, msk)
	expires := reserved.Add(ReservationPeriod)
	r := Reservation{ID: 1, ReservationDate: &reserved, ExpirationDate: &expires}

	got := r.UTC()
	assert.Equal(t, "2023-10-01T09:30:00Z", got.ReservationDate.Format(time.RFC3339))
	assert.Equal(t, "2023-10-08T09:30:00Z", got.ExpirationDate.Format(time.RFC3339))
	assert.Equal(t, msk, r.ReservationDate.Location(), "receiver must not change")

	empty := Reservation{ID: 2}.UTC()
	assert.Nil(t, empty.ReservationDate)
	assert.Nil(t, empty.ExpirationDate)
}
