package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/service"
	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	repo_mocks "github.com/Astemirdum/library-booking/library/internal/repository/mocks"
)

type recordingPublisher struct {
	mu     sync.Mutex
	err    error
	events []model.ReservationEvent
}

func (p *recordingPublisher) Publish(ctx context.Context, event model.ReservationEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return p.err
}

func expectTx(r *repo_mocks.MockRepository) {
	r.EXPECT().
		WithinTx(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(ctx context.Context) error) error {
			return fn(ctx)
		})
}

var fixedNow = time.Date(2023, 10, 1, 9, 30, 0, 0, time.UTC)

func TestReservationService_Create(t *testing.T) {
	t.Parallel()
	const customerID, bookID = 1, 7
	type mockBehavior func(r *repo_mocks.MockRepository)

	newRes := model.NewReservation(customerID, bookID, fixedNow)
	stored := newRes
	stored.ID = 11

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		publishErr   error
		want         model.Reservation
		wantErr      error
		wantEvents   int
	}{
		{
			name: "ok",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				gomock.InOrder(
					r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
						Return(model.Book{ID: bookID, Status: model.BookStatusAvailable}, nil),
					r.EXPECT().GetCustomer(gomock.Any(), customerID).Return(model.Customer{ID: customerID}, nil),
					r.EXPECT().FindReservation(gomock.Any(), customerID, bookID).Return(model.Reservation{}, errs.ErrNotFound),
					r.EXPECT().SetBookStatus(gomock.Any(), bookID, model.BookStatusUnavailable).Return(model.WriteOK, nil),
					r.EXPECT().CreateReservation(gomock.Any(), newRes).Return(stored, nil),
				)
			},
			want:       stored,
			wantEvents: 1,
		},
		{
			name: "ok. publish failure does not fail the request",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, Status: model.BookStatusAvailable}, nil)
				r.EXPECT().GetCustomer(gomock.Any(), customerID).Return(model.Customer{ID: customerID}, nil)
				r.EXPECT().FindReservation(gomock.Any(), customerID, bookID).Return(model.Reservation{}, errs.ErrNotFound)
				r.EXPECT().SetBookStatus(gomock.Any(), bookID, model.BookStatusUnavailable).Return(model.WriteOK, nil)
				r.EXPECT().CreateReservation(gomock.Any(), newRes).Return(stored, nil)
			},
			publishErr: errors.New("broker down"),
			want:       stored,
			wantEvents: 1,
		},
		{
			name: "err. book missing",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrBookUnavailable,
		},
		{
			name: "err. book unavailable",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, Status: model.BookStatusUnavailable}, nil)
			},
			wantErr: errs.ErrBookUnavailable,
		},
		{
			name: "err. customer missing",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, Status: model.BookStatusAvailable}, nil)
				r.EXPECT().GetCustomer(gomock.Any(), customerID).Return(model.Customer{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrCustomerNotFound,
		},
		{
			name: "err. already reserved",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, Status: model.BookStatusAvailable}, nil)
				r.EXPECT().GetCustomer(gomock.Any(), customerID).Return(model.Customer{ID: customerID}, nil)
				r.EXPECT().FindReservation(gomock.Any(), customerID, bookID).Return(stored, nil)
			},
			wantErr: errs.ErrAlreadyReserved,
		},
		{
			name: "err. unique violation on insert",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).
					Return(model.Book{ID: bookID, Status: model.BookStatusAvailable}, nil)
				r.EXPECT().GetCustomer(gomock.Any(), customerID).Return(model.Customer{ID: customerID}, nil)
				r.EXPECT().FindReservation(gomock.Any(), customerID, bookID).Return(model.Reservation{}, errs.ErrNotFound)
				r.EXPECT().SetBookStatus(gomock.Any(), bookID, model.BookStatusUnavailable).Return(model.WriteOK, nil)
				r.EXPECT().CreateReservation(gomock.Any(), newRes).Return(model.Reservation{}, errs.ErrAlreadyReserved)
			},
			wantErr: errs.ErrAlreadyReserved,
		},
		{
			name: "err. db",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetBookForUpdate(gomock.Any(), bookID).Return(model.Book{}, errDB)
			},
			wantErr: errDB,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(repo)
			pub := &recordingPublisher{err: tt.publishErr}

			svc := service.NewReservationService(repo, pub, zap.NewNop(),
				service.WithClock(func() time.Time { return fixedNow }))
			got, err := svc.Create(context.Background(), customerID, bookID)

			require.Len(t, pub.events, tt.wantEvents)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
			require.Equal(t, fixedNow.Add(7*24*time.Hour), *got.ExpirationDate)

			ev := pub.events[0]
			require.Equal(t, model.EventReservationCreated, ev.Type)
			require.Equal(t, stored.ID, ev.ReservationID)
			require.Equal(t, customerID, ev.CustomerID)
			require.Equal(t, bookID, ev.BookID)
			require.NotEmpty(t, ev.ID)
		})
	}
}

func TestReservationService_Delete(t *testing.T) {
	t.Parallel()
	reservation := model.NewReservation(1, 7, fixedNow)
	reservation.ID = 11
	type mockBehavior func(r *repo_mocks.MockRepository)

	tests := []struct {
		name         string
		mockBehavior mockBehavior
		wantErr      error
		wantEvents   int
	}{
		{
			name: "ok. book restored",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				gomock.InOrder(
					r.EXPECT().GetReservation(gomock.Any(), 11).Return(reservation, nil),
					r.EXPECT().SetBookStatus(gomock.Any(), 7, model.BookStatusAvailable).Return(model.WriteOK, nil),
					r.EXPECT().DeleteReservation(gomock.Any(), 11).Return(model.WriteOK, nil),
				)
			},
			wantEvents: 1,
		},
		{
			name: "ok. book already gone",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetReservation(gomock.Any(), 11).Return(reservation, nil)
				r.EXPECT().SetBookStatus(gomock.Any(), 7, model.BookStatusAvailable).Return(model.WriteNotFound, nil)
				r.EXPECT().DeleteReservation(gomock.Any(), 11).Return(model.WriteOK, nil)
			},
			wantEvents: 1,
		},
		{
			name: "err. not found",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetReservation(gomock.Any(), 11).Return(model.Reservation{}, errs.ErrNotFound)
			},
			wantErr: errs.ErrNotFound,
		},
		{
			name: "err. book update conflict",
			mockBehavior: func(r *repo_mocks.MockRepository) {
				expectTx(r)
				r.EXPECT().GetReservation(gomock.Any(), 11).Return(reservation, nil)
				r.EXPECT().SetBookStatus(gomock.Any(), 7, model.BookStatusAvailable).Return(model.WriteConflict, nil)
			},
			wantErr: errs.ErrConflict,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c := gomock.NewController(t)
			defer c.Finish()
			repo := repo_mocks.NewMockRepository(c)
			tt.mockBehavior(repo)
			pub := &recordingPublisher{}

			svc := service.NewReservationService(repo, pub, zap.NewNop())
			err := svc.Delete(context.Background(), 11)

			require.Len(t, pub.events, tt.wantEvents)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, model.EventReservationCancelled, pub.events[0].Type)
			require.Equal(t, 7, pub.events[0].BookID)
		})
	}
}

func TestReservationService_PublishesAfterClientLeft(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	pub := &recordingPublisher{}
	svc := service.NewReservationService(repo, pub, zap.NewNop(),
		service.WithClock(func() time.Time { return fixedNow }))

	ctx, cancel := context.WithCancel(context.Background())
	stored := model.NewReservation(1, 7, fixedNow)
	stored.ID = 11

	expectTx(repo)
	repo.EXPECT().GetBookForUpdate(gomock.Any(), 7).
		Return(model.Book{ID: 7, Status: model.BookStatusAvailable}, nil)
	repo.EXPECT().GetCustomer(gomock.Any(), 1).Return(model.Customer{ID: 1}, nil)
	repo.EXPECT().FindReservation(gomock.Any(), 1, 7).Return(model.Reservation{}, errs.ErrNotFound)
	repo.EXPECT().SetBookStatus(gomock.Any(), 7, model.BookStatusUnavailable).Return(model.WriteOK, nil)
	repo.EXPECT().CreateReservation(gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, model.Reservation) (model.Reservation, error) {
			// the client disconnects once the row is written
			cancel()
			return stored, nil
		})

	_, err := svc.Create(ctx, 1, 7)
	require.NoError(t, err)
	require.Len(t, pub.events, 1)
	require.Equal(t, model.EventReservationCreated, pub.events[0].Type)

	expectTx(repo)
	repo.EXPECT().GetReservation(gomock.Any(), 11).Return(stored, nil)
	repo.EXPECT().SetBookStatus(gomock.Any(), 7, model.BookStatusAvailable).Return(model.WriteOK, nil)
	repo.EXPECT().DeleteReservation(gomock.Any(), 11).Return(model.WriteOK, nil)

	require.NoError(t, svc.Delete(ctx, 11))
	require.Len(t, pub.events, 2)
	require.Equal(t, model.EventReservationCancelled, pub.events[1].Type)
}

func TestReservationService_Get(t *testing.T) {
	t.Parallel()
	c := gomock.NewController(t)
	defer c.Finish()
	repo := repo_mocks.NewMockRepository(c)
	svc := service.NewReservationService(repo, &recordingPublisher{}, zap.NewNop())

	repo.EXPECT().GetReservation(gomock.Any(), 3).Return(model.Reservation{}, errs.ErrNotFound)
	_, err := svc.Get(context.Background(), 3)
	require.ErrorIs(t, err, errs.ErrNotFound)
}
