package repository_test

import (
	"context"
	"sync"
	"testing"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/events"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReservationFlow(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	svc := service.NewReservationService(repo, events.NewNopPublisher(), zap.NewNop())

	dune, err := repo.CreateBook(ctx, model.Book{Title: "Dune", Author: "Frank Herbert", Status: model.BookStatusAvailable})
	require.NoError(t, err)
	ann, err := repo.CreateCustomer(ctx, model.Customer{Name: "Ann"})
	require.NoError(t, err)
	bob, err := repo.CreateCustomer(ctx, model.Customer{Name: "Bob"})
	require.NoError(t, err)

	first, err := svc.Create(ctx, ann.ID, dune.ID)
	require.NoError(t, err)
	book, err := repo.GetBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookStatusUnavailable, book.Status)

	// same customer again, and another customer: the book is taken either way
	_, err = svc.Create(ctx, ann.ID, dune.ID)
	require.ErrorIs(t, err, errs.ErrBookUnavailable)
	_, err = svc.Create(ctx, bob.ID, dune.ID)
	require.ErrorIs(t, err, errs.ErrBookUnavailable)

	_, err = svc.Create(ctx, 9999, dune.ID)
	require.ErrorIs(t, err, errs.ErrBookUnavailable)
	_, err = svc.Create(ctx, ann.ID, 9999)
	require.ErrorIs(t, err, errs.ErrBookUnavailable)

	require.NoError(t, svc.Delete(ctx, first.ID))
	book, err = repo.GetBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookStatusAvailable, book.Status)
	require.ErrorIs(t, svc.Delete(ctx, first.ID), errs.ErrNotFound)

	_, err = svc.Create(ctx, 9999, dune.ID)
	require.ErrorIs(t, err, errs.ErrCustomerNotFound)
	book, err = repo.GetBook(ctx, dune.ID)
	require.NoError(t, err)
	require.Equal(t, model.BookStatusAvailable, book.Status, "failed reservation must roll back")

	second, err := svc.Create(ctx, bob.ID, dune.ID)
	require.NoError(t, err)
	require.NotEqual(t, first.ID, second.ID)
}

func TestReservationFlow_ConcurrentCreate(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	svc := service.NewReservationService(repo, events.NewNopPublisher(), zap.NewNop())

	book, err := repo.CreateBook(ctx, model.Book{Title: "Dune", Status: model.BookStatusAvailable})
	require.NoError(t, err)

	const n = 8
	customers := make([]model.Customer, n)
	for i := range customers {
		customers[i], err = repo.CreateCustomer(ctx, model.Customer{Name: "reader"})
		require.NoError(t, err)
	}

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		won int
	)
	for _, c := range customers {
		c := c
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, c.ID, book.ID)
			if err == nil {
				mu.Lock()
				won++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, errs.ErrBookUnavailable)
		}()
	}
	wg.Wait()
	require.Equal(t, 1, won)
}

func TestReservationFlow_BookDeleted(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	svc := service.NewReservationService(repo, events.NewNopPublisher(), zap.NewNop())

	book, err := repo.CreateBook(ctx, model.Book{Title: "Dune", Status: model.BookStatusAvailable})
	require.NoError(t, err)
	ann, err := repo.CreateCustomer(ctx, model.Customer{Name: "Ann"})
	require.NoError(t, err)
	r, err := svc.Create(ctx, ann.ID, book.ID)
	require.NoError(t, err)

	res, err := repo.DeleteBook(ctx, book.ID)
	require.NoError(t, err)
	require.Equal(t, model.WriteOK, res)

	// the reservation went with the book
	require.ErrorIs(t, svc.Delete(ctx, r.ID), errs.ErrNotFound)
}
