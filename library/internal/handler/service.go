package handler

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/service"
)

//go:generate go run github.com/golang/mock/mockgen -source=service.go -destination=mocks/mock.go

type BookService interface {
	List(ctx context.Context) ([]model.Book, error)
	Get(ctx context.Context, id int) (model.Book, error)
	Create(ctx context.Context, book *model.Book) (model.Book, error)
	Update(ctx context.Context, id int, book *model.Book) error
	Delete(ctx context.Context, id int) error
	Search(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
}

type CustomerService interface {
	List(ctx context.Context) ([]model.Customer, error)
	Get(ctx context.Context, id int) (model.Customer, error)
	Create(ctx context.Context, customer *model.Customer) (model.Customer, error)
	Update(ctx context.Context, id int, customer *model.Customer) error
	Delete(ctx context.Context, id int) error
}

type ReservationService interface {
	Create(ctx context.Context, customerID, bookID int) (model.Reservation, error)
	Get(ctx context.Context, id int) (model.Reservation, error)
	Delete(ctx context.Context, id int) error
}

var (
	_ BookService        = (*service.BookService)(nil)
	_ CustomerService    = (*service.CustomerService)(nil)
	_ ReservationService = (*service.ReservationService)(nil)
)
