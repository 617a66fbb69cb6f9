package repository

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:generate go run github.com/golang/mock/mockgen -source=repository.go -destination=mocks/mock.go

type Repository interface {
	// WithinTx runs fn in a transaction carried by the context passed to fn.
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error

	ListBooks(ctx context.Context) ([]model.Book, error)
	SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error)
	GetBook(ctx context.Context, id int) (model.Book, error)
	GetBookForUpdate(ctx context.Context, id int) (model.Book, error)
	CreateBook(ctx context.Context, book model.Book) (model.Book, error)
	UpdateBook(ctx context.Context, book model.Book) (model.WriteResult, error)
	SetBookStatus(ctx context.Context, id int, status model.BookStatus) (model.WriteResult, error)
	DeleteBook(ctx context.Context, id int) (model.WriteResult, error)

	ListCustomers(ctx context.Context) ([]model.Customer, error)
	GetCustomer(ctx context.Context, id int) (model.Customer, error)
	CreateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error)
	UpdateCustomer(ctx context.Context, customer model.Customer) (model.WriteResult, error)
	DeleteCustomer(ctx context.Context, id int) (model.WriteResult, error)

	GetReservation(ctx context.Context, id int) (model.Reservation, error)
	FindReservation(ctx context.Context, customerID, bookID int) (model.Reservation, error)
	CreateReservation(ctx context.Context, reservation model.Reservation) (model.Reservation, error)
	DeleteReservation(ctx context.Context, id int) (model.WriteResult, error)
}

type repository struct {
	db  *pgxpool.Pool
	log *zap.Logger

	books        table[model.Book]
	customers    table[model.Customer]
	reservations table[model.Reservation]
}

func NewRepository(db *pgxpool.Pool, log *zap.Logger) (*repository, error) {
	log = log.Named("repo")
	return &repository{
		db:  db,
		log: log,
		books: table[model.Book]{
			name:    booksTableName,
			columns: []string{"id", "title", "author", "isbn", "status"},
			log:     log,
		},
		customers: table[model.Customer]{
			name:    customersTableName,
			columns: []string{"id", "name", "email", "phone"},
			log:     log,
		},
		reservations: table[model.Reservation]{
			name:    reservationsTableName,
			columns: []string{"id", "customer_id", "book_id", "reservation_date", "expiration_date"},
			log:     log,
		},
	}, nil
}

const (
	booksTableName        = `books`
	customersTableName    = `customers`
	reservationsTableName = `reservations`
)

var qb = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type txKey struct{}

func (r *repository) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return fn(ctx)
	}
	return pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn returns the transaction bound to ctx, or the pool.
func (r *repository) conn(ctx context.Context) querier {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return r.db
}
