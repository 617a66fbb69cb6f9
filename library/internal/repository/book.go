package repository

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	sq "github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
)

func bookValues(b model.Book) map[string]any {
	return map[string]any{
		"title":  b.Title,
		"author": b.Author,
		"isbn":   b.ISBN,
		"status": string(b.Status),
	}
}

func (r *repository) ListBooks(ctx context.Context) ([]model.Book, error) {
	return r.books.selectWhere(ctx, r.conn(ctx), nil)
}

// SearchBooks ANDs the non-empty filters. Title and author use case-sensitive containment.
func (r *repository) SearchBooks(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	if filter.IsEmpty() {
		return r.books.selectWhere(ctx, r.conn(ctx), nil)
	}
	var pred sq.And
	if filter.Title != "" {
		pred = append(pred, sq.Expr("strpos(title, ?) > 0", filter.Title))
	}
	if filter.Author != "" {
		pred = append(pred, sq.Expr("strpos(author, ?) > 0", filter.Author))
	}
	if filter.Status != "" {
		pred = append(pred, sq.Eq{"status": string(filter.Status)})
	}
	return r.books.selectWhere(ctx, r.conn(ctx), pred)
}

func (r *repository) GetBook(ctx context.Context, id int) (model.Book, error) {
	return r.books.findByID(ctx, r.conn(ctx), id, false)
}

// GetBookForUpdate locks the row until the surrounding transaction ends.
func (r *repository) GetBookForUpdate(ctx context.Context, id int) (model.Book, error) {
	return r.books.findByID(ctx, r.conn(ctx), id, true)
}

func (r *repository) CreateBook(ctx context.Context, book model.Book) (model.Book, error) {
	created, err := r.books.insert(ctx, r.conn(ctx), bookValues(book))
	if err != nil {
		if isInvalidData(err) {
			return model.Book{}, errors.Wrap(errs.ErrInvalid, err.Error())
		}
		return model.Book{}, err
	}
	return created, nil
}

func (r *repository) UpdateBook(ctx context.Context, book model.Book) (model.WriteResult, error) {
	return r.books.update(ctx, r.conn(ctx), book.ID, bookValues(book))
}

func (r *repository) SetBookStatus(ctx context.Context, id int, status model.BookStatus) (model.WriteResult, error) {
	return r.books.update(ctx, r.conn(ctx), id, map[string]any{"status": string(status)})
}

func (r *repository) DeleteBook(ctx context.Context, id int) (model.WriteResult, error) {
	return r.books.delete(ctx, r.conn(ctx), id)
}
