package service

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type BookService struct {
	log  *zap.Logger
	repo repository.Repository
}

func NewBookService(repo repository.Repository, log *zap.Logger) *BookService {
	return &BookService{
		log:  log.Named("books"),
		repo: repo,
	}
}

func (s *BookService) List(ctx context.Context) ([]model.Book, error) {
	s.log.Info("retrieving list of books")
	return s.repo.ListBooks(ctx)
}

func (s *BookService) Get(ctx context.Context, id int) (model.Book, error) {
	s.log.Info("retrieving book", zap.Int("book_id", id))
	book, err := s.repo.GetBook(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("book not found", zap.Int("book_id", id))
		}
		return model.Book{}, err
	}
	return book, nil
}

// Create stores book with a generated id. A missing status means Available.
func (s *BookService) Create(ctx context.Context, book *model.Book) (model.Book, error) {
	s.log.Info("creating a new book")
	if book == nil {
		s.log.Warn("book data is null")
		return model.Book{}, errs.ErrEmptyPayload
	}

	b := *book
	if b.Status == "" {
		b.Status = model.BookStatusAvailable
	}
	created, err := s.repo.CreateBook(ctx, b)
	if err != nil {
		return model.Book{}, errors.Wrap(err, "CreateBook")
	}

	s.log.Info("book created", zap.Int("book_id", created.ID))
	return created, nil
}

// Update overwrites every field of book id.
func (s *BookService) Update(ctx context.Context, id int, book *model.Book) error {
	if book == nil {
		s.log.Warn("book data is null", zap.Int("book_id", id))
		return errs.ErrEmptyPayload
	}
	if id != book.ID {
		s.log.Warn("book id in path does not match book id in body",
			zap.Int("book_id", id), zap.Int("body_book_id", book.ID))
		return errs.ErrIDMismatch
	}

	s.log.Info("updating book", zap.Int("book_id", id))
	b := *book
	if b.Status == "" {
		b.Status = model.BookStatusAvailable
	}
	if err := writeErr(s.repo.UpdateBook(ctx, b)); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("book not found", zap.Int("book_id", id))
			return err
		}
		return errors.Wrapf(err, "update book %d", id)
	}

	s.log.Info("book updated", zap.Int("book_id", id))
	return nil
}

func (s *BookService) Delete(ctx context.Context, id int) error {
	s.log.Info("deleting book", zap.Int("book_id", id))
	if err := writeErr(s.repo.DeleteBook(ctx, id)); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("book not found", zap.Int("book_id", id))
			return err
		}
		return errors.Wrapf(err, "delete book %d", id)
	}

	s.log.Info("book deleted", zap.Int("book_id", id))
	return nil
}

func (s *BookService) Search(ctx context.Context, filter model.BookFilter) ([]model.Book, error) {
	s.log.Info("searching books",
		zap.String("title", filter.Title),
		zap.String("author", filter.Author),
		zap.String("status", string(filter.Status)),
	)
	return s.repo.SearchBooks(ctx, filter)
}
