package handler

import (
	"net/http"

	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListBooks(c echo.Context) error {
	books, err := h.bookSvc.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}

func (h *Handler) GetBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	book, err := h.bookSvc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, book)
}

func (h *Handler) CreateBook(c echo.Context) error {
	var book *model.Book
	if err := bindBody(c, &book); err != nil {
		return err
	}
	created, err := h.bookSvc.Create(c.Request().Context(), book)
	if err != nil {
		return serviceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, location("Books", created.ID))
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var book *model.Book
	if err = bindBody(c, &book); err != nil {
		return err
	}
	if err = h.bookSvc.Update(c.Request().Context(), id, book); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = h.bookSvc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// SearchBooks filters by title and author substrings and by status. Empty
// parameters are ignored.
func (h *Handler) SearchBooks(c echo.Context) error {
	filter := model.BookFilter{
		Title:  c.QueryParam("title"),
		Author: c.QueryParam("author"),
	}
	if s := c.QueryParam("status"); s != "" {
		status, err := model.ParseBookStatus(s)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "status must be Available or Unavailable")
		}
		filter.Status = status
	}

	books, err := h.bookSvc.Search(c.Request().Context(), filter)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, books)
}
