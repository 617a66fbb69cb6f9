package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

func (h *Handler) CreateReservation(c echo.Context) error {
	customerID, err := parseID(c.QueryParam("customerId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "customerId must be an integer")
	}
	bookID, err := parseID(c.QueryParam("bookId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "bookId must be an integer")
	}

	reservation, err := h.reservationSvc.Create(c.Request().Context(), customerID, bookID)
	if err != nil {
		return serviceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, location("Reservations", reservation.ID))
	return c.JSON(http.StatusCreated, reservation)
}

func (h *Handler) GetReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	reservation, err := h.reservationSvc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, reservation)
}

func (h *Handler) DeleteReservation(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = h.reservationSvc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
