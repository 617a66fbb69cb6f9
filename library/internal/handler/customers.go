package handler

import (
	"net/http"

	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/labstack/echo/v4"
)

func (h *Handler) ListCustomers(c echo.Context) error {
	customers, err := h.customerSvc.List(c.Request().Context())
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, customers)
}

func (h *Handler) GetCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	customer, err := h.customerSvc.Get(c.Request().Context(), id)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(http.StatusOK, customer)
}

func (h *Handler) CreateCustomer(c echo.Context) error {
	var customer *model.Customer
	if err := bindBody(c, &customer); err != nil {
		return err
	}
	created, err := h.customerSvc.Create(c.Request().Context(), customer)
	if err != nil {
		return serviceError(c, err)
	}
	c.Response().Header().Set(echo.HeaderLocation, location("Customers", created.ID))
	return c.JSON(http.StatusCreated, created)
}

func (h *Handler) UpdateCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	var customer *model.Customer
	if err = bindBody(c, &customer); err != nil {
		return err
	}
	if err = h.customerSvc.Update(c.Request().Context(), id, customer); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *Handler) DeleteCustomer(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err = h.customerSvc.Delete(c.Request().Context(), id); err != nil {
		return serviceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
