package repository

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/pkg/errors"
)

func customerValues(c model.Customer) map[string]any {
	return map[string]any{
		"name":  c.Name,
		"email": c.Email,
		"phone": c.Phone,
	}
}

func (r *repository) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	return r.customers.selectWhere(ctx, r.conn(ctx), nil)
}

func (r *repository) GetCustomer(ctx context.Context, id int) (model.Customer, error) {
	return r.customers.findByID(ctx, r.conn(ctx), id, false)
}

func (r *repository) CreateCustomer(ctx context.Context, customer model.Customer) (model.Customer, error) {
	created, err := r.customers.insert(ctx, r.conn(ctx), customerValues(customer))
	if err != nil {
		if isInvalidData(err) {
			return model.Customer{}, errors.Wrap(errs.ErrInvalid, err.Error())
		}
		return model.Customer{}, err
	}
	return created, nil
}

func (r *repository) UpdateCustomer(ctx context.Context, customer model.Customer) (model.WriteResult, error) {
	return r.customers.update(ctx, r.conn(ctx), customer.ID, customerValues(customer))
}

// DeleteCustomer cascades to the customer's reservations.
func (r *repository) DeleteCustomer(ctx context.Context, id int) (model.WriteResult, error) {
	return r.customers.delete(ctx, r.conn(ctx), id)
}
