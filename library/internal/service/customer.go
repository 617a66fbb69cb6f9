package service

import (
	"context"

	"github.com/Astemirdum/library-booking/library/internal/errs"
	"github.com/Astemirdum/library-booking/library/internal/model"
	"github.com/Astemirdum/library-booking/library/internal/repository"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type CustomerService struct {
	log  *zap.Logger
	repo repository.Repository
}

func NewCustomerService(repo repository.Repository, log *zap.Logger) *CustomerService {
	return &CustomerService{
		log:  log.Named("customers"),
		repo: repo,
	}
}

func (s *CustomerService) List(ctx context.Context) ([]model.Customer, error) {
	s.log.Info("retrieving list of customers")
	return s.repo.ListCustomers(ctx)
}

func (s *CustomerService) Get(ctx context.Context, id int) (model.Customer, error) {
	s.log.Info("retrieving customer", zap.Int("customer_id", id))
	customer, err := s.repo.GetCustomer(ctx, id)
	if err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("customer not found", zap.Int("customer_id", id))
		}
		return model.Customer{}, err
	}
	return customer, nil
}

func (s *CustomerService) Create(ctx context.Context, customer *model.Customer) (model.Customer, error) {
	s.log.Info("creating a new customer")
	if customer == nil {
		s.log.Warn("customer data is null")
		return model.Customer{}, errs.ErrEmptyPayload
	}

	created, err := s.repo.CreateCustomer(ctx, *customer)
	if err != nil {
		return model.Customer{}, errors.Wrap(err, "CreateCustomer")
	}

	s.log.Info("customer created", zap.Int("customer_id", created.ID))
	return created, nil
}

func (s *CustomerService) Update(ctx context.Context, id int, customer *model.Customer) error {
	if customer == nil {
		s.log.Warn("customer data is null", zap.Int("customer_id", id))
		return errs.ErrEmptyPayload
	}
	if id != customer.ID {
		s.log.Warn("customer id in path does not match customer id in body",
			zap.Int("customer_id", id), zap.Int("body_customer_id", customer.ID))
		return errs.ErrIDMismatch
	}

	s.log.Info("updating customer", zap.Int("customer_id", id))
	if err := writeErr(s.repo.UpdateCustomer(ctx, *customer)); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("customer not found", zap.Int("customer_id", id))
			return err
		}
		return errors.Wrapf(err, "update customer %d", id)
	}

	s.log.Info("customer updated", zap.Int("customer_id", id))
	return nil
}

// Delete does not check for live reservations; the foreign key removes them.
func (s *CustomerService) Delete(ctx context.Context, id int) error {
	s.log.Info("deleting customer", zap.Int("customer_id", id))
	if err := writeErr(s.repo.DeleteCustomer(ctx, id)); err != nil {
		if errors.Is(err, errs.ErrNotFound) {
			s.log.Warn("customer not found", zap.Int("customer_id", id))
			return err
		}
		return errors.Wrapf(err, "delete customer %d", id)
	}

	s.log.Info("customer deleted", zap.Int("customer_id", id))
	return nil
}
