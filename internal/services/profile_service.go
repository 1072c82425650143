package services

import (
	"errors"

	"github.com/google/uuid"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/repositories"
)

// CustomerStore manages customer identities for the profile flows.
type CustomerStore interface {
	FindByID(id uuid.UUID) (*models.Customer, error)
	FindByPhone(phone string) (*models.Customer, error)
	Create(customer *models.Customer) error
	UpdatePhone(id uuid.UUID, phone string) error
	MergeInto(target, duplicate uuid.UUID, phone string) error
}

// OrderHistory lists a customer's past orders.
type OrderHistory interface {
	ListByCustomer(customerID uuid.UUID) ([]models.Order, error)
}

// ProfileService maps verified phone numbers to persistent customer
// identities.
type ProfileService struct {
	customers CustomerStore
	orders    OrderHistory
	otp       OTPConsumer
}

func NewProfileService(customers CustomerStore, orders OrderHistory, otp OTPConsumer) *ProfileService {
	return &ProfileService{customers: customers, orders: orders, otp: otp}
}

// Login consumes the verified OTP for phone and returns the customer
// owning it, creating one on first login.
func (s *ProfileService) Login(phone string) (*models.Customer, error) {
	if err := s.otp.Consume(phone); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByPhone(phone)
	if err == nil {
		return customer, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, err
	}

	customer = &models.Customer{Phone: phone}
	if err := s.customers.Create(customer); err != nil {
		return nil, err
	}
	return customer, nil
}

// Get returns the customer with the given id.
func (s *ProfileService) Get(id uuid.UUID) (*models.Customer, error) {
	return s.customers.FindByID(id)
}

// ChangePhone moves the customer onto newPhone after its OTP has been
// consumed. When another customer already owns newPhone, that record is
// absorbed: its orders are reattributed and the duplicate deleted. The
// merge is last-writer-wins and irreversible.
func (s *ProfileService) ChangePhone(id uuid.UUID, newPhone string) (*models.Customer, error) {
	if err := s.otp.Consume(newPhone); err != nil {
		return nil, err
	}

	customer, err := s.customers.FindByID(id)
	if err != nil {
		return nil, err
	}

	existing, err := s.customers.FindByPhone(newPhone)
	switch {
	case err == nil && existing.ID != customer.ID:
		if err := s.customers.MergeInto(customer.ID, existing.ID, newPhone); err != nil {
			return nil, err
		}
	case err == nil || errors.Is(err, repositories.ErrNotFound):
		if err := s.customers.UpdatePhone(customer.ID, newPhone); err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	customer.Phone = newPhone
	return customer, nil
}

// Orders returns the customer's order history, newest first.
func (s *ProfileService) Orders(id uuid.UUID) ([]models.Order, error) {
	return s.orders.ListByCustomer(id)
}
