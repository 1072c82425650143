package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
)

// CustomerRepository manages phone-backed customer identities.
type CustomerRepository struct {
	db *gorm.DB
}

func NewCustomerRepository(db *gorm.DB) *CustomerRepository {
	return &CustomerRepository{db: db}
}

// FindByID returns the customer with the given id or ErrNotFound.
func (r *CustomerRepository) FindByID(id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// FindByPhone returns the customer owning phone or ErrNotFound.
func (r *CustomerRepository) FindByPhone(phone string) (*models.Customer, error) {
	var customer models.Customer
	if err := r.db.First(&customer, "phone = ?", phone).Error; err != nil {
		return nil, translate(err)
	}
	return &customer, nil
}

// Create persists a new customer.
func (r *CustomerRepository) Create(customer *models.Customer) error {
	return r.db.Create(customer).Error
}

// UpdatePhone overwrites the customer's phone field.
func (r *CustomerRepository) UpdatePhone(id uuid.UUID, phone string) error {
	return r.db.Model(&models.Customer{}).Where("id = ?", id).
		Update("phone", phone).Error
}

// MergeInto absorbs the duplicate customer into target: the duplicate's
// orders are reattributed to target, the duplicate row is deleted, and
// target's phone is set to phone. The three steps run in one transaction
// so a crash cannot leave a half-completed merge.
func (r *CustomerRepository) MergeInto(target, duplicate uuid.UUID, phone string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Order{}).
			Where("customer_id = ?", duplicate).
			Update("customer_id", target).Error; err != nil {
			return err
		}
		if err := tx.Delete(&models.Customer{}, "id = ?", duplicate).Error; err != nil {
			return err
		}
		return tx.Model(&models.Customer{}).Where("id = ?", target).
			Update("phone", phone).Error
	})
}
