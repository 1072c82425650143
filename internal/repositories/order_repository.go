package repositories

import (
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
)

// OrderRepository persists and lists orders.
type OrderRepository struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

// Create persists an order together with its item lines.
func (r *OrderRepository) Create(order *models.Order) error {
	return r.db.Create(order).Error
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepository) ListByCustomer(customerID uuid.UUID) ([]models.Order, error) {
	var orders []models.Order
	err := r.db.Preload("Items").
		Where("customer_id = ?", customerID).
		Order("created_at desc").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
