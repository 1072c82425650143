package services

import (
	"fmt"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/example/anandamoyee/internal/models"
)

// ValidationError marks a rejected request with a user-facing message.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

// ProductFinder resolves catalog products for order intake.
type ProductFinder interface {
	FindByID(id uuid.UUID) (*models.Product, error)
}

// OrderWriter persists new orders.
type OrderWriter interface {
	Create(order *models.Order) error
}

// OTPConsumer authorizes guest actions against a verified code.
type OTPConsumer interface {
	Consume(phone string) error
}

// OrderNotifier delivers order messages to merchant and customer.
type OrderNotifier interface {
	NotifyOwnerNewOrder(n OrderNotification) error
	ConfirmOrderToCustomer(n OrderNotification) error
}

// OrderService validates checkout requests, snapshots product data into
// order records, and triggers notifications. Notification failures are
// advisory and never undo a persisted order.
type OrderService struct {
	products ProductFinder
	orders   OrderWriter
	otp      OTPConsumer
	notifier OrderNotifier
	validate *validator.Validate
}

func NewOrderService(products ProductFinder, orders OrderWriter, otp OTPConsumer, notifier OrderNotifier) *OrderService {
	return &OrderService{
		products: products,
		orders:   orders,
		otp:      otp,
		notifier: notifier,
		validate: validator.New(),
	}
}

type PlaceOrderRequest struct {
	ProductID     string `json:"productId" validate:"required"`
	Quantity      int    `json:"quantity" validate:"required,min=1"`
	CustomerPhone string `json:"customerPhone" validate:"required"`
	CustomerID    string `json:"customerId"`
}

type CartItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type PlaceCartOrderRequest struct {
	Items         []CartItemRequest `json:"items" validate:"required,min=1,dive"`
	CustomerPhone string            `json:"customerPhone" validate:"required"`
	CustomerID    string            `json:"customerId"`
}

// PlaceOrderResult is what checkout hands back to the HTTP layer.
type PlaceOrderResult struct {
	Order        *models.Order
	WhatsAppSent bool
	Warnings     []string
}

// authorize enforces the guest OTP rule: a checkout without a customer
// identity must consume a verified code for the order phone.
func (s *OrderService) authorize(customerID, phone string) (*uuid.UUID, error) {
	if customerID != "" {
		id, err := uuid.Parse(customerID)
		if err != nil {
			return nil, &ValidationError{Msg: "Invalid customer id"}
		}
		return &id, nil
	}

	if err := s.otp.Consume(phone); err != nil {
		return nil, err
	}
	return nil, nil
}

// PlaceOrder handles single-item checkout.
func (s *OrderService) PlaceOrder(req PlaceOrderRequest) (*PlaceOrderResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Msg: "Product, quantity, and phone number are required"}
	}

	productID, err := uuid.Parse(req.ProductID)
	if err != nil {
		return nil, &ValidationError{Msg: "Invalid product id"}
	}

	customerID, err := s.authorize(req.CustomerID, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	product, err := s.products.FindByID(productID)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		CustomerID:    customerID,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   product.Price * float64(req.Quantity),
		Status:        models.OrderStatusPending,
		Items: []models.OrderItem{{
			ProductID:    &product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			ProductImage: product.Image,
			Quantity:     req.Quantity,
			Subtotal:     product.Price * float64(req.Quantity),
		}},
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	return &PlaceOrderResult{
		Order:        order,
		WhatsAppSent: s.notify(order),
	}, nil
}

// PlaceCartOrder handles multi-item checkout. Lines whose product no
// longer resolves are skipped and reported back as warnings; only an
// entirely unresolvable cart is rejected.
func (s *OrderService) PlaceCartOrder(req PlaceCartOrderRequest) (*PlaceOrderResult, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, &ValidationError{Msg: "Cart items and phone number are required"}
	}

	customerID, err := s.authorize(req.CustomerID, req.CustomerPhone)
	if err != nil {
		return nil, err
	}

	var (
		items       []models.OrderItem
		warnings    []string
		totalAmount float64
	)
	for _, line := range req.Items {
		productID, parseErr := uuid.Parse(line.ProductID)
		if parseErr != nil {
			warnings = append(warnings, fmt.Sprintf("Product %s is no longer available and was not included", line.ProductID))
			continue
		}

		product, findErr := s.products.FindByID(productID)
		if findErr != nil {
			warnings = append(warnings, fmt.Sprintf("Product %s is no longer available and was not included", line.ProductID))
			continue
		}

		subtotal := product.Price * float64(line.Quantity)
		items = append(items, models.OrderItem{
			ProductID:    &product.ID,
			ProductName:  product.Name,
			ProductPrice: product.Price,
			ProductImage: product.Image,
			Quantity:     line.Quantity,
			Subtotal:     subtotal,
		})
		totalAmount += subtotal
	}

	if len(items) == 0 {
		return nil, &ValidationError{Msg: "No valid products found in cart"}
	}

	order := &models.Order{
		CustomerID:    customerID,
		CustomerPhone: req.CustomerPhone,
		TotalAmount:   totalAmount,
		Status:        models.OrderStatusPending,
		Items:         items,
	}

	if err := s.orders.Create(order); err != nil {
		return nil, err
	}

	return &PlaceOrderResult{
		Order:        order,
		WhatsAppSent: s.notify(order),
		Warnings:     warnings,
	}, nil
}

// notify sends the merchant and customer messages. The returned flag
// reflects customer delivery only; it selects the response wording and
// nothing else.
func (s *OrderService) notify(order *models.Order) bool {
	n := OrderNotification{
		OrderID:       order.ID.String(),
		TotalAmount:   order.TotalAmount,
		CustomerPhone: order.CustomerPhone,
		PlacedAt:      order.CreatedAt,
	}
	for _, line := range order.Lines() {
		n.Items = append(n.Items, OrderItemNotification{
			Name:     line.ProductName,
			Price:    line.ProductPrice,
			Quantity: line.Quantity,
			Subtotal: line.Subtotal,
		})
	}

	if err := s.notifier.NotifyOwnerNewOrder(n); err != nil {
		log.Printf("[Order] owner notification failed for order %s: %v", order.ID, err)
	}

	if err := s.notifier.ConfirmOrderToCustomer(n); err != nil {
		log.Printf("[Order] customer confirmation failed for order %s: %v", order.ID, err)
		return false
	}
	return true
}
