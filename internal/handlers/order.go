package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/repositories"
	"github.com/example/anandamoyee/internal/services"
)

// OrderHandler exposes checkout and order administration endpoints.
type OrderHandler struct {
	db  *gorm.DB
	svc *services.OrderService
}

// NewOrderHandler constructs an OrderHandler.
func NewOrderHandler(db *gorm.DB, svc *services.OrderService) *OrderHandler {
	return &OrderHandler{db: db, svc: svc}
}

// checkoutError maps order intake failures onto HTTP statuses.
func checkoutError(err error) error {
	var validation *services.ValidationError
	switch {
	case errors.As(err, &validation):
		return fiber.NewError(fiber.StatusBadRequest, validation.Msg)
	case errors.Is(err, otp.ErrNotVerified):
		return fiber.NewError(fiber.StatusForbidden, "Phone number not verified. Please verify OTP first.")
	case errors.Is(err, repositories.ErrNotFound):
		return fiber.NewError(fiber.StatusNotFound, "Product not found")
	}
	return err
}

func checkoutResponse(c *fiber.Ctx, result *services.PlaceOrderResult) error {
	message := "Order placed successfully! WhatsApp confirmation will be sent shortly."
	if result.WhatsAppSent {
		message = "Order placed successfully! Check your WhatsApp for confirmation."
	}

	body := fiber.Map{
		"order":        result.Order,
		"whatsappSent": result.WhatsAppSent,
		"message":      message,
	}
	if len(result.Warnings) > 0 {
		body["warnings"] = result.Warnings
	}

	return c.Status(fiber.StatusCreated).JSON(body)
}

// Create places a single-item order.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req services.PlaceOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.PlaceOrder(req)
	if err != nil {
		return checkoutError(err)
	}

	return checkoutResponse(c, result)
}

// CreateCart places a multi-item order from a shopping cart.
func (h *OrderHandler) CreateCart(c *fiber.Ctx) error {
	var req services.PlaceCartOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.svc.PlaceCartOrder(req)
	if err != nil {
		return checkoutError(err)
	}

	return checkoutResponse(c, result)
}

// List returns all orders, newest first.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var orders []models.Order
	if err := h.db.Preload("Items").Order("created_at desc").Find(&orders).Error; err != nil {
		return err
	}
	return c.JSON(orders)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus sets an order's status, admin action only.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if !models.ValidOrderStatus(req.Status) {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid order status")
	}

	var order models.Order
	if err := h.db.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Order not found")
		}
		return err
	}

	if err := h.db.Model(&order).Update("status", req.Status).Error; err != nil {
		return err
	}

	order.Status = req.Status
	return c.JSON(order)
}

// Delete removes an order.
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Order{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Order deleted"})
}
