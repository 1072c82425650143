package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/repositories"
	"github.com/example/anandamoyee/internal/services"
)

// ProfileHandler exposes the customer identity endpoints.
type ProfileHandler struct {
	svc *services.ProfileService
}

// NewProfileHandler constructs a ProfileHandler.
func NewProfileHandler(svc *services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func profileResponse(customer *models.Customer) fiber.Map {
	return fiber.Map{
		"profile": fiber.Map{
			"_id":   customer.ID,
			"phone": customer.Phone,
		},
	}
}

type loginRequest struct {
	Phone string `json:"phone"`
}

// Login exchanges a consumed OTP for a customer identity, creating one
// on first login.
func (h *ProfileHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone is required")
	}

	customer, err := h.svc.Login(req.Phone)
	if errors.Is(err, otp.ErrNotVerified) {
		return fiber.NewError(fiber.StatusForbidden, "Phone not verified. Please verify OTP first.")
	}
	if err != nil {
		return err
	}

	return c.JSON(profileResponse(customer))
}

// Get returns a profile by id.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	customer, err := h.svc.Get(id)
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(profileResponse(customer))
}

type changePhoneRequest struct {
	NewPhone string `json:"newPhone"`
}

// ChangePhone moves a profile onto a newly verified phone number,
// merging any profile that already owns it.
func (h *ProfileHandler) ChangePhone(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req changePhoneRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.NewPhone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "New phone is required")
	}

	customer, err := h.svc.ChangePhone(id, req.NewPhone)
	if errors.Is(err, otp.ErrNotVerified) {
		return fiber.NewError(fiber.StatusForbidden, "New phone not verified.")
	}
	if errors.Is(err, repositories.ErrNotFound) {
		return fiber.NewError(fiber.StatusNotFound, "Profile not found")
	}
	if err != nil {
		return err
	}

	return c.JSON(profileResponse(customer))
}

// Orders returns the profile's order history, newest first.
func (h *ProfileHandler) Orders(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	orders, err := h.svc.Orders(id)
	if err != nil {
		return err
	}

	if orders == nil {
		orders = []models.Order{}
	}
	return c.JSON(orders)
}
