package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/services"
)

// OTPHandler issues and checks phone verification codes.
type OTPHandler struct {
	store    *otp.Store
	whatsapp *services.WhatsAppService
}

// NewOTPHandler constructs an OTPHandler.
func NewOTPHandler(store *otp.Store, whatsapp *services.WhatsAppService) *OTPHandler {
	return &OTPHandler{store: store, whatsapp: whatsapp}
}

type sendOTPRequest struct {
	Phone string `json:"phone"`
}

// Send issues a code for the submitted phone and delivers it over
// WhatsApp. A delivery failure rolls the pending record back so the
// caller can retry immediately.
func (h *OTPHandler) Send(c *fiber.Ctx) error {
	var req sendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	code, err := h.store.Issue(req.Phone)
	switch {
	case errors.Is(err, otp.ErrInvalidPhone):
		return fiber.NewError(fiber.StatusBadRequest, "Valid phone number is required")
	case errors.Is(err, otp.ErrRateLimited):
		return fiber.NewError(fiber.StatusTooManyRequests, "Please wait 30 seconds before requesting a new OTP")
	case err != nil:
		return err
	}

	if err := h.whatsapp.SendOTP(req.Phone, code); err != nil {
		h.store.Drop(req.Phone)
		if errors.Is(err, services.ErrTokenNotConfigured) {
			return fiber.NewError(fiber.StatusInternalServerError, "WhatsApp API token not configured. Please set it in Admin Panel.")
		}
		return fiber.NewError(fiber.StatusInternalServerError, "Failed to send OTP. Please try again.")
	}

	return c.JSON(fiber.Map{"message": "OTP sent to your WhatsApp!"})
}

type verifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

// Verify checks a submitted code. A successful check marks the record
// verified but leaves it in place for the consuming flow.
func (h *OTPHandler) Verify(c *fiber.Ctx) error {
	var req verifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" || req.OTP == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone and OTP are required")
	}

	err := h.store.Verify(req.Phone, req.OTP)
	var mismatch *otp.MismatchError
	switch {
	case errors.Is(err, otp.ErrNotFound):
		return fiber.NewError(fiber.StatusBadRequest, "OTP expired or not found. Please request a new one.")
	case errors.Is(err, otp.ErrExpired):
		return fiber.NewError(fiber.StatusBadRequest, "OTP has expired. Please request a new one.")
	case errors.Is(err, otp.ErrTooManyAttempts):
		return fiber.NewError(fiber.StatusBadRequest, "Too many attempts. Please request a new OTP.")
	case errors.As(err, &mismatch):
		return fiber.NewError(fiber.StatusBadRequest, fmt.Sprintf("Incorrect OTP. %d attempts remaining.", mismatch.Remaining))
	case err != nil:
		return err
	}

	return c.JSON(fiber.Map{"message": "OTP verified successfully!"})
}
