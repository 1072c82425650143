package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/example/anandamoyee/internal/repositories"
	"github.com/example/anandamoyee/internal/services"
)

// SettingsHandler manages the messaging credential configuration.
type SettingsHandler struct {
	settings *repositories.SettingRepository
	whatsapp *services.WhatsAppService
}

// NewSettingsHandler constructs a SettingsHandler.
func NewSettingsHandler(settings *repositories.SettingRepository, whatsapp *services.WhatsAppService) *SettingsHandler {
	return &SettingsHandler{settings: settings, whatsapp: whatsapp}
}

// GetWhatsApp returns the current credential and merchant phone.
func (h *SettingsHandler) GetWhatsApp(c *fiber.Ctx) error {
	token, err := h.settings.Get(services.SettingTokenKey)
	if err != nil {
		return err
	}

	ownerPhone, err := h.settings.Get(services.SettingOwnerPhoneKey)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{"token": token, "ownerPhone": ownerPhone})
}

type updateWhatsAppRequest struct {
	Token      *string `json:"token"`
	OwnerPhone *string `json:"ownerPhone"`
}

// UpdateWhatsApp stores the credential and merchant phone. Omitted
// fields are left untouched.
func (h *SettingsHandler) UpdateWhatsApp(c *fiber.Ctx) error {
	var req updateWhatsAppRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Token != nil {
		if err := h.settings.Set(services.SettingTokenKey, *req.Token); err != nil {
			return err
		}
	}
	if req.OwnerPhone != nil {
		if err := h.settings.Set(services.SettingOwnerPhoneKey, *req.OwnerPhone); err != nil {
			return err
		}
	}

	return c.JSON(fiber.Map{"message": "WhatsApp settings updated successfully!"})
}

type testMessageRequest struct {
	Phone string `json:"phone"`
}

// TestWhatsApp sends a test message so admins can confirm the credential
// works.
func (h *SettingsHandler) TestWhatsApp(c *fiber.Ctx) error {
	var req testMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if req.Phone == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Phone number is required")
	}

	if err := h.whatsapp.SendTest(req.Phone); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	return c.JSON(fiber.Map{"message": "Test message sent successfully!"})
}
