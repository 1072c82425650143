package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/services"
)

// EnquiryHandler manages customer enquiries.
type EnquiryHandler struct {
	db       *gorm.DB
	whatsapp *services.WhatsAppService
}

// NewEnquiryHandler constructs an EnquiryHandler.
func NewEnquiryHandler(db *gorm.DB, whatsapp *services.WhatsAppService) *EnquiryHandler {
	return &EnquiryHandler{db: db, whatsapp: whatsapp}
}

// Create stores a public enquiry and notifies the merchant. Delivery
// failure never blocks the enquiry itself.
func (h *EnquiryHandler) Create(c *fiber.Ctx) error {
	var payload models.Enquiry
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.Phone == "" || payload.Message == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name, phone, and message are required")
	}

	payload.Status = models.EnquiryStatusNew
	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	if err := h.whatsapp.NotifyOwnerEnquiry(payload.Name, payload.Phone, payload.Message, time.Now()); err != nil {
		log.Printf("[Enquiry] owner notification failed: %v", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Enquiry submitted successfully",
		"enquiry": payload,
	})
}

// List returns all enquiries, newest first.
func (h *EnquiryHandler) List(c *fiber.Ctx) error {
	var enquiries []models.Enquiry
	if err := h.db.Order("created_at desc").Find(&enquiries).Error; err != nil {
		return err
	}
	return c.JSON(enquiries)
}

type updateEnquiryRequest struct {
	Status string `json:"status"`
}

// Update changes an enquiry's status.
func (h *EnquiryHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var req updateEnquiryRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	switch req.Status {
	case models.EnquiryStatusNew, models.EnquiryStatusRead, models.EnquiryStatusReplied:
	default:
		return fiber.NewError(fiber.StatusBadRequest, "Invalid enquiry status")
	}

	var enquiry models.Enquiry
	if err := h.db.First(&enquiry, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Enquiry not found")
		}
		return err
	}

	if err := h.db.Model(&enquiry).Update("status", req.Status).Error; err != nil {
		return err
	}

	enquiry.Status = req.Status
	return c.JSON(enquiry)
}

// Delete removes an enquiry.
func (h *EnquiryHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Enquiry{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Enquiry deleted"})
}
