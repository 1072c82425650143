package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
)

// CatalogHandler manages categories and storefront banners.
type CatalogHandler struct {
	db *gorm.DB
}

// NewCatalogHandler constructs a CatalogHandler.
func NewCatalogHandler(db *gorm.DB) *CatalogHandler {
	return &CatalogHandler{db: db}
}

// ListCategories returns all categories sorted by name.
func (h *CatalogHandler) ListCategories(c *fiber.Ctx) error {
	var categories []models.Category
	if err := h.db.Order("name asc").Find(&categories).Error; err != nil {
		return err
	}
	return c.JSON(categories)
}

// CreateCategory persists a new category.
func (h *CatalogHandler) CreateCategory(c *fiber.Ctx) error {
	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payload)
}

// UpdateCategory updates an existing category.
func (h *CatalogHandler) UpdateCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var category models.Category
	if err := h.db.First(&category, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Category not found")
		}
		return err
	}

	var payload models.Category
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = category.ID
	if err := h.db.Model(&category).Updates(payload).Error; err != nil {
		return err
	}

	return c.JSON(category)
}

// DeleteCategory removes a category.
func (h *CatalogHandler) DeleteCategory(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Category{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Category deleted"})
}

// ListBanners returns all banners, newest first.
func (h *CatalogHandler) ListBanners(c *fiber.Ctx) error {
	var banners []models.Banner
	if err := h.db.Order("created_at desc").Find(&banners).Error; err != nil {
		return err
	}
	return c.JSON(banners)
}

// CreateBanner persists a new banner.
func (h *CatalogHandler) CreateBanner(c *fiber.Ctx) error {
	var payload models.Banner
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Title == "" || payload.ImageURL == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Title and image are required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payload)
}

// UpdateBanner updates an existing banner.
func (h *CatalogHandler) UpdateBanner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var banner models.Banner
	if err := h.db.First(&banner, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Banner not found")
		}
		return err
	}

	var payload struct {
		Title    *string `json:"title"`
		ImageURL *string `json:"imageUrl"`
		AltText  *string `json:"altText"`
		Link     *string `json:"link"`
		Active   *bool   `json:"active"`
	}
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	updates := map[string]interface{}{}
	if payload.Title != nil {
		updates["title"] = *payload.Title
	}
	if payload.ImageURL != nil {
		updates["image_url"] = *payload.ImageURL
	}
	if payload.AltText != nil {
		updates["alt_text"] = *payload.AltText
	}
	if payload.Link != nil {
		updates["link"] = *payload.Link
	}
	if payload.Active != nil {
		updates["active"] = *payload.Active
	}

	if len(updates) > 0 {
		if err := h.db.Model(&banner).Updates(updates).Error; err != nil {
			return err
		}
	}

	return c.JSON(banner)
}

// DeleteBanner removes a banner.
func (h *CatalogHandler) DeleteBanner(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Delete(&models.Banner{}, "id = ?", id).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Banner deleted"})
}
