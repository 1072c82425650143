package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/models"
)

// ProductHandler manages catalog products.
type ProductHandler struct {
	db *gorm.DB
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(db *gorm.DB) *ProductHandler {
	return &ProductHandler{db: db}
}

// List returns all products, newest first.
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var products []models.Product
	if err := h.db.Preload("Specifications").Order("created_at desc").Find(&products).Error; err != nil {
		return err
	}
	return c.JSON(products)
}

// Get returns a single product by id.
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var product models.Product
	if err := h.db.Preload("Specifications").First(&product, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	return c.JSON(product)
}

// Create persists a new product with its specification rows.
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	if payload.Name == "" || payload.Category == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name and category are required")
	}

	if err := h.db.Create(&payload).Error; err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(payload)
}

// Update replaces a product's fields and specification rows.
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	var existing models.Product
	if err := h.db.First(&existing, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusNotFound, "Product not found")
		}
		return err
	}

	var payload models.Product
	if err := c.BodyParser(&payload); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	payload.ID = existing.ID
	payload.CreatedAt = existing.CreatedAt
	for i := range payload.Specifications {
		payload.Specifications[i].ProductID = existing.ID
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.ProductSpecification{}, "product_id = ?", existing.ID).Error; err != nil {
			return err
		}
		return tx.Save(&payload).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(payload)
}

// Delete removes a product.
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid id")
	}

	if err := h.db.Select("Specifications").Delete(&models.Product{BaseModel: models.BaseModel{ID: id}}).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{"message": "Product deleted"})
}

// Seed loads the mock rice-mill catalog, replacing whatever exists.
func (h *ProductHandler) Seed(c *fiber.Ctx) error {
	mockCategories := []models.Category{
		{Name: "Rice Mill Machines"},
		{Name: "Flour Mill Machines"},
		{Name: "Pulverizer Machines"},
		{Name: "Paddy Thresher"},
		{Name: "Spare Parts"},
	}

	mockProducts := []models.Product{
		{Name: "Rice Mill Screen 1mm", Price: 1200, OriginalPrice: 1500, Category: "Spare Parts", Image: "Screen 1"},
		{Name: "6N40 Rice Polisher", Price: 45000, OriginalPrice: 52000, Category: "Rice Mill Machines", Image: "Polisher"},
		{Name: "Heavy Duty Pulverizer", Price: 28000, OriginalPrice: 32000, Category: "Pulverizer Machines", Image: "Pulverizer"},
		{Name: "Chaff Cutter Blade set", Price: 850, OriginalPrice: 1200, Category: "Spare Parts", Image: "Blade"},
		{Name: "Digital Paddy Thresher", Price: 62000, OriginalPrice: 68000, Category: "Paddy Thresher", Image: "Thresher"},
		{Name: "Rubber Roll 10 inch", Price: 4200, OriginalPrice: 5000, Category: "Spare Parts", Image: "Rubber Roll"},
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Create(&mockCategories).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.ProductSpecification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("1 = 1").Delete(&models.Product{}).Error; err != nil {
			return err
		}
		return tx.Create(&mockProducts).Error
	})
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"message":       "Database Seeded Successfully",
		"productCount":  len(mockProducts),
		"categoryCount": len(mockCategories),
	})
}
