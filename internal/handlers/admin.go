package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/config"
	"github.com/example/anandamoyee/internal/models"
	"github.com/example/anandamoyee/internal/utils"
)

// AdminHandler manages back-office authentication and dashboards.
type AdminHandler struct {
	db  *gorm.DB
	cfg *config.Config
}

// NewAdminHandler constructs an AdminHandler.
func NewAdminHandler(db *gorm.DB, cfg *config.Config) *AdminHandler {
	return &AdminHandler{db: db, cfg: cfg}
}

type adminLoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login authenticates the back-office account and issues a session token.
func (h *AdminHandler) Login(c *fiber.Ctx) error {
	var req adminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	var admin models.AdminUser
	if err := h.db.First(&admin, "username = ?", req.Username).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
		}
		return err
	}

	if !utils.CheckPassword(admin.PasswordHash, req.Password) {
		return fiber.NewError(fiber.StatusUnauthorized, "invalid credentials")
	}

	token, err := utils.GenerateToken(h.cfg.JWTSecret, admin.ID, h.cfg.TokenExpires)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "failed to generate token")
	}

	return c.JSON(fiber.Map{"token": token})
}

// Dashboard returns aggregate statistics for the admin back-office.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	var totalProducts int64
	if err := h.db.Model(&models.Product{}).Count(&totalProducts).Error; err != nil {
		return err
	}

	var totalOrders int64
	if err := h.db.Model(&models.Order{}).Count(&totalOrders).Error; err != nil {
		return err
	}

	var totalCustomers int64
	if err := h.db.Model(&models.Customer{}).Count(&totalCustomers).Error; err != nil {
		return err
	}

	var totalEnquiries int64
	if err := h.db.Model(&models.Enquiry{}).Count(&totalEnquiries).Error; err != nil {
		return err
	}

	type statusCount struct {
		Status string `json:"status"`
		Count  int64  `json:"count"`
	}
	var statusCounts []statusCount
	if err := h.db.Model(&models.Order{}).
		Select("status, count(*) as count").
		Group("status").
		Scan(&statusCounts).Error; err != nil {
		return err
	}

	ordersByStatus := make(map[string]int64)
	for _, sc := range statusCounts {
		ordersByStatus[sc.Status] = sc.Count
	}

	var totalRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ?", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&totalRevenue).Error; err != nil {
		return err
	}

	var todayRevenue float64
	if err := h.db.Model(&models.Order{}).
		Where("status != ? AND created_at::date = CURRENT_DATE", models.OrderStatusCancelled).
		Select("COALESCE(SUM(total_amount), 0)").
		Scan(&todayRevenue).Error; err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"totalProducts":  totalProducts,
		"totalOrders":    totalOrders,
		"totalCustomers": totalCustomers,
		"totalEnquiries": totalEnquiries,
		"ordersByStatus": ordersByStatus,
		"totalRevenue":   totalRevenue,
		"todayRevenue":   todayRevenue,
	})
}
