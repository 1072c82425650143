package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/example/anandamoyee/internal/config"
	"github.com/example/anandamoyee/internal/handlers"
	"github.com/example/anandamoyee/internal/middleware"
	"github.com/example/anandamoyee/internal/otp"
	"github.com/example/anandamoyee/internal/repositories"
	"github.com/example/anandamoyee/internal/services"
)

// Register wires up all HTTP routes.
func Register(app *fiber.App, db *gorm.DB, cfg *config.Config, otpStore *otp.Store) {
	settingRepo := repositories.NewSettingRepository(db)
	whatsappService := services.NewWhatsAppService(settingRepo, cfg.WhatsAppAPI)

	orderService := services.NewOrderService(
		repositories.NewProductRepository(db),
		repositories.NewOrderRepository(db),
		otpStore,
		whatsappService,
	)
	profileService := services.NewProfileService(
		repositories.NewCustomerRepository(db),
		repositories.NewOrderRepository(db),
		otpStore,
	)

	otpHandler := handlers.NewOTPHandler(otpStore, whatsappService)
	profileHandler := handlers.NewProfileHandler(profileService)
	orderHandler := handlers.NewOrderHandler(db, orderService)
	productHandler := handlers.NewProductHandler(db)
	catalogHandler := handlers.NewCatalogHandler(db)
	enquiryHandler := handlers.NewEnquiryHandler(db, whatsappService)
	settingsHandler := handlers.NewSettingsHandler(settingRepo, whatsappService)
	uploadHandler := handlers.NewUploadHandler(cfg.UploadDir)
	adminHandler := handlers.NewAdminHandler(db, cfg)

	api := app.Group("/api")

	// OTP verification
	api.Post("/otp/send", otpHandler.Send)
	api.Post("/otp/verify", otpHandler.Verify)

	// Customer profiles
	api.Post("/profile/login", profileHandler.Login)
	api.Get("/profile/:id", profileHandler.Get)
	api.Put("/profile/:id/phone", profileHandler.ChangePhone)
	api.Get("/profile/:id/orders", profileHandler.Orders)

	// Orders
	api.Post("/orders", orderHandler.Create)
	api.Post("/orders/cart", orderHandler.CreateCart)
	api.Get("/orders", orderHandler.List)
	api.Put("/orders/:id/status", orderHandler.UpdateStatus)
	api.Delete("/orders/:id", orderHandler.Delete)

	// Products
	api.Get("/products", productHandler.List)
	api.Post("/products", productHandler.Create)
	api.Post("/products/seed", productHandler.Seed)
	api.Get("/products/:id", productHandler.Get)
	api.Put("/products/:id", productHandler.Update)
	api.Delete("/products/:id", productHandler.Delete)

	// Categories
	api.Get("/categories", catalogHandler.ListCategories)
	api.Post("/categories", catalogHandler.CreateCategory)
	api.Put("/categories/:id", catalogHandler.UpdateCategory)
	api.Delete("/categories/:id", catalogHandler.DeleteCategory)

	// Banners
	api.Get("/banners", catalogHandler.ListBanners)
	api.Post("/banners", catalogHandler.CreateBanner)
	api.Put("/banners/:id", catalogHandler.UpdateBanner)
	api.Delete("/banners/:id", catalogHandler.DeleteBanner)

	// Enquiries
	api.Post("/enquiries", enquiryHandler.Create)
	api.Get("/enquiries", enquiryHandler.List)
	api.Put("/enquiries/:id", enquiryHandler.Update)
	api.Delete("/enquiries/:id", enquiryHandler.Delete)

	// Uploads
	api.Post("/upload", uploadHandler.Upload)

	// Back-office
	api.Post("/admin/login", adminHandler.Login)

	protected := api.Group("", middleware.AdminAuth(cfg))
	protected.Get("/admin/dashboard", adminHandler.Dashboard)
	protected.Get("/settings/whatsapp", settingsHandler.GetWhatsApp)
	protected.Put("/settings/whatsapp", settingsHandler.UpdateWhatsApp)
	protected.Post("/settings/whatsapp/test", settingsHandler.TestWhatsApp)
}
