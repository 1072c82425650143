package handlers

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

// UploadHandler accepts image uploads for the admin back-office.
type UploadHandler struct {
	uploadDir string
}

// NewUploadHandler constructs an UploadHandler writing into uploadDir.
func NewUploadHandler(uploadDir string) *UploadHandler {
	return &UploadHandler{uploadDir: uploadDir}
}

type base64UploadRequest struct {
	Image string `json:"image"`
}

// Upload stores a multipart file under a timestamped name, or passes a
// base64 data URL straight through.
func (h *UploadHandler) Upload(c *fiber.Ctx) error {
	if file, err := c.FormFile("image"); err == nil {
		filename := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(file.Filename))
		if err := c.SaveFile(file, filepath.Join(h.uploadDir, filename)); err != nil {
			return err
		}
		return c.JSON(fiber.Map{"imageUrl": "/uploads/" + filename})
	}

	var req base64UploadRequest
	if err := c.BodyParser(&req); err == nil && strings.HasPrefix(req.Image, "data:image/") {
		return c.JSON(fiber.Map{"imageUrl": req.Image})
	}

	return fiber.NewError(fiber.StatusBadRequest, "No file or valid base64 provided")
}
