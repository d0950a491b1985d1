package userdata

import (
	"errors"

	"torch-calculator/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// invalidFormatMessage is shown to the user when a save body is not a JSON object.
const invalidFormatMessage = "无效的数据格式"

// Handler handles HTTP requests for user data.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the user data routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/api")
	group.Post("/save-data", h.HandleSave)
	group.Get("/load-data", h.HandleLoad)
}

// HandleSave merges the posted JSON object into the stored document.
func (h *Handler) HandleSave(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Save(c.UserContext(), c.Body()); err != nil {
		var storeErr *Error
		if errors.As(err, &storeErr) && storeErr.IsClientError() {
			l.Warn("Rejected user data", zap.Int("bytes", len(c.Body())))
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"error":   invalidFormatMessage,
			})
		}

		l.Error("Failed to save user data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"success": true})
}

// HandleLoad returns the stored document.
func (h *Handler) HandleLoad(c *fiber.Ctx) error {
	doc, err := h.service.Load()
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Failed to load user data", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    doc,
	})
}
