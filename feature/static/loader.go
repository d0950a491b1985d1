package static

import (
	"github.com/gofiber/fiber/v2"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	handler *Handler
}

// NewFeature creates a new static asset feature for root.
func NewFeature(root string) *Feature {
	return &Feature{handler: NewHandler(root)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "static"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
