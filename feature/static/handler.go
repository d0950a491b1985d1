package static

import (
	"path/filepath"

	"github.com/gofiber/fiber/v2"
)

// PageDir is the sub-directory served under its own prefix.
const PageDir = "页签"

// EntryDocument is served for the root path.
const EntryDocument = "index.html"

// Handler serves the calculator's web assets from the application root.
type Handler struct {
	root string
}

// NewHandler creates a handler serving files below root.
func NewHandler(root string) *Handler {
	return &Handler{root: root}
}

// RegisterRoutes registers the static routes. Register them after the API so
// that unmatched paths fall through to the file tree last.
//
// The root path is answered by the file server's index lookup, which resolves
// against the root directory on disk and never reparses it as a URL.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	app.Static("/"+PageDir, filepath.Join(h.root, PageDir), fiber.Static{ByteRange: true})
	app.Static("/", h.root, fiber.Static{ByteRange: true, Index: EntryDocument})
}
