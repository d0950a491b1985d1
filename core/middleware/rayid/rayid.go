package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the request id.
const HeaderName = "X-Ray-ID"

// LocalsKey is the Fiber locals key the request id is stored under.
const LocalsKey = "ray_id"

// New returns a middleware that tags every request with a RayID.
// An incoming X-Ray-ID header is reused when present.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)
		return c.Next()
	}
}
