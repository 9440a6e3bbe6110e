package helper

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// GetUserIDFromLocals returns the authenticated user's id stored by the
// auth middleware. Second return is false for unauthenticated requests.
func GetUserIDFromLocals(c *fiber.Ctx) (uuid.UUID, bool) {
	v := c.Locals("user_id")
	s, ok := v.(string)
	if !ok || s == "" {
		return uuid.Nil, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}

// GetRoleFromLocals returns the role resolved by the auth middleware.
// Empty string means unauthenticated.
func GetRoleFromLocals(c *fiber.Ctx) string {
	if role, ok := c.Locals("userRole").(string); ok {
		return role
	}
	return ""
}
