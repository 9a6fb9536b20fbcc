package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// HeaderUserID cabecera opcional con el autor de la operación.
const HeaderUserID = "X-User-ID"

// LocalUserID key de c.Locals para el autor.
const LocalUserID = "user_id"

// IdentityMiddleware copia el autor (X-User-ID) a c.Locals. La API no autentica:
// el valor solo queda registrado en las transacciones de stock.
func IdentityMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if userID := strings.TrimSpace(c.Get(HeaderUserID)); userID != "" {
			c.Locals(LocalUserID, userID)
		}
		return c.Next()
	}
}

// GetUserID devuelve el autor del contexto, o "" si no vino la cabecera.
func GetUserID(c *fiber.Ctx) string {
	v := c.Locals(LocalUserID)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
