package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
)

// RBAC lets a request through when the authenticated user holds any of allowedRoles.
func RBAC(allowedRoles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			roles, _ := c.Get("roles").([]string)
			for _, r := range roles {
				if _, ok := allowed[r]; ok {
					return next(c)
				}
			}
			return domain.ErrInsufficientRole
		}
	}
}
