package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/domain"
)

// bind decodes the request body. Malformed JSON and mistyped fields (for
// example a string where a boolean is expected) are validation failures.
func bind(c echo.Context, dst any) error {
	if err := c.Bind(dst); err != nil {
		return domain.ValidationError("invalid payload")
	}
	return nil
}
