package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/technotes/notes-api/internal/core/domain"
)

// CORS rejects browser requests from origins outside allowedOrigins before
// they reach any handler, then applies echo's CORS headers with credentials
// enabled. Requests without an Origin header (curl, server-to-server) pass.
func CORS(allowedOrigins []string, log zerolog.Logger) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = struct{}{}
	}

	headers := echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     allowedOrigins,
		AllowCredentials: true,
		AllowMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions,
		},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		withHeaders := headers(next)
		return func(c echo.Context) error {
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" {
				return next(c)
			}
			if _, ok := allowed[origin]; !ok {
				log.Warn().Str("origin", origin).Str("path", c.Request().URL.Path).Msg("blocked by CORS")
				return domain.ErrOriginNotAllowed
			}
			return withHeaders(c)
		}
	}
}
