package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RootHandler serves the static landing page on /, /index and /index.html.
type RootHandler struct {
	page []byte
}

func NewRootHandler(page []byte) *RootHandler {
	return &RootHandler{page: page}
}

func (h *RootHandler) Index(c echo.Context) error {
	return c.HTMLBlob(http.StatusOK, h.page)
}
