package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/technotes/notes-api/internal/core/ports"
)

// NoteHandler handles HTTP requests for notes.
type NoteHandler struct {
	service ports.NoteService
}

func NewNoteHandler(service ports.NoteService) *NoteHandler {
	return &NoteHandler{service: service}
}

// List handles GET /notes.
//
// @Summary      List all notes with their owner's username
// @Tags         notes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.NoteWithOwner
// @Failure      400  {object}  errorResponse
// @Router       /notes [get]
func (h *NoteHandler) List(c echo.Context) error {
	notes, err := h.service.ListNotes(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, notes)
}

// Create handles POST /notes.
//
// @Summary      Create a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createNoteRequest  true  "New note"
// @Success      201   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /notes [post]
func (h *NoteHandler) Create(c echo.Context) error {
	var req createNoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.service.CreateNote(c.Request().Context(), ports.CreateNoteInput{
		User:  req.User,
		Title: req.Title,
		Text:  req.Text,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, messageResponse{Message: msg})
}

// Update handles PATCH /notes. All fields are replaced.
//
// @Summary      Update a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      updateNoteRequest  true  "Note fields"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /notes [patch]
func (h *NoteHandler) Update(c echo.Context) error {
	var req updateNoteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.service.UpdateNote(c.Request().Context(), ports.UpdateNoteInput{
		ID:        req.ID,
		User:      req.User,
		Title:     req.Title,
		Text:      req.Text,
		Completed: req.Completed,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Delete handles DELETE /notes.
//
// @Summary      Delete a note
// @Tags         notes
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      deleteRequest  true  "Note id"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /notes [delete]
func (h *NoteHandler) Delete(c echo.Context) error {
	var req deleteRequest
	if err := bind(c, &req); err != nil {
		return err
	}

	msg, err := h.service.DeleteNote(c.Request().Context(), req.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}
