package handler

import (
	"errors"

	"notesvc/dto"
	"notesvc/usecase"
	"notesvc/utils"

	"github.com/gin-gonic/gin"
)

// NotesHandler exposes the four operations of the notes resource. The auth
// middleware has already resolved "user_id" by the time any of these run.
type NotesHandler struct {
	Service *usecase.NotesService
}

func NewNotesHandler(service *usecase.NotesService) *NotesHandler {
	return &NotesHandler{Service: service}
}

// ListNotes handles GET /api/notes. Zero or more note_uuid query parameters
// restrict the result set.
func (h *NotesHandler) ListNotes(c *gin.Context) {
	userID := c.GetString("user_id")
	noteUUIDs := c.QueryArray("note_uuid")

	notes, err := h.Service.ListNotes(c.Request.Context(), userID, noteUUIDs)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponses(notes))
}

// CreateNote handles POST /api/notes.
func (h *NotesHandler) CreateNote(c *gin.Context) {
	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, map[string]string{"error": "Invalid request body"})
		return
	}

	userID := c.GetString("user_id")
	note, err := h.Service.CreateNote(c.Request.Context(), userID, req.Title, req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Created(c, dto.ToNoteResponse(note))
}

// DeleteNotes handles DELETE /api/notes with a non-empty note_uuid list.
func (h *NotesHandler) DeleteNotes(c *gin.Context) {
	var req dto.DeleteNotesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, map[string]string{"error": "Invalid request body"})
		return
	}

	userID := c.GetString("user_id")
	if err := h.Service.DeleteNotes(c.Request.Context(), userID, req.NoteUUIDs); err != nil {
		h.renderError(c, err)
		return
	}

	utils.SuccessMessage(c, "Notes deleted successfully.")
}

// UpdateNote handles PATCH /api/notes. Omitted fields stay untouched.
func (h *NotesHandler) UpdateNote(c *gin.Context) {
	var req dto.UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, map[string]string{"error": "Invalid request body"})
		return
	}

	userID := c.GetString("user_id")
	note, err := h.Service.UpdateNote(c.Request.Context(), userID, req.NoteUUID, req.Title, req.Content)
	if err != nil {
		h.renderError(c, err)
		return
	}

	utils.Success(c, dto.ToNoteResponse(note))
}

func (h *NotesHandler) renderError(c *gin.Context, err error) {
	var ve *usecase.ValidationError
	switch {
	case errors.As(err, &ve):
		utils.BadRequest(c, ve.Fields)
	case errors.Is(err, usecase.ErrNoteNotFound):
		utils.NotFound(c, "No notes found.")
	default:
		utils.InternalError(c, "Something went wrong")
	}
}
