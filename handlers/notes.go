package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"slotboard/models"
	"slotboard/services/board"
)

// NotesHandler serves the per-day annotations.
type NotesHandler struct {
	Board board.Service
}

func NewNotesHandler(b board.Service) *NotesHandler {
	return &NotesHandler{Board: b}
}

func (h *NotesHandler) ListNotesHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"notes": h.Board.Notes()})
}

type upsertNoteRequest struct {
	Content string `json:"content" binding:"required"`
	Color   string `json:"color"`
}

// UpsertNoteHandler writes the note for a day, creating or replacing it.
func (h *NotesHandler) UpsertNoteHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date in path, want YYYY-MM-DD"})
		return
	}

	var req upsertNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	note := models.Note{Date: date, Content: req.Content, Color: req.Color}
	if err := h.Board.UpsertNote(c.Request.Context(), note); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"note": note})
}

func (h *NotesHandler) DeleteNoteHandler(c *gin.Context) {
	date := c.Param("date")
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date in path, want YYYY-MM-DD"})
		return
	}
	if err := h.Board.DeleteNote(c.Request.Context(), date); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": date})
}
