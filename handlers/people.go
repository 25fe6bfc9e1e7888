package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotboard/services/board"
)

// PeopleHandler serves the interviewer roster.
type PeopleHandler struct {
	Board board.Service
}

func NewPeopleHandler(b board.Service) *PeopleHandler {
	return &PeopleHandler{Board: b}
}

func (h *PeopleHandler) ListPeopleHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"people": h.Board.People()})
}

type updatePersonRequest struct {
	DisplayName string `json:"displayName"`
	Color       string `json:"color"`
}

// UpdatePersonHandler changes display attributes. Identity is immutable;
// there is no way to re-key a person.
func (h *PeopleHandler) UpdatePersonHandler(c *gin.Context) {
	id := c.Param("personID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing person ID in path"})
		return
	}

	var req updatePersonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}
	if req.DisplayName == "" && req.Color == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Nothing to update"})
		return
	}

	person, err := h.Board.UpdatePersonDisplay(c.Request.Context(), id, req.DisplayName, req.Color)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"person": person})
}
