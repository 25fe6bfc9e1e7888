package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	ai "slotboard/services/intelligence"
	"slotboard/utils"
)

// ParseHandler exposes the free-text availability parser. It only proposes;
// each proposal is confirmed through the normal slot create endpoint.
type ParseHandler struct {
	Parser ai.ParserService
}

func NewParseHandler(parser ai.ParserService) *ParseHandler {
	return &ParseHandler{Parser: parser}
}

func (h *ParseHandler) ParseAvailabilityHandler(c *gin.Context) {
	logger := utils.GetLogger()

	var req models.ParseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request payload", "message": err.Error()})
		return
	}

	result, err := h.Parser.ParseAvailability(c.Request.Context(), c.ClientIP(), req)
	if err != nil {
		logger.Warn("availability parse failed", zap.Error(err))
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Could not parse availability", "message": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"proposals": result.Proposals})
}
