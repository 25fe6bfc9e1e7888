package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"slotboard/services/board"
	"slotboard/utils"
)

// ExportHandler hands the canonical collections to export renderers. The
// bundle is a point-in-time copy; renderers never see the live board.
type ExportHandler struct {
	Board board.Service
}

func NewExportHandler(b board.Service) *ExportHandler {
	return &ExportHandler{Board: b}
}

func (h *ExportHandler) ExportBundleHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.Board.Snapshot())
}

// HealthHandler reports the latest background health snapshot.
func HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "health": utils.GetHealthStatus()})
}
