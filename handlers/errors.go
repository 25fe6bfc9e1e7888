package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"slotboard/models"
	"slotboard/utils"
)

// respondError maps the typed error taxonomy onto HTTP statuses.
func respondError(c *gin.Context, err error) {
	var invalidRange *models.InvalidRangeError
	var outOfBounds *models.OutOfBoundsError
	var notFound *models.NotFoundError
	var persistence *models.PersistenceError

	switch {
	case errors.As(err, &invalidRange):
		utils.JSONError(c, http.StatusBadRequest, "Invalid time range", err.Error())
	case errors.As(err, &outOfBounds):
		utils.JSONError(c, http.StatusUnprocessableEntity, "Target out of bounds", err.Error())
	case errors.As(err, &notFound):
		utils.JSONError(c, http.StatusNotFound, "Not found", err.Error())
	case errors.As(err, &persistence):
		status := http.StatusBadGateway
		if persistence.RateLimited {
			status = http.StatusTooManyRequests
		}
		utils.GetLogger().Error("store error", zap.Error(err))
		utils.JSONError(c, status, "Backing store error", err.Error())
	default:
		utils.GetLogger().Error("unexpected error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "Internal error", err.Error())
	}
}
