package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"tta-cards/internal/models"
)

// abortWithError mapeia erros do domínio pra status e escreve um ErrorResponse
func (h *Handlers) abortWithError(c *gin.Context, kind string, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, models.ErrPackInProgress):
		status = http.StatusConflict
	case errors.Is(err, models.ErrEmptyPool):
		status = http.StatusUnprocessableEntity
	case errors.Is(err, models.ErrCatalogLoad):
		status = http.StatusServiceUnavailable
	default:
		h.logger.Error("request failed", "kind", kind, "error", err)
	}

	c.AbortWithStatusJSON(status, models.ErrorResponse{Type: kind, Message: err.Error()})
}

func badRequest(c *gin.Context, kind, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, models.ErrorResponse{Type: kind, Message: msg})
}
