package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) registerHealthEndpoints(r gin.IRouter) {
	r.GET("/health", h.getHealth)
}

// OK quando o catálogo carregou, DOWN caso contrário. opening indica pacote
// sendo aberto
func (h *Handlers) getHealth(c *gin.Context) {
	cards, err := h.useCases.Cards(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN", "error": err.Error(), "opening": h.useCases.Opening()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "OK", "cards": len(cards), "opening": h.useCases.Opening()})
}
