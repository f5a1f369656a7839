package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handlers) registerPackEndpoints(r gin.IRouter) {
	r.POST("/packs", h.openPack)
}

// Abre um booster. O navegador faz a revelação, então nada fica preso
// depois da resposta
func (h *Handlers) openPack(c *gin.Context) {
	booster, err := h.useCases.OpenBooster(c.Request.Context(), nil)
	if err != nil {
		h.abortWithError(c, "open pack", err)
		return
	}
	c.JSON(http.StatusCreated, booster)
}
