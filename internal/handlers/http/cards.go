package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Endpoints do catálogo e dos pools, só leitura
func (h *Handlers) registerCardEndpoints(r gin.IRouter) {
	r.GET("/cards", h.getAllCards)
	r.GET("/pools", h.getPools)
}

func (h *Handlers) getAllCards(c *gin.Context) {
	cards, err := h.useCases.Cards(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "catalog", err)
		return
	}
	c.JSON(http.StatusOK, cards)
}

func (h *Handlers) getPools(c *gin.Context) {
	sizes, err := h.useCases.PoolSizes(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "pools", err)
		return
	}
	c.JSON(http.StatusOK, sizes)
}
