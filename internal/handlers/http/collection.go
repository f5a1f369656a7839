package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"tta-cards/internal/models"
	"tta-cards/internal/usecases"
)

func (h *Handlers) registerCollectionEndpoints(r gin.IRouter) {
	group := r.Group("/collection")
	{
		group.GET("", h.getCollection)
		group.DELETE("", h.clearCollection)
		group.GET("/summary", h.getSummary)
		group.GET("/cards", h.listCards)
	}
}

func (h *Handlers) getCollection(c *gin.Context) {
	c.JSON(http.StatusOK, h.useCases.Collection(c.Request.Context()))
}

func (h *Handlers) clearCollection(c *gin.Context) {
	if err := h.useCases.ClearCollection(c.Request.Context()); err != nil {
		h.abortWithError(c, "clear collection", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handlers) getSummary(c *gin.Context) {
	summary, err := h.useCases.Summary(c.Request.Context())
	if err != nil {
		h.abortWithError(c, "summary", err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// ?rarity=&q=&owned=&sort=
func (h *Handlers) listCards(c *gin.Context) {
	var q models.ListQuery

	if s := c.Query("rarity"); s != "" {
		r, ok := models.ParseRarity(s)
		if !ok {
			badRequest(c, "list cards", "unknown rarity "+strconv.Quote(s))
			return
		}
		q.Rarity = r
	}
	if s := c.Query("owned"); s != "" {
		owned, err := strconv.ParseBool(s)
		if err != nil {
			badRequest(c, "list cards", "owned should be a boolean")
			return
		}
		q.OwnedOnly = owned
	}
	q.Search = c.Query("q")
	q.Sort = usecases.ParseSortMode(c.Query("sort"))

	entries, err := h.useCases.ListCards(c.Request.Context(), q)
	if err != nil {
		h.abortWithError(c, "list cards", err)
		return
	}
	c.JSON(http.StatusOK, entries)
}
