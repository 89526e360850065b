package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderrelay/internal/server/http/dto"
)

// MenuHandler serves menu lookups.
type MenuHandler struct {
	facade MenuFacade
}

// NewMenuHandler constructs MenuHandler.
func NewMenuHandler(facade MenuFacade) *MenuHandler {
	return &MenuHandler{facade: facade}
}

// Menu handles GET /api/stores/:storeID/menu.
func (h *MenuHandler) Menu(c *gin.Context) {
	res, err := h.facade.Menu(c.Request.Context(), c.Param("storeID"), c.Query("search"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.MenuResponse{
		StoreID:    res.StoreID,
		Search:     res.Search,
		Matched:    res.Matched,
		Truncated:  res.Truncated,
		Products:   res.Products,
		Categories: res.Categories,
	})
}
