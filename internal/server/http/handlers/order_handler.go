package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderrelay/internal/server/http/dto"
)

// OrderHandler places confirmed quotes.
type OrderHandler struct {
	facade QuoteFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade QuoteFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Place handles POST /api/orders.
func (h *OrderHandler) Place(c *gin.Context) {
	var req dto.PlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	out, err := h.facade.Place(c.Request.Context(), req.OrderToken, req.Confirm)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.PlaceResponse{
		OK:         out.OK,
		State:      string(out.State),
		OrderToken: out.Token,
		Summary:    out.Summary,
		Result:     out.Result,
	})
}
