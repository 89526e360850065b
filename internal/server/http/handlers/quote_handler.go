package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/polkiloo/orderrelay/internal/domain/model"
	"github.com/polkiloo/orderrelay/internal/server/http/dto"
)

// QuoteHandler manages quote endpoints.
type QuoteHandler struct {
	facade QuoteFacade
}

// NewQuoteHandler constructs QuoteHandler.
func NewQuoteHandler(facade QuoteFacade) *QuoteHandler {
	return &QuoteHandler{facade: facade}
}

// Create handles POST /api/quotes. Upstream rejections are reported with 200 and ok=false.
func (h *QuoteHandler) Create(c *gin.Context) {
	var req dto.QuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	items, ok := itemsText(req.Items)
	if !ok {
		badRequest(c, "items must be a JSON array or a string holding one")
		return
	}

	out, err := h.facade.Quote(c.Request.Context(), model.QuoteInput{
		Address: model.AddressFields{
			Line1:      req.Street,
			Line2:      req.Line2,
			City:       req.City,
			Region:     req.Region,
			PostalCode: req.PostalCode,
		},
		Contact: model.Contact{
			FirstName: req.FirstName,
			LastName:  req.LastName,
			Email:     req.Email,
			Phone:     req.Phone,
		},
		ServiceMethod: req.ServiceMethod,
		Items:         items,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toQuoteResponse(out))
}

// Get handles GET /api/quotes/:token.
func (h *QuoteHandler) Get(c *gin.Context) {
	view, err := h.facade.DescribeQuote(c.Request.Context(), c.Param("token"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.QuoteViewResponse{
		OrderToken: view.Token,
		Summary:    view.Summary,
		Store:      view.Store,
		ExpiresAt:  view.ExpiresAt,
	})
}

// Cancel handles DELETE /api/quotes/:token.
func (h *QuoteHandler) Cancel(c *gin.Context) {
	if err := h.facade.CancelQuote(c.Request.Context(), c.Param("token")); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// itemsText accepts either a JSON string containing the array or the array itself.
// An absent field yields "" and is rejected later by validation.
func itemsText(raw json.RawMessage) (string, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", true
	}
	if raw[0] == '"' {
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", false
		}
		return s, true
	}
	if raw[0] == '[' {
		return string(raw), true
	}
	return "", false
}

func toQuoteResponse(out *model.QuoteOutcome) dto.QuoteResponse {
	return dto.QuoteResponse{
		OK:         out.OK,
		State:      string(out.State),
		Step:       out.Step,
		Status:     out.Status,
		Message:    out.Message,
		Details:    out.Details,
		OrderToken: out.Token,
		Summary:    out.Summary,
		Store:      out.Store,
		Guidance:   out.Guidance,
	}
}
