package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/server/http/dto"
)

type errorMapping struct {
	target error
	status int
	code   string
}

var errorMappings = []errorMapping{
	{domainErrors.ErrValidation, http.StatusBadRequest, "validation_failed"},
	{domainErrors.ErrConfirmationRequired, http.StatusBadRequest, "confirmation_required"},
	{domainErrors.ErrNoStoresFound, http.StatusUnprocessableEntity, "no_stores_found"},
	{domainErrors.ErrStoreIDMissing, http.StatusUnprocessableEntity, "store_id_missing"},
	{domainErrors.ErrUnknownOrExpiredToken, http.StatusNotFound, "unknown_or_expired_token"},
	{domainErrors.ErrQuoteExpired, http.StatusGone, "quote_expired"},
	{domainErrors.ErrUpstreamMalformedResponse, http.StatusBadGateway, "upstream_malformed_response"},
	{domainErrors.ErrUpstreamTransient, http.StatusBadGateway, "upstream_unavailable"},
	{domainErrors.ErrUpstreamStatus, http.StatusBadGateway, "upstream_error"},
}

// writeError maps domain errors onto HTTP responses. Unknown errors become 500 without
// leaking their message.
func writeError(c *gin.Context, err error) {
	for _, m := range errorMappings {
		if !errors.Is(err, m.target) {
			continue
		}
		resp := dto.ErrorResponse{Error: err.Error(), Code: m.code}

		var verr *domainErrors.ValidationError
		if errors.As(err, &verr) {
			resp.Error = verr.Error()
			resp.Field = verr.Field
		}
		var uerr *domainErrors.UpstreamError
		if errors.As(err, &uerr) {
			resp.Status = uerr.Status
			if gjson.ValidBytes(uerr.Body) {
				resp.Details = uerr.Body
			}
		}
		var merr *domainErrors.MalformedResponseError
		if errors.As(err, &merr) {
			resp.Status = merr.Status
		}

		c.AbortWithStatusJSON(m.status, resp)
		return
	}

	_ = c.Error(err)
	c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal error", Code: "internal"})
}

func badRequest(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{Error: msg, Code: "invalid_request"})
}
