package dto

import (
	"encoding/json"
	"time"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// QuoteRequest is the quoteOrder input. Items is a JSON-encoded array, sent either as a
// string or inline.
type QuoteRequest struct {
	Street        string          `json:"street"`
	Line2         string          `json:"line2"`
	City          string          `json:"city"`
	Region        string          `json:"region"`
	PostalCode    string          `json:"postalCode"`
	FirstName     string          `json:"firstName"`
	LastName      string          `json:"lastName"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	Items         json.RawMessage `json:"items"`
	ServiceMethod string          `json:"serviceMethod"`
}

// QuoteResponse covers both accepted and rejected quotes.
type QuoteResponse struct {
	OK         bool                `json:"ok"`
	State      string              `json:"state"`
	Step       string              `json:"step,omitempty"`
	Status     any                 `json:"status,omitempty"`
	Message    string              `json:"message,omitempty"`
	Details    json.RawMessage     `json:"details,omitempty"`
	OrderToken string              `json:"orderToken,omitempty"`
	Summary    *model.QuoteSummary `json:"summary,omitempty"`
	Store      *model.StoreHint    `json:"store,omitempty"`
	Guidance   string              `json:"guidance,omitempty"`
}

// QuoteViewResponse describes a pending quote.
type QuoteViewResponse struct {
	OrderToken string             `json:"orderToken"`
	Summary    model.QuoteSummary `json:"summary"`
	Store      model.StoreHint    `json:"store"`
	ExpiresAt  time.Time          `json:"expiresAt"`
}
