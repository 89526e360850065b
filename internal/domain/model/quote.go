package model

import (
	"encoding/json"
	"time"
)

// QuoteTTL bounds how long a priced draft may wait for confirmation.
const QuoteTTL = 30 * time.Minute

const quoteKeyPrefix = "quote:"

// QuoteKey returns the namespaced persistence key for a confirmation token.
func QuoteKey(token string) string {
	return quoteKeyPrefix + token
}

// StoreHint is a human-friendly description of the store that priced a quote.
type StoreHint struct {
	ID                 string `json:"id"`
	Name               string `json:"name,omitempty"`
	AddressDescription string `json:"addressDescription,omitempty"`
}

// Quote is a priced draft waiting for explicit confirmation. It is never mutated after creation.
type Quote struct {
	Token         string          `json:"token"`
	CreatedAt     time.Time       `json:"createdAt"`
	StoreID       string          `json:"storeId"`
	ServiceMethod ServiceMethod   `json:"serviceMethod"`
	StoreHint     StoreHint       `json:"storeHint"`
	PricedDraft   json.RawMessage `json:"pricedDraft"`
}

// Expired reports whether the quote is older than QuoteTTL at the given instant.
func (q *Quote) Expired(now time.Time) bool {
	return now.Sub(q.CreatedAt) > QuoteTTL
}

// SummaryItem is a code and quantity pair.
type SummaryItem struct {
	Code string `json:"code"`
	Qty  int    `json:"qty"`
}

// QuoteSummary is the human-readable digest of a priced draft.
type QuoteSummary struct {
	StoreID       string        `json:"storeId"`
	ServiceMethod string        `json:"serviceMethod"`
	Items         []SummaryItem `json:"items"`
	Total         *float64      `json:"total"`
}

// QuoteOutcome is the result of the quote pipeline. OK=false is an upstream business
// rejection, not a system failure.
type QuoteOutcome struct {
	OK       bool
	State    PipelineState
	Step     string
	Status   any
	Message  string
	Details  json.RawMessage
	Token    string
	Summary  *QuoteSummary
	Store    *StoreHint
	Guidance string
}

// PlacementOutcome is the result of placing a confirmed quote.
type PlacementOutcome struct {
	OK      bool
	State   PipelineState
	Token   string
	Summary QuoteSummary
	Result  json.RawMessage
}

// QuoteView describes a stored quote without consuming it.
type QuoteView struct {
	Token     string
	Summary   QuoteSummary
	Store     StoreHint
	ExpiresAt time.Time
}
