package dto

import (
	"encoding/json"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// PlaceRequest is the placeOrder input. Confirm is decoded loosely so that only a JSON
// true is accepted downstream.
type PlaceRequest struct {
	OrderToken string `json:"orderToken"`
	Confirm    any    `json:"confirm"`
}

// PlaceResponse reports a placed order together with the raw upstream result.
type PlaceResponse struct {
	OK         bool               `json:"ok"`
	State      string             `json:"state"`
	OrderToken string             `json:"orderToken"`
	Summary    model.QuoteSummary `json:"summary"`
	Result     json.RawMessage    `json:"result"`
}
