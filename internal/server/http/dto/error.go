package dto

import "encoding/json"

// ErrorResponse is returned for every failed request.
type ErrorResponse struct {
	Error   string          `json:"error"`
	Code    string          `json:"code"`
	Field   string          `json:"field,omitempty"`
	Status  int             `json:"status,omitempty"`
	Details json.RawMessage `json:"details,omitempty"`
}

// HealthResponse reports service health.
type HealthResponse struct {
	Status string `json:"status"`
}
