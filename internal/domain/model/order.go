package model

import (
	"encoding/json"
)

// ServiceMethod is the fulfilment designation with upstream casing.
type ServiceMethod string

const (
	ServiceMethodDelivery ServiceMethod = "Delivery"
	ServiceMethodCarryout ServiceMethod = "Carryout"
)

// Contact identifies the person the order is placed for.
type Contact struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
}

// LineItem is a single product entry. Fields not known to this service are kept in Extra
// and sent upstream verbatim.
type LineItem struct {
	Code  string
	Qty   int
	ID    any
	IsNew bool
	Extra map[string]json.RawMessage
}

// MarshalJSON renders the item with upstream key names, extras first so known keys win.
func (i LineItem) MarshalJSON() ([]byte, error) {
	out := make(map[string]any, len(i.Extra)+4)
	for k, v := range i.Extra {
		out[k] = v
	}
	out["Code"] = i.Code
	out["Qty"] = i.Qty
	out["ID"] = i.ID
	out["isNew"] = i.IsNew
	return json.Marshal(out)
}

// OrderRequest is the full upstream order envelope.
type OrderRequest struct {
	Order OrderPayload `json:"Order"`
}

// OrderPayload is the body of OrderRequest.
type OrderPayload struct {
	Address       Address        `json:"Address"`
	Coupons       []any          `json:"Coupons"`
	CustomerID    string         `json:"CustomerID"`
	Email         string         `json:"Email"`
	FirstName     string         `json:"FirstName"`
	LastName      string         `json:"LastName"`
	Phone         string         `json:"Phone"`
	LanguageCode  string         `json:"LanguageCode"`
	OrderChannel  string         `json:"OrderChannel"`
	OrderID       string         `json:"OrderID"`
	OrderMethod   string         `json:"OrderMethod"`
	Payments      []any          `json:"Payments"`
	Products      []LineItem     `json:"Products"`
	ServiceMethod ServiceMethod  `json:"ServiceMethod"`
	StoreID       string         `json:"StoreID"`
	Tags          map[string]any `json:"Tags"`
	Version       string         `json:"Version"`
}

// NewOrderRequest assembles an upstream order with empty collections initialised.
func NewOrderRequest(orderID, storeID string, method ServiceMethod, addr Address, contact Contact, items []LineItem) OrderRequest {
	return OrderRequest{Order: OrderPayload{
		Address:       addr,
		Coupons:       []any{},
		Email:         contact.Email,
		FirstName:     contact.FirstName,
		LastName:      contact.LastName,
		Phone:         contact.Phone,
		LanguageCode:  "en",
		OrderChannel:  "OLO",
		OrderID:       orderID,
		OrderMethod:   "Web",
		Payments:      []any{},
		Products:      items,
		ServiceMethod: method,
		StoreID:       storeID,
		Tags:          map[string]any{},
		Version:       "1.0",
	}}
}

// QuoteInput is the raw quote request before normalization.
type QuoteInput struct {
	Address       AddressFields
	Contact       Contact
	ServiceMethod string
	Items         string
}
