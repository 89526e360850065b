package upstream

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

const (
	PathStoreLocator  = "/store-locator"
	PathValidateOrder = "/validate-order"
	PathPriceOrder    = "/price-order"
	PathPlaceOrder    = "/place-order"
)

// API exposes the ordering endpoints over a Caller.
type API struct {
	caller Caller
}

// NewAPI wraps caller with typed ordering operations.
func NewAPI(caller Caller) *API {
	return &API{caller: caller}
}

// FindStores queries the store locator for an address line and locality.
func (a *API) FindStores(ctx context.Context, street, locality string, method model.ServiceMethod) (json.RawMessage, error) {
	return a.fetch(ctx, PathStoreLocator, CallOptions{
		Query: map[string]any{"s": street, "c": locality, "type": string(method)},
	})
}

// Menu fetches the structured menu of a store.
func (a *API) Menu(ctx context.Context, storeID string) (json.RawMessage, error) {
	if storeID == "" || storeID == "." || storeID == ".." {
		return nil, domainErrors.Invalid("storeId", "must be a single path segment")
	}
	return a.fetch(ctx, "/store/"+url.PathEscape(storeID)+"/menu", CallOptions{
		Query: map[string]any{"lang": "en", "structured": "true"},
		Name:  "/store/menu",
	})
}

// ValidateOrder submits the assembled order for validation.
func (a *API) ValidateOrder(ctx context.Context, req model.OrderRequest) (json.RawMessage, error) {
	return a.fetch(ctx, PathValidateOrder, CallOptions{Method: http.MethodPost, Body: req})
}

// PriceOrder prices the object returned by ValidateOrder.
func (a *API) PriceOrder(ctx context.Context, validated json.RawMessage) (json.RawMessage, error) {
	return a.fetch(ctx, PathPriceOrder, CallOptions{Method: http.MethodPost, Body: validated})
}

// PlaceOrder submits a priced draft for fulfilment.
func (a *API) PlaceOrder(ctx context.Context, priced json.RawMessage) (json.RawMessage, error) {
	return a.fetch(ctx, PathPlaceOrder, CallOptions{Method: http.MethodPost, Body: priced})
}

func (a *API) fetch(ctx context.Context, p string, opts CallOptions) (json.RawMessage, error) {
	resp, err := a.caller.Call(ctx, p, opts)
	if err != nil {
		return nil, err
	}
	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !resp.JSON && !gjson.ValidBytes(body) {
		return nil, &domainErrors.MalformedResponseError{Path: p, Status: resp.StatusCode, Body: resp.Body}
	}
	return json.RawMessage(body), nil
}
