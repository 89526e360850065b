package test

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// UpstreamStub replays canned ordering API responses and records the calls it receives.
type UpstreamStub struct {
	FindStoresFn func(context.Context, string, string, model.ServiceMethod) (json.RawMessage, error)
	MenuFn       func(context.Context, string) (json.RawMessage, error)
	ValidateFn   func(context.Context, model.OrderRequest) (json.RawMessage, error)
	PriceFn      func(context.Context, json.RawMessage) (json.RawMessage, error)
	PlaceFn      func(context.Context, json.RawMessage) (json.RawMessage, error)

	Calls     []string
	Validated []model.OrderRequest
	Priced    []json.RawMessage
	Placed    []json.RawMessage

	mu sync.Mutex
}

func (s *UpstreamStub) record(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Calls = append(s.Calls, name)
}

// CallCount returns how many times the named endpoint was invoked.
func (s *UpstreamStub) CallCount(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, c := range s.Calls {
		if c == name {
			n++
		}
	}
	return n
}

// FindStores returns a single online and open store by default.
func (s *UpstreamStub) FindStores(ctx context.Context, street, locality string, method model.ServiceMethod) (json.RawMessage, error) {
	s.record("store-locator")
	if s.FindStoresFn != nil {
		return s.FindStoresFn(ctx, street, locality, method)
	}
	return json.RawMessage(`{"Stores":[{"StoreID":"123","IsOnlineNow":true,"IsOpen":true}]}`), nil
}

// Menu returns an empty menu by default.
func (s *UpstreamStub) Menu(ctx context.Context, storeID string) (json.RawMessage, error) {
	s.record("menu")
	if s.MenuFn != nil {
		return s.MenuFn(ctx, storeID)
	}
	return json.RawMessage(`{"Products":{},"Categories":{}}`), nil
}

// ValidateOrder echoes the request with Status 0 by default.
func (s *UpstreamStub) ValidateOrder(ctx context.Context, req model.OrderRequest) (json.RawMessage, error) {
	s.record("validate-order")
	s.mu.Lock()
	s.Validated = append(s.Validated, req)
	s.mu.Unlock()
	if s.ValidateFn != nil {
		return s.ValidateFn(ctx, req)
	}
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}
	return body, nil
}

// PriceOrder returns the input unchanged by default.
func (s *UpstreamStub) PriceOrder(ctx context.Context, validated json.RawMessage) (json.RawMessage, error) {
	s.record("price-order")
	s.mu.Lock()
	s.Priced = append(s.Priced, validated)
	s.mu.Unlock()
	if s.PriceFn != nil {
		return s.PriceFn(ctx, validated)
	}
	return validated, nil
}

// PlaceOrder acknowledges placement by default.
func (s *UpstreamStub) PlaceOrder(ctx context.Context, priced json.RawMessage) (json.RawMessage, error) {
	s.record("place-order")
	s.mu.Lock()
	s.Placed = append(s.Placed, priced)
	s.mu.Unlock()
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, priced)
	}
	return json.RawMessage(`{"Status":0,"Order":{"OrderID":"placed"}}`), nil
}
