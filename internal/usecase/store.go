package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/tidwall/gjson"

	domainErrors "github.com/polkiloo/orderrelay/internal/domain/errors"
	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// StoreLocator looks up stores serving an address.
type StoreLocator interface {
	FindStores(ctx context.Context, street, locality string, method model.ServiceMethod) (json.RawMessage, error)
}

var storeIDFields = []string{"StoreID", "StoreId", "storeId", "ID", "Id"}

// StoreResolver picks the store an order is routed to.
type StoreResolver struct {
	locator StoreLocator
	logger  *slog.Logger
}

// NewStoreResolver constructs StoreResolver.
func NewStoreResolver(locator StoreLocator, logger *slog.Logger) *StoreResolver {
	return &StoreResolver{locator: locator, logger: logger}
}

// Resolve prefers a store that is online and open, then one that is online, then the first listed.
func (r *StoreResolver) Resolve(ctx context.Context, addr model.Address, method model.ServiceMethod) (*model.ResolvedStore, error) {
	raw, err := r.locator.FindStores(ctx, addr.Line1, addr.Locality(), method)
	if err != nil {
		return nil, fmt.Errorf("locate stores: %w", err)
	}

	stores := gjson.GetBytes(raw, "Stores")
	if !stores.IsArray() || len(stores.Array()) == 0 {
		return nil, fmt.Errorf("%w: %s", domainErrors.ErrNoStoresFound, addr.Locality())
	}

	store := SelectStore(stores.Array())
	id := StoreIDOf(store)
	if id == "" {
		return nil, domainErrors.ErrStoreIDMissing
	}

	resolved := &model.ResolvedStore{
		StoreID: id,
		Hint: model.StoreHint{
			ID:                 id,
			Name:               firstPresent(store, "StoreName", "Name").String(),
			AddressDescription: store.Get("AddressDescription").String(),
		},
	}
	r.logger.Debug("store resolved",
		slog.String("store_id", id),
		slog.Bool("online", store.Get("IsOnlineNow").Bool()),
		slog.Bool("open", store.Get("IsOpen").Bool()),
	)
	return resolved, nil
}

// SelectStore applies the online/open preference to a non-empty store list.
func SelectStore(stores []gjson.Result) gjson.Result {
	for _, s := range stores {
		if s.Get("IsOnlineNow").Bool() && s.Get("IsOpen").Bool() {
			return s
		}
	}
	for _, s := range stores {
		if s.Get("IsOnlineNow").Bool() {
			return s
		}
	}
	return stores[0]
}

// StoreIDOf returns the first non-empty identifier among the known spellings.
func StoreIDOf(store gjson.Result) string {
	for _, f := range storeIDFields {
		v := store.Get(f)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if id := v.String(); id != "" {
			return id
		}
	}
	return ""
}
