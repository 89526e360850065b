package model

// ResolvedStore is the outcome of store resolution.
type ResolvedStore struct {
	StoreID string
	Hint    StoreHint
}
