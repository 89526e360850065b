package model

// ProductSummary is a compact view of a menu product.
type ProductSummary struct {
	Code        string `json:"code"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	ProductType string `json:"productType,omitempty"`
}

// CategorySummary is a compact view of a top-level menu category.
type CategorySummary struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// MenuResult is a bounded view over a store menu.
type MenuResult struct {
	StoreID    string
	Search     string
	Matched    int
	Truncated  bool
	Products   []ProductSummary
	Categories []CategorySummary
}
