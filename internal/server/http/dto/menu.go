package dto

import "github.com/polkiloo/orderrelay/internal/domain/model"

// MenuResponse is a bounded view of a store menu.
type MenuResponse struct {
	StoreID    string                  `json:"storeId"`
	Search     string                  `json:"search,omitempty"`
	Matched    int                     `json:"matched"`
	Truncated  bool                    `json:"truncated"`
	Products   []model.ProductSummary  `json:"products"`
	Categories []model.CategorySummary `json:"categories,omitempty"`
}
