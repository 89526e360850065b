package usecase

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/polkiloo/orderrelay/internal/domain/model"
)

// totalPriority lists where a priced draft may carry its total, most authoritative first.
// The nested order envelope is consulted before the top level.
var totalPriority = []string{
	"Order.Amounts.Customer",
	"Order.Amounts.Payment",
	"Order.Amounts.Total",
	"Order.Amounts.Due",
	"Order.Amounts.Net",
	"Amounts.Customer",
	"Amounts.Payment",
	"Amounts.Total",
	"Amounts.Due",
	"Amounts.Net",
}

// SummarizeQuote extracts store, service method, items and total from a priced draft.
// Missing fields yield empty values; Total stays nil when no candidate is numeric.
func SummarizeQuote(priced json.RawMessage) model.QuoteSummary {
	doc := gjson.ParseBytes(priced)
	summary := model.QuoteSummary{
		StoreID:       orderField(doc, "StoreID").String(),
		ServiceMethod: orderField(doc, "ServiceMethod").String(),
		Items:         []model.SummaryItem{},
		Total:         extractTotal(doc),
	}

	orderField(doc, "Products").ForEach(func(_, p gjson.Result) bool {
		summary.Items = append(summary.Items, model.SummaryItem{
			Code: firstPresent(p, "Code", "code").String(),
			Qty:  int(firstPresent(p, "Qty", "qty", "quantity").Int()),
		})
		return true
	})
	return summary
}

func extractTotal(doc gjson.Result) *float64 {
	for _, path := range totalPriority {
		v := doc.Get(path)
		switch v.Type {
		case gjson.Number:
			total := v.Num
			return &total
		case gjson.String:
			if f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64); err == nil {
				return &f
			}
		}
	}
	return nil
}

// orderField reads name from the Order envelope, falling back to the top level.
func orderField(doc gjson.Result, name string) gjson.Result {
	if v := doc.Get("Order." + name); v.Exists() {
		return v
	}
	return doc.Get(name)
}
