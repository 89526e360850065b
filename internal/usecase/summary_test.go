package usecase

import (
	"encoding/json"
	"testing"
)

func TestSummarizeQuoteTotalPriority(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want *float64
	}{
		{name: "customer wins", doc: `{"Order":{"Amounts":{"Payment":19,"Customer":21.5}}}`, want: ptr(21.5)},
		{name: "payment before total", doc: `{"Order":{"Amounts":{"Total":30,"Payment":25}}}`, want: ptr(25)},
		{name: "net last", doc: `{"Order":{"Amounts":{"Net":12}}}`, want: ptr(12)},
		{name: "nested before root", doc: `{"Order":{"Amounts":{"Net":5}},"Amounts":{"Customer":9}}`, want: ptr(5)},
		{name: "root fallback", doc: `{"Amounts":{"Due":"19.99"}}`, want: ptr(19.99)},
		{name: "non numeric skipped", doc: `{"Order":{"Amounts":{"Customer":"n/a","Due":7}}}`, want: ptr(7)},
		{name: "absent", doc: `{"Order":{"Amounts":{}}}`, want: nil},
		{name: "empty", doc: `{}`, want: nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SummarizeQuote(json.RawMessage(tc.doc)).Total
			switch {
			case tc.want == nil && got != nil:
				t.Fatalf("expected nil total, got %v", *got)
			case tc.want != nil && got == nil:
				t.Fatalf("expected total %v, got nil", *tc.want)
			case tc.want != nil && *got != *tc.want:
				t.Fatalf("expected total %v, got %v", *tc.want, *got)
			}
		})
	}
}

func TestSummarizeQuoteFields(t *testing.T) {
	summary := SummarizeQuote(json.RawMessage(`{
		"Order": {
			"StoreID": 123,
			"ServiceMethod": "Delivery",
			"Products": [{"Code":"14SCREEN","Qty":2},{"Code":"20BCOKE","Qty":1}],
			"Amounts": {"Customer": 19.99}
		}
	}`))

	if summary.StoreID != "123" || summary.ServiceMethod != "Delivery" {
		t.Fatalf("unexpected summary %+v", summary)
	}
	if len(summary.Items) != 2 || summary.Items[0].Code != "14SCREEN" || summary.Items[0].Qty != 2 {
		t.Fatalf("unexpected items %+v", summary.Items)
	}
	if summary.Total == nil || *summary.Total != 19.99 {
		t.Fatalf("unexpected total %v", summary.Total)
	}

	empty := SummarizeQuote(json.RawMessage(`{}`))
	if empty.StoreID != "" || empty.Items == nil || len(empty.Items) != 0 {
		t.Fatalf("unexpected empty summary %+v", empty)
	}
}

func ptr(f float64) *float64 { return &f }
