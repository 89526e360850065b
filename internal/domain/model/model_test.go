package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestServiceMethodValues(t *testing.T) {
	cases := []struct {
		name  string
		got   ServiceMethod
		value string
	}{
		{"delivery", ServiceMethodDelivery, "Delivery"},
		{"carryout", ServiceMethodCarryout, "Carryout"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if string(tc.got) != tc.value {
				t.Fatalf("expected %s, got %s", tc.value, tc.got)
			}
		})
	}
}

func TestPipelineStateTerminal(t *testing.T) {
	cases := []struct {
		state    PipelineState
		terminal bool
	}{
		{StateBuilding, false},
		{StateStoreResolved, false},
		{StateValidated, false},
		{StatePriced, false},
		{StateQuoted, false},
		{StateConfirmed, false},
		{StatePlaced, true},
		{StateValidationRejected, true},
		{StateFailed, true},
	}

	for _, tc := range cases {
		if tc.state.Terminal() != tc.terminal {
			t.Fatalf("state %s: expected terminal=%v", tc.state, tc.terminal)
		}
	}
}

func TestQuoteKeyAndExpiry(t *testing.T) {
	if got := QuoteKey("abc"); got != "quote:abc" {
		t.Fatalf("unexpected key %q", got)
	}

	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	fresh := &Quote{CreatedAt: now.Add(-QuoteTTL)}
	if fresh.Expired(now) {
		t.Fatal("quote exactly at ttl should still be honoured")
	}
	stale := &Quote{CreatedAt: now.Add(-QuoteTTL - time.Second)}
	if !stale.Expired(now) {
		t.Fatal("expected quote past ttl to be expired")
	}
}

func TestLineItemMarshalKeepsExtras(t *testing.T) {
	item := LineItem{
		Code:  "14SCREEN",
		Qty:   2,
		ID:    1,
		Extra: map[string]json.RawMessage{"Options": json.RawMessage(`{"X":{"1/1":"1"}}`), "Code": json.RawMessage(`"ignored"`)},
	}
	data, err := json.Marshal(item)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if decoded["Code"] != "14SCREEN" || decoded["Qty"] != float64(2) || decoded["isNew"] != false {
		t.Fatalf("unexpected payload %s", data)
	}
	if _, ok := decoded["Options"]; !ok {
		t.Fatalf("expected extra field to be preserved: %s", data)
	}
}

func TestNewOrderRequestInitialisesCollections(t *testing.T) {
	req := NewOrderRequest("ID1", "123", ServiceMethodDelivery, Address{City: "NEW YORK"}, Contact{Email: "a@b.c"}, nil)
	data, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded struct {
		Order map[string]json.RawMessage
	}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"Coupons", "Payments"} {
		if string(decoded.Order[key]) != "[]" {
			t.Fatalf("expected %s to be an empty array, got %s", key, decoded.Order[key])
		}
	}
	if string(decoded.Order["StoreID"]) != `"123"` {
		t.Fatalf("unexpected store id %s", decoded.Order["StoreID"])
	}
}

func TestAddressLocality(t *testing.T) {
	addr := Address{City: "NEW YORK", Region: "NY", PostalCode: "10001"}
	if got := addr.Locality(); got != "NEW YORK, NY 10001" {
		t.Fatalf("unexpected locality %q", got)
	}
}
