package models

import (
	"encoding/json"
	"testing"
)

func TestMoneyJSON(t *testing.T) {
	cases := map[string]string{
		`"1250.5"`: "1250.50",
		`99.999`:   "100.00",
		`null`:     "0.00",
		`""`:       "0.00",
	}
	for input, want := range cases {
		var m Money
		if err := json.Unmarshal([]byte(input), &m); err != nil {
			t.Fatalf("unmarshal %s failed: %v", input, err)
		}
		if m.String() != want {
			t.Fatalf("unmarshal %s want %s got %s", input, want, m.String())
		}
	}
	out, err := json.Marshal(struct {
		Price Money `json:"price"`
	}{MustMoney("42750")})
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(out) != `{"price":"42750.00"}` {
		t.Fatalf("unexpected json: %s", out)
	}
	var bad Money
	if err := json.Unmarshal([]byte(`"abc"`), &bad); err == nil {
		t.Fatalf("non-numeric amount should fail")
	}
}

func TestMoneyOrDefault(t *testing.T) {
	original := MustMoney("5000")
	var missing *Money
	if got := missing.OrDefault(original); !got.Equal(original.Decimal) {
		t.Fatalf("nil should fall back, got %s", got)
	}
	zero := MustMoney("0")
	if got := zero.OrDefault(original); !got.Equal(original.Decimal) {
		t.Fatalf("zero should fall back, got %s", got)
	}
	discount := MustMoney("4500")
	if got := discount.OrDefault(original); got.String() != "4500.00" {
		t.Fatalf("set value should win, got %s", got)
	}
}

func TestMoneyScan(t *testing.T) {
	var m Money
	if err := m.Scan("12.345"); err != nil {
		t.Fatalf("scan failed: %v", err)
	}
	if m.String() != "12.35" {
		t.Fatalf("scan should round, got %s", m.String())
	}
	v, err := m.Value()
	if err != nil || v != "12.35" {
		t.Fatalf("unexpected value %v err=%v", v, err)
	}
}
