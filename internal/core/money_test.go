package core

import "testing"

func TestParseAmountToCents(t *testing.T) {
	cases := []struct {
		in   string
		want int64
		ok   bool
	}{
		{"12.34", 1234, true},
		{"12,34", 1234, true},
		{"50", 5000, true},
		{"-50", 5000, true}, // sign stripped, absolute value stored
		{"+7.5", 750, true},
		{"12.345", 1234, true},
		{"12.346", 1235, true},
		{"0", 0, true},
		{"", 0, false},
		{"abc", 0, false},
		{"1.2.3", 0, false},
	}
	for i, tc := range cases {
		got, err := ParseAmountToCents(tc.in)
		if tc.ok && err != nil {
			t.Fatalf("case %d (%q) expected ok, got %v", i, tc.in, err)
		}
		if !tc.ok && err == nil {
			t.Fatalf("case %d (%q) expected error", i, tc.in)
		}
		if tc.ok && got != tc.want {
			t.Fatalf("case %d (%q) expected %d cents, got %d", i, tc.in, tc.want, got)
		}
	}
}

func TestMoneyUnits(t *testing.T) {
	if got := (Money{Cents: 1234}).Units(); got != 12.34 {
		t.Fatalf("expected 12.34, got %v", got)
	}
}

func TestMoneyAbs(t *testing.T) {
	if got := (Money{Cents: -500}).Abs(); got.Cents != 500 {
		t.Fatalf("expected 500, got %d", got.Cents)
	}
	if got := (Money{Cents: 500}).Abs(); got.Cents != 500 {
		t.Fatalf("expected 500, got %d", got.Cents)
	}
}
