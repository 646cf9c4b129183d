// Package core holds the domain model and the pure aggregation engine.
//
// This file contains parsing of monetary amounts from user input and
// conversion between cents and unit representations.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseAmountToCents converts a decimal string to absolute cents with
// half-up rounding on the third decimal place.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. A leading
// sign is accepted and discarded: amounts are stored as absolute values, the
// direction being carried by the transaction type.
//
// Examples:
//
//	ParseAmountToCents("12.34")  -> 1234, nil
//	ParseAmountToCents("12,34")  -> 1234, nil
//	ParseAmountToCents("-50")    -> 5000, nil (sign stripped)
//	ParseAmountToCents("12.346") -> 1235, nil (rounds up)
func ParseAmountToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot, discard the sign
	s = strings.ReplaceAll(s, ",", ".")
	s = strings.TrimPrefix(strings.TrimPrefix(s, "+"), "-")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 100
	const maxSafeInt64 = (1<<63 - 1) / 100
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// Take the first two fractional digits; half-up rounding on the third
	var fracCents int64
	if len(fracPart) > 0 {
		d1 := int64(fracPart[0] - '0')
		fracCents = d1 * 10
		if len(fracPart) > 1 {
			d2 := int64(fracPart[1] - '0')
			fracCents += d2
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}
	return iv*100 + fracCents, nil
}

// Units returns the amount in currency units as a float64 for display.
// Use cents for calculations to avoid floating-point precision issues.
func (m Money) Units() float64 {
	return float64(m.Cents) / 100.0
}
