package gst

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		expected string
	}{
		{"zero", 0, "Zero Only"},
		{"negative", -5, "Zero Only"},
		{"single_digit", 5, "Five Only"},
		{"teens", 14, "Fourteen Only"},
		{"compound_tens", 21, "Twenty One Only"},
		{"hundred", 100, "One Hundred Only"},
		{"hundred_and_one", 101, "One Hundred And One Only"},
		{"three_digits", 999, "Nine Hundred And Ninety Nine Only"},
		{"thousand", 1000, "One Thousand Only"},
		{"thousand_and_one", 1001, "One Thousand And One Only"},
		{"mixed_thousand", 2501, "Two Thousand Five Hundred And One Only"},
		{"lakh_not_hundred_thousand", 100000, "One Lakh Only"},
		{"lakh_grouping", 150000, "One Lakh Fifty Thousand Only"},
		{"many_lakh", 2550000, "Twenty Five Lakh Fifty Thousand Only"},
		{"crore", 10000000, "One Crore Only"},
		{"full_spread", 12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred And Seventy Eight Only"},
		{"hundred_crore", 1500000000, "One Hundred And Fifty Crore Only"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, AmountInWords(tt.amount))
		})
	}
}

func TestAmountInWords_IndianGrouping(t *testing.T) {
	// The en_IN convention groups by lakh, never by hundred-thousand.
	got := AmountInWords(150000)
	assert.NotContains(t, got, "Hundred Fifty Thousand")
	assert.Contains(t, got, "Lakh")
}
