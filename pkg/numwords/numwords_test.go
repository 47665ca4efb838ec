package numwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		name   string
		amount int64
		want   string
	}{
		{"zero", 0, "Zero"},
		{"single digit", 7, "Seven"},
		{"teen", 14, "Fourteen"},
		{"round ten", 10, "Ten"},
		{"two digits", 42, "Forty Two"},
		{"round hundred", 500, "Five Hundred"},
		{"three digits", 999, "Nine Hundred Ninety Nine"},
		{"hundred with teen", 115, "One Hundred Fifteen"},
		{"round thousand", 1000, "One Thousand"},
		{"thousand with remainder", 2500, "Two Thousand Five Hundred"},
		{"tens of thousands", 45000, "Forty Five Thousand"},
		{"just below a lakh", 99999, "Ninety Nine Thousand Nine Hundred Ninety Nine"},
		{"round lakh", 100000, "One Lakh"},
		{"lakh with full remainder", 123456, "One Lakh Twenty Three Thousand Four Hundred Fifty Six"},
		{"several lakhs", 550000, "Five Lakh Fifty Thousand"},
		{"round crore", 10000000, "One Crore"},
		{"crore with remainder", 12345678, "One Crore Twenty Three Lakh Forty Five Thousand Six Hundred Seventy Eight"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ToWords(tt.amount))
		})
	}
}

func TestToWordsNoDanglingZero(t *testing.T) {
	// A zero remainder in any group must not emit "Zero"
	assert.Equal(t, "One Thousand", ToWords(1000))
	assert.Equal(t, "Two Lakh", ToWords(200000))
	assert.Equal(t, "Three Crore", ToWords(30000000))
	assert.NotContains(t, ToWords(1000), "Zero")
}

func TestInRupees(t *testing.T) {
	assert.Equal(t, "One Thousand Rupees Only", InRupees(1000))
	assert.Equal(t, "Zero Rupees Only", InRupees(0))
}
