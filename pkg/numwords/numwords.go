// Package numwords converts rupee amounts to their English words
// representation using Indian numbering (thousand, lakh, crore).
package numwords

import "strings"

var ones = []string{"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine"}

var teens = []string{"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen", "Seventeen", "Eighteen", "Nineteen"}

var tens = []string{"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety"}

const (
	lakh  = 100_000
	crore = 10_000_000
)

// convertHundreds converts a number below 1000 into words, with a trailing
// space. Returns the empty string for 0 so group remainders never emit a
// dangling "Zero".
func convertHundreds(n int64) string {
	var b strings.Builder

	if n >= 100 {
		b.WriteString(ones[n/100])
		b.WriteString(" Hundred ")
		n %= 100
	}

	if n >= 20 {
		b.WriteString(tens[n/10])
		b.WriteString(" ")
		n %= 10
	} else if n >= 10 {
		b.WriteString(teens[n-10])
		b.WriteString(" ")
		return b.String()
	}

	if n > 0 {
		b.WriteString(ones[n])
		b.WriteString(" ")
	}

	return b.String()
}

// ToWords converts a non-negative rupee amount to English words.
func ToWords(n int64) string {
	if n == 0 {
		return "Zero"
	}

	var b strings.Builder

	if n >= crore {
		b.WriteString(convertHundreds(n / crore))
		b.WriteString("Crore ")
		n %= crore
	}
	if n >= lakh {
		b.WriteString(convertHundreds(n / lakh))
		b.WriteString("Lakh ")
		n %= lakh
	}
	if n >= 1000 {
		b.WriteString(convertHundreds(n / 1000))
		b.WriteString("Thousand ")
		n %= 1000
	}
	b.WriteString(convertHundreds(n))

	return strings.TrimSpace(b.String())
}

// InRupees renders an amount the way it appears on a printed receipt,
// e.g. "One Thousand Rupees Only".
func InRupees(n int64) string {
	return ToWords(n) + " Rupees Only"
}
