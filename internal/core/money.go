// Package core provides money parsing and formatting utilities.
//
// Amounts are whole-rupiah values stored as float64. Display always rounds to
// zero fractional digits, the way id-ID currency formatting does for IDR.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var idPrinter = message.NewPrinter(language.Indonesian)

// FormatRupiah formats amount as Indonesian Rupiah with no fractional digits.
//
// Examples:
//
//	FormatRupiah(1500000)  -> "Rp1.500.000"
//	FormatRupiah(0)        -> "Rp0"
//	FormatRupiah(1499.5)   -> "Rp1.500"
//	FormatRupiah(-2500)    -> "-Rp2.500"
func FormatRupiah(amount float64) string {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return "Rp0"
	}
	whole := math.Round(amount)
	digits := idPrinter.Sprint(number.Decimal(math.Abs(whole), number.MaxFractionDigits(0)))
	if whole < 0 {
		return "-Rp" + digits
	}
	return "Rp" + digits
}

// ParseAmount converts a ledger amount string to a number.
//
// Indonesian notation is assumed: "." groups thousands and "," separates the
// fraction. A currency prefix ("Rp") and spaces are ignored. A single dot
// followed by anything other than three digits is read as a decimal point,
// so "1500000.5" parses as expected.
//
//	ParseAmount("Rp 1.500.000")  -> 1500000, nil
//	ParseAmount("25.000,50")     -> 25000.5, nil
//	ParseAmount("1500000")       -> 1500000, nil
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	neg := false
	if strings.HasPrefix(s, "-") {
		neg = true
		s = strings.TrimSpace(s[1:])
	}
	s = strings.TrimPrefix(strings.TrimPrefix(s, "Rp"), "rp")
	s = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
	if s == "" {
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, hasComma := strings.Cut(s, ",")
	if hasComma {
		intPart = strings.ReplaceAll(intPart, ".", "")
	} else if dots := strings.Count(intPart, "."); dots == 1 {
		i := strings.Index(intPart, ".")
		if len(intPart)-i-1 != 3 {
			intPart, fracPart = intPart[:i], intPart[i+1:]
		} else {
			intPart = strings.ReplaceAll(intPart, ".", "")
		}
	} else if dots > 1 {
		intPart = strings.ReplaceAll(intPart, ".", "")
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	num := intPart
	if fracPart != "" {
		num += "." + fracPart
	}
	v, err := strconv.ParseFloat(num, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if neg {
		v = -v
	}
	return v, nil
}
