// Package validation holds the pure predicates applied to every value
// that enters or is stored by the ledger.
package validation

import (
	"math"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

// MaxAmount is the largest value any stored amount may hold.
const MaxAmount = math.MaxFloat64 / 2

const (
	taxIDLength     = 11
	minNameLength   = 2
	maxNameLength   = 50
	minPasswordLen  = 8
	passwordSymbols = "!@#$%^&*()_+-=[]{}|;:,.<>?"
	unsafeChars     = "<>\"'&"
)

// IsValidAmount reports whether x is a finite, non-negative amount no
// larger than MaxAmount.
func IsValidAmount(x float64) bool {
	return x >= 0 && !math.IsInf(x, 0) && !math.IsNaN(x) && x <= MaxAmount
}

// IsFiniteSigned reports whether x is finite and its magnitude is no
// larger than MaxAmount. Used for values that may legitimately be
// negative, such as an overdrawn checking balance or an investment loss.
func IsFiniteSigned(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0) && math.Abs(x) <= MaxAmount
}

// IsValidName accepts 2 to 50 Latin letters (Latin-1 accents included)
// and plain spaces, after trimming and NFC normalization.
func IsValidName(s string) bool {
	s = norm.NFC.String(strings.TrimSpace(s))
	n := utf8.RuneCountInString(s)
	if n < minNameLength || n > maxNameLength {
		return false
	}
	for _, r := range s {
		if !isNameRune(r) {
			return false
		}
	}
	return true
}

func isNameRune(r rune) bool {
	switch {
	case r == ' ':
		return true
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		return true
	case r >= 'À' && r <= 'ÿ':
		return r != '×' && r != '÷'
	}
	return false
}

// IsValidPassword requires at least 8 characters with one upper case
// letter, one lower case letter, one digit and one symbol.
func IsValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < minPasswordLen {
		return false
	}

	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	return upper && lower && digit && symbol
}

// NormalizeTaxID strips every non-digit character.
func NormalizeTaxID(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidTaxID checks the format and both check digits of a CPF.
// Punctuation such as "123.456.789-09" is ignored.
func IsValidTaxID(s string) bool {
	digits := NormalizeTaxID(s)
	if len(digits) != taxIDLength {
		return false
	}
	if strings.Count(digits, digits[:1]) == taxIDLength {
		return false
	}

	d := make([]int, taxIDLength)
	for i := range digits {
		d[i] = int(digits[i] - '0')
	}
	return checkDigit(d[:9], 10) == d[9] && checkDigit(d[:10], 11) == d[10]
}

// checkDigit is the weighted-sum mod 11 rule, weights starting at
// firstWeight and decreasing to 2.
func checkDigit(d []int, firstWeight int) int {
	sum := 0
	for i, v := range d {
		sum += v * (firstWeight - i)
	}
	rem := sum % 11
	if rem < 2 {
		return 0
	}
	return 11 - rem
}

// MaskTaxID keeps only the last three digits: "***909".
func MaskTaxID(taxID string) string {
	if len(taxID) < 4 {
		return "***"
	}
	return "***" + taxID[len(taxID)-3:]
}

// Sanitize trims s, normalizes it to NFC and drops the characters
// < > " ' & so it is safe to echo back in reports.
func Sanitize(s string) string {
	s = norm.NFC.String(strings.TrimSpace(s))
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(unsafeChars, r) {
			return -1
		}
		return r
	}, s)
}
