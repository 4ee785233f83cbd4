// Package money converts between decimal amounts and their user-facing
// currency representation. Amounts are handled as fixed-point decimals;
// free-typed input is interpreted as an integer number of cents so that
// no floating-point arithmetic ever touches a monetary value.
package money

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// maxDigits bounds typed input to amounts below one trillion, which keeps
// the cents value safely inside int64 range.
const maxDigits = 14

var centsFactor = decimal.NewFromInt(100)

// ParseDigits interprets raw keyboard input as cents: every non-digit rune is
// stripped and the remaining digit string becomes value/100. Empty input
// (after stripping) reports ok=false rather than zero, so callers can tell
// "cleared field" from "typed 0".
func ParseDigits(raw string) (decimal.Decimal, bool, error) {
	var b strings.Builder

	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}

	digits := strings.TrimLeft(b.String(), "0")
	if b.Len() == 0 {
		return decimal.Zero, false, nil
	}

	if digits == "" {
		return decimal.Zero, true, nil
	}

	if len(digits) > maxDigits {
		return decimal.Zero, false, fmt.Errorf("amount has too many digits: %d", len(digits))
	}

	cents, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("parsing digits: %w", err)
	}

	return decimal.New(cents, -2), true, nil
}

// Cents returns d rounded to currency precision as an integer cents value.
func Cents(d decimal.Decimal) int64 {
	return d.Round(2).Mul(centsFactor).IntPart()
}

// Format renders d with locale-aware grouping, exactly two fraction digits
// and the R$ symbol, e.g. Format(1234.5, language.BrazilianPortuguese)
// -> "R$ 1.234,50". The sign, when present, goes between symbol and value.
func Format(d decimal.Decimal, locale language.Tag) string {
	cents := Cents(d)

	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}

	p := message.NewPrinter(locale)
	whole := p.Sprintf("%d", cents/100)

	// pt-BR groups with '.' and separates decimals with ','; other locales
	// get their own grouping but keep the decimal comma of the currency.
	return fmt.Sprintf("R$ %s%s,%02d", sign, whole, cents%100)
}
