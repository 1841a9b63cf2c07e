// Package currency provides pure conversion helpers over a
// configuration-supplied rate table. No I/O, no side effects.
package currency

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/billcraft/billcraft/internal/config"
	ierr "github.com/billcraft/billcraft/internal/errors"
	"github.com/billcraft/billcraft/internal/types"
)

// Pair is a directed conversion between two lowercase ISO currency codes
type Pair struct {
	From string
	To   string
}

// RateTable maps a directed currency pair to a positive multiplier.
// Absence of an entry is a defined "no rate" state, not an error.
type RateTable map[Pair]decimal.Decimal

// NewRateTable builds a rate table from configuration entries. Codes are
// normalized to lowercase so lookups are case-insensitive.
func NewRateTable(entries []config.RateEntry) (RateTable, error) {
	table := make(RateTable, len(entries))
	for _, entry := range entries {
		rate, err := decimal.NewFromString(entry.Rate)
		if err != nil {
			return nil, ierr.WithError(err).
				WithMessagef("invalid conversion rate %s->%s", entry.From, entry.To).
				WithHint("Conversion rates must be decimal numbers").
				Mark(ierr.ErrValidation)
		}
		if !rate.IsPositive() {
			return nil, ierr.NewError("conversion rate must be positive").
				WithReportableDetails(map[string]any{
					"from": entry.From,
					"to":   entry.To,
					"rate": entry.Rate,
				}).
				Mark(ierr.ErrValidation)
		}
		table[Pair{From: normalize(entry.From), To: normalize(entry.To)}] = rate
	}
	return table, nil
}

// Converted is the result of a conversion. Unconverted is set when no rate
// was available and the amount passed through unchanged; callers displaying
// such values must not claim currency correctness.
type Converted struct {
	Amount      decimal.Decimal
	Unconverted bool
}

// Convert converts amount between currency codes. Same-code conversion is
// the identity and never touches the table. A missing rate degrades to an
// unconverted passthrough rather than an error.
func Convert(amount decimal.Decimal, from, to string, table RateTable) Converted {
	from = normalize(from)
	to = normalize(to)

	if from == to {
		return Converted{Amount: amount}
	}

	rate, ok := table[Pair{From: from, To: to}]
	if !ok {
		return Converted{Amount: amount, Unconverted: true}
	}

	return Converted{Amount: amount.Mul(rate)}
}

// FormatAmount renders an amount for display with its currency symbol at
// two fractional digits. Formatting belongs to the presentation boundary;
// arithmetic stays on decimal values.
func FormatAmount(amount decimal.Decimal, code string) string {
	return fmt.Sprintf("%s%s", types.GetCurrencySymbol(normalize(code)), amount.StringFixed(2))
}

func normalize(code string) string {
	return strings.ToLower(strings.TrimSpace(code))
}
