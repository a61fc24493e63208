package normalize

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrUnparsableAmount is returned when amount text carries no digits.
var ErrUnparsableAmount = errors.New("could not parse amount")

var digitRun = regexp.MustCompile(`\d[\d,]*(?:\.\d+)?`)

// minus signs accepted before the digits: ASCII hyphen-minus and U+2212.
const minusSigns = "-−"

// ParseAmount converts display text such as "−$1,234.56 CAD" into a signed decimal.
func ParseAmount(text string) (decimal.Decimal, error) {
	text = strings.TrimSpace(text)
	loc := digitRun.FindStringIndex(text)
	if loc == nil {
		return decimal.Zero, ErrUnparsableAmount
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(text[loc[0]:loc[1]], ",", ""))
	if err != nil {
		return decimal.Zero, ErrUnparsableAmount
	}
	if strings.ContainsAny(text[:loc[0]], minusSigns) {
		amount = amount.Neg()
	}
	return amount, nil
}
