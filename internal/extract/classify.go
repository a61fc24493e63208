package extract

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rockstardevs/wsqfx/ofx"
)

// Rule maps a lowercased type label onto an OFX transaction type.
type Rule struct {
	Match func(label string) bool
	Type  ofx.TransactionType
}

// CategoryTable classifies type labels. Rules are tried in order and the first match
// wins; labels no rule matches are classified by Fallback.
type CategoryTable struct {
	Rules    []Rule
	Fallback func(amount decimal.Decimal) ofx.TransactionType
}

func (c CategoryTable) Classify(label string, amount decimal.Decimal) ofx.TransactionType {
	label = strings.ToLower(strings.TrimSpace(label))
	for _, r := range c.Rules {
		if r.Match(label) {
			return r.Type
		}
	}
	return c.Fallback(amount)
}

func contains(sub string) func(string) bool {
	return func(label string) bool { return strings.Contains(label, sub) }
}

func equals(s string) func(string) bool {
	return func(label string) bool { return label == s }
}

// BySign classifies outflows as DEBIT and everything else as CREDIT.
func BySign(amount decimal.Decimal) ofx.TransactionType {
	if amount.IsNegative() {
		return ofx.DEBIT
	}
	return ofx.CREDIT
}

// ChequingCategories is the chequing account vocabulary.
var ChequingCategories = CategoryTable{
	Rules: []Rule{
		{Match: contains("interest"), Type: ofx.INTEREST},
		{Match: contains("transfer"), Type: ofx.TRANSFER},
		{Match: contains("withdrawal"), Type: ofx.DEBIT},
		{Match: contains("deposit"), Type: ofx.DEPOSIT},
		{Match: contains("credit card"), Type: ofx.PAYMENT},
	},
	Fallback: BySign,
}

// CreditCardCategories is the credit card vocabulary. Purchases make up the default.
var CreditCardCategories = CategoryTable{
	Rules: []Rule{
		{Match: equals("refund"), Type: ofx.CREDIT},
		{Match: func(label string) bool {
			return strings.HasPrefix(label, "from ") || label == "credit card payment"
		}, Type: ofx.PAYMENT},
	},
	Fallback: func(decimal.Decimal) ofx.TransactionType { return ofx.DEBIT },
}
