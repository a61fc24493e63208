package extract

import (
	"fmt"

	"github.com/rockstardevs/wsqfx/internal/config"
	"github.com/rockstardevs/wsqfx/internal/dom"
	"github.com/rockstardevs/wsqfx/ofx"
)

// Variant names.
const (
	ChequingName   = "chequing"
	CreditCardName = "creditcard"
)

// Variant is everything that differs between page layouts.
type Variant struct {
	Name       string
	Locator    Locator
	Reader     FieldReader
	Categories CategoryTable
	Shape      ofx.Shape

	Currency    string
	BankID      string
	AccountID   string
	AccountType string

	// ExcludePending drops rows marked pending before ids are assigned.
	ExcludePending bool
	FilePrefix     string
}

// Chequing builds the chequing account layout. Detail panels are awaited with settler.
func Chequing(headerTag string, cfg config.Variant, settler dom.Settler) *Variant {
	return &Variant{
		Name:    ChequingName,
		Locator: AmountLocator{Currency: cfg.Currency, HeaderTag: headerTag},
		Reader: &ChequingReader{
			Settler:       settler,
			ExpandDelay:   cfg.ExpandDelay,
			CollapseDelay: cfg.CollapseDelay,
		},
		Categories:     ChequingCategories,
		Shape:          ofx.BankStatement,
		Currency:       cfg.Currency,
		BankID:         cfg.BankID,
		AccountID:      cfg.AccountID,
		AccountType:    cfg.AccountType,
		ExcludePending: cfg.ExcludePending,
		FilePrefix:     cfg.FilePrefix,
	}
}

// CreditCard builds the credit card layout.
func CreditCard(headerTag string, cfg config.Variant) *Variant {
	return &Variant{
		Name:           CreditCardName,
		Locator:        MarkerLocator{Attr: cfg.RowAttr, Value: cfg.RowValue, HeaderTag: headerTag},
		Reader:         CreditCardReader{},
		Categories:     CreditCardCategories,
		Shape:          ofx.CreditCardStatement,
		Currency:       cfg.Currency,
		AccountID:      cfg.AccountID,
		ExcludePending: cfg.ExcludePending,
		FilePrefix:     cfg.FilePrefix,
	}
}

// VariantByName returns the configured variant called name.
func VariantByName(name string, cfg *config.Config, settler dom.Settler) (*Variant, error) {
	switch name {
	case ChequingName:
		return Chequing(cfg.HeaderTag, cfg.Chequing, settler), nil
	case CreditCardName:
		return CreditCard(cfg.HeaderTag, cfg.CreditCard), nil
	}
	return nil, fmt.Errorf("unknown variant %q", name)
}
