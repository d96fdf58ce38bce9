package assets

import (
	"fmt"
	"strings"

	"assetctl/internal/expiry"
)

// Currency is a currency treated as an underlying asset. Its price is the
// exchange rate relative to USD.
type Currency struct {
	asset
}

// CurrencyName returns the canonical name for a currency code.
func CurrencyName(code string) string {
	return strings.ToUpper(code)
}

// Currency registers or retrieves the currency with the given code. Rates are
// quoted against USD, so constructing USD with any rate other than exactly 1
// (including no rate at all) fails. On a cache hit the existing instance is
// returned and the supplied rate re-applied.
func (r *Registry) Currency(code string, rate Price) (*Currency, error) {
	name := CurrencyName(code)
	if name == "USD" && (!rate.Valid || rate.Value != 1) {
		return nil, fmt.Errorf("currency %s: %w", name, ErrNonUnitUSDRate)
	}
	a := r.getOrReprice(KindCurrency, name, rate, func() Asset {
		return &Currency{asset: asset{name: name, kind: KindCurrency}}
	})
	return a.(*Currency), nil
}

// PriceAtExpiration of an underlying is the identity.
func (c *Currency) PriceAtExpiration(spot float64) float64 { return spot }

func (c *Currency) Underlying() Asset { return nil }

func (c *Currency) Expiration() *expiry.ExpirationDate { return nil }
