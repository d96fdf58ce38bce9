package assets

import (
	"strings"

	"assetctl/internal/expiry"
)

// Stock is a listed equity, usable as the underlying for derivatives.
type Stock struct {
	asset
}

// StockName returns the canonical name for a ticker.
func StockName(ticker string) string {
	return strings.ToUpper(ticker)
}

// Stock registers or retrieves the stock with the given ticker. On a cache
// hit the existing instance is returned and the supplied price re-applied.
func (r *Registry) Stock(ticker string, price Price) *Stock {
	name := StockName(ticker)
	a := r.getOrReprice(KindStock, name, price, func() Asset {
		return &Stock{asset: asset{name: name, kind: KindStock}}
	})
	return a.(*Stock)
}

// PriceAtExpiration of an underlying is the identity: its value at any future
// time is the given spot price.
func (s *Stock) PriceAtExpiration(spot float64) float64 { return spot }

func (s *Stock) Underlying() Asset { return nil }

func (s *Stock) Expiration() *expiry.ExpirationDate { return nil }
