// Package assets models financial instruments (stocks, currencies, futures,
// options) with canonical identity, payoff-at-expiration formulas, and
// underlying-chain resolution.
package assets

import (
	"errors"
	"fmt"
	"sync"

	"assetctl/internal/expiry"
)

// Kind identifies a concrete instrument type.
type Kind string

const (
	KindStock    Kind = "STOCK"
	KindCurrency Kind = "CURRENCY"
	KindFutures  Kind = "FUTURES"
	KindOption   Kind = "OPTION"
)

// Sentinel errors for construction and state failures.
var (
	ErrPriceNotSet        = errors.New("price not set")
	ErrExpirationRequired = errors.New("expiration date required")
	ErrInvalidMonthCode   = errors.New("invalid month in expiration")
	ErrInvalidOptionType  = errors.New("invalid option type")
	ErrNonUnitUSDRate     = errors.New("USD exchange rate must be 1")
	ErrUnderlyingCycle    = errors.New("underlying chain exceeds maximum depth")
)

// Price is an optional price value. The zero value means no price is set.
type Price struct {
	Value float64
	Valid bool
}

// NewPrice returns a set Price.
func NewPrice(v float64) Price {
	return Price{Value: v, Valid: true}
}

// Asset is a financial instrument resident in a Registry. Exactly one live
// instance exists per (Kind, canonical name) pair.
type Asset interface {
	// Name returns the canonical name, immutable once set.
	Name() string
	// Kind returns the concrete instrument kind.
	Kind() Kind
	// Price returns the current stored price, which may be absent.
	Price() Price
	// SetPrice unconditionally overwrites the stored price. An invalid
	// Price clears it.
	SetPrice(Price)
	// PriceAtExpiration returns the instrument's value at expiration for a
	// hypothetical spot price of its underlying. Pure: it never consults
	// the wall clock or mutates state.
	PriceAtExpiration(spot float64) float64
	// Underlying returns the referenced underlying asset, or nil for
	// non-derivatives.
	Underlying() Asset
	// Expiration returns the expiration date, or nil for perpetual
	// instruments and non-derivatives.
	Expiration() *expiry.ExpirationDate
}

// asset carries the identity and price state shared by all instruments.
type asset struct {
	name string
	kind Kind

	mu    sync.RWMutex
	price Price
}

func (a *asset) Name() string { return a.name }

func (a *asset) Kind() Kind { return a.kind }

func (a *asset) Price() Price {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.price
}

func (a *asset) SetPrice(p Price) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.price = p
}

// ChangeToTarget returns the percentage change needed for the asset to reach
// the target price. Fails with ErrPriceNotSet when no current price is stored.
func (a *asset) ChangeToTarget(target float64) (float64, error) {
	p := a.Price()
	if !p.Valid {
		return 0, fmt.Errorf("change to target %v: %w", target, ErrPriceNotSet)
	}
	return (target - p.Value) / p.Value * 100, nil
}

func (a *asset) String() string {
	return fmt.Sprintf("%s(%s)", a.kind, a.name)
}

// maxUnderlyingHops bounds the true-underlying walk. Underlying chains are
// acyclic by construction; hitting the bound means a structural error.
const maxUnderlyingHops = 64

// TrueUnderlying follows underlying references to their end and returns the
// terminal non-derivative asset together with the number of hops taken (the
// derivative order; an option on a future has order 2).
func TrueUnderlying(a Asset) (Asset, int, error) {
	current := a
	hops := 0
	for current.Underlying() != nil {
		if hops >= maxUnderlyingHops {
			return nil, hops, fmt.Errorf("resolving true underlying of %s: %w", a.Name(), ErrUnderlyingCycle)
		}
		current = current.Underlying()
		hops++
	}
	return current, hops, nil
}

// TrueUnderlyingPrice returns the stored price of the true underlying asset.
func TrueUnderlyingPrice(a Asset) (Price, error) {
	t, _, err := TrueUnderlying(a)
	if err != nil {
		return Price{}, err
	}
	return t.Price(), nil
}
