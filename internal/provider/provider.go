// Package provider defines the price-fetching boundary: given an asset,
// return a numeric price or fail. Concrete providers wrap external market
// data sources.
package provider

import (
	"context"
	"errors"
	"fmt"

	"assetctl/internal/assets"
)

// ErrNoData indicates the source returned no usable price.
var ErrNoData = errors.New("no price data available")

// Provider fetches prices for a single concrete asset kind from an external
// source. Implementations perform blocking network I/O; callers must never
// invoke them while holding registry locks.
type Provider interface {
	// AssetKind returns the one asset kind this provider supports.
	AssetKind() assets.Kind
	// GetPrice fetches the current market price for the asset.
	GetPrice(ctx context.Context, a assets.Asset) (float64, error)
	// GetPreviousClose fetches the prior session's closing price.
	GetPreviousClose(ctx context.Context, a assets.Asset) (float64, error)
}

// ValidationError reports an asset handed to a provider of the wrong kind.
type ValidationError struct {
	Expected assets.Kind
	Got      assets.Kind
	Name     string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("provider supports %s assets, got %s (%s)", e.Expected, e.Got, e.Name)
}

// FetchError annotates a failed fetch with the asset identity.
type FetchError struct {
	Asset string
	Op    string
	Err   error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s for %s: %v", e.Op, e.Asset, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func validate(p Provider, a assets.Asset) error {
	if a.Kind() != p.AssetKind() {
		return &ValidationError{Expected: p.AssetKind(), Got: a.Kind(), Name: a.Name()}
	}
	return nil
}

// UpdatePrice fetches the current price for a single asset and assigns it in
// place. The asset must match the provider's supported kind.
func UpdatePrice(ctx context.Context, p Provider, a assets.Asset) error {
	if err := validate(p, a); err != nil {
		return err
	}
	price, err := p.GetPrice(ctx, a)
	if err != nil {
		return err
	}
	a.SetPrice(assets.NewPrice(price))
	return nil
}

// UpdatePrices fetches and assigns prices for a collection of assets. Every
// element is validated against the provider's supported kind before any fetch
// happens; the first fetch failure aborts the remaining updates.
func UpdatePrices(ctx context.Context, p Provider, as []assets.Asset) error {
	for _, a := range as {
		if err := validate(p, a); err != nil {
			return err
		}
	}
	for _, a := range as {
		price, err := p.GetPrice(ctx, a)
		if err != nil {
			return err
		}
		a.SetPrice(assets.NewPrice(price))
	}
	return nil
}
