package assets

import (
	"fmt"
	"math"
	"strings"

	"assetctl/internal/expiry"
)

// OptionType is the side of an option contract.
type OptionType string

const (
	Call OptionType = "C"
	Put  OptionType = "P"
)

// DefaultOptionMultiplier is the standard equity option contract multiplier.
const DefaultOptionMultiplier = 100

// ParseOptionType normalizes an option type token. Accepts "C", "P", "call"
// and "put" in any case.
func ParseOptionType(s string) (OptionType, error) {
	switch strings.ToUpper(s) {
	case "C", "CALL":
		return Call, nil
	case "P", "PUT":
		return Put, nil
	}
	return "", fmt.Errorf("%w: %q, allowed types are 'call' or 'put'", ErrInvalidOptionType, s)
}

// Option is an option contract on an underlying asset. The underlying may
// itself be a derivative (e.g. an option on a future).
type Option struct {
	asset
	underlying Asset
	expiration *expiry.ExpirationDate
	strike     float64
	optionType OptionType
	multiplier float64
}

// OptionSpec describes an option contract to register.
type OptionSpec struct {
	Underlying Asset
	Strike     float64
	Expiration string // YYMMDD, mandatory
	Type       string // C, P, call, put (case-insensitive)
	Multiplier float64 // contract multiplier; 0 means DefaultOptionMultiplier
	Price      Price
}

// OptionName returns the canonical contract name: the underlying name, the
// YYMMDD expiration, the type letter, and the strike times 1000 zero-padded
// to eight digits (e.g. AAPL250620C00205000).
func OptionName(underlying Asset, strike float64, expiration string, typ OptionType) string {
	return fmt.Sprintf("%s%s%s%08d", underlying.Name(), expiration, typ, int64(math.Round(strike*1e3)))
}

// Option registers or retrieves the described option contract. The option
// type and expiration are validated before the registry is touched. On a
// cache hit the existing contract is returned with only its price re-applied.
func (r *Registry) Option(spec OptionSpec) (*Option, error) {
	if spec.Expiration == "" {
		return nil, fmt.Errorf("option contract: %w", ErrExpirationRequired)
	}
	typ, err := ParseOptionType(spec.Type)
	if err != nil {
		return nil, err
	}
	exp, err := expiry.Parse(spec.Expiration)
	if err != nil {
		return nil, err
	}
	multiplier := spec.Multiplier
	if multiplier == 0 {
		multiplier = DefaultOptionMultiplier
	}
	name := OptionName(spec.Underlying, spec.Strike, spec.Expiration, typ)
	a := r.getOrReprice(KindOption, name, spec.Price, func() Asset {
		return &Option{
			asset:      asset{name: name, kind: KindOption},
			underlying: spec.Underlying,
			expiration: exp,
			strike:     spec.Strike,
			optionType: typ,
			multiplier: multiplier,
		}
	})
	return a.(*Option), nil
}

// Strike returns the strike price.
func (o *Option) Strike() float64 { return o.strike }

// Type returns the option type.
func (o *Option) Type() OptionType { return o.optionType }

// Multiplier returns the contract multiplier.
func (o *Option) Multiplier() float64 { return o.multiplier }

// PriceAtExpiration returns the option payoff for a given spot price:
// multiplier * max(0, spot-strike) for calls, multiplier * max(0, strike-spot)
// for puts.
func (o *Option) PriceAtExpiration(spot float64) float64 {
	if o.optionType == Call {
		return o.multiplier * math.Max(0, spot-o.strike)
	}
	return o.multiplier * math.Max(0, o.strike-spot)
}

func (o *Option) Underlying() Asset { return o.underlying }

func (o *Option) Expiration() *expiry.ExpirationDate { return o.expiration }
