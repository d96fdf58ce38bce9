package assets

import (
	"fmt"

	"assetctl/internal/expiry"
)

// futuresMonthCodes maps a two-digit expiration month to its single-letter
// futures code.
var futuresMonthCodes = map[string]string{
	"01": "F",
	"02": "G",
	"03": "H",
	"04": "J",
	"05": "K",
	"06": "M",
	"07": "N",
	"08": "Q",
	"09": "U",
	"10": "V",
	"11": "X",
	"12": "Z",
}

// Futures is a futures contract on an underlying asset.
type Futures struct {
	asset
	underlying   Asset
	expiration   *expiry.ExpirationDate
	forwardPrice float64
	contractSize float64
}

// FuturesSpec describes a futures contract to register.
type FuturesSpec struct {
	Underlying   Asset
	Expiration   string // YYMMDD, mandatory
	ForwardPrice float64
	ContractSize float64
	Price        Price
}

// FuturesName returns the canonical contract name: the underlying name, the
// expiration month letter, and the two-digit year (e.g. CLZ20 for a CL
// contract expiring 251220).
func FuturesName(underlying Asset, expiration string) (string, error) {
	if expiration == "" {
		return "", fmt.Errorf("futures contract: %w", ErrExpirationRequired)
	}
	if len(expiration) != len(expiry.Layout) {
		return "", fmt.Errorf("invalid expiration date %q: expected YYMMDD", expiration)
	}
	code, ok := futuresMonthCodes[expiration[2:4]]
	if !ok {
		return "", fmt.Errorf("%w: %q, must be 01-12", ErrInvalidMonthCode, expiration[2:4])
	}
	return underlying.Name() + code + expiration[4:6], nil
}

// Futures registers or retrieves the described futures contract. Naming and
// expiration validation run before the registry is touched. On a cache hit
// the existing contract is returned with only its price re-applied.
func (r *Registry) Futures(spec FuturesSpec) (*Futures, error) {
	name, err := FuturesName(spec.Underlying, spec.Expiration)
	if err != nil {
		return nil, err
	}
	exp, err := expiry.Parse(spec.Expiration)
	if err != nil {
		return nil, err
	}
	a := r.getOrReprice(KindFutures, name, spec.Price, func() Asset {
		return &Futures{
			asset:        asset{name: name, kind: KindFutures},
			underlying:   spec.Underlying,
			expiration:   exp,
			forwardPrice: spec.ForwardPrice,
			contractSize: spec.ContractSize,
		}
	})
	return a.(*Futures), nil
}

// ForwardPrice returns the agreed price for the underlying at expiration.
func (f *Futures) ForwardPrice() float64 { return f.forwardPrice }

// ContractSize returns the quantity of the underlying per contract.
func (f *Futures) ContractSize() float64 { return f.contractSize }

// PriceAtExpiration returns the settlement value for a given spot price:
// contract size times the spot-forward difference.
func (f *Futures) PriceAtExpiration(spot float64) float64 {
	return f.contractSize * (spot - f.forwardPrice)
}

func (f *Futures) Underlying() Asset { return f.underlying }

func (f *Futures) Expiration() *expiry.ExpirationDate { return f.expiration }
