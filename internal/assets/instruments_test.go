package assets

import (
	"errors"
	"math"
	"testing"

	"assetctl/internal/expiry"
)

func TestStockCreation(t *testing.T) {
	reg := NewRegistry()

	aapl := reg.Stock("aapl", NewPrice(200))
	if aapl.Name() != "AAPL" {
		t.Errorf("Name() = %q, want AAPL", aapl.Name())
	}
	if p := aapl.Price(); !p.Valid || p.Value != 200 {
		t.Errorf("Price() = %+v, want 200", p)
	}

	// Same canonical name: same instance, price re-applied.
	aapl2 := reg.Stock("AAPL", NewPrice(205))
	if aapl2 != aapl {
		t.Fatal("second construction returned a different instance")
	}
	if p := aapl.Price(); p.Value != 205 {
		t.Errorf("Price() = %+v after reprice, want 205", p)
	}

	// Re-construction without a price clears the stored price.
	reg.Stock("AAPL", Price{})
	if p := aapl.Price(); p.Valid {
		t.Errorf("Price() = %+v after repricing to absent, want invalid", p)
	}
}

func TestCurrencyCreation(t *testing.T) {
	reg := NewRegistry()

	eur, err := reg.Currency("EUR", NewPrice(1.095))
	if err != nil {
		t.Fatalf("Currency(EUR): %v", err)
	}
	if eur.Name() != "EUR" {
		t.Errorf("Name() = %q, want EUR", eur.Name())
	}
	if p := eur.Price(); p.Value != 1.095 {
		t.Errorf("Price() = %+v, want 1.095", p)
	}
}

func TestCurrencyUSDInvariant(t *testing.T) {
	reg := NewRegistry()

	if _, err := reg.Currency("USD", NewPrice(1.2)); !errors.Is(err, ErrNonUnitUSDRate) {
		t.Errorf("Currency(USD, 1.2): err = %v, want ErrNonUnitUSDRate", err)
	}
	if _, err := reg.Currency("usd", Price{}); !errors.Is(err, ErrNonUnitUSDRate) {
		t.Errorf("Currency(usd, absent): err = %v, want ErrNonUnitUSDRate", err)
	}
	if reg.Len() != 0 {
		t.Errorf("registry polluted by failed construction: Len() = %d", reg.Len())
	}

	usd, err := reg.Currency("USD", NewPrice(1))
	if err != nil {
		t.Fatalf("Currency(USD, 1): %v", err)
	}
	if p := usd.Price(); p.Value != 1 {
		t.Errorf("Price() = %+v, want 1", p)
	}
}

func TestFuturesCreation(t *testing.T) {
	reg := NewRegistry()

	oilFut, err := reg.Futures(FuturesSpec{
		Underlying:   reg.Stock("CL", Price{}),
		Expiration:   "251220",
		ForwardPrice: 85.00,
		ContractSize: 1000,
		Price:        NewPrice(83.50),
	})
	if err != nil {
		t.Fatalf("Futures: %v", err)
	}
	if oilFut.Name() != "CLZ20" {
		t.Errorf("Name() = %q, want CLZ20", oilFut.Name())
	}
	if p := oilFut.Price(); p.Value != 83.50 {
		t.Errorf("Price() = %+v, want 83.50", p)
	}
	if oilFut.ForwardPrice() != 85.00 || oilFut.ContractSize() != 1000 {
		t.Errorf("fields = (%v, %v), want (85, 1000)", oilFut.ForwardPrice(), oilFut.ContractSize())
	}
	if got := oilFut.PriceAtExpiration(90); got != 5000 {
		t.Errorf("PriceAtExpiration(90) = %v, want 5000", got)
	}
	if got := oilFut.PriceAtExpiration(80); got != -5000 {
		t.Errorf("PriceAtExpiration(80) = %v, want -5000", got)
	}
}

func TestFuturesInvalidExpiration(t *testing.T) {
	reg := NewRegistry()
	cl := reg.Stock("CL", Price{})

	spec := FuturesSpec{Underlying: cl, ForwardPrice: 85, ContractSize: 1000}

	if _, err := reg.Futures(spec); !errors.Is(err, ErrExpirationRequired) {
		t.Errorf("missing expiration: err = %v, want ErrExpirationRequired", err)
	}

	spec.Expiration = "251320" // month 13
	if _, err := reg.Futures(spec); !errors.Is(err, ErrInvalidMonthCode) {
		t.Errorf("month 13: err = %v, want ErrInvalidMonthCode", err)
	}

	spec.Expiration = "20250815" // wrong layout
	if _, err := reg.Futures(spec); err == nil {
		t.Error("expiration 20250815: expected format error, got nil")
	}

	if reg.Len() != 1 { // just CL
		t.Errorf("registry polluted by failed constructions: Len() = %d, want 1", reg.Len())
	}
}

func TestOptionCreation(t *testing.T) {
	reg := NewRegistry()
	aapl := reg.Stock("AAPL", NewPrice(200))

	call, err := reg.Option(OptionSpec{
		Underlying: aapl,
		Strike:     205.0,
		Expiration: "250620",
		Type:       "C",
		Price:      NewPrice(5.25),
	})
	if err != nil {
		t.Fatalf("Option: %v", err)
	}
	if call.Name() != "AAPL250620C00205000" {
		t.Errorf("Name() = %q, want AAPL250620C00205000", call.Name())
	}
	if call.Type() != Call || call.Strike() != 205 {
		t.Errorf("contract = (%v, %v), want (C, 205)", call.Type(), call.Strike())
	}
	if call.Multiplier() != DefaultOptionMultiplier {
		t.Errorf("Multiplier() = %v, want %v", call.Multiplier(), DefaultOptionMultiplier)
	}
	if p := call.Price(); p.Value != 5.25 {
		t.Errorf("Price() = %+v, want 5.25", p)
	}

	if got := call.PriceAtExpiration(210); got != 5*call.Multiplier() {
		t.Errorf("PriceAtExpiration(210) = %v, want %v", got, 5*call.Multiplier())
	}
	if got := call.PriceAtExpiration(200); got != 0 {
		t.Errorf("PriceAtExpiration(200) = %v, want 0", got)
	}

	// Long-form type tokens normalize to the same contract.
	same, err := reg.Option(OptionSpec{
		Underlying: aapl,
		Strike:     205.0,
		Expiration: "250620",
		Type:       "call",
		Price:      NewPrice(5.40),
	})
	if err != nil {
		t.Fatalf("Option(call): %v", err)
	}
	if same != call {
		t.Error("long-form type token produced a different instance")
	}
	if p := call.Price(); p.Value != 5.40 {
		t.Errorf("Price() = %+v after reprice, want 5.40", p)
	}
}

func TestPutPayoff(t *testing.T) {
	reg := NewRegistry()
	put, err := reg.Option(OptionSpec{
		Underlying: reg.Stock("PYPL", NewPrice(70)),
		Strike:     75.0,
		Expiration: "250620",
		Type:       "put",
	})
	if err != nil {
		t.Fatalf("Option: %v", err)
	}
	if got := put.PriceAtExpiration(80); got != 0 {
		t.Errorf("PriceAtExpiration(80) = %v, want 0", got)
	}
	if got := put.PriceAtExpiration(70); got != 500 {
		t.Errorf("PriceAtExpiration(70) = %v, want 500", got)
	}
}

func TestOptionInvalidInputs(t *testing.T) {
	reg := NewRegistry()
	aapl := reg.Stock("AAPL", NewPrice(195.32))

	_, err := reg.Option(OptionSpec{Underlying: aapl, Strike: 200, Expiration: "250620", Type: "X"})
	if !errors.Is(err, ErrInvalidOptionType) {
		t.Errorf("type X: err = %v, want ErrInvalidOptionType", err)
	}

	_, err = reg.Option(OptionSpec{Underlying: aapl, Strike: 200, Type: "C"})
	if !errors.Is(err, ErrExpirationRequired) {
		t.Errorf("missing expiration: err = %v, want ErrExpirationRequired", err)
	}
}

func TestChangeToTarget(t *testing.T) {
	reg := NewRegistry()

	aapl := reg.Stock("AAPL", NewPrice(200))
	got, err := aapl.ChangeToTarget(210)
	if err != nil {
		t.Fatalf("ChangeToTarget: %v", err)
	}
	if math.Abs(got-5) > 1e-12 {
		t.Errorf("ChangeToTarget(210) = %v, want 5", got)
	}

	bare := reg.Stock("TSLA", Price{})
	if _, err := bare.ChangeToTarget(300); !errors.Is(err, ErrPriceNotSet) {
		t.Errorf("ChangeToTarget with no price: err = %v, want ErrPriceNotSet", err)
	}
}

func TestTrueUnderlyingChain(t *testing.T) {
	reg := NewRegistry()

	cl := reg.Stock("CL", NewPrice(82.10))
	fut, err := reg.Futures(FuturesSpec{
		Underlying:   cl,
		Expiration:   "251220",
		ForwardPrice: 85,
		ContractSize: 1000,
	})
	if err != nil {
		t.Fatalf("Futures: %v", err)
	}
	opt, err := reg.Option(OptionSpec{
		Underlying: fut,
		Strike:     90,
		Expiration: "251120",
		Type:       "C",
	})
	if err != nil {
		t.Fatalf("Option: %v", err)
	}

	// An option on a future on a stock has derivative order 2.
	terminal, order, err := TrueUnderlying(opt)
	if err != nil {
		t.Fatalf("TrueUnderlying: %v", err)
	}
	if terminal != Asset(cl) {
		t.Errorf("TrueUnderlying = %v, want CL stock", terminal)
	}
	if order != 2 {
		t.Errorf("order = %d, want 2", order)
	}

	p, err := TrueUnderlyingPrice(opt)
	if err != nil {
		t.Fatalf("TrueUnderlyingPrice: %v", err)
	}
	if p.Value != 82.10 {
		t.Errorf("TrueUnderlyingPrice = %+v, want 82.10", p)
	}

	// A non-derivative resolves to itself with order 0.
	terminal, order, err = TrueUnderlying(cl)
	if err != nil {
		t.Fatalf("TrueUnderlying(stock): %v", err)
	}
	if terminal != Asset(cl) || order != 0 {
		t.Errorf("TrueUnderlying(stock) = (%v, %d), want (CL, 0)", terminal, order)
	}
}

// loopAsset is a deliberately cyclic Asset used to exercise the hop bound.
type loopAsset struct {
	asset
}

func (l *loopAsset) PriceAtExpiration(spot float64) float64 { return spot }
func (l *loopAsset) Underlying() Asset                      { return l }
func (l *loopAsset) Expiration() *expiry.ExpirationDate     { return nil }

func TestTrueUnderlyingCycleGuard(t *testing.T) {
	l := &loopAsset{asset: asset{name: "LOOP", kind: KindStock}}
	if _, _, err := TrueUnderlying(l); !errors.Is(err, ErrUnderlyingCycle) {
		t.Errorf("cyclic chain: err = %v, want ErrUnderlyingCycle", err)
	}
}
