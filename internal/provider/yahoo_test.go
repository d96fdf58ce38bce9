package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"assetctl/internal/assets"
	"assetctl/pkg/utils"
)

func chartBody(price, prevClose float64) string {
	return fmt.Sprintf(`{"chart":{"result":[{"meta":{"regularMarketPrice":%g,"chartPreviousClose":%g}}],"error":null}}`,
		price, prevClose)
}

func noRetry() utils.RetryConfig {
	return utils.RetryConfig{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond, BackoffFactor: 1}
}

func TestYahooStockProviderGetPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v8/finance/chart/AAPL" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		fmt.Fprint(w, chartBody(207.55, 205.10))
	}))
	defer srv.Close()

	reg := assets.NewRegistry()
	aapl := reg.Stock("AAPL", assets.Price{})
	p := NewYahooStockProvider(YahooConfig{BaseURL: srv.URL, Retry: noRetry()})

	price, err := p.GetPrice(context.Background(), aapl)
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if price != 207.55 {
		t.Errorf("GetPrice = %v, want 207.55", price)
	}

	prev, err := p.GetPreviousClose(context.Background(), aapl)
	if err != nil {
		t.Fatalf("GetPreviousClose: %v", err)
	}
	if prev != 205.10 {
		t.Errorf("GetPreviousClose = %v, want 205.10", prev)
	}
}

func TestYahooCurrencyProviderUsesSuffix(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		fmt.Fprint(w, chartBody(1.095, 1.092))
	}))
	defer srv.Close()

	reg := assets.NewRegistry()
	eur, err := reg.Currency("EUR", assets.Price{})
	if err != nil {
		t.Fatalf("Currency: %v", err)
	}
	p := NewYahooCurrencyProvider(YahooConfig{BaseURL: srv.URL, Retry: noRetry()})

	rate, err := p.GetPrice(context.Background(), eur)
	if err != nil {
		t.Fatalf("GetPrice: %v", err)
	}
	if rate != 1.095 {
		t.Errorf("GetPrice = %v, want 1.095", rate)
	}
	if gotPath != "/v8/finance/chart/EURUSD=X" {
		t.Errorf("request path = %q, want the USD=X suffix convention", gotPath)
	}
}

func TestYahooNoData(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"chart":{"result":[],"error":null}}`)
	}))
	defer srv.Close()

	reg := assets.NewRegistry()
	unknown := reg.Stock("NOPE", assets.Price{})
	p := NewYahooStockProvider(YahooConfig{BaseURL: srv.URL, Retry: noRetry()})

	_, err := p.GetPrice(context.Background(), unknown)
	var ferr *FetchError
	if !errors.As(err, &ferr) {
		t.Fatalf("err = %v, want FetchError", err)
	}
	if !errors.Is(err, ErrNoData) {
		t.Errorf("err = %v, want ErrNoData in chain", err)
	}
	if ferr.Asset != "NOPE" {
		t.Errorf("FetchError.Asset = %q, want NOPE", ferr.Asset)
	}
}

func TestYahooServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer srv.Close()

	reg := assets.NewRegistry()
	aapl := reg.Stock("AAPL", assets.Price{})
	p := NewYahooStockProvider(YahooConfig{BaseURL: srv.URL, Retry: noRetry()})

	if _, err := p.GetPrice(context.Background(), aapl); err == nil {
		t.Fatal("expected error on HTTP 502")
	}
	if aapl.Price().Valid {
		t.Error("price assigned despite fetch failure")
	}
}
