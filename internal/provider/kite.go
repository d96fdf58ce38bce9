package provider

import (
	"context"
	"fmt"

	kiteconnect "github.com/zerodha/gokiteconnect/v4"

	"assetctl/internal/assets"
)

// KiteConfig holds configuration for the Kite Connect provider.
type KiteConfig struct {
	APIKey      string
	AccessToken string
	Exchange    string // defaults to NSE
}

// KiteProvider fetches stock prices from the Zerodha Kite Connect API.
type KiteProvider struct {
	client   *kiteconnect.Client
	exchange string
}

// NewKiteProvider creates a Kite Connect stock provider. The access token
// must come from a completed Kite login session.
func NewKiteProvider(cfg KiteConfig) *KiteProvider {
	client := kiteconnect.New(cfg.APIKey)
	if cfg.AccessToken != "" {
		client.SetAccessToken(cfg.AccessToken)
	}
	exchange := cfg.Exchange
	if exchange == "" {
		exchange = "NSE"
	}
	return &KiteProvider{client: client, exchange: exchange}
}

func (p *KiteProvider) AssetKind() assets.Kind { return assets.KindStock }

func (p *KiteProvider) GetPrice(ctx context.Context, a assets.Asset) (float64, error) {
	symbol := p.exchange + ":" + a.Name()
	quotes, err := p.client.GetQuote(symbol)
	if err != nil {
		return 0, &FetchError{Asset: a.Name(), Op: "price", Err: err}
	}
	q, ok := quotes[symbol]
	if !ok {
		return 0, &FetchError{Asset: a.Name(), Op: "price", Err: fmt.Errorf("%w for %s", ErrNoData, symbol)}
	}
	return q.LastPrice, nil
}

func (p *KiteProvider) GetPreviousClose(ctx context.Context, a assets.Asset) (float64, error) {
	symbol := p.exchange + ":" + a.Name()
	quotes, err := p.client.GetQuote(symbol)
	if err != nil {
		return 0, &FetchError{Asset: a.Name(), Op: "previous close", Err: err}
	}
	q, ok := quotes[symbol]
	if !ok || q.OHLC.Close == 0 {
		return 0, &FetchError{Asset: a.Name(), Op: "previous close", Err: fmt.Errorf("%w for %s", ErrNoData, symbol)}
	}
	return q.OHLC.Close, nil
}
