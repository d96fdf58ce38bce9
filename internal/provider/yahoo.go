package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/rs/zerolog"

	"assetctl/internal/assets"
	"assetctl/pkg/utils"
)

// DefaultYahooBaseURL is the public Yahoo Finance chart API endpoint.
const DefaultYahooBaseURL = "https://query1.finance.yahoo.com"

// YahooConfig holds configuration for the Yahoo Finance providers.
type YahooConfig struct {
	BaseURL string
	Timeout time.Duration
	Retry   utils.RetryConfig
	Logger  zerolog.Logger
}

// yahooClient is the shared transport behind the Yahoo providers.
type yahooClient struct {
	httpClient *http.Client
	baseURL    string
	retry      utils.RetryConfig
	logger     zerolog.Logger
}

func newYahooClient(cfg YahooConfig) *yahooClient {
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultYahooBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	retry := cfg.Retry
	if retry.MaxAttempts == 0 {
		retry = utils.DefaultRetryConfig()
	}
	return &yahooClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		retry:      retry,
		logger:     cfg.Logger,
	}
}

// chartMeta is the slice of the chart API response we consume.
type chartMeta struct {
	Symbol             string  `json:"symbol"`
	RegularMarketPrice float64 `json:"regularMarketPrice"`
	ChartPreviousClose float64 `json:"chartPreviousClose"`
	PreviousClose      float64 `json:"previousClose"`
}

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta chartMeta `json:"meta"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (c *yahooClient) fetchMeta(ctx context.Context, symbol string) (chartMeta, error) {
	endpoint := c.baseURL + "/v8/finance/chart/" + url.PathEscape(symbol)

	return utils.RetryWithResult(ctx, c.retry, func() (chartMeta, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
		if err != nil {
			return chartMeta{}, err
		}
		req.Header.Set("User-Agent", "assetctl/0.1")

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return chartMeta{}, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return chartMeta{}, fmt.Errorf("chart API returned status %d for %s", resp.StatusCode, symbol)
		}

		var parsed chartResponse
		if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
			return chartMeta{}, fmt.Errorf("decoding chart response for %s: %w", symbol, err)
		}
		if parsed.Chart.Error != nil {
			return chartMeta{}, fmt.Errorf("chart API error for %s: %s: %s",
				symbol, parsed.Chart.Error.Code, parsed.Chart.Error.Description)
		}
		if len(parsed.Chart.Result) == 0 {
			return chartMeta{}, fmt.Errorf("%w for %s", ErrNoData, symbol)
		}

		meta := parsed.Chart.Result[0].Meta
		c.logger.Debug().Str("symbol", symbol).Float64("price", meta.RegularMarketPrice).Msg("fetched quote")
		return meta, nil
	})
}

func (c *yahooClient) price(ctx context.Context, a assets.Asset, symbol string) (float64, error) {
	meta, err := c.fetchMeta(ctx, symbol)
	if err != nil {
		return 0, &FetchError{Asset: a.Name(), Op: "price", Err: err}
	}
	if meta.RegularMarketPrice == 0 {
		return 0, &FetchError{Asset: a.Name(), Op: "price", Err: ErrNoData}
	}
	return meta.RegularMarketPrice, nil
}

func (c *yahooClient) previousClose(ctx context.Context, a assets.Asset, symbol string) (float64, error) {
	meta, err := c.fetchMeta(ctx, symbol)
	if err != nil {
		return 0, &FetchError{Asset: a.Name(), Op: "previous close", Err: err}
	}
	prev := meta.ChartPreviousClose
	if prev == 0 {
		prev = meta.PreviousClose
	}
	if prev == 0 {
		return 0, &FetchError{Asset: a.Name(), Op: "previous close", Err: ErrNoData}
	}
	return prev, nil
}

// YahooStockProvider fetches stock prices from the Yahoo Finance chart API.
type YahooStockProvider struct {
	client *yahooClient
}

// NewYahooStockProvider creates a Yahoo Finance stock provider.
func NewYahooStockProvider(cfg YahooConfig) *YahooStockProvider {
	return &YahooStockProvider{client: newYahooClient(cfg)}
}

func (p *YahooStockProvider) AssetKind() assets.Kind { return assets.KindStock }

func (p *YahooStockProvider) GetPrice(ctx context.Context, a assets.Asset) (float64, error) {
	return p.client.price(ctx, a, a.Name())
}

func (p *YahooStockProvider) GetPreviousClose(ctx context.Context, a assets.Asset) (float64, error) {
	return p.client.previousClose(ctx, a, a.Name())
}

// YahooCurrencyProvider fetches USD exchange rates from the Yahoo Finance
// chart API using the <CODE>USD=X ticker convention.
type YahooCurrencyProvider struct {
	client *yahooClient
}

// NewYahooCurrencyProvider creates a Yahoo Finance currency provider.
func NewYahooCurrencyProvider(cfg YahooConfig) *YahooCurrencyProvider {
	return &YahooCurrencyProvider{client: newYahooClient(cfg)}
}

func (p *YahooCurrencyProvider) AssetKind() assets.Kind { return assets.KindCurrency }

func currencySymbol(a assets.Asset) string {
	return a.Name() + "USD=X"
}

func (p *YahooCurrencyProvider) GetPrice(ctx context.Context, a assets.Asset) (float64, error) {
	return p.client.price(ctx, a, currencySymbol(a))
}

func (p *YahooCurrencyProvider) GetPreviousClose(ctx context.Context, a assets.Asset) (float64, error) {
	return p.client.previousClose(ctx, a, currencySymbol(a))
}
