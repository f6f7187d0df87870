package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	dividendsPath  = "/v3/reference/dividends"
	financialsPath = "/vX/reference/financials"
	prevClosePath  = "/v2/aggs/ticker/%s/prev"

	defaultBaseURL   = "https://api.polygon.io"
	defaultUserAgent = "divscreen/1.0"
)

// PolygonOptions parameterise the Polygon.io client.
type PolygonOptions struct {
	BaseURL           string
	APIKey            string
	Timeout           time.Duration
	UserAgent         string
	RequestsPerMinute int
	DividendLimit     int
	FinancialsLimit   int
}

// Polygon fetches dividends, prices and financials from Polygon.io.
type Polygon struct {
	opts    PolygonOptions
	logger  zerolog.Logger
	client  *http.Client
	limiter *rate.Limiter
	baseURL string
}

// NewPolygon constructs a Polygon.io fetcher.
func NewPolygon(opts PolygonOptions, logger zerolog.Logger) *Polygon {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	if opts.DividendLimit <= 0 {
		opts.DividendLimit = 1000
	}
	if opts.FinancialsLimit <= 0 {
		opts.FinancialsLimit = 100
	}

	limit := rate.Inf
	if opts.RequestsPerMinute > 0 {
		limit = rate.Every(time.Minute / time.Duration(opts.RequestsPerMinute))
	}

	return &Polygon{
		opts:    opts,
		logger:  logger.With().Str("component", "polygon_fetcher").Logger(),
		client:  &http.Client{Timeout: timeout},
		limiter: rate.NewLimiter(limit, 1),
		baseURL: baseURL,
	}
}

// FetchDividends returns every dividend record published for symbol.
func (p *Polygon) FetchDividends(ctx context.Context, symbol string) ([]DividendRecord, error) {
	query := url.Values{}
	query.Set("ticker", symbol)
	query.Set("limit", strconv.Itoa(p.opts.DividendLimit))

	var res struct {
		Results []DividendRecord `json:"results"`
	}
	if err := p.get(ctx, dividendsPath, query, &res); err != nil {
		return nil, fmt.Errorf("fetch dividends for %s: %w", symbol, err)
	}

	for _, d := range res.Results {
		p.logger.Debug().
			Str("ticker", d.Ticker).
			Str("ex_date", d.ExDividendDate).
			Str("pay_date", d.PayDate).
			Int("frequency", d.Frequency).
			Str("type", d.DividendType).
			Str("amount", d.CashAmount.String()).
			Msg("dividend record")
	}
	return res.Results, nil
}

// FetchPreviousClose returns the adjusted previous-day close of symbol.
func (p *Polygon) FetchPreviousClose(ctx context.Context, symbol string) (decimal.Decimal, error) {
	query := url.Values{}
	query.Set("adjusted", "true")

	var res struct {
		Results []struct {
			Close decimal.Decimal `json:"c"`
		} `json:"results"`
	}
	path := fmt.Sprintf(prevClosePath, url.PathEscape(symbol))
	if err := p.get(ctx, path, query, &res); err != nil {
		return decimal.Decimal{}, fmt.Errorf("fetch previous close for %s: %w", symbol, err)
	}
	if len(res.Results) == 0 {
		return decimal.Decimal{}, &IncompleteDataError{Symbol: symbol, Item: "previous close"}
	}
	return res.Results[0].Close, nil
}

// FetchFinancials returns the periodic financial filings of symbol.
func (p *Polygon) FetchFinancials(ctx context.Context, symbol string) ([]FinancialReport, error) {
	query := url.Values{}
	query.Set("ticker", symbol)
	query.Set("limit", strconv.Itoa(p.opts.FinancialsLimit))

	var res struct {
		Results []FinancialReport `json:"results"`
	}
	if err := p.get(ctx, financialsPath, query, &res); err != nil {
		return nil, fmt.Errorf("fetch financials for %s: %w", symbol, err)
	}

	for _, r := range res.Results {
		p.logger.Debug().
			Strs("tickers", r.Tickers).
			Str("start", r.StartDate).
			Str("end", r.EndDate).
			Str("fiscal_year", r.FiscalYear).
			Str("fiscal_period", r.FiscalPeriod).
			Str("timeframe", r.Timeframe).
			Msg("financial report")
	}
	return res.Results, nil
}

func (p *Polygon) get(ctx context.Context, path string, query url.Values, out any) error {
	if err := p.limiter.Wait(ctx); err != nil {
		return err
	}

	endpoint := p.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if ua := strings.TrimSpace(p.opts.UserAgent); ua != "" {
		req.Header.Set("User-Agent", ua)
	} else {
		req.Header.Set("User-Agent", defaultUserAgent)
	}
	if p.opts.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.opts.APIKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	if resp.StatusCode != http.StatusOK {
		return parseHTTPError(resp.StatusCode, payload)
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("decode %s response: %w", path, err)
	}
	return nil
}

type errorResponse struct {
	Status  string `json:"status"`
	Error   string `json:"error"`
	Message string `json:"message"`
}

func parseHTTPError(status int, payload []byte) error {
	var apiErr errorResponse
	if err := json.Unmarshal(payload, &apiErr); err == nil {
		if apiErr.Error != "" {
			return fmt.Errorf("polygon api error (%d): %s", status, apiErr.Error)
		}
		if apiErr.Message != "" {
			return fmt.Errorf("polygon api error (%d): %s", status, apiErr.Message)
		}
		if apiErr.Status != "" {
			return fmt.Errorf("polygon api error (%d): %s", status, apiErr.Status)
		}
	}
	if len(payload) > 0 {
		return fmt.Errorf("polygon api error (%d): %s", status, strings.TrimSpace(string(payload)))
	}
	return fmt.Errorf("polygon api error (%d)", status)
}

var _ MarketDataFetcher = (*Polygon)(nil)
