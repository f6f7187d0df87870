package app

import (
	"errors"
	"io"
	"os"

	"github.com/rs/zerolog"

	"dividend-screener/internal/config"
	"dividend-screener/internal/fetcher"
	"dividend-screener/internal/screen"
	"dividend-screener/internal/sheet"
)

// App aggregates configuration and shared dependencies for the CLI commands.
type App struct {
	Config *config.Config
	Logger zerolog.Logger
	Out    io.Writer

	// market overrides the configured market-data client when set.
	market fetcher.MarketDataFetcher
}

// NewApp constructs a new application handle.
func NewApp(cfg *config.Config, logger zerolog.Logger) *App {
	return &App{Config: cfg, Logger: logger.With().Str("component", "app").Logger(), Out: os.Stdout}
}

func (a *App) newMarketFetcher() fetcher.MarketDataFetcher {
	if a.market != nil {
		return a.market
	}
	md := a.Config.MarketData
	return fetcher.NewPolygon(fetcher.PolygonOptions{
		BaseURL:           md.BaseURL,
		APIKey:            md.APIKey,
		Timeout:           md.RequestTimeout,
		UserAgent:         md.UserAgent,
		RequestsPerMinute: md.RequestsPerMinute,
	}, a.Logger)
}

func (a *App) openWorkbook(path string) (*sheet.Workbook, error) {
	if path == "" {
		return nil, errors.New("data path not configured; pass --data or set data.path")
	}
	return sheet.Open(path)
}

// ScreenOptions configure the screen command.
type ScreenOptions struct {
	DataPath   string
	List       string
	Companies  []string
	Thresholds screen.Thresholds
}

// ScoreOptions configure the score command.
type ScoreOptions struct {
	Symbols   []string
	ChartPath string
}
