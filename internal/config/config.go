package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"dividend-screener/internal/logging"
	"dividend-screener/internal/screen"
)

// Config materialises application configuration.
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	Logging    logging.Config   `mapstructure:"logging"`
	Data       DataConfig       `mapstructure:"data"`
	Screening  ScreeningConfig  `mapstructure:"screening"`
	MarketData MarketDataConfig `mapstructure:"market_data"`
	Chart      ChartConfig      `mapstructure:"chart"`
}

// AppConfig general metadata.
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
}

// DataConfig locates the company list workbook.
type DataConfig struct {
	Path string `mapstructure:"path"`
	List string `mapstructure:"list"`
}

// ScreeningConfig holds the screening thresholds, all in percent.
type ScreeningConfig struct {
	Inflation        float64 `mapstructure:"inflation"`
	MinDivYield      float64 `mapstructure:"min_div_yield"`
	MaxDivYield      float64 `mapstructure:"max_div_yield"`
	MinDivGrowthRate float64 `mapstructure:"min_div_growth_rate"`
	MaxDivPayoutRate float64 `mapstructure:"max_div_payout_rate"`
	SP500DivYield    float64 `mapstructure:"sp500_div_yield"`
}

// MarketDataConfig covers the Polygon.io REST API.
type MarketDataConfig struct {
	BaseURL           string        `mapstructure:"base_url"`
	APIKey            string        `mapstructure:"api_key"`
	RequestTimeout    time.Duration `mapstructure:"request_timeout"`
	RequestsPerMinute int           `mapstructure:"requests_per_minute"`
	Workers           int           `mapstructure:"workers"`
	UserAgent         string        `mapstructure:"user_agent"`
}

// ChartConfig sizes rendered PNG charts.
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// Load builds configuration from file, environment, and defaults.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("DIVSCREEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := readConfig(v); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg, decodeHook()); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func readConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "divscreen")
	v.SetDefault("app.environment", "development")

	v.SetDefault("logging.level", "error")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.output", "stderr")

	v.SetDefault("data.path", "")
	v.SetDefault("data.list", "Champions")

	v.SetDefault("screening.inflation", 3.4)
	v.SetDefault("screening.min_div_yield", 4.7)
	v.SetDefault("screening.max_div_yield", 10.0)
	v.SetDefault("screening.min_div_growth_rate", 10.0)
	v.SetDefault("screening.max_div_payout_rate", 75.0)
	v.SetDefault("screening.sp500_div_yield", 1.61)

	v.SetDefault("market_data.base_url", "https://api.polygon.io")
	v.SetDefault("market_data.api_key", "")
	v.SetDefault("market_data.request_timeout", "10s")
	v.SetDefault("market_data.requests_per_minute", 5)
	v.SetDefault("market_data.workers", 2)
	v.SetDefault("market_data.user_agent", "divscreen/1.0")

	v.SetDefault("chart.width", 1280)
	v.SetDefault("chart.height", 720)
}

func decodeHook() viper.DecoderConfigOption {
	return func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}
}

// Validate performs basic sanity checks on the configuration values.
// Screening thresholds are not cross-checked: a minimum above the maximum
// simply matches nothing.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Data.List) == "" {
		return fmt.Errorf("data.list must not be empty")
	}
	if c.MarketData.Workers <= 0 {
		return fmt.Errorf("market_data.workers must be greater than zero")
	}
	if c.MarketData.RequestTimeout <= 0 {
		return fmt.Errorf("market_data.request_timeout must be greater than zero")
	}
	if c.MarketData.RequestsPerMinute < 0 {
		return fmt.Errorf("market_data.requests_per_minute cannot be negative")
	}
	if c.Chart.Width <= 0 || c.Chart.Height <= 0 {
		return fmt.Errorf("chart.width and chart.height must be greater than zero")
	}
	return nil
}

// Thresholds converts the screening section for the pipeline.
func (c *Config) Thresholds() screen.Thresholds {
	s := c.Screening
	return screen.Thresholds{
		Inflation:     s.Inflation,
		IndexYield:    s.SP500DivYield,
		MinYield:      s.MinDivYield,
		MaxYield:      s.MaxDivYield,
		MinGrowthRate: s.MinDivGrowthRate,
		MaxPayoutRate: s.MaxDivPayoutRate,
	}
}
