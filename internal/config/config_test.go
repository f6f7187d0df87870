package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "Champions", cfg.Data.List)
	assert.Equal(t, "error", cfg.Logging.Level)
	assert.Equal(t, 10*time.Second, cfg.MarketData.RequestTimeout)

	th := cfg.Thresholds()
	assert.Equal(t, 3.4, th.Inflation)
	assert.Equal(t, 1.61, th.IndexYield)
	assert.Equal(t, 4.7, th.MinYield)
	assert.Equal(t, 10.0, th.MaxYield)
	assert.Equal(t, 10.0, th.MinGrowthRate)
	assert.Equal(t, 75.0, th.MaxPayoutRate)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "divscreen.yaml")
	content := []byte(`
data:
  path: lists.xlsx
  list: Contenders
screening:
  min_div_yield: 3.9
market_data:
  request_timeout: 3s
  workers: 4
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("DIVSCREEN_MARKET_DATA_API_KEY", "from-env")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "lists.xlsx", cfg.Data.Path)
	assert.Equal(t, "Contenders", cfg.Data.List)
	assert.Equal(t, 3.9, cfg.Screening.MinDivYield)
	assert.Equal(t, 3*time.Second, cfg.MarketData.RequestTimeout)
	assert.Equal(t, 4, cfg.MarketData.Workers)
	assert.Equal(t, "from-env", cfg.MarketData.APIKey)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Data:       DataConfig{List: "All"},
		MarketData: MarketDataConfig{Workers: 1, RequestTimeout: time.Second},
		Chart:      ChartConfig{Width: 10, Height: 10},
	}
	require.NoError(t, valid.Validate())

	noList := valid
	noList.Data.List = " "
	assert.Error(t, noList.Validate())

	noWorkers := valid
	noWorkers.MarketData.Workers = 0
	assert.Error(t, noWorkers.Validate())

	badChart := valid
	badChart.Chart.Height = 0
	assert.Error(t, badChart.Validate())

	// inverted yield bounds are allowed
	inverted := valid
	inverted.Screening.MinDivYield = 12
	inverted.Screening.MaxDivYield = 1
	assert.NoError(t, inverted.Validate())
}
