package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment" default:"development"`
	Server      struct {
		Port            int           `yaml:"port" default:"8080"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"30s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Log struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Source struct {
		Driver        string        `yaml:"driver" default:"eastmoney"`  // eastmoney or tencent
		Listing       string        `yaml:"listing" default:"eastmoney"` // eastmoney or sina
		Timeout       time.Duration `yaml:"timeout" default:"3s"`
		Retries       int           `yaml:"retries" default:"3"`
		RetryDelayMin time.Duration `yaml:"retry_delay_min" default:"500ms"`
		RetryDelayMax time.Duration `yaml:"retry_delay_max" default:"3s"`
		DisableProxy  bool          `yaml:"disable_proxy" default:"true"`
		RatePerSec    float64       `yaml:"rate_per_sec" default:"5"`
		Burst         float64       `yaml:"burst" default:"5"`
	} `yaml:"source"`
	Listing struct {
		PageSize  int           `yaml:"page_size" default:"80"`
		MaxPages  int           `yaml:"max_pages" default:"4"`
		PageDelay time.Duration `yaml:"page_delay" default:"300ms"`
	} `yaml:"listing"`
	Strategy struct {
		PriceCeiling   float64       `yaml:"price_ceiling" default:"80"`
		VolumeRatioMin float64       `yaml:"volume_ratio_min" default:"1.2"` // 0 disables the filter
		PoolSize       int           `yaml:"pool_size" default:"30"`
		SortKey        string        `yaml:"sort_key" default:"volume_ratio"` // volume_ratio or change_pct
		ExcludeNames   []string      `yaml:"exclude_names"`
		LookbackDays   int           `yaml:"lookback_days" default:"120"`
		BreakoutWindow int           `yaml:"breakout_window" default:"20"`
		MinHistoryBars int           `yaml:"min_history_bars" default:"30"`
		MAWindow       int           `yaml:"ma_window" default:"60"`
		StopWindow     int           `yaml:"stop_window" default:"10"`
		HardStopPct    float64       `yaml:"hard_stop_pct" default:"-8"`
		FetchDelay     time.Duration `yaml:"fetch_delay" default:"200ms"`
	} `yaml:"strategy"`
	Benchmark struct {
		Symbol   string        `yaml:"symbol" default:"sh000300"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"10m"`
	} `yaml:"benchmark"`
	Redis struct {
		Enabled  bool   `yaml:"enabled"`
		Addr     string `yaml:"addr" default:"localhost:6379"`
		Password string `yaml:"password"`
		DB       int    `yaml:"db"`
	} `yaml:"redis"`
}

// Load reads and parses a YAML configuration file, applying struct defaults
// for anything the file leaves out.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("apply defaults: %w", err)
	}
	if len(c.Strategy.ExcludeNames) == 0 {
		c.Strategy.ExcludeNames = []string{"ST", "退"}
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment
// variables. A local .env file is honored when present.
func LoadWithEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("SOURCE_DRIVER"); v != "" {
		c.Source.Driver = v
	}
	if v := os.Getenv("SOURCE_LISTING"); v != "" {
		c.Source.Listing = v
	}
	if v := os.Getenv("BENCHMARK_SYMBOL"); v != "" {
		c.Benchmark.Symbol = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		c.Redis.Enabled = true
		c.Redis.Addr = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			c.Server.Port = p
		}
	}
	if v := os.Getenv("EXCLUDE_NAMES"); v != "" {
		c.Strategy.ExcludeNames = strings.Split(v, ",")
	}

	return c, nil
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Source.Driver != "eastmoney" && c.Source.Driver != "tencent" {
		return fmt.Errorf("source.driver must be 'eastmoney' or 'tencent', got '%s'", c.Source.Driver)
	}
	if c.Source.Listing != "eastmoney" && c.Source.Listing != "sina" {
		return fmt.Errorf("source.listing must be 'eastmoney' or 'sina', got '%s'", c.Source.Listing)
	}
	if c.Strategy.SortKey != "volume_ratio" && c.Strategy.SortKey != "change_pct" {
		return fmt.Errorf("strategy.sort_key must be 'volume_ratio' or 'change_pct', got '%s'", c.Strategy.SortKey)
	}
	if c.Strategy.PoolSize <= 0 {
		return fmt.Errorf("strategy.pool_size must be positive")
	}
	if c.Strategy.BreakoutWindow <= 0 || c.Strategy.MAWindow <= 0 || c.Strategy.StopWindow <= 0 {
		return fmt.Errorf("strategy windows must be positive")
	}
	if c.Strategy.MinHistoryBars <= c.Strategy.BreakoutWindow {
		return fmt.Errorf("strategy.min_history_bars must exceed the breakout window")
	}
	if c.Benchmark.Symbol == "" {
		return fmt.Errorf("benchmark.symbol is required")
	}
	return nil
}
