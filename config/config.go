// Package config loads the dashboard settings from a YAML file, a .env file and
// the environment, in that order of precedence (environment wins).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/etnz/betboard"
	"github.com/etnz/betboard/price"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Environment variables overriding the file settings.
const (
	EnvThreshold    = "BB_THRESHOLD"
	EnvMode         = "BB_MODE"
	EnvTimeout      = "BB_TIMEOUT"
	EnvLogLevel     = "BB_LOG_LEVEL"
	EnvListen       = "BB_LISTEN"
	EnvCoinGeckoURL = "BB_COINGECKO_URL"
	EnvQuoteURL     = "BB_QUOTE_URL"
)

// Config holds every tunable of the dashboard.
type Config struct {
	// Threshold is the share under which slices are folded into Other.
	Threshold float64 `yaml:"threshold"`
	// Detailed keeps every asset in the asset pie.
	Detailed bool `yaml:"detailed"`
	// Mode is "live" or "simple".
	Mode string `yaml:"mode"`

	// Timeout bounds every call to a price source.
	Timeout time.Duration `yaml:"timeout"`
	// Concurrency is the number of distinct prices resolved in parallel.
	Concurrency int `yaml:"concurrency"`
	// CryptoIDs maps extra ticker symbols to CoinGecko coin ids.
	CryptoIDs    map[string]string `yaml:"crypto_ids"`
	CoinGeckoURL string            `yaml:"coingecko_url"`
	QuoteURL     string            `yaml:"quote_url"`

	BreakdownBuckets []string `yaml:"breakdown_buckets"`

	LogLevel string `yaml:"log_level"`
	Listen   string `yaml:"listen"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Threshold:        betboard.DefaultThreshold,
		Mode:             betboard.Live.String(),
		Timeout:          price.DefaultTimeout,
		Concurrency:      4,
		CoinGeckoURL:     price.DefaultCoinGeckoURL,
		QuoteURL:         price.DefaultQuoteURL,
		BreakdownBuckets: append([]string(nil), betboard.DefaultBreakdownBuckets...),
		LogLevel:         "info",
		Listen:           ":8080",
	}
}

// Load reads the YAML file at path over the defaults, then applies the .env file and
// environment overrides. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config %q: %w", path, err)
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	var errs []error
	if v, ok := lookupEnv(EnvThreshold); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvThreshold, err))
		} else {
			c.Threshold = f
		}
	}
	if v, ok := lookupEnv(EnvTimeout); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", EnvTimeout, err))
		} else {
			c.Timeout = d
		}
	}
	c.Mode = getEnv(EnvMode, c.Mode)
	c.LogLevel = getEnv(EnvLogLevel, c.LogLevel)
	c.Listen = getEnv(EnvListen, c.Listen)
	c.CoinGeckoURL = getEnv(EnvCoinGeckoURL, c.CoinGeckoURL)
	c.QuoteURL = getEnv(EnvQuoteURL, c.QuoteURL)
	return errors.Join(errs...)
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var problems []string
	if c.Threshold < 0 || c.Threshold >= 1 {
		problems = append(problems, fmt.Sprintf("invalid threshold %v: must be in [0, 1)", c.Threshold))
	}
	if _, ok := betboard.ParseMode(c.Mode); !ok {
		problems = append(problems, fmt.Sprintf("invalid mode %q: must be live or simple", c.Mode))
	}
	if c.Timeout <= 0 {
		problems = append(problems, fmt.Sprintf("invalid timeout %v: must be positive", c.Timeout))
	}
	if c.Concurrency < 1 {
		problems = append(problems, fmt.Sprintf("invalid concurrency %d: must be at least 1", c.Concurrency))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// LedgerMode returns the parsed Mode. Validate first.
func (c *Config) LedgerMode() betboard.Mode {
	m, _ := betboard.ParseMode(c.Mode)
	return m
}

// ReportOptions returns the report settings.
func (c *Config) ReportOptions() betboard.ReportOptions {
	opts := betboard.DefaultReportOptions()
	opts.Threshold = c.Threshold
	opts.Detailed = c.Detailed
	if c.BreakdownBuckets != nil {
		opts.BreakdownBuckets = c.BreakdownBuckets
	}
	return opts
}

// Sources returns the price source chain for these settings.
func (c *Config) Sources() []price.Source {
	return []price.Source{
		price.NewCoinGecko(c.CoinGeckoURL, nil, c.CryptoIDs),
		price.NewYahooHistory(),
		price.NewQuoteEndpoint(c.QuoteURL, nil),
	}
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func getEnv(key, defaultValue string) string {
	if v, ok := lookupEnv(key); ok {
		return v
	}
	return defaultValue
}
