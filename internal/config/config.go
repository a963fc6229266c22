// Package config handles configuration loading for firmscan.
// It supports YAML config files with environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the complete application configuration.
type Config struct {
	Edgar     EdgarConfig     `mapstructure:"edgar"     yaml:"edgar"`
	Search    SearchConfig    `mapstructure:"search"    yaml:"search"`
	Reference ReferenceConfig `mapstructure:"reference" yaml:"reference"`
	StockLoan StockLoanConfig `mapstructure:"stockloan" yaml:"stockloan"`
	Logging   LoggingConfig   `mapstructure:"logging"   yaml:"logging"`
}

// EdgarConfig holds SEC EDGAR client settings. SEC requires a descriptive
// User-Agent with contact details on every request.
type EdgarConfig struct {
	UserAgent      string `mapstructure:"user_agent"       yaml:"user_agent"`
	Contact        string `mapstructure:"contact"          yaml:"contact"`
	RatePerSecond  int    `mapstructure:"rate_per_second"  yaml:"rate_per_second"`
	CacheTTLSec    int    `mapstructure:"cache_ttl_sec"    yaml:"cache_ttl_sec"`
	TimeoutSec     int    `mapstructure:"timeout_sec"      yaml:"timeout_sec"`
	SearchBaseURL  string `mapstructure:"search_base_url"  yaml:"search_base_url"`
	DataBaseURL    string `mapstructure:"data_base_url"    yaml:"data_base_url"`
	ArchiveBaseURL string `mapstructure:"archive_base_url" yaml:"archive_base_url"`
}

// SearchConfig holds counsel-search pipeline settings.
type SearchConfig struct {
	MaxTotalFilings   int     `mapstructure:"max_total_filings"   yaml:"max_total_filings"`
	FilingsPerCompany int     `mapstructure:"filings_per_company" yaml:"filings_per_company"`
	Concurrency       int     `mapstructure:"concurrency"         yaml:"concurrency"`
	MarketCapFloor    float64 `mapstructure:"market_cap_floor"    yaml:"market_cap_floor"`
}

// ReferenceConfig holds the static ticker reference dataset location.
type ReferenceConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// StockLoanConfig holds the borrow-availability feed settings.
type StockLoanConfig struct {
	URL string `mapstructure:"url" yaml:"url"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.firmscan/config.yaml (home directory)
//  3. /etc/firmscan/config.yaml (system)
//
// Environment variables override config file values.
// Format: FIRMSCAN_<SECTION>_<KEY>, e.g., FIRMSCAN_EDGAR_CONTACT
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".firmscan"))
	v.AddConfigPath("/etc/firmscan")

	v.SetEnvPrefix("FIRMSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found — that's fine, use defaults + env vars
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FIRMSCAN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// EDGAR defaults (SEC allows 10 req/s; stay under it)
	v.SetDefault("edgar.user_agent", "firmscan/1.0")
	v.SetDefault("edgar.contact", "")
	v.SetDefault("edgar.rate_per_second", 8)
	v.SetDefault("edgar.cache_ttl_sec", 600)
	v.SetDefault("edgar.timeout_sec", 30)
	v.SetDefault("edgar.search_base_url", "https://efts.sec.gov/LATEST")
	v.SetDefault("edgar.data_base_url", "https://data.sec.gov")
	v.SetDefault("edgar.archive_base_url", "https://www.sec.gov/Archives")

	// Search defaults
	v.SetDefault("search.max_total_filings", 10000)
	v.SetDefault("search.filings_per_company", 10)
	v.SetDefault("search.concurrency", 5)
	v.SetDefault("search.market_cap_floor", 500000000)

	// Reference defaults
	v.SetDefault("reference.path", "./data/tickers.csv")

	// Stock loan defaults (IBKR shortable stock feed)
	v.SetDefault("stockloan.url", "https://ftp3.interactivebrokers.com/shortstock/usa.txt")

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// overrideFromEnv explicitly reads a few keys from environment variables.
func overrideFromEnv(cfg *Config) {
	if contact := os.Getenv("FIRMSCAN_EDGAR_CONTACT"); contact != "" {
		cfg.Edgar.Contact = contact
	}
	if path := os.Getenv("FIRMSCAN_REFERENCE_PATH"); path != "" {
		cfg.Reference.Path = path
	}
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
