package config

// Package config handles configuration loading for FilingScope.
// It supports YAML config files with environment variable overrides.

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/avikram/filingscope/pkg/models"
)

// Config represents the complete application configuration.
type Config struct {
	Company    CompanyConfig    `mapstructure:"company"    yaml:"company"`
	EDGAR      EDGARConfig      `mapstructure:"edgar"      yaml:"edgar"`
	Store      StoreConfig      `mapstructure:"store"      yaml:"store"`
	Extraction ExtractionConfig `mapstructure:"extraction" yaml:"extraction"`
	Search     SearchConfig     `mapstructure:"search"     yaml:"search"`
	API        APIConfig        `mapstructure:"api"        yaml:"api"`
	Logging    LoggingConfig    `mapstructure:"logging"    yaml:"logging"`
}

// CompanyConfig identifies the company under analysis.
type CompanyConfig struct {
	CIK    string `mapstructure:"cik"    yaml:"cik"`
	Ticker string `mapstructure:"ticker" yaml:"ticker"`
	Name   string `mapstructure:"name"   yaml:"name"`
}

// EDGARConfig holds SEC EDGAR client settings.
type EDGARConfig struct {
	BaseURL        string  `mapstructure:"base_url"        yaml:"base_url"`
	SubmissionsURL string  `mapstructure:"submissions_url" yaml:"submissions_url"`
	FullTextURL    string  `mapstructure:"fulltext_url"    yaml:"fulltext_url"`
	UserAgent      string  `mapstructure:"user_agent"      yaml:"user_agent"`
	RateLimitRPS   float64 `mapstructure:"rate_limit_rps"  yaml:"rate_limit_rps"`
	CacheTTL       int     `mapstructure:"cache_ttl"       yaml:"cache_ttl"` // seconds
	TimeoutSec     int     `mapstructure:"timeout_sec"     yaml:"timeout_sec"`
}

// StoreConfig holds filing store settings.
type StoreConfig struct {
	Backend     string `mapstructure:"backend"      yaml:"backend"` // "file" or "postgres"
	Dir         string `mapstructure:"dir"          yaml:"dir"`
	PostgresDSN string `mapstructure:"postgres_dsn" yaml:"postgres_dsn"`
}

// MetricPattern is one financial metric with its ordered extraction patterns.
// The first pattern that yields a parseable number wins.
type MetricPattern struct {
	Name     string   `mapstructure:"name"     yaml:"name"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
}

// SignalPattern is one business signal category with its ordered patterns.
type SignalPattern struct {
	Name     string   `mapstructure:"name"     yaml:"name"`
	Patterns []string `mapstructure:"patterns" yaml:"patterns"`
}

// ExtractionConfig holds the metric and signal extraction settings.
type ExtractionConfig struct {
	Metrics       []MetricPattern `mapstructure:"metrics"         yaml:"metrics"`
	Signals       []SignalPattern `mapstructure:"signals"         yaml:"signals"`
	ApplyScale    bool            `mapstructure:"apply_scale"     yaml:"apply_scale"`
	MaxPerPattern int             `mapstructure:"max_per_pattern" yaml:"max_per_pattern"`
}

// SearchConfig holds full text search and keyword sweep settings.
type SearchConfig struct {
	ContextChars        int      `mapstructure:"context_chars"          yaml:"context_chars"`
	MaxMatchesPerFiling int      `mapstructure:"max_matches_per_filing" yaml:"max_matches_per_filing"`
	KeywordContextChars int      `mapstructure:"keyword_context_chars"  yaml:"keyword_context_chars"`
	FormTypes           []string `mapstructure:"form_types"             yaml:"form_types"`
	BiotechKeywords     []string `mapstructure:"biotech_keywords"       yaml:"biotech_keywords"`
	PipelineKeywords    []string `mapstructure:"pipeline_keywords"      yaml:"pipeline_keywords"`
	RiskKeywords        []string `mapstructure:"risk_keywords"          yaml:"risk_keywords"`
	PartnershipKeywords []string `mapstructure:"partnership_keywords"   yaml:"partnership_keywords"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.filingscope/config.yaml (home directory)
//  3. /etc/filingscope/config.yaml (system)
//
// Environment variables override config file values.
// Format: FILINGSCOPE_<SECTION>_<KEY>, e.g., FILINGSCOPE_EDGAR_USER_AGENT
func Load() (*Config, error) {
	v := viper.New()

	// Set defaults
	setDefaults(v)

	// Config file settings
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".filingscope"))
	v.AddConfigPath("/etc/filingscope")

	// Environment variable settings
	v.SetEnvPrefix("FILINGSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file (not required to exist)
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

	applyPatternDefaults(&cfg)
	overrideFromEnv(&cfg)

	return &cfg, nil
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigFile(path)
	v.SetEnvPrefix("FILINGSCOPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	applyPatternDefaults(&cfg)
	overrideFromEnv(&cfg)
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	// Company defaults (Alnylam Pharmaceuticals)
	v.SetDefault("company.cik", "1178670")
	v.SetDefault("company.ticker", "ALNY")
	v.SetDefault("company.name", "Alnylam Pharmaceuticals, Inc.")

	// EDGAR defaults
	v.SetDefault("edgar.base_url", "https://www.sec.gov")
	v.SetDefault("edgar.submissions_url", "https://data.sec.gov")
	v.SetDefault("edgar.fulltext_url", "https://efts.sec.gov/LATEST/search-index")
	v.SetDefault("edgar.user_agent", "FilingScope research tool admin@filingscope.dev")
	v.SetDefault("edgar.rate_limit_rps", 10.0) // SEC fair access ceiling
	v.SetDefault("edgar.cache_ttl", 900)       // 15 minutes
	v.SetDefault("edgar.timeout_sec", 30)

	// Store defaults
	v.SetDefault("store.backend", "file")
	v.SetDefault("store.dir", filepath.Join("data", "filings"))

	// Extraction defaults
	v.SetDefault("extraction.apply_scale", false)
	v.SetDefault("extraction.max_per_pattern", 3)

	// Search defaults
	v.SetDefault("search.context_chars", 200)
	v.SetDefault("search.max_matches_per_filing", 5)
	v.SetDefault("search.keyword_context_chars", 100)
	v.SetDefault("search.form_types", models.SupportedFormTypes())
	v.SetDefault("search.biotech_keywords", defaultBiotechKeywords())
	v.SetDefault("search.pipeline_keywords", defaultPipelineKeywords())
	v.SetDefault("search.risk_keywords", defaultRiskKeywords())
	v.SetDefault("search.partnership_keywords", defaultPartnershipKeywords())

	// API defaults
	v.SetDefault("api.host", "0.0.0.0")
	v.SetDefault("api.port", 8080)
	v.SetDefault("api.cors_origins", []string{"http://localhost:3000"})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
}

// applyPatternDefaults fills in the built-in extraction patterns when the
// config file does not define its own. Viper defaults cannot carry nested
// struct slices reliably, so these are applied after unmarshaling.
func applyPatternDefaults(cfg *Config) {
	if len(cfg.Extraction.Metrics) == 0 {
		cfg.Extraction.Metrics = DefaultMetricPatterns()
	}
	if len(cfg.Extraction.Signals) == 0 {
		cfg.Extraction.Signals = DefaultSignalPatterns()
	}
}

// overrideFromEnv explicitly reads deployment-specific keys from environment
// variables.
func overrideFromEnv(cfg *Config) {
	if v := os.Getenv("FILINGSCOPE_COMPANY_CIK"); v != "" {
		cfg.Company.CIK = v
	}
	if v := os.Getenv("FILINGSCOPE_COMPANY_TICKER"); v != "" {
		cfg.Company.Ticker = v
	}
	if v := os.Getenv("FILINGSCOPE_EDGAR_USER_AGENT"); v != "" {
		cfg.EDGAR.UserAgent = v
	}
	if v := os.Getenv("FILINGSCOPE_STORE_POSTGRES_DSN"); v != "" {
		cfg.Store.PostgresDSN = v
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
