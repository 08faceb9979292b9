package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// UniverseEntry is one symbol scanned for the watchlist.
type UniverseEntry struct {
	Symbol    string `yaml:"symbol" validate:"required"`
	Rationale string `yaml:"rationale"`
}

type Config struct {
	Environment string `yaml:"environment" default:"development" validate:"required"`
	Log         struct {
		Level  string `yaml:"level" default:"info" validate:"oneof=debug info warn error"`
		Format string `yaml:"format" default:"console" validate:"oneof=json console"`
		Output string `yaml:"output" default:"stdout"`
	} `yaml:"log"`
	Server struct {
		Port            int           `yaml:"port" default:"8080" validate:"gt=0,lte=65535"`
		ReadTimeout     time.Duration `yaml:"read_timeout" default:"10s"`
		WriteTimeout    time.Duration `yaml:"write_timeout" default:"10s"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" default:"10s"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled" default:"true"`
		Path    string `yaml:"path" default:"/metrics"`
	} `yaml:"metrics"`
	Report struct {
		OutputDir    string          `yaml:"output_dir" default:"reports"`
		Trader       string          `yaml:"trader" default:"Marcus"`
		Timezone     string          `yaml:"timezone" default:"America/New_York"`
		HistoryRange string          `yaml:"history_range" default:"1mo" validate:"oneof=1mo 3mo"`
		NewsCount    int             `yaml:"news_count" default:"5" validate:"gte=0,lte=20"`
		Universe     []UniverseEntry `yaml:"universe" validate:"dive"`
	} `yaml:"report"`
	Market struct {
		BaseURL           string        `yaml:"base_url" default:"https://query1.finance.yahoo.com" validate:"required,url"`
		VolatilitySymbol  string        `yaml:"volatility_symbol" default:"^VIX"`
		IndexSymbol       string        `yaml:"index_symbol" default:"SPY"`
		SignalRange       string        `yaml:"signal_range" default:"5d"`
		RequestsPerSecond float64       `yaml:"requests_per_second" default:"2" validate:"gt=0"`
		Timeout           time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"market"`
	Search struct {
		Enabled bool          `yaml:"enabled"`
		URL     string        `yaml:"url" validate:"omitempty,url"`
		Count   int           `yaml:"count" default:"5" validate:"gte=1,lte=20"`
		Timeout time.Duration `yaml:"timeout" default:"30s"`
	} `yaml:"search"`
	Classifier struct {
		DefaultVolatility float64 `yaml:"default_volatility" default:"20.0" validate:"gte=0"`
		DefaultTrend      float64 `yaml:"default_trend"`
	} `yaml:"classifier"`
	Notifier struct {
		Enabled    bool          `yaml:"enabled" default:"true"`
		WebhookURL string        `yaml:"webhook_url" validate:"omitempty,url"`
		Format     string        `yaml:"format" default:"card" validate:"oneof=card text post"`
		Timeout    time.Duration `yaml:"timeout" default:"30s"`
		SkipClosed bool          `yaml:"skip_closed" default:"true"`
	} `yaml:"notifier"`
	Schedule struct {
		Cron    string        `yaml:"cron" default:"30 8 * * 1-5"`
		Timeout time.Duration `yaml:"timeout" default:"10m"`
	} `yaml:"schedule"`
	Redis struct {
		Enabled   bool          `yaml:"enabled"`
		Host      string        `yaml:"host" default:"localhost"`
		Port      int           `yaml:"port" default:"6379"`
		Password  string        `yaml:"password"`
		DB        int           `yaml:"db"`
		Prefix    string        `yaml:"prefix" default:"momentum"`
		GuardTTL  time.Duration `yaml:"guard_ttl" default:"36h"`
		ReportTTL time.Duration `yaml:"report_ttl" default:"12h"`
	} `yaml:"redis"`
	ClickHouse struct {
		Enabled     bool          `yaml:"enabled"`
		Host        string        `yaml:"host" default:"localhost"`
		Port        int           `yaml:"port" default:"9000"`
		Database    string        `yaml:"database" default:"momentum"`
		User        string        `yaml:"user" default:"default"`
		Password    string        `yaml:"password"`
		UseHTTP     bool          `yaml:"use_http"`
		DialTimeout time.Duration `yaml:"dial_timeout" default:"5s"`
		ReadTimeout time.Duration `yaml:"read_timeout" default:"10s"`
	} `yaml:"clickhouse"`
	Kafka struct {
		Enabled      bool          `yaml:"enabled"`
		Brokers      []string      `yaml:"brokers"`
		Topic        string        `yaml:"topic" default:"momentum.reports"`
		RequiredAcks int           `yaml:"required_acks" default:"-1"`
		Compression  string        `yaml:"compression" default:"gzip" validate:"oneof=gzip snappy lz4 zstd"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"10s"`
	} `yaml:"kafka"`
}

var validate = validator.New()

// Default returns a config populated only from struct defaults.
func Default() (*Config, error) {
	var c Config
	if err := defaults.Set(&c); err != nil {
		return nil, fmt.Errorf("set defaults: %w", err)
	}
	c.Report.Universe = DefaultUniverse()
	return &c, nil
}

// Load reads and parses a YAML configuration file on top of the defaults.
func Load(path string) (*Config, error) {
	c, err := Default()
	if err != nil {
		return nil, err
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(b, c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if len(c.Report.Universe) == 0 {
		c.Report.Universe = DefaultUniverse()
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

// LoadWithEnv loads config from YAML (or defaults when path is empty or
// missing) and overrides with environment variables. A .env file in the
// working directory is loaded first if present.
func LoadWithEnv(path string) (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, fmt.Errorf("load .env: %w", err)
		}
	}

	var (
		c   *Config
		err error
	)
	if path != "" {
		if _, statErr := os.Stat(path); statErr == nil {
			c, err = Load(path)
		} else if errors.Is(statErr, os.ErrNotExist) {
			c, err = Default()
		} else {
			err = fmt.Errorf("stat config: %w", statErr)
		}
	} else {
		c, err = Default()
	}
	if err != nil {
		return nil, err
	}

	applyEnv(c)

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return c, nil
}

func applyEnv(c *Config) {
	if v := os.Getenv("FEISHU_WEBHOOK"); v != "" {
		c.Notifier.WebhookURL = v
	}
	if v, ok := envBool("NOTIFIER_ENABLED"); ok {
		c.Notifier.Enabled = v
	}
	if v, ok := envBool("SKIP_WEEKEND"); ok {
		c.Notifier.SkipClosed = v
	}
	if v := os.Getenv("REPORT_OUTPUT_DIR"); v != "" {
		c.Report.OutputDir = v
	}
	if v := os.Getenv("REPORT_SYMBOLS"); v != "" {
		c.Report.Universe = ParseUniverse(v)
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		host, port, ok := strings.Cut(v, ":")
		c.Redis.Enabled = true
		c.Redis.Host = host
		if ok {
			if p, err := strconv.Atoi(port); err == nil {
				c.Redis.Port = p
			}
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		c.Kafka.Enabled = true
		c.Kafka.Brokers = strings.Split(v, ",")
	}
}

func envBool(key string) (bool, bool) {
	v := os.Getenv(key)
	if v == "" {
		return false, false
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, false
	}
	return b, true
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	if _, err := time.LoadLocation(c.Report.Timezone); err != nil {
		return fmt.Errorf("report.timezone: %w", err)
	}
	if len(c.Report.Universe) == 0 {
		return fmt.Errorf("report.universe cannot be empty")
	}
	if c.Search.Enabled && c.Search.URL == "" {
		return fmt.Errorf("search.url is required when search is enabled")
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka.brokers cannot be empty when kafka is enabled")
	}
	if c.ClickHouse.Enabled && c.ClickHouse.Host == "" {
		return fmt.Errorf("clickhouse.host is required when clickhouse is enabled")
	}
	return nil
}

// Location returns the report timezone. Validate guarantees it loads.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// NotifierActive reports whether deliveries should be attempted at all.
func (c *Config) NotifierActive() bool {
	return c.Notifier.Enabled && c.Notifier.WebhookURL != ""
}

// Symbols returns the universe tickers in scan order.
func (c *Config) Symbols() []string {
	out := make([]string, 0, len(c.Report.Universe))
	for _, u := range c.Report.Universe {
		out = append(out, u.Symbol)
	}
	return out
}
