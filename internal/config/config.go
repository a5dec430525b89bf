// Package config loads mlb-server settings. Later layers win: built-in
// defaults, an optional YAML file, a .env file, then MLB_MCP_* environment
// variables. Command-line flags are applied on top by the caller.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"

	SourceHTTP  = "http"
	SourceStore = "store"

	// ChartArtifact returns charts as HTML artifacts; ChartLegacy inlines
	// the image as markdown.
	ChartArtifact = "artifact"
	ChartLegacy   = "legacy"

	// FormatPlain returns structured MCP content; FormatPrefixed returns the
	// CHART_ARTIFACT: text form.
	FormatPlain    = "plain"
	FormatPrefixed = "prefixed"
)

const envPrefix = "MLB_MCP_"

type Config struct {
	Addr      string `yaml:"addr"`
	Path      string `yaml:"path"`
	Transport string `yaml:"transport"`

	Source     string `yaml:"source"`
	StoreRoot  string `yaml:"store_root"`
	RecordRoot string `yaml:"record_root"`

	ChartMode      string `yaml:"chart_mode"`
	ResponseFormat string `yaml:"response_format"`
	// CompactCharts selects the image-plus-metric-cards artifact layout.
	CompactCharts bool `yaml:"compact_charts"`

	APIKey      string `yaml:"api_key"`
	AuthHeader  string `yaml:"auth_header"`
	RequireAuth bool   `yaml:"require_auth"`

	LogLevel    string        `yaml:"log_level"`
	HTTPTimeout time.Duration `yaml:"http_timeout"`
	UserAgent   string        `yaml:"user_agent"`
}

func Default() *Config {
	return &Config{
		Addr:           ":8080",
		Path:           "/mcp",
		Transport:      TransportHTTP,
		Source:         SourceHTTP,
		StoreRoot:      "data/recorded",
		ChartMode:      ChartArtifact,
		ResponseFormat: FormatPlain,
		CompactCharts:  true,
		AuthHeader:     "X-API-Key",
		RequireAuth:    false,
		LogLevel:       "info",
		HTTPTimeout:    30 * time.Second,
		UserAgent:      "baseball-mcp/1.0",
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty or missing), .env and the environment.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := yaml.Unmarshal(raw, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}

	_ = godotenv.Load()
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func env(name string) string {
	return strings.TrimSpace(os.Getenv(envPrefix + name))
}

func (c *Config) applyEnv() error {
	c.Addr = firstNonEmpty(env("ADDR"), c.Addr)
	c.Path = firstNonEmpty(env("PATH"), c.Path)
	c.Transport = firstNonEmpty(env("TRANSPORT"), c.Transport)
	c.Source = firstNonEmpty(env("SOURCE"), c.Source)
	c.StoreRoot = firstNonEmpty(env("STORE_ROOT"), c.StoreRoot)
	c.RecordRoot = firstNonEmpty(env("RECORD_ROOT"), c.RecordRoot)
	c.ChartMode = firstNonEmpty(env("CHART_MODE"), c.ChartMode)
	c.ResponseFormat = firstNonEmpty(env("RESPONSE_FORMAT"), c.ResponseFormat)
	c.APIKey = firstNonEmpty(env("API_KEY"), c.APIKey)
	c.AuthHeader = firstNonEmpty(env("AUTH_HEADER"), c.AuthHeader)
	c.LogLevel = firstNonEmpty(env("LOG_LEVEL"), c.LogLevel)
	c.UserAgent = firstNonEmpty(env("USER_AGENT"), c.UserAgent)

	if raw := env("REQUIRE_AUTH"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sREQUIRE_AUTH: %w", envPrefix, err)
		}
		c.RequireAuth = v
	}
	if raw := env("COMPACT_CHARTS"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%sCOMPACT_CHARTS: %w", envPrefix, err)
		}
		c.CompactCharts = v
	}
	if raw := env("HTTP_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return fmt.Errorf("%sHTTP_TIMEOUT: %w", envPrefix, err)
		}
		c.HTTPTimeout = d
	}
	return nil
}

func oneOf(name, v string, options ...string) error {
	for _, o := range options {
		if v == o {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want %s)", name, v, strings.Join(options, "|"))
}

// Validate normalizes enum fields and rejects unknown values.
func (c *Config) Validate() error {
	c.Transport = strings.ToLower(c.Transport)
	c.Source = strings.ToLower(c.Source)
	c.ChartMode = strings.ToLower(c.ChartMode)
	c.ResponseFormat = strings.ToLower(c.ResponseFormat)

	if err := oneOf("transport", c.Transport, TransportHTTP, TransportStdio); err != nil {
		return err
	}
	if err := oneOf("source", c.Source, SourceHTTP, SourceStore); err != nil {
		return err
	}
	if err := oneOf("chart mode", c.ChartMode, ChartArtifact, ChartLegacy); err != nil {
		return err
	}
	if err := oneOf("response format", c.ResponseFormat, FormatPlain, FormatPrefixed); err != nil {
		return err
	}
	if c.Source == SourceStore && c.StoreRoot == "" {
		return errors.New("store source needs a store root")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http timeout must be positive, got %s", c.HTTPTimeout)
	}
	return nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
