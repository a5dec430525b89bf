package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diamondstats/baseball-mcp/internal/config"
	"github.com/diamondstats/baseball-mcp/internal/fetch"
	"github.com/diamondstats/baseball-mcp/internal/source"
	"github.com/diamondstats/baseball-mcp/internal/store"
	"github.com/diamondstats/baseball-mcp/internal/validate"
)

var rootFlags struct {
	configPath string
}

var rootCmd = &cobra.Command{
	Use:   "mlb-server",
	Short: "MCP server for baseball statistics, player lookup and charts",
	Long: "mlb-server exposes player lookup, FanGraphs leaderboards, Baseball-Reference\n" +
		"ranges and Statcast spray charts as MCP tools. Without a subcommand it runs\n" +
		"the transport named in the configuration.",
	CompletionOptions: cobra.CompletionOptions{
		HiddenDefaultCmd: true,
	},
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, "")
		if err != nil {
			return err
		}
		if cfg.Transport == config.TransportStdio {
			return runStdio(cmd.Context(), cfg)
		}
		return runHTTP(cmd.Context(), cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve MCP over streamable HTTP",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, config.TransportHTTP)
		if err != nil {
			return err
		}
		return runHTTP(cmd.Context(), cfg)
	},
}

var stdioCmd = &cobra.Command{
	Use:   "stdio",
	Short: "Serve MCP over stdin/stdout",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig(cmd, config.TransportStdio)
		if err != nil {
			return err
		}
		return runStdio(cmd.Context(), cfg)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&rootFlags.configPath, "config", "mlb-server.yaml", "YAML config file (optional)")
	pf.String("source", config.SourceHTTP, "data source: http|store")
	pf.String("store-root", "data/recorded", "root directory of recorded tables (store source)")
	pf.String("record-root", "", "record every fetched table under this directory (http source)")
	pf.String("chart-mode", config.ChartArtifact, "chart output: artifact|legacy")
	pf.String("response-format", config.FormatPlain, "artifact encoding: plain|prefixed")
	pf.Bool("compact-charts", true, "use the compact chart artifact layout")
	pf.String("log-level", "info", "log level")
	pf.Duration("http-timeout", 30*time.Second, "timeout for upstream HTTP requests")
	pf.String("user-agent", "baseball-mcp/1.0", "User-Agent for upstream requests")

	for _, cmd := range []*cobra.Command{rootCmd, serveCmd} {
		f := cmd.Flags()
		f.String("addr", ":8080", "HTTP listen address")
		f.String("path", "/mcp", "HTTP path for MCP endpoint")
		f.Bool("require-auth", false, "require API key auth via MLB_MCP_API_KEY")
		f.String("auth-header", "X-API-Key", "HTTP header to read API key from")
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(stdioCmd)
}

// loadConfig layers explicitly set flags over config.Load. A non-empty
// transport is forced by the subcommand.
func loadConfig(cmd *cobra.Command, transport string) (*config.Config, error) {
	cfg, err := config.Load(rootFlags.configPath)
	if err != nil {
		return nil, err
	}
	f := cmd.Flags()
	strs := map[string]*string{
		"source":          &cfg.Source,
		"store-root":      &cfg.StoreRoot,
		"record-root":     &cfg.RecordRoot,
		"chart-mode":      &cfg.ChartMode,
		"response-format": &cfg.ResponseFormat,
		"log-level":       &cfg.LogLevel,
		"user-agent":      &cfg.UserAgent,
		"addr":            &cfg.Addr,
		"path":            &cfg.Path,
		"auth-header":     &cfg.AuthHeader,
	}
	for name, dst := range strs {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	if f.Changed("require-auth") {
		cfg.RequireAuth, _ = f.GetBool("require-auth")
	}
	if f.Changed("compact-charts") {
		cfg.CompactCharts, _ = f.GetBool("compact-charts")
	}
	if f.Changed("http-timeout") {
		cfg.HTTPTimeout, _ = f.GetDuration("http-timeout")
	}
	if transport != "" {
		cfg.Transport = transport
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger writes JSON lines to w, or a console format in stdio mode where
// stdout carries the MCP stream.
func newLogger(cfg *config.Config, w io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	out := w
	if cfg.Transport == config.TransportStdio {
		out = zerolog.ConsoleWriter{Out: w, TimeFormat: time.TimeOnly}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Str("service", serverName).Logger()
}

func newSource(cfg *config.Config, log zerolog.Logger) source.Source {
	if cfg.Source == config.SourceStore {
		return source.NewStore(store.NewJSONStore(cfg.StoreRoot))
	}
	c := fetch.NewClient()
	c.HTTP.Timeout = cfg.HTTPTimeout
	c.UserAgent = cfg.UserAgent

	h := source.NewHTTP(c)
	h.Log = log.With().Str("component", "source").Logger()
	if cfg.RecordRoot != "" {
		h.Recorder = store.NewJSONStore(cfg.RecordRoot)
	}
	return h
}

func newServerConfig(cfg *config.Config, log zerolog.Logger) ServerConfig {
	return ServerConfig{
		Source:         newSource(cfg, log),
		Validator:      validate.Validator{Now: time.Now},
		Log:            log,
		ChartMode:      cfg.ChartMode,
		ResponseFormat: cfg.ResponseFormat,
		Compact:        cfg.CompactCharts,
		SourceName:     cfg.Source,
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
