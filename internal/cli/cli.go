package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/pfrederiksen/hof-votes/internal/logger"
	"github.com/pfrederiksen/hof-votes/internal/scraper"
	"github.com/spf13/cobra"
)

const (
	ExitSuccess = 0
	ExitError   = 1
	ExitNoTable = 2
)

// ErrNoTable is returned by commands when the page has no voting data
var ErrNoTable = errors.New("no voting table found")

var (
	flagBaseURL  string
	flagTimeout  time.Duration
	flagFormat   string
	flagVerbose  bool
	flagLogLevel string
)

// Config is the resolved configuration shared by all commands
type Config struct {
	BaseURL  string
	Timeout  time.Duration
	Format   OutputFormat
	Verbose  bool
	LogLevel logger.Level
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hof-votes",
		Short: "Fetch Hall of Fame voting tables from Baseball-Reference",
		Long: `A CLI tool to fetch Baseball Hall of Fame voting results.
Extracts a player's year-by-year voting history or a full year's BBWAA ballot
and prints it as text, JSON or CSV.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupLogging,
		PersistentPostRun: logMetrics,
	}

	// Define flags
	pf := cmd.PersistentFlags()
	pf.StringVar(&flagBaseURL, "base-url", envOr("HOF_BASE_URL", scraper.BaseURL), "Site base URL (or env: HOF_BASE_URL)")
	pf.DurationVar(&flagTimeout, "timeout", envDuration("HOF_TIMEOUT", scraper.Timeout), "HTTP request timeout (or env: HOF_TIMEOUT)")
	pf.StringVar(&flagFormat, "format", "text", "Output format: text, json or csv")
	pf.BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging (same as --log-level debug)")
	pf.StringVar(&flagLogLevel, "log-level", envOr("HOF_LOG_LEVEL", "warn"), "Log level: debug, info, warn, error (or env: HOF_LOG_LEVEL)")

	cmd.AddCommand(
		newPlayerCmd(),
		newBallotCmd(),
		newParseCmd(),
		newAnnounceCmd(),
		newCompareCmd(),
	)

	return cmd
}

// loadConfig validates the flag values
func loadConfig() (Config, error) {
	format, err := ParseFormat(flagFormat)
	if err != nil {
		return Config{}, err
	}

	level, err := logger.ParseLevel(flagLogLevel)
	if err != nil {
		return Config{}, err
	}
	if flagVerbose {
		level = logger.LevelDebug
	}

	if flagTimeout <= 0 {
		return Config{}, fmt.Errorf("invalid timeout: %s (must be positive)", flagTimeout)
	}

	baseURL := strings.TrimSpace(flagBaseURL)
	if baseURL == "" {
		baseURL = scraper.BaseURL
	}

	return Config{
		BaseURL:  baseURL,
		Timeout:  flagTimeout,
		Format:   format,
		Verbose:  flagVerbose,
		LogLevel: level,
	}, nil
}

// newScraper builds a scraper from the configuration
func (c Config) newScraper() *scraper.Scraper {
	return scraper.New(
		scraper.WithBaseURL(c.BaseURL),
		scraper.WithTimeout(c.Timeout),
	)
}

func setupLogging(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger.SetDefault(logger.New(cfg.LogLevel, cmd.ErrOrStderr()))
	logger.Debug("Configuration loaded", logger.Fields{
		"base_url": cfg.BaseURL,
		"timeout":  cfg.Timeout.String(),
		"format":   string(cfg.Format),
	})
	return nil
}

func logMetrics(cmd *cobra.Command, args []string) {
	logger.Debug("Metrics", logger.MetricsSnapshot().Fields())
}

// envOr returns the environment value for key, or def when unset
func envOr(key, def string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return def
}

// envDuration parses a duration such as "45s" from the environment
func envDuration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}

// exitCode maps a command error to the process exit status
func exitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case errors.Is(err, ErrNoTable):
		return ExitNoTable
	default:
		return ExitError
	}
}

// Execute runs the CLI
func Execute() {
	err := NewRootCmd().Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(exitCode(err))
}
