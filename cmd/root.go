package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/yageo/config"
	"github.com/s0up4200/yageo/yandex"
)

var (
	cfgFile string
	cfg     *config.Config
	logger  = zerolog.Nop()
	client  *yandex.Client

	appVersion = "dev"
	buildTime  = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yageo",
	Short: "Query the Yandex Maps geocoder from the command line",
	Long: `yageo is a CLI for the Yandex Maps geocoder HTTP API. It resolves addresses
to coordinates (geocode), coordinates to addresses (reverse), and can print
the request URL without sending it (url).`,
	SilenceUsage: true,
}

// SetVersion records build metadata injected through ldflags
func SetVersion(version, built string) {
	appVersion = version
	buildTime = built
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
}

// initializeApp loads the configuration and creates the geocoder client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging, os.Stderr)
	client = newClient(cfg.Yandex, logger)

	logger.Debug().
		Str("version", client.Version()).
		Str("uri", client.URI()).
		Msg("Geocoder client ready")

	return nil
}

// newClient creates a geocoder client from the yandex config section
func newClient(yc config.YandexConfig, logger zerolog.Logger) *yandex.Client {
	return yandex.NewClient(yc.APIKey, logger,
		yandex.WithVersion(yc.Version),
		yandex.WithBaseURL(yc.BaseURL),
		yandex.WithTimeout(yc.Timeout),
		yandex.WithUserAgent(userAgent(yc.UserAgent)),
	)
}

func userAgent(base string) string {
	if base == "" {
		base = "yageo"
	}
	return base + "/" + appVersion
}

// setupLogger configures the zerolog logger
func setupLogger(lc config.LoggingConfig, out *os.File) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(lc.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if lc.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !lc.Color || !isatty.IsTerminal(out.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}
