package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/taskhive-io/taskhive-go/config"
	"github.com/taskhive-io/taskhive-go/solver"
	"github.com/taskhive-io/taskhive-go/storefront"
)

var (
	cfgFile     string
	cfg         *config.Config
	logger      zerolog.Logger
	solveClient *solver.Client
	shopClient  *storefront.Client

	versionString = "dev"
	buildTime     = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "taskhive",
	Short: "A CLI for the TaskHive solve and shop APIs",
	Long: `taskhive is a CLI over the TaskHive API: it solves anti-bot challenges
(Turnstile, Kasada, Akamai, Arkose) and proxies retail shop operations
(store search, product detail, cart mutation).`,
	PersistentPreRunE: initializeApp,
}

// SetVersion stores the build information injected by the linker.
func SetVersion(version, built string) {
	versionString = version
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

	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(versionCmd)
}

// initializeApp initializes the configuration and clients
func initializeApp(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "update":
		// These run without a config file.
		logger = setupLogger(config.LoggingConfig{Level: "info", Format: "console", Color: true})
		return nil
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger = setupLogger(cfg.Logging)

	timeout := time.Duration(cfg.API.TimeoutSeconds) * time.Second

	solveClient, err = solver.NewClient(cfg.API.Key, logger,
		solver.WithBaseURL(cfg.API.BaseURL),
		solver.WithTimeout(timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create solve client: %w", err)
	}

	shopClient, err = storefront.NewClient(cfg.API.Key, logger,
		storefront.WithBaseURL(cfg.API.BaseURL),
		storefront.WithTimeout(timeout),
	)
	if err != nil {
		return fmt.Errorf("failed to create shop client: %w", err)
	}

	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	zerolog.SetGlobalLevel(level)

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).With().Timestamp().Logger()
}

// printJSON writes a result to stdout as indented JSON
func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check liveness of both API surfaces",
	RunE: func(cmd *cobra.Command, args []string) error {
		g, ctx := errgroup.WithContext(cmd.Context())

		g.Go(func() error {
			status, err := solveClient.Health(ctx)
			if err != nil {
				return fmt.Errorf("solve API: %w", err)
			}
			logger.Info().Str("status", status.Status).Str("version", status.Version).Msg("solve API")
			return nil
		})

		g.Go(func() error {
			quota, err := shopClient.Ping(ctx)
			if err != nil {
				return fmt.Errorf("shop API: %w", err)
			}
			logger.Info().
				Int("used", quota.Used).
				Int("limit", quota.Limit).
				Int("remaining", quota.Remaining()).
				Msg("shop API")
			return nil
		})

		return g.Wait()
	},
}

// versionCmd represents the version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("taskhive %s (built %s)\n", versionString, buildTime)
	},
}
