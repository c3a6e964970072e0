package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ironsheep/plate-vision/internal/config"
	"github.com/ironsheep/plate-vision/internal/logging"
	"github.com/ironsheep/plate-vision/internal/vision"
)

var (
	// cfg is the merged configuration shared by subcommands
	cfg config.Config
	// log is built from cfg once flags are parsed
	log *logrus.Logger

	envFile    string
	logLevel   string
	logFile    string
	dictionary string
)

var rootCmd = &cobra.Command{
	Use:           "platevision",
	Short:         "Locate plate markers and identify labware plate types",
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(envFile)
		if err != nil {
			return err
		}

		flags := cmd.Flags()
		if flags.Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if flags.Changed("log-file") {
			cfg.LogFile = logFile
		}
		if flags.Changed("dictionary") {
			cfg.Dictionary = dictionary
		}
		if err := cfg.Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}

		log, err = logging.New(logging.Options{Level: cfg.LogLevel, File: cfg.LogFile, Stderr: os.Stderr})
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"version": Version,
			"commit":  GitCommit,
			"built":   BuildTime,
		}).Debug("platevision starting")
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	// Create a context that listens for Ctrl+C (SIGINT) or Kill (SIGTERM)
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd.SetVersionTemplate(fmt.Sprintf("platevision {{.Version}}\n  Build time: %s\n  Git commit: %s\n", BuildTime, GitCommit))

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		stop()
		os.Exit(1)
	}
}

// newExtractor opens the ArUco detector for the configured dictionary.
func newExtractor() (*vision.Extractor, error) {
	dict, err := vision.ParseDictionary(cfg.Dictionary)
	if err != nil {
		return nil, err
	}
	det, err := vision.NewArucoDetector(dict)
	if err != nil {
		return nil, err
	}
	return vision.NewExtractor(det), nil
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&envFile, "env-file", ".env", "optional dotenv file with PLATEVISION_* settings")
	pf.StringVar(&logLevel, "log-level", "info", "log level (trace, debug, info, warn, error)")
	pf.StringVar(&logFile, "log-file", "", "also write logs to this rotated file")
	pf.StringVar(&dictionary, "dictionary", string(vision.Dict4x4_50), "ArUco dictionary name")
}
