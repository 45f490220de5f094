// Artpoll broadcasts Art-Net ArtPoll discovery packets.
//
// It picks a local IPv4 interface suitable for broadcasting, binds UDP port
// 6454 on it and sends an ArtPoll to the Art-Net broadcast address on a
// fixed interval. Nodes on the network answer with ArtPollReply; receiving
// those is left to other tools.
//
// Usage:
//
//	artpoll [command] [flags]
//
// Running without a command starts polling.
// See 'artpoll --help' for available commands.
package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/muurk/artpoll/internal/config"
	"github.com/muurk/artpoll/internal/logging"
	"github.com/muurk/artpoll/internal/version"
)

// Global flags
var (
	logLevel   string
	configFile string
	envFile    string
)

// settings is loaded before any command runs. settingsErr is reported by
// the commands that need settings, so a broken file can still be replaced
// with 'config init --force'.
var (
	settings    = config.NewSettings()
	settingsErr error
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	logging.Sync()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "artpoll",
	Short: "Art-Net ArtPoll discovery broadcaster",
	Long: `Broadcasts Art-Net ArtPoll packets so lighting nodes on the network
announce themselves.

The source interface is the first adapter that is up, running, supports
broadcast and multicast, is not a loopback and whose name starts with the
configured prefix ("en" by default).

If no command is specified, polling starts with the configured defaults.`,
	Version: version.Version,
	Example: `  # Poll every 2.5s on the first en* interface
  artpoll

  # Send five polls to the primary broadcast address
  artpoll poll --count 5 --target primary

  # Show which interface would be used
  artpoll interfaces`,
	PersistentPreRunE: setup,
	RunE:              runPoll,
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error); silent when unset")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Settings file (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Dotenv file to load ARTPOLL_* variables from")

	addPollFlags(rootCmd)

	rootCmd.AddCommand(versionCmd)
}

// setup loads the environment, settings and logger in that order so each
// step can see the previous one's values.
func setup(cmd *cobra.Command, args []string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if configFile != "" {
		if err := os.Setenv(config.ConfigPathEnvVar, configFile); err != nil {
			return err
		}
	}
	if s, err := config.Load(); err != nil {
		settingsErr = err
	} else {
		settings = s
	}

	return initLogging(logLevel, settings)
}

// resolveLogLevel picks the log level and names where it came from:
// the flag, then the environment, then the settings file.
func resolveLogLevel(flagLevel string, s *config.Settings) (level, origin string) {
	if flagLevel != "" {
		return flagLevel, "--log-level"
	}
	if env := os.Getenv(logging.LogLevelEnvVar); env != "" {
		return env, logging.LogLevelEnvVar
	}
	if s != nil && s.Log != nil && s.Log.Level != "" {
		return s.Log.Level, "log.level in settings file"
	}
	return "", ""
}

func initLogging(flagLevel string, s *config.Settings) error {
	level, origin := resolveLogLevel(flagLevel, s)
	if err := logging.Initialize(level); err != nil {
		return fmt.Errorf("%s: %w", origin, err)
	}
	return nil
}

// requireSettings returns the settings or the error from loading them
func requireSettings() (*config.Settings, error) {
	if settingsErr != nil {
		return nil, settingsErr
	}
	return settings, nil
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("artpoll %s (commit: %s) %s %s\n", version.Version, version.Commit, version.GoVersion(), version.Platform())
	},
}
