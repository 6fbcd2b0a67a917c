package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd represents the base command for the inboxd application
var rootCmd = &cobra.Command{
	Use:   "inboxd",
	Short: "A Gmail inbox client for the terminal and for HTTP consumers",
	Long: `inboxd normalizes your Gmail inbox into uniform records that can be
listed, searched, starred, trashed and replied to.

It can run as:
  - A standalone CLI tool (default)
  - An HTTP JSON API server for webmail frontends (inboxd serve)`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging()
	},
}

// version will be set by main
var version = "dev"

var logLevel string

// SetVersion sets the version for the root command
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}

// Execute is the main entry point for the CLI application
func Execute() {
	rootCmd.SetVersionTemplate(`{{printf "inboxd version %s\n" .Version}}`)

	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// setupLogging configures the default slog logger from the --log-level
// flag. Logs go to stderr so command output stays pipeable.
func setupLogging() error {
	var level slog.Level
	switch strings.ToLower(logLevel) {
	case "debug":
		level = slog.LevelDebug
	case "info", "":
		level = slog.LevelInfo
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		return fmt.Errorf("invalid log level %q (debug, info, warn, error)", logLevel)
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
	return nil
}

// initConfig reads configuration from file and environment. Settings
// resolve in order: flags, INBOXD_* environment variables, config file.
func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	if home, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, "inboxd"))
	}
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("inboxd")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine, env and flags still apply.
	if err := viper.ReadInConfig(); err == nil {
		slog.Debug("loaded config file", "path", viper.ConfigFileUsed())
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("account", "default", "Named account whose cached credentials to use")
	_ = viper.BindPFlag("account", rootCmd.PersistentFlags().Lookup("account"))

	rootCmd.AddCommand(newAuthCmd())
	rootCmd.AddCommand(newInboxCmd())
	rootCmd.AddCommand(newSearchCmd())
	rootCmd.AddCommand(newSendCmd())
	rootCmd.AddCommand(newMessageCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newServeCmd())
}
