package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/Veraticus/museum-pulse/internal/common"
	"github.com/Veraticus/museum-pulse/internal/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	version = "dev"
	rootCmd = &cobra.Command{
		Use:   "pulse",
		Short: "🏛️  Museum review labeling and dashboards",
		Long: `museum-pulse: label museum visitor reviews with origin, tourist type,
sentiment and emotion, then explore them as reports, an HTTP API or a
terminal dashboard.`,
		PersistentPreRunE: initConfig,
		SilenceUsage:      true,
	}
)

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $XDG_CONFIG_HOME/pulse/config.yaml or ./config.yaml)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("log-format", "text", "log format (text, json)")
	rootCmd.PersistentFlags().StringP("input", "i", "", "review CSV file (default: data.path)")
	rootCmd.PersistentFlags().String("threshold", "", "sentiment threshold policy (strict, deadband)")
	rootCmd.PersistentFlags().String("emotion-provider", "", "emotion provider (lexicon, remote, none)")

	// Bind flags to viper
	_ = viper.BindPFlag("logging.level", rootCmd.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("logging.format", rootCmd.PersistentFlags().Lookup("log-format"))
	_ = viper.BindPFlag("data.path", rootCmd.PersistentFlags().Lookup("input"))
	_ = viper.BindPFlag("labeler.threshold_policy", rootCmd.PersistentFlags().Lookup("threshold"))
	_ = viper.BindPFlag("emotion.provider", rootCmd.PersistentFlags().Lookup("emotion-provider"))

	// Add commands
	rootCmd.AddCommand(labelCmd())
	rootCmd.AddCommand(reportCmd())
	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(dashboardCmd())
	rootCmd.AddCommand(queryCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(versionCmd())
}

func main() {
	// Set up signal handling
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		slog.Info("Received interrupt signal, shutting down gracefully...")
		cancel()
	}()

	err := rootCmd.ExecuteContext(ctx)
	cancel()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func initConfig(_ *cobra.Command, _ []string) error {
	dir := config.Dir()
	if err := config.LoadDotEnv(".env", filepath.Join(dir, ".env")); err != nil {
		return err
	}

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if dir != "" {
			viper.AddConfigPath(dir)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix(config.EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	config.SetDefaults(viper.GetViper())

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := common.ParseLevel(viper.GetString("logging.level"))
	if err != nil {
		return err
	}
	if err := common.SetupLogger(level, viper.GetString("logging.format")); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	return nil
}
