package cmd

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"ghost-archiver/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	appCfg  config.Config
)

// rootCmd is the base command called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "ghost-archiver",
	Short: "Ghost blog archiver CLI",
	Long:  "Pulls posts from a Ghost blog's Content API and archives them to disk.",
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: ./config.yaml)")
}

func initConfig() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	v := viper.GetViper()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/ghost-archiver")
		v.AddConfigPath("configs")
	}

	// Artifact toggles default on here; FillDefaults cannot tell an unset
	// bool from an explicit false.
	v.SetDefault("output.json", true)
	v.SetDefault("output.text", true)
	v.SetDefault("output.index", true)

	// Credentials come from the environment, never source literals.
	_ = v.BindEnv("ghost.api_key", "GHOST_CONTENT_API_KEY")
	_ = v.BindEnv("ghost.base_url", "GHOST_URL")
	_ = v.BindEnv("openai.api_key", "OPENAI_API_KEY")

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			fmt.Fprintf(os.Stderr, "error reading config: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Fprintf(os.Stderr, "Using config file: %s\n", v.ConfigFileUsed())
	}

	if err := v.Unmarshal(&appCfg); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing config: %v\n", err)
		os.Exit(1)
	}

	appCfg.FillDefaults()
	setupLogging(appCfg.App.LogLevel)
}

func setupLogging(level string) {
	var lv slog.Level
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		lv = slog.LevelDebug
	case "warn", "warning":
		lv = slog.LevelWarn
	case "error":
		lv = slog.LevelError
	default:
		lv = slog.LevelInfo
	}
	h := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lv})
	slog.SetDefault(slog.New(h))
}

// GetConfig exposes the loaded configuration to subcommands.
func GetConfig() config.Config {
	return appCfg
}
