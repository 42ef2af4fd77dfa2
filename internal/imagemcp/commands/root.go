// Package commands implements the llm-image CLI: the same image service
// operations the MCP server exposes, as cobra subcommands for direct shell
// use.
package commands

import (
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/samestrin/llm-image-mcp/pkg/imageapi"
)

var (
	// Global flags
	baseURL    string
	apiKey     string
	configPath string
	jsonOutput bool
)

// RootCmd returns the root command for llm-image
func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "llm-image",
		Short: "CLI for the image-management service",
		Long: `llm-image talks to a remote image-management service: fetch image
metadata, trigger transcoding, list categories and sizes, get signed URLs for
resized renditions, and upload images.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging()
		},
	}

	// Persistent flags
	rootCmd.PersistentFlags().StringVar(&baseURL, "base-url", "", "Image service base URL (or set "+imageapi.EnvBaseURL+")")
	rootCmd.PersistentFlags().StringVar(&apiKey, "api-key", "", "Image service API key (or set "+imageapi.EnvAPIKey+")")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to YAML config file")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON instead of markdown")

	// Add subcommands
	rootCmd.AddCommand(metadataCmd())
	rootCmd.AddCommand(transcodeCmd())
	rootCmd.AddCommand(categoriesCmd())
	rootCmd.AddCommand(resizedCmd())
	rootCmd.AddCommand(uploadCmd())

	return rootCmd
}

// newClient resolves configuration from flags, environment, and the config
// file, and builds a client for it.
func newClient() (*imageapi.Client, error) {
	var args []string
	if baseURL != "" {
		args = append(args, baseURL)
		if apiKey != "" {
			args = append(args, apiKey)
		}
	}

	cfg, err := imageapi.LoadConfig(args, configPath)
	if err != nil {
		return nil, err
	}
	if cfg.APIKey == "" {
		cfg.APIKey = apiKey
	}
	return imageapi.NewClient(cfg.BaseURL, cfg.APIKey), nil
}

// setupLogging routes leveled logs to stderr so stdout stays clean for
// command output.
func setupLogging() {
	level := slog.LevelWarn
	switch strings.ToLower(os.Getenv("LOG_LEVEL")) {
	case "debug":
		level = slog.LevelDebug
	case "info":
		level = slog.LevelInfo
	case "error":
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}
