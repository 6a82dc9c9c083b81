package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/v0xg/themeforge/internal/config"
	"github.com/v0xg/themeforge/internal/export"
	"github.com/v0xg/themeforge/internal/logging"
	"github.com/v0xg/themeforge/internal/theme"
)

var (
	configPath string
	verbose    bool
)

func main() {
	// Load .env file if present (silently ignore if not found)
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "themeforge",
		Short: "Turn a live storefront page into an installable Liquid theme",
		Long: `themeforge captures a storefront page in a headless browser, extracts its
design tokens and section structure with a vision/text model, generates an
Online Store 2.0 theme and packages it as a zip archive.

Example:
  themeforge generate "https://shop.example.com/products/linen-shirt" -o linen.zip
  themeforge preview linen.zip product --viewport mobile -o product.html
  themeforge serve linen.zip`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default: ./themeforge.yaml when present)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show detailed progress")

	rootCmd.AddCommand(generateCmd(), previewCmd(), validateCmd(), serveCmd(), deployCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// setup loads configuration and builds the logger every command uses.
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, err
	}
	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log, err := logging.New(logging.Options{Level: level, HumanReadable: cfg.Log.Human})
	if err != nil {
		return nil, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log, nil
}

// loadArchive reads a theme archive from disk.
func loadArchive(path string) (*theme.Structure, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := export.ReadBytes(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

func logVerbose(format string, args ...any) {
	if verbose {
		fmt.Printf(format+"\n", args...)
	}
}
