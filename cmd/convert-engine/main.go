// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the convert-engine CLI: batch file
// conversion between PDF, raster images, and spreadsheets, driven by a
// bounded worker pool with incremental progress reporting.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the convert-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "convert-engine",
	Short: "Batch file conversion between PDF, images, and spreadsheets",
	Long: `convert-engine walks directory trees, collects files matching a source
format, and converts each one to a target format: PDF pages to PNG images,
raster images to single-page PDFs, and spreadsheets to PDF through a
headless office suite. Conversions run on a bounded worker pool; progress
and per-file status stream as each file finishes, and failures are
summarized at the end of the run.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./convert-engine.yaml or ~/.config/convert-engine/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("convert-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "convert-engine"))
		}
	}

	viper.SetEnvPrefix("CONVERT_ENGINE")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
