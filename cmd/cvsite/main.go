// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the cvsite CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the cvsite CLI.
var rootCmd = &cobra.Command{
	Use:   "cvsite",
	Short: "Bilingual résumé site backed by YAML data files",
	Long: `cvsite serves a bilingual (English/Spanish) résumé page built from
per-language YAML data files, and produces the downloadable PDF of each
language with rendercv or headless Chrome.

Use serve to run the site, render to build the PDFs, validate to check the
data files, show to preview how a file is classified, and builds to list
the PDF build ledger.`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./cvsite.yaml or ~/.config/cvsite/cvsite.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("cvsite")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "cvsite"))
		}
	}

	viper.SetEnvPrefix("CVSITE")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
