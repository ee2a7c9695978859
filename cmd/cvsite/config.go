// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/pdiddy/cvsite/internal/logger"
	"github.com/pdiddy/cvsite/pkg/types"
)

func init() {
	setDefaults(viper.GetViper())
}

// setDefaults registers the built-in configuration. Every key needs a
// default so environment variables can override it.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.cookie_name", "cvsite_lang")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("data.files", map[string]string{
		"en": "data/cv_en.yaml",
		"es": "data/cv_es.yaml",
	})
	v.SetDefault("data.schema", false)

	v.SetDefault("pdf.backend", string(types.BackendRendercv))
	v.SetDefault("pdf.bin", "rendercv")
	v.SetDefault("pdf.files", map[string]string{
		"en": "pdf/cv_en.pdf",
		"es": "pdf/cv_es.pdf",
	})
	v.SetDefault("pdf.timeout", "2m")
	v.SetDefault("pdf.ledger_path", "state/builds.db")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")
}

// decodeConfig unmarshals and validates the configuration held by v.
func decodeConfig(v *viper.Viper) (types.SiteConfig, error) {
	var cfg types.SiteConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decoding config: %w", err)
	}
	if err := validator.New().Struct(cfg); err != nil {
		return cfg, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// setup loads the configuration and installs the global logger.
func setup() (types.SiteConfig, zerolog.Logger, error) {
	cfg, err := decodeConfig(viper.GetViper())
	if err != nil {
		return cfg, zerolog.Nop(), err
	}
	return cfg, logger.Init(cfg.Log, os.Stderr), nil
}
