// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ServerConfig holds settings for the HTTP server.
type ServerConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required"`

	// CookieName names the cookie that carries the session language.
	CookieName string `json:"cookie_name" yaml:"cookie_name" mapstructure:"cookie_name" validate:"required"`

	// ShutdownTimeout bounds graceful shutdown (default 10s).
	ShutdownTimeout time.Duration `json:"shutdown_timeout" yaml:"shutdown_timeout" mapstructure:"shutdown_timeout"`
}

// DataConfig locates the per-language YAML data files.
type DataConfig struct {
	// Files maps a language code to its YAML data file.
	Files map[Lang]string `json:"files" yaml:"files" mapstructure:"files" validate:"required,min=1,dive,keys,oneof=en es,endkeys,required"`

	// Schema enables JSON Schema validation of data files on load.
	Schema bool `json:"schema" yaml:"schema" mapstructure:"schema"`
}

// PDFBackend identifies the PDF rendering tool.
type PDFBackend string

const (
	BackendRendercv PDFBackend = "rendercv"
	BackendChrome   PDFBackend = "chrome"
	// BackendNone serves pre-rendered PDFs only.
	BackendNone PDFBackend = "none"
)

// PDFConfig holds settings for PDF rendering and download.
type PDFConfig struct {
	// Backend selects the renderer: rendercv, chrome, or none.
	Backend PDFBackend `json:"backend" yaml:"backend" mapstructure:"backend" validate:"oneof=rendercv chrome none"`

	// Bin is the rendercv executable (default "rendercv").
	Bin string `json:"bin" yaml:"bin" mapstructure:"bin"`

	// Files maps a language code to its PDF artifact path.
	Files map[Lang]string `json:"files" yaml:"files" mapstructure:"files" validate:"dive,keys,oneof=en es,endkeys,required"`

	// Timeout bounds a single render (default 2m).
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// LedgerPath is the SQLite database that records builds.
	LedgerPath string `json:"ledger_path" yaml:"ledger_path" mapstructure:"ledger_path"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	// Level is a zerolog level name (default "info").
	Level string `json:"level" yaml:"level" mapstructure:"level"`

	// Format is "console" or "json" (default "console").
	Format string `json:"format" yaml:"format" mapstructure:"format" validate:"omitempty,oneof=console json"`
}

// SiteConfig groups all configuration for the site.
type SiteConfig struct {
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Data   DataConfig   `json:"data" yaml:"data" mapstructure:"data"`
	PDF    PDFConfig    `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
