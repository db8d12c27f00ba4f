// seehuhn.de/go/pdfreport - relative layout and page overlays for PDF reports
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package config holds the configuration of the pdfreport command.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
	"golang.org/x/text/language"

	"seehuhn.de/go/pdfreport/document"
	"seehuhn.de/go/pdfreport/pdf"
)

// EnvPrefix is the prefix of environment variables which override
// configuration values, for example PDFREPORT_PAGE_PAPER.
const EnvPrefix = "PDFREPORT"

// Config is the complete configuration.
type Config struct {
	Logger LoggerConfig `mapstructure:"logger"`
	Page   PageConfig   `mapstructure:"page"`
	Fonts  FontsConfig  `mapstructure:"fonts"`
	Locale LocaleConfig `mapstructure:"locale"`
	Output OutputConfig `mapstructure:"output"`
	Source SourceConfig `mapstructure:"source"`
	Report ReportConfig `mapstructure:"report"`
}

// LoggerConfig configures logging.
type LoggerConfig struct {
	Level       string `mapstructure:"level"`
	Format      string `mapstructure:"format"`
	ServiceName string `mapstructure:"service_name"`
	AddSource   bool   `mapstructure:"add_source"`

	// LogFile, if set, receives JSON log entries.  The file is rotated
	// once it reaches MaxSize megabytes.
	LogFile    string `mapstructure:"log_file"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
}

// PageConfig gives the paper size and margins.
type PageConfig struct {
	Paper   string        `mapstructure:"paper"`
	Margins MarginsConfig `mapstructure:"margins"`
}

// MarginsConfig gives the page margins in PDF points.
type MarginsConfig struct {
	Top    float64 `mapstructure:"top"`
	Right  float64 `mapstructure:"right"`
	Bottom float64 `mapstructure:"bottom"`
	Left   float64 `mapstructure:"left"`
}

// FontsConfig selects fonts.  Families listed in Families are loaded from
// Dir, from files named like "Family.ttf", "Family_Bold.ttf" and so on.
type FontsConfig struct {
	Dir       string   `mapstructure:"dir"`
	Ext       string   `mapstructure:"ext"`
	Families  []string `mapstructure:"families"`
	Family    string   `mapstructure:"family"`
	Size      float64  `mapstructure:"size"`
	Leading   float64  `mapstructure:"leading"`
	TitleSize float64  `mapstructure:"title_size"`
}

// LocaleConfig selects the language of labels.
type LocaleConfig struct {
	Language string `mapstructure:"language"`

	// Messages is a YAML file with translated labels.
	Messages string `mapstructure:"messages"`
}

// OutputConfig controls the PDF output.
type OutputConfig struct {
	File     string `mapstructure:"file"`
	Version  string `mapstructure:"version"`
	Compress bool   `mapstructure:"compress"`
}

// SourceConfig selects the report data.  Exactly one of Data and SQLite
// must be set.
type SourceConfig struct {
	Data   string `mapstructure:"data"`
	SQLite string `mapstructure:"sqlite"`
	Query  string `mapstructure:"query"`
}

// ReportConfig controls the report layout.
type ReportConfig struct {
	Gutter              float64 `mapstructure:"gutter"`
	RowHeight           float64 `mapstructure:"row_height"`
	Padding             int     `mapstructure:"padding"`
	PageBreakPerSection bool    `mapstructure:"page_break_per_section"`
}

// SetDefaults installs the default values in v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("logger.level", "warn")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.service_name", "pdfreport")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 10)
	v.SetDefault("logger.max_backups", 3)
	v.SetDefault("logger.max_age", 28)
	v.SetDefault("logger.compress", true)

	v.SetDefault("page.paper", "a4")
	v.SetDefault("page.margins.top", 50)
	v.SetDefault("page.margins.right", 40)
	v.SetDefault("page.margins.bottom", 50)
	v.SetDefault("page.margins.left", 40)

	v.SetDefault("fonts.dir", "")
	v.SetDefault("fonts.ext", ".ttf")
	v.SetDefault("fonts.families", []string{})
	v.SetDefault("fonts.family", "Go")
	v.SetDefault("fonts.size", 10)
	v.SetDefault("fonts.leading", 2)
	v.SetDefault("fonts.title_size", 16)

	v.SetDefault("locale.language", "en")
	v.SetDefault("locale.messages", "")

	v.SetDefault("output.file", "")
	v.SetDefault("output.version", "1.7")
	v.SetDefault("output.compress", true)

	v.SetDefault("source.data", "")
	v.SetDefault("source.sqlite", "")
	v.SetDefault("source.query", "")

	v.SetDefault("report.gutter", 8)
	v.SetDefault("report.row_height", 28)
	v.SetDefault("report.padding", 2)
	v.SetDefault("report.page_break_per_section", false)
}

// NewViper returns a viper instance with defaults and environment variable
// bindings installed.
func NewViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// NewDefaultConfig returns the default configuration.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)
	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// NewConfigFromViper decodes and validates the configuration held by v.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := zapcore.ParseLevel(c.Logger.Level); err != nil {
		errs = append(errs, fmt.Errorf("logger.level: %w", err))
	}
	switch c.Logger.Format {
	case "console", "json":
	default:
		errs = append(errs, fmt.Errorf("logger.format must be \"console\" or \"json\", not %q", c.Logger.Format))
	}

	if _, err := document.PaperSize(c.Page.Paper); err != nil {
		errs = append(errs, fmt.Errorf("page.paper: %w", err))
	}
	m := c.Page.Margins
	if m.Top < 0 || m.Right < 0 || m.Bottom < 0 || m.Left < 0 {
		errs = append(errs, errors.New("page.margins must not be negative"))
	}

	if c.Fonts.Size <= 0 {
		errs = append(errs, errors.New("fonts.size must be positive"))
	}
	if c.Fonts.TitleSize <= 0 {
		errs = append(errs, errors.New("fonts.title_size must be positive"))
	}
	if len(c.Fonts.Families) > 0 && c.Fonts.Dir == "" {
		errs = append(errs, errors.New("fonts.families requires fonts.dir"))
	}

	if _, err := language.Parse(c.Locale.Language); err != nil {
		errs = append(errs, fmt.Errorf("locale.language: %w", err))
	}

	if _, err := pdf.ParseVersion(c.Output.Version); err != nil {
		errs = append(errs, fmt.Errorf("output.version: %w", err))
	}

	if c.Source.Data != "" && c.Source.SQLite != "" {
		errs = append(errs, errors.New("source.data and source.sqlite are mutually exclusive"))
	}
	if c.Source.SQLite != "" && c.Source.Query == "" {
		errs = append(errs, errors.New("source.sqlite requires source.query"))
	}

	if c.Report.Gutter < 0 {
		errs = append(errs, errors.New("report.gutter must not be negative"))
	}
	if c.Report.RowHeight <= 0 {
		errs = append(errs, errors.New("report.row_height must be positive"))
	}

	return errors.Join(errs...)
}

// DocumentOptions converts the page, font and output settings into options
// for a new document.  The font registry and translator are left for the
// caller to fill in.
func (c *Config) DocumentOptions() (*document.Options, error) {
	paper, err := document.PaperSize(c.Page.Paper)
	if err != nil {
		return nil, err
	}
	version, err := pdf.ParseVersion(c.Output.Version)
	if err != nil {
		return nil, err
	}
	m := c.Page.Margins
	return &document.Options{
		PaperSize:  paper,
		Margins:    &document.Margins{Top: m.Top, Right: m.Right, Bottom: m.Bottom, Left: m.Left},
		FontFamily: c.Fonts.Family,
		FontSize:   c.Fonts.Size,
		Leading:    c.Fonts.Leading,
		Writer: &pdf.WriterOptions{
			Version:  version,
			Compress: c.Output.Compress,
		},
	}, nil
}
