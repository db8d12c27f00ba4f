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

package config

import (
	"bytes"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seehuhn.de/go/pdfreport/document"
	"seehuhn.de/go/pdfreport/pdf"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, "warn", cfg.Logger.Level)
	assert.Equal(t, "a4", cfg.Page.Paper)
	assert.Equal(t, 40.0, cfg.Page.Margins.Left)
	assert.Equal(t, "Go", cfg.Fonts.Family)
	assert.Equal(t, 10.0, cfg.Fonts.Size)
	assert.Equal(t, "en", cfg.Locale.Language)
	assert.True(t, cfg.Output.Compress)
	assert.NoError(t, cfg.Validate())
}

func TestConfigValidation(t *testing.T) {
	cases := []struct {
		name    string
		modify  func(c *Config)
		message string
	}{
		{"level", func(c *Config) { c.Logger.Level = "loud" }, "logger.level"},
		{"format", func(c *Config) { c.Logger.Format = "xml" }, "logger.format"},
		{"paper", func(c *Config) { c.Page.Paper = "b17" }, "page.paper"},
		{"margins", func(c *Config) { c.Page.Margins.Top = -1 }, "page.margins"},
		{"font size", func(c *Config) { c.Fonts.Size = 0 }, "fonts.size"},
		{"font dir", func(c *Config) { c.Fonts.Families = []string{"Noto"} }, "fonts.dir"},
		{"language", func(c *Config) { c.Locale.Language = "not a tag!" }, "locale.language"},
		{"version", func(c *Config) { c.Output.Version = "2.0" }, "output.version"},
		{"sources", func(c *Config) {
			c.Source.Data = "report.yaml"
			c.Source.SQLite = "report.db"
			c.Source.Query = "SELECT 1"
		}, "mutually exclusive"},
		{"query", func(c *Config) { c.Source.SQLite = "report.db" }, "source.query"},
		{"row height", func(c *Config) { c.Report.RowHeight = 0 }, "report.row_height"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tc.modify(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigType("yaml")
	yamlConfig := []byte(`
page:
  paper: letter-landscape
  margins:
    top: 20
fonts:
  size: 12
source:
  sqlite: data.db
  query: SELECT section, label, value FROM fields
`)
	require.NoError(t, v.ReadConfig(bytes.NewBuffer(yamlConfig)))

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "letter-landscape", cfg.Page.Paper)
	assert.Equal(t, 20.0, cfg.Page.Margins.Top)
	assert.Equal(t, 50.0, cfg.Page.Margins.Bottom)
	assert.Equal(t, 12.0, cfg.Fonts.Size)
	assert.Equal(t, "data.db", cfg.Source.SQLite)

	opt, err := cfg.DocumentOptions()
	require.NoError(t, err)
	assert.Equal(t, document.Letter.Dy(), opt.PaperSize.Dx())
	assert.Equal(t, 20.0, opt.Margins.Top)
	assert.Equal(t, pdf.V1_7, opt.Writer.Version)
	assert.Equal(t, 12.0, opt.FontSize)
}

func TestNewConfigFromViperInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("output.version", "1.2")

	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestEnvironmentOverride(t *testing.T) {
	t.Setenv("PDFREPORT_PAGE_PAPER", "a5")
	t.Setenv("PDFREPORT_FONTS_SIZE", "9")

	cfg, err := NewConfigFromViper(NewViper())
	require.NoError(t, err)
	assert.Equal(t, "a5", cfg.Page.Paper)
	assert.Equal(t, 9.0, cfg.Fonts.Size)
}
