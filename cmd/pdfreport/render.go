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

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"
	"golang.org/x/text/language"

	"seehuhn.de/go/pdfreport/document"
	"seehuhn.de/go/pdfreport/font"
	"seehuhn.de/go/pdfreport/i18n"
	"seehuhn.de/go/pdfreport/internal/config"
	"seehuhn.de/go/pdfreport/internal/observability"
	"seehuhn.de/go/pdfreport/internal/report"
	"seehuhn.de/go/pdfreport/internal/source"
)

var errTerminal = errors.New("refusing to write PDF data to a terminal, use --output")

func (a *app) newRenderCmd() *cobra.Command {
	var title string

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render a report as a PDF file",
		Long: `Render a report as a PDF file.

The report data is read either from a YAML file (--data), or from a SQLite
database (--sqlite), using a query which returns the columns section, label,
value and, optionally, span.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.render(cmd.Context(), cmd.OutOrStdout(), title)
		},
	}

	flags := cmd.Flags()
	flags.String("data", "", "YAML file with the report data")
	flags.String("sqlite", "", "SQLite database with the report data")
	flags.String("query", "", "SQL query selecting section, label, value[, span]")
	flags.StringP("output", "o", "", "output file (default: standard output)")
	flags.String("lang", "en", "language of the labels")
	flags.String("messages", "", "YAML file with translated labels")
	flags.String("paper", "a4", "paper size, e.g. a4, letter or a4-landscape")
	flags.Bool("page-break-per-section", false, "start every section on a new page")
	flags.StringVar(&title, "title", "", "report title, replacing the title from the data")
	a.bind("source.data", flags.Lookup("data"))
	a.bind("source.sqlite", flags.Lookup("sqlite"))
	a.bind("source.query", flags.Lookup("query"))
	a.bind("output.file", flags.Lookup("output"))
	a.bind("locale.language", flags.Lookup("lang"))
	a.bind("locale.messages", flags.Lookup("messages"))
	a.bind("page.paper", flags.Lookup("paper"))
	a.bind("report.page_break_per_section", flags.Lookup("page-break-per-section"))

	return cmd
}

func (a *app) render(ctx context.Context, stdout io.Writer, title string) error {
	cfg := a.cfg
	logger := observability.GetLogger()

	rep, err := loadReport(ctx, cfg.Source)
	if err != nil {
		return err
	}
	if title != "" {
		rep.Title = title
	}

	opt, err := cfg.DocumentOptions()
	if err != nil {
		return err
	}
	opt.Fonts, err = loadFonts(cfg.Fonts)
	if err != nil {
		return err
	}
	opt.Translator, err = loadTranslator(cfg.Locale)
	if err != nil {
		return err
	}
	opt.Logger = logger.Named("document")
	opt.Info = &document.Info{
		Title:   rep.Title,
		Subject: rep.Subtitle,
		Creator: "pdfreport " + version,
	}

	var doc *document.Document
	if out := cfg.Output.File; out != "" && out != "-" {
		doc, err = document.Create(out, opt)
	} else {
		if isTerminal(stdout) {
			return errTerminal
		}
		doc, err = document.New(nopCloser{stdout}, opt)
	}
	if err != nil {
		return err
	}

	err = report.Render(doc, rep, &report.Options{
		TitleSize:           cfg.Fonts.TitleSize,
		RowHeight:           cfg.Report.RowHeight,
		Gutter:              cfg.Report.Gutter,
		Padding:             cfg.Report.Padding,
		PageBreakPerSection: cfg.Report.PageBreakPerSection,
	})
	if err != nil {
		return err
	}
	pages := doc.PageCount()
	err = doc.Close()
	if err != nil {
		return err
	}

	logger.Info("report written",
		zap.String("output", cfg.Output.File),
		zap.Int("sections", len(rep.Sections)),
		zap.Int("pages", pages))
	return nil
}

func loadReport(ctx context.Context, cfg config.SourceConfig) (*source.Report, error) {
	switch {
	case cfg.Data != "":
		return source.LoadYAML(cfg.Data)
	case cfg.SQLite != "":
		return source.LoadSQLite(ctx, cfg.SQLite, cfg.Query)
	default:
		return nil, errors.New("no report data given, use --data or --sqlite")
	}
}

func loadFonts(cfg config.FontsConfig) (*font.Registry, error) {
	reg, err := font.NewRegistry()
	if err != nil {
		return nil, err
	}
	for _, family := range cfg.Families {
		_, err := reg.CreateFamily(cfg.Dir, family, cfg.Ext)
		if err != nil {
			return nil, err
		}
	}
	return reg, nil
}

func loadTranslator(cfg config.LocaleConfig) (*i18n.Bundle, error) {
	tag, err := language.Parse(cfg.Language)
	if err != nil {
		return nil, err
	}
	bundle := i18n.NewBundle(tag)
	if cfg.Messages == "" {
		return bundle, nil
	}

	fd, err := os.Open(cfg.Messages)
	if err != nil {
		return nil, err
	}
	defer fd.Close()
	err = bundle.LoadYAML(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", cfg.Messages, err)
	}
	return bundle, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// nopCloser keeps the document from closing standard output.
type nopCloser struct {
	io.Writer
}
