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

// Package report renders reports as PDF documents.
//
// Every page gets a header with the report title and the title of the
// section shown on the page, and a footer with the page number.  The fields
// of each section are laid out in rows of grid cells.
package report

import (
	"fmt"
	"image/color"

	"go.uber.org/zap"
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfreport/document"
	"seehuhn.de/go/pdfreport/font"
	"seehuhn.de/go/pdfreport/internal/source"
	"seehuhn.de/go/pdfreport/layout"
)

// SectionKey is the key under which the title of the current section is
// recorded for each page.
const SectionKey = "section"

// Options controls the layout of a report.
// A nil *Options selects the defaults.
type Options struct {
	// TitleSize is the font size of the report title.  Default: 16.
	TitleSize float64

	// RowHeight is the height of a row of fields.  Default: 28.
	RowHeight float64

	// Gutter is the space between fields.  Default: 8.
	Gutter float64

	// Padding is the space inside each field.
	Padding int

	// HeaderHeight and FooterHeight give the space reserved at the top and
	// bottom of each page.  Default: 24 and 20.
	HeaderHeight float64
	FooterHeight float64

	// PageBreakPerSection starts every section after the first on a new
	// page.
	PageBreakPerSection bool
}

var ruleColor = color.Gray{Y: 128}

type renderer struct {
	doc *document.Document
	ctx *layout.Context
	rep *source.Report
	opt Options
	log *zap.Logger
}

// Render lays out rep on doc, starting on the current page of doc.
// The caller must close the document to write the output.
func Render(doc *document.Document, rep *source.Report, opt *Options) error {
	r := &renderer{
		doc: doc,
		ctx: doc.Layout(),
		rep: rep,
		log: doc.Logger(),
	}
	if opt != nil {
		r.opt = *opt
	}
	r.setDefaults()

	doc.Repeat(document.AllPages, r.header)
	doc.Repeat(document.AllPages, r.footer)

	r.startPage()
	err := r.title()
	if err != nil {
		return err
	}
	for i, sec := range rep.Sections {
		if i > 0 && r.opt.PageBreakPerSection {
			err := r.newPage()
			if err != nil {
				return err
			}
		}
		err := r.section(sec)
		if err != nil {
			return fmt.Errorf("section %q: %w", sec.Title, err)
		}
	}
	return nil
}

func (r *renderer) setDefaults() {
	if r.opt.TitleSize <= 0 {
		r.opt.TitleSize = 16
	}
	if r.opt.RowHeight <= 0 {
		r.opt.RowHeight = 28
	}
	if r.opt.Gutter < 0 {
		r.opt.Gutter = 0
	} else if r.opt.Gutter == 0 {
		r.opt.Gutter = 8
	}
	if r.opt.HeaderHeight <= 0 {
		r.opt.HeaderHeight = 24
	}
	if r.opt.FooterHeight <= 0 {
		r.opt.FooterHeight = 20
	}
}

// startPage moves the cursor below the header area.
func (r *renderer) startPage() {
	top := r.doc.Bounds().Height() - r.opt.HeaderHeight
	r.doc.MoveCursorTo(min(r.doc.Cursor(), top))
}

func (r *renderer) newPage() error {
	err := r.doc.StartNewPage()
	if err != nil {
		return err
	}
	r.startPage()
	return nil
}

// ensureSpace starts a new page if less than h is left above the footer.
func (r *renderer) ensureSpace(h float64) error {
	if r.doc.Cursor()-h >= r.opt.FooterHeight {
		return nil
	}
	return r.newPage()
}

func (r *renderer) title() error {
	doc := r.doc
	if r.rep.Title != "" {
		err := doc.SwitchFont(document.FontOptions{Style: font.Bold, Size: r.opt.TitleSize}, func() error {
			return doc.Text(doc.T(r.rep.Title))
		})
		if err != nil {
			return err
		}
	}
	if r.rep.Subtitle != "" {
		err := doc.ItalicFont(func() error {
			return doc.Text(doc.T(r.rep.Subtitle))
		})
		if err != nil {
			return err
		}
	}
	doc.MoveDown(r.opt.Gutter)
	return nil
}

func (r *renderer) section(sec source.Section) error {
	doc := r.doc

	var headingHeight float64
	err := doc.BoldFont(func() error {
		headingHeight = doc.LineHeight()
		return nil
	})
	if err != nil {
		return err
	}
	err = r.ensureSpace(headingHeight + r.opt.RowHeight)
	if err != nil {
		return err
	}

	doc.StoreValue(SectionKey, sec.Title)
	r.log.Debug("section",
		zap.String("title", sec.Title),
		zap.Int("page", doc.PageNumber()),
		zap.Int("fields", len(sec.Fields)))

	err = doc.BoldFont(func() error {
		return doc.Text(doc.T(sec.Title))
	})
	if err != nil {
		return err
	}
	err = doc.SaveColor(ruleColor, func() error {
		doc.HorizontalLine(0)
		return nil
	})
	if err != nil {
		return err
	}
	doc.MoveDown(r.opt.Gutter / 2)

	for _, band := range bands(sec.Fields, sec.Columns) {
		err := r.ensureSpace(r.opt.RowHeight)
		if err != nil {
			return err
		}
		err = r.band(band, sec.Columns)
		if err != nil {
			return err
		}
	}
	doc.MoveDown(r.opt.Gutter)
	return nil
}

// band draws one row of fields at the cursor position.
func (r *renderer) band(cells []cell, columns int) error {
	doc := r.doc
	at := vec.Vec2{X: 0, Y: doc.Cursor()}
	_, err := r.ctx.Box(at, layout.Percent(100), layout.Pt(r.opt.RowHeight), &layout.BoxOptions{DontTrack: true}, func() error {
		gridOpt := &layout.GridOptions{
			Padding: layout.Pad4(0, r.opt.Padding, 0, r.opt.Padding),
			Gutter:  r.opt.Gutter,
		}
		return r.ctx.GridBlock(columns, 1, gridOpt, func(g *layout.Grid) error {
			for _, c := range cells {
				_, err := g.TextCell(0, c.cols, c.field.Label, c.field.Value)
				if err != nil {
					return err
				}
			}
			return nil
		})
	})
	if err != nil {
		return err
	}
	doc.MoveDown(r.opt.RowHeight + r.opt.Gutter/2)
	return nil
}

func (r *renderer) header(page int) error {
	doc := r.doc
	_, err := r.ctx.Box(r.ctx.TopLeft(), layout.Percent(100), layout.Pt(r.opt.HeaderHeight), &layout.BoxOptions{DontTrack: true}, func() error {
		err := doc.BoldFont(func() error {
			return doc.TextBox(doc.T(r.rep.Title))
		})
		if err != nil {
			return err
		}
		err = doc.WithAlign(document.AlignRight, func() error {
			return doc.TextBox(doc.T(doc.ValueInPage(SectionKey, page)))
		})
		if err != nil {
			return err
		}
		doc.MoveCursorTo(doc.LineHeight() * 0.25)
		return doc.SaveColor(ruleColor, func() error {
			doc.HorizontalLine(0)
			return nil
		})
	})
	return err
}

func (r *renderer) footer(page int) error {
	doc := r.doc
	at := vec.Vec2{X: 0, Y: r.opt.FooterHeight}
	_, err := r.ctx.Box(at, layout.Percent(100), layout.Pt(r.opt.FooterHeight), &layout.BoxOptions{DontTrack: true}, func() error {
		doc.MoveCursorTo(doc.LineHeight())
		return doc.WithAlign(document.AlignCenter, func() error {
			return doc.Text(doc.T("Page %d of %d", page, doc.PageCount()))
		})
	})
	return err
}
