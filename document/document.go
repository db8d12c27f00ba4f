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

// Package document writes multi-page PDF documents.
//
// A Document implements layout.TextHost, so that boxes and grids can be
// placed on its pages with a layout.Context.  Content which depends on the
// page, like headers and footers, can be registered with Repeat; it is drawn
// on every page when the document is closed.  Values which were current
// while a page was generated can be recorded with StoreValue and read back
// in repeaters with ValueInPage.
package document

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"slices"
	"time"

	"go.uber.org/zap"
	"golang.org/x/exp/maps"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfreport/content"
	"seehuhn.de/go/pdfreport/font"
	"seehuhn.de/go/pdfreport/layout"
	"seehuhn.de/go/pdfreport/pagevalue"
	"seehuhn.de/go/pdfreport/pdf"
)

// Translator converts label keys into display text.
type Translator interface {
	T(key string, args ...any) string
}

// Info holds the document information dictionary.
type Info struct {
	Title    string
	Author   string
	Subject  string
	Keywords string
	Creator  string

	// CreationDate defaults to the time when the document is created.
	CreationDate time.Time
}

// Options allows to configure a document.  A nil value, or any zero field,
// selects the defaults.
type Options struct {
	// PaperSize defaults to A4.
	PaperSize rect.Rect

	// Margins defaults to 36pt on all sides.
	Margins *Margins

	// Fonts is the font registry.  By default a registry with the built-in
	// fonts is used.
	Fonts *font.Registry

	// FontFamily defaults to "Go".
	FontFamily string

	// FontSize defaults to 10pt.
	FontSize float64

	// Leading is the additional space between lines of text.
	Leading float64

	Translator Translator
	Logger     *zap.Logger
	Writer     *pdf.WriterOptions
	Info       *Info
}

// ErrClosed is returned when a closed document is used.
var ErrClosed = errors.New("document is closed")

// Document is a PDF document under construction.
//
// Page content is kept in memory until Close is called, because repeaters
// can add content to all pages.
type Document struct {
	w       *pdf.Writer
	logger  *zap.Logger
	fonts   *font.Registry
	tr      Translator
	info    *Info
	paper   rect.Rect
	margins Margins

	layout *layout.Context
	values *pagevalue.Store[string]

	pages     []*page
	current   *page
	frames    []*frame
	repeaters []*repeater
	inRepeat  bool

	defaultFont    FontOptions
	defaultLeading float64
	font           FontOptions
	leading        float64
	fillColor      color.Color
	strokeColor    color.Color
	lineWidth      float64
	align          Align

	closed bool
}

type page struct {
	number  int
	content *content.Builder
	root    *layout.Region
}

type frame struct {
	region *layout.Region
	cursor float64
}

// Create creates the named PDF file and opens it for writing.  If a file
// with the same name exists, it is overwritten.  The file is closed when the
// document is closed.
func Create(fname string, opt *Options) (*Document, error) {
	fd, err := os.Create(fname)
	if err != nil {
		return nil, err
	}
	doc, err := New(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return doc, nil
}

// New starts a new document, which is written to w.  The first page is
// started automatically.  If w has a Close method, it is called when the
// document is closed.
func New(w io.Writer, opt *Options) (*Document, error) {
	if opt == nil {
		opt = &Options{}
	}

	doc := &Document{
		logger:      opt.Logger,
		fonts:       opt.Fonts,
		tr:          opt.Translator,
		info:        opt.Info,
		paper:       opt.PaperSize,
		margins:     UniformMargins(36),
		values:      pagevalue.New[string](),
		leading:     opt.Leading,
		fillColor:   color.Gray{},
		strokeColor: color.Gray{},
		lineWidth:   1,
	}
	if doc.logger == nil {
		doc.logger = zap.NewNop()
	}
	if doc.tr == nil {
		doc.tr = identity{}
	}
	if doc.paper.IsZero() {
		doc.paper = A4
	}
	if opt.Margins != nil {
		doc.margins = *opt.Margins
	}
	if doc.fonts == nil {
		reg, err := font.NewRegistry()
		if err != nil {
			return nil, err
		}
		doc.fonts = reg
	}
	if doc.info == nil {
		doc.info = &Info{}
	}

	doc.defaultFont = FontOptions{
		Family: opt.FontFamily,
		Style:  font.Regular,
		Size:   opt.FontSize,
	}
	if doc.defaultFont.Family == "" {
		doc.defaultFont.Family = font.GoFamily
	}
	if doc.defaultFont.Size == 0 {
		doc.defaultFont.Size = 10
	}
	if _, err := doc.fonts.Lookup(doc.defaultFont.Family, font.Regular); err != nil {
		return nil, err
	}
	doc.font = doc.defaultFont
	doc.defaultLeading = doc.leading

	area := doc.margins.apply(doc.paper)
	if area.Dx() <= 0 || area.Dy() <= 0 {
		return nil, &layout.InvalidRegionError{Width: area.Dx(), Height: area.Dy()}
	}

	out, err := pdf.NewWriter(w, opt.Writer)
	if err != nil {
		return nil, err
	}
	doc.w = out
	doc.layout = layout.New(doc)

	doc.addPage()
	return doc, nil
}

// Layout returns the layout context of the document.
func (doc *Document) Layout() *layout.Context {
	return doc.layout
}

// Logger returns the logger used by the document.
func (doc *Document) Logger() *zap.Logger {
	return doc.logger
}

// Fonts returns the font registry of the document.
func (doc *Document) Fonts() *font.Registry {
	return doc.fonts
}

// PageNumber returns the number of the current page.  Pages are numbered
// starting from 1.  While repeaters run, this is the number of the page the
// repeater is drawing on.
func (doc *Document) PageNumber() int {
	return doc.current.number
}

// PageCount returns the number of pages in the document.
func (doc *Document) PageCount() int {
	return len(doc.pages)
}

// StartNewPage ends the current page and starts a new one.
// New pages cannot be started inside a bounding box or from a repeater.
func (doc *Document) StartNewPage() error {
	if doc.closed {
		return ErrClosed
	}
	if doc.inRepeat {
		return errors.New("cannot start a new page from a repeater")
	}
	if len(doc.frames) > 1 {
		return errors.New("cannot start a new page inside a bounding box")
	}
	doc.addPage()
	return nil
}

func (doc *Document) addPage() {
	area := doc.margins.apply(doc.paper)
	p := &page{
		number:  len(doc.pages) + 1,
		content: content.NewBuilder(),
		root:    layout.NewRegion(area, nil),
	}
	doc.pages = append(doc.pages, p)
	doc.enterPage(p)
	doc.layout.ResetLastCreatedBox()
	doc.logger.Debug("page started", zap.Int("page", p.number))
}

// enterPage makes p the current page, with its margin box as the active
// region.
func (doc *Document) enterPage(p *page) {
	doc.current = p
	doc.frames = []*frame{{region: p.root, cursor: p.root.Height()}}
}

// T translates a label using the translator of the document.
func (doc *Document) T(key string, args ...any) string {
	return doc.tr.T(key, args...)
}

// Values returns the store used by StoreValue and ValueInPage.
func (doc *Document) Values() *pagevalue.Store[string] {
	return doc.values
}

// StoreValue records a value for the current page.  Pages between the last
// page with a value for key and the current page get the value which was
// current before.
func (doc *Document) StoreValue(key, value string) {
	doc.values.Set(key, value, doc.PageNumber())
}

// StoreValueAt records a value for the given page.
func (doc *Document) StoreValueAt(key, value string, page int) {
	doc.values.Set(key, value, page)
}

// ValueInPage returns the value recorded for key which applies to the given
// page, or the empty string if there is none.
func (doc *Document) ValueInPage(key string, page int) string {
	return doc.values.Lookup(key, page, "")
}

// Close runs the repeaters and writes all pages to the output.
// If an error occurs, the underlying writer is still closed and the output
// is left incomplete.
func (doc *Document) Close() (err error) {
	if doc.closed {
		return ErrClosed
	}
	if len(doc.frames) > 1 {
		return errors.New("document closed inside a bounding box")
	}
	doc.closed = true
	defer func() {
		if err != nil {
			doc.w.Abort()
		}
	}()

	err = doc.runRepeaters()
	if err != nil {
		return err
	}

	w := doc.w
	catalogRef := w.Alloc()
	treeRef := w.Alloc()

	fontRefs := make(map[content.Font]pdf.Reference)
	var fontOrder []content.Font

	var kids pdf.Array
	for _, p := range doc.pages {
		if p.content.Err != nil {
			return fmt.Errorf("page %d: %w", p.number, p.content.Err)
		}
		if p.content.Depth() != 0 {
			return fmt.Errorf("page %d: %w", p.number, content.ErrUnbalanced)
		}

		fontDict := pdf.Dict{}
		names := maps.Keys(p.content.Resources.Font)
		slices.Sort(names)
		for _, name := range names {
			f := p.content.Resources.Font[name]
			ref, ok := fontRefs[f]
			if !ok {
				ref = w.Alloc()
				fontRefs[f] = ref
				fontOrder = append(fontOrder, f)
			}
			fontDict[name] = ref
		}

		pageRef := w.Alloc()
		contentRef := w.Alloc()
		err := w.PutStream(contentRef, nil, p.content.Stream.Bytes())
		if err != nil {
			return err
		}
		pageDict := pdf.Dict{
			"Type":     pdf.Name("Page"),
			"Parent":   treeRef,
			"Contents": contentRef,
		}
		if len(fontDict) > 0 {
			pageDict["Resources"] = pdf.Dict{"Font": fontDict}
		} else {
			pageDict["Resources"] = pdf.Dict{}
		}
		err = w.Put(pageRef, pageDict)
		if err != nil {
			return err
		}
		kids = append(kids, pageRef)
	}

	for _, f := range fontOrder {
		embedder, ok := f.(*font.Font)
		if !ok {
			return fmt.Errorf("cannot embed font of type %T", f)
		}
		err := embedder.Embed(w, fontRefs[f])
		if err != nil {
			return err
		}
		doc.logger.Debug("font embedded", zap.String("font", embedder.PostScriptName()))
	}

	err = w.Put(treeRef, pdf.Dict{
		"Type":     pdf.Name("Pages"),
		"Kids":     kids,
		"Count":    pdf.Integer(len(kids)),
		"MediaBox": pdf.Rectangle(doc.paper.LLx, doc.paper.LLy, doc.paper.URx, doc.paper.URy),
	})
	if err != nil {
		return err
	}

	err = w.Put(catalogRef, pdf.Dict{
		"Type":  pdf.Name("Catalog"),
		"Pages": treeRef,
	})
	if err != nil {
		return err
	}

	infoRef := w.Alloc()
	err = w.Put(infoRef, doc.infoDict())
	if err != nil {
		return err
	}

	doc.logger.Debug("document written",
		zap.Int("pages", len(doc.pages)),
		zap.Int("fonts", len(fontOrder)))
	return w.Close(catalogRef, infoRef)
}

func (doc *Document) infoDict() pdf.Dict {
	info := doc.info
	dict := pdf.Dict{
		"Producer": pdf.TextString("seehuhn.de/go/pdfreport"),
	}
	set := func(key pdf.Name, val string) {
		if val != "" {
			dict[key] = pdf.TextString(val)
		}
	}
	set("Title", info.Title)
	set("Author", info.Author)
	set("Subject", info.Subject)
	set("Keywords", info.Keywords)
	set("Creator", info.Creator)

	created := info.CreationDate
	if created.IsZero() {
		created = time.Now()
	}
	dict["CreationDate"] = pdf.Date(created)
	return dict
}

type identity struct{}

func (identity) T(key string, args ...any) string {
	if len(args) > 0 {
		return fmt.Sprintf(key, args...)
	}
	return key
}
