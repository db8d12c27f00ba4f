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

package document

import (
	"strings"
	"unicode/utf8"

	"seehuhn.de/go/pdfreport/font"
)

// FontOptions selects a font.  Zero fields keep the current value.
type FontOptions struct {
	Family string
	Style  font.Style
	Size   float64
}

// Align gives the horizontal alignment of text lines.
type Align uint8

// These are the supported alignments.
const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// Font returns the current font selection.
func (doc *Document) Font() FontOptions {
	return doc.font
}

// SetFont changes the current font.  The style is always replaced, zero
// values for the family and size keep the current values.
func (doc *Document) SetFont(opt FontOptions) error {
	next := doc.font
	if opt.Family != "" {
		next.Family = opt.Family
	}
	next.Style = opt.Style
	if opt.Size > 0 {
		next.Size = opt.Size
	}
	if _, err := doc.fonts.Lookup(next.Family, next.Style); err != nil {
		return err
	}
	doc.font = next
	return nil
}

// SwitchFont runs fn with a different font.  The previous font is restored
// before SwitchFont returns.
func (doc *Document) SwitchFont(opt FontOptions, fn func() error) error {
	saved := doc.font
	defer func() { doc.font = saved }()

	err := doc.SetFont(opt)
	if err != nil {
		return err
	}
	return fn()
}

// RegularFont runs fn with the regular style of the current family.
func (doc *Document) RegularFont(fn func() error) error {
	return doc.SwitchFont(FontOptions{Style: font.Regular}, fn)
}

// BoldFont runs fn with the bold style of the current family.
func (doc *Document) BoldFont(fn func() error) error {
	return doc.SwitchFont(FontOptions{Style: font.Bold}, fn)
}

// ItalicFont runs fn with the italic style of the current family.
func (doc *Document) ItalicFont(fn func() error) error {
	return doc.SwitchFont(FontOptions{Style: font.Italic}, fn)
}

// SaveLeading runs fn with a different leading.
func (doc *Document) SaveLeading(leading float64, fn func() error) error {
	saved := doc.leading
	defer func() { doc.leading = saved }()

	doc.leading = leading
	return fn()
}

// SetAlign sets the alignment for following text.
func (doc *Document) SetAlign(a Align) {
	doc.align = a
}

// WithAlign runs fn with a different text alignment.
func (doc *Document) WithAlign(a Align, fn func() error) error {
	saved := doc.align
	defer func() { doc.align = saved }()

	doc.align = a
	return fn()
}

// LineHeight returns the height of a line of text in the current font,
// including the leading.
func (doc *Document) LineHeight() float64 {
	f, err := doc.currentFont()
	if err != nil {
		return doc.leading
	}
	return lineHeight(f, doc.font.Size) + doc.leading
}

// TextWidth returns the width of s in the current font.
func (doc *Document) TextWidth(s string) float64 {
	f, err := doc.currentFont()
	if err != nil {
		return 0
	}
	return f.Width(s, doc.font.Size)
}

// Text writes s at the cursor position of the active region, wrapped to the
// width of the region, and moves the cursor below the text.
//
// Outside of bounding boxes, a new page is started when a line does not
// fit above the bottom margin.  Inside bounding boxes, lines which do not
// fit are dropped.
func (doc *Document) Text(s string) error {
	f, err := doc.currentFont()
	if err != nil {
		return err
	}
	return doc.flow([]textRun{{font: f, size: doc.font.Size, text: s}})
}

// TextBox writes s at the top of the active region, wrapped to the width of
// the region.  Lines which do not fit into the region are dropped.  The
// cursor is not changed.
func (doc *Document) TextBox(s string) error {
	f, err := doc.currentFont()
	if err != nil {
		return err
	}
	return doc.box([]textRun{{font: f, size: doc.font.Size, text: s}})
}

// TitledText writes the translated title in the bold style, followed by a
// colon and the translated text, at the top of the active region.
func (doc *Document) TitledText(title, text string) error {
	regular, err := doc.currentFont()
	if err != nil {
		return err
	}
	bold, err := doc.fonts.Lookup(doc.font.Family, font.Bold)
	if err != nil {
		return err
	}
	size := doc.font.Size
	return doc.box([]textRun{
		{font: bold, size: size, text: doc.T(title) + ": "},
		{font: regular, size: size, text: doc.T(text)},
	})
}

func (doc *Document) currentFont() (*font.Font, error) {
	return doc.fonts.Lookup(doc.font.Family, doc.font.Style)
}

func (doc *Document) flow(runs []textRun) error {
	for _, ln := range wrapRuns(runs, doc.Bounds().Width()) {
		h := ln.height(doc.leading)
		if doc.Cursor()-h < 0 {
			if len(doc.frames) > 1 || doc.inRepeat {
				doc.MoveCursorTo(0)
				return nil
			}
			err := doc.StartNewPage()
			if err != nil {
				return err
			}
		}
		doc.drawLine(ln, doc.Cursor())
		doc.MoveDown(h)
	}
	return nil
}

func (doc *Document) box(runs []textRun) error {
	y := doc.Bounds().Height()
	for _, ln := range wrapRuns(runs, doc.Bounds().Width()) {
		h := ln.height(doc.leading)
		if y-h < 0 {
			break
		}
		doc.drawLine(ln, y)
		y -= h
	}
	return nil
}

// drawLine draws a line of text with its top at the local height y.
func (doc *Document) drawLine(ln *textLine, y float64) {
	if len(ln.runs) == 0 {
		return
	}
	region := doc.Bounds()

	x := region.AbsoluteLeft()
	switch doc.align {
	case AlignCenter:
		x += (region.Width() - ln.width) / 2
	case AlignRight:
		x += region.Width() - ln.width
	}
	baseline := region.AbsoluteBottom() + y - ln.ascent()

	b := doc.current.content
	b.SetFillColor(doc.fillColor)
	b.TextBegin()
	b.TextFirstLine(x, baseline)
	prev := 0.0
	for i, r := range ln.runs {
		if i > 0 {
			b.TextFirstLine(prev, 0)
		}
		b.TextSetFont(r.font, r.size)
		b.TextShow(r.text)
		prev = r.font.Width(r.text, r.size)
	}
	b.TextEnd()
}

type textRun struct {
	font *font.Font
	size float64
	text string
}

func (r textRun) width() float64 {
	return r.font.Width(r.text, r.size)
}

type textLine struct {
	runs  []textRun
	width float64

	// fallback is used to measure empty lines
	fallback textRun
}

func (ln *textLine) ascent() float64 {
	var a float64
	for _, r := range ln.runs {
		a = max(a, r.font.Ascent(r.size))
	}
	return a
}

func (ln *textLine) height(leading float64) float64 {
	runs := ln.runs
	if len(runs) == 0 {
		runs = []textRun{ln.fallback}
	}
	var h float64
	for _, r := range runs {
		h = max(h, lineHeight(r.font, r.size))
	}
	return h + leading
}

// add appends text to the line, merging it with the last run if the font
// is the same.
func (ln *textLine) add(r textRun) {
	n := len(ln.runs)
	if n > 0 && ln.runs[n-1].font == r.font && ln.runs[n-1].size == r.size {
		ln.runs[n-1].text += r.text
	} else {
		ln.runs = append(ln.runs, r)
	}
	ln.width += r.width()
}

func (ln *textLine) trimRight() {
	for len(ln.runs) > 0 {
		last := &ln.runs[len(ln.runs)-1]
		trimmed := strings.TrimRight(last.text, " ")
		ln.width -= last.font.Width(last.text[len(trimmed):], last.size)
		if trimmed != "" {
			last.text = trimmed
			return
		}
		ln.runs = ln.runs[:len(ln.runs)-1]
	}
	ln.width = 0
}

func lineHeight(f *font.Font, size float64) float64 {
	return f.Ascent(size) - f.Descent(size)
}

// wrapRuns breaks text runs into lines no wider than width.  Lines are
// broken at spaces and at newline characters.  Words which are wider than
// a line are broken between characters.
func wrapRuns(runs []textRun, width float64) []*textLine {
	if len(runs) == 0 {
		return nil
	}
	var lines []*textLine
	cur := &textLine{fallback: runs[0]}
	flush := func(next textRun) {
		cur.trimRight()
		lines = append(lines, cur)
		cur = &textLine{fallback: next}
	}

	for _, r := range runs {
		for i, para := range strings.Split(r.text, "\n") {
			if i > 0 {
				flush(r)
			}
			for _, tok := range tokenize(para) {
				piece := textRun{font: r.font, size: r.size, text: tok}
				if tok[0] == ' ' {
					if len(cur.runs) > 0 {
						cur.add(piece)
					}
					continue
				}

				w := piece.width()
				if len(cur.runs) > 0 && cur.width+w > width {
					flush(r)
				}
				if len(cur.runs) == 0 && w > width {
					for _, part := range breakWord(piece, width) {
						if len(cur.runs) > 0 {
							flush(r)
						}
						cur.add(part)
					}
					continue
				}
				cur.add(piece)
			}
		}
	}
	cur.trimRight()
	lines = append(lines, cur)
	return lines
}

// tokenize splits s into words and runs of spaces.
func tokenize(s string) []string {
	var res []string
	start := 0
	for i := 1; i <= len(s); i++ {
		if i == len(s) || (s[i] == ' ') != (s[start] == ' ') {
			res = append(res, s[start:i])
			start = i
		}
	}
	return res
}

// breakWord splits a word into pieces no wider than width.  Each piece
// contains at least one character.
func breakWord(r textRun, width float64) []textRun {
	var res []textRun
	text := r.text
	for text != "" {
		end := 0
		for end < len(text) {
			_, n := utf8.DecodeRuneInString(text[end:])
			if end > 0 && r.font.Width(text[:end+n], r.size) > width {
				break
			}
			end += n
		}
		res = append(res, textRun{font: r.font, size: r.size, text: text[:end]})
		text = text[end:]
	}
	return res
}
