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

// Package font loads TrueType fonts and embeds them into PDF files.
//
// Fonts are embedded as simple fonts with WinAnsiEncoding, so that up to 256
// characters of the Windows-1252 character set can be shown.  Characters
// outside this set are replaced by a question mark.
package font

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"seehuhn.de/go/sfnt"

	"seehuhn.de/go/pdfreport/pdf"
)

const (
	firstChar = 32
	lastChar  = 255
)

// Font is a TrueType font which can be used in PDF content streams.
type Font struct {
	info *sfnt.Font
	data []byte

	// widths holds the glyph widths for all character codes, in PDF glyph
	// space units (1/1000 of the font size).
	widths [256]float64
}

// Parse reads a TrueType font from data.
func Parse(data []byte) (*Font, error) {
	info, err := sfnt.Read(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	if !info.IsGlyf() {
		return nil, errors.New("not a TrueType font")
	}

	cmap, err := info.CMapTable.GetBest()
	if err != nil {
		return nil, fmt.Errorf("font %q: %w", info.PostScriptName(), err)
	}

	f := &Font{
		info: info,
		data: data,
	}
	for code := firstChar; code <= lastChar; code++ {
		r := charmap.Windows1252.DecodeByte(byte(code))
		gid := cmap.Lookup(r)
		f.widths[code] = info.GlyphWidthPDF(gid)
	}
	return f, nil
}

// Load reads a TrueType font from r.
func Load(r io.Reader) (*Font, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// LoadFile reads a TrueType font from the named file.
func LoadFile(fname string) (*Font, error) {
	data, err := os.ReadFile(fname)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return f, nil
}

// PostScriptName returns the PostScript name of the font.
func (f *Font) PostScriptName() string {
	return strings.ReplaceAll(f.info.PostScriptName(), " ", "")
}

// FamilyName returns the family name stored in the font file.
func (f *Font) FamilyName() string {
	return f.info.FamilyName
}

// Encode converts s to WinAnsiEncoding.  Characters which cannot be
// represented are replaced by "?".
func (f *Font) Encode(s string) pdf.String {
	res := make(pdf.String, 0, len(s))
	for _, r := range s {
		c, ok := charmap.Windows1252.EncodeRune(r)
		if !ok || c < firstChar {
			c = '?'
		}
		res = append(res, c)
	}
	return res
}

// Width returns the width of s when set in the given font size.
func (f *Font) Width(s string, size float64) float64 {
	var w float64
	for _, c := range f.Encode(s) {
		w += f.widths[c]
	}
	return w * size / 1000
}

// Ascent returns the ascent of the font at the given size.
func (f *Font) Ascent(size float64) float64 {
	return f.scale(f.info.Ascent.AsFloat(1), size)
}

// Descent returns the descent of the font at the given size.
// The value is negative for descenders below the baseline.
func (f *Font) Descent(size float64) float64 {
	return f.scale(f.info.Descent.AsFloat(1), size)
}

func (f *Font) scale(v float64, size float64) float64 {
	return v * size / float64(f.info.UnitsPerEm)
}

// Embed writes the font dictionary to w, using the reference ref.
// The complete font file is embedded.
func (f *Font) Embed(w *pdf.Writer, ref pdf.Reference) error {
	info := f.info
	q := 1000 / float64(info.UnitsPerEm)

	fontName := pdf.Name(f.PostScriptName())
	fontDescriptorRef := w.Alloc()
	fontFileRef := w.Alloc()

	widths := make(pdf.Array, 0, lastChar-firstChar+1)
	for code := firstChar; code <= lastChar; code++ {
		widths = append(widths, pdf.Number(f.widths[code]))
	}

	fontDict := pdf.Dict{
		"Type":           pdf.Name("Font"),
		"Subtype":        pdf.Name("TrueType"),
		"BaseFont":       fontName,
		"FirstChar":      pdf.Integer(firstChar),
		"LastChar":       pdf.Integer(lastChar),
		"Widths":         widths,
		"Encoding":       pdf.Name("WinAnsiEncoding"),
		"FontDescriptor": fontDescriptorRef,
	}

	bbox := info.FontBBox()
	stemV := 80.0
	if info.IsBold {
		stemV = 140
	}
	fontDescriptor := pdf.Dict{
		"Type":     pdf.Name("FontDescriptor"),
		"FontName": fontName,
		"Flags":    pdf.Integer(makeFlags(info)),
		"FontBBox": pdf.Rectangle(
			bbox.LLx.AsFloat(q), bbox.LLy.AsFloat(q),
			bbox.URx.AsFloat(q), bbox.URy.AsFloat(q)),
		"ItalicAngle": pdf.Number(info.ItalicAngle),
		"Ascent":      pdf.Number(info.Ascent.AsFloat(q)),
		"Descent":     pdf.Number(info.Descent.AsFloat(q)),
		"CapHeight":   pdf.Number(info.CapHeight.AsFloat(q)),
		"StemV":       pdf.Number(stemV),
		"FontFile2":   fontFileRef,
	}

	err := w.Put(ref, fontDict)
	if err != nil {
		return err
	}
	err = w.Put(fontDescriptorRef, fontDescriptor)
	if err != nil {
		return err
	}
	return w.PutStream(fontFileRef, pdf.Dict{"Length1": pdf.Integer(len(f.data))}, f.data)
}
