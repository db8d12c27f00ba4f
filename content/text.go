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

package content

import (
	"errors"
	"fmt"

	"seehuhn.de/go/pdfreport/pdf"
)

// TextBegin starts a new text object.
//
// This implements the PDF graphics operator "BT".
func (b *Builder) TextBegin() {
	if b.Err != nil {
		return
	}
	if b.inText {
		b.Err = errors.New("TextBegin: nested text object")
		return
	}
	b.inText = true
	b.emit(OpTextBegin)
}

// TextEnd ends the current text object.
//
// This implements the PDF graphics operator "ET".
func (b *Builder) TextEnd() {
	if b.Err != nil {
		return
	}
	if !b.inText {
		b.Err = errors.New("TextEnd: no text object")
		return
	}
	b.inText = false
	b.emit(OpTextEnd)
}

// TextSetFont sets the font and font size.
// The font is added to the resources of the content stream.
//
// This implements the PDF graphics operator "Tf".
func (b *Builder) TextSetFont(font Font, size float64) {
	if b.Err != nil {
		return
	}
	if font == nil {
		b.Err = errors.New("TextSetFont: missing font")
		return
	}
	if b.isKnown(stateFont) && b.state.font == font && nearlyEqual(size, b.state.fontSize) {
		return
	}

	name, ok := b.resName[font]
	if !ok {
		name = allocateName("F", b.Resources.Font)
		b.Resources.Font[name] = font
		b.resName[font] = name
	}

	b.state.font = font
	b.state.fontSize = size
	b.state.known |= stateFont
	b.emit(OpTextSetFont, name, pdf.Number(size))
}

// TextFont returns the current font and font size.
// The font is nil if no font has been set.
func (b *Builder) TextFont() (Font, float64) {
	return b.state.font, b.state.fontSize
}

// TextSetLeading sets the text leading.
//
// This implements the PDF graphics operator "TL".
func (b *Builder) TextSetLeading(leading float64) {
	if b.Err != nil {
		return
	}
	if b.isKnown(stateLeading) && nearlyEqual(leading, b.state.leading) {
		return
	}
	b.state.leading = leading
	b.state.known |= stateLeading
	b.emit(OpTextSetLeading, pdf.Number(leading))
}

// TextFirstLine moves to the start of the first line of a text object.
//
// This implements the PDF graphics operator "Td".
func (b *Builder) TextFirstLine(x, y float64) {
	if b.Err != nil {
		return
	}
	if !b.inText {
		b.Err = errors.New("TextFirstLine: no text object")
		return
	}
	b.emit(OpTextMoveOffset, pdf.Number(x), pdf.Number(y))
}

// TextNextLine moves to the start of the next line, using the current
// leading.
//
// This implements the PDF graphics operator "T*".
func (b *Builder) TextNextLine() {
	if b.Err != nil {
		return
	}
	if !b.inText {
		b.Err = errors.New("TextNextLine: no text object")
		return
	}
	b.emit(OpTextNextLine)
}

// TextShow shows a string, using the current font.
//
// This implements the PDF graphics operator "Tj".
func (b *Builder) TextShow(s string) {
	if b.Err != nil {
		return
	}
	if !b.inText {
		b.Err = fmt.Errorf("TextShow %q: no text object", s)
		return
	}
	if !b.isKnown(stateFont) {
		b.Err = fmt.Errorf("TextShow %q: no font set", s)
		return
	}
	b.emit(OpTextShow, b.state.font.Encode(s))
}
