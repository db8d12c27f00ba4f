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

package font

import "seehuhn.de/go/sfnt"

// Flags represents PDF Font Descriptor Flags.
// See section 9.8.2 of PDF 32000-1:2008.
type Flags uint32

// Possible values for PDF Font Descriptor Flags.
const (
	FlagFixedPitch  Flags = 1 << 0 // All glyphs have the same width.
	FlagSerif       Flags = 1 << 1 // Glyphs have serifs.
	FlagSymbolic    Flags = 1 << 2 // Font contains glyphs outside the Adobe standard Latin character set.
	FlagScript      Flags = 1 << 3 // Glyphs resemble cursive handwriting.
	FlagNonsymbolic Flags = 1 << 5 // Font uses the Adobe standard Latin character set or a subset of it.
	FlagItalic      Flags = 1 << 6 // Glyphs have dominant vertical strokes that are slanted.
)

// makeFlags returns the PDF font flags for a font used with
// WinAnsiEncoding.
func makeFlags(info *sfnt.Font) Flags {
	flags := FlagNonsymbolic

	if info.IsFixedPitch() {
		flags |= FlagFixedPitch
	}
	if info.IsSerif {
		flags |= FlagSerif
	}
	if info.IsScript {
		flags |= FlagScript
	}
	if info.IsItalic {
		flags |= FlagItalic
	}

	return flags
}
