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

import "seehuhn.de/go/pdfreport/pdf"

// MoveTo starts a new subpath at the given point.
//
// This implements the PDF graphics operator "m".
func (b *Builder) MoveTo(x, y float64) {
	b.emit(OpMoveTo, pdf.Number(x), pdf.Number(y))
}

// LineTo appends a straight line segment to the current subpath.
//
// This implements the PDF graphics operator "l".
func (b *Builder) LineTo(x, y float64) {
	b.emit(OpLineTo, pdf.Number(x), pdf.Number(y))
}

// Rectangle appends a rectangle to the current path as a closed subpath.
// The rectangle has lower-left corner (x, y).
//
// This implements the PDF graphics operator "re".
func (b *Builder) Rectangle(x, y, width, height float64) {
	b.emit(OpRectangle, pdf.Number(x), pdf.Number(y), pdf.Number(width), pdf.Number(height))
}

// Stroke strokes the current path.
//
// This implements the PDF graphics operator "S".
func (b *Builder) Stroke() {
	b.emit(OpStroke)
}

// Fill fills the current path using the nonzero winding number rule.
//
// This implements the PDF graphics operator "f".
func (b *Builder) Fill() {
	b.emit(OpFill)
}

// EndPath ends the path without filling or stroking it.
//
// This implements the PDF graphics operator "n".
func (b *Builder) EndPath() {
	b.emit(OpEndPath)
}

// ClipNonZero sets the current path as the clipping path, using the
// nonzero winding number rule.  The clipping path takes effect after the
// next path painting operator.
//
// This implements the PDF graphics operator "W".
func (b *Builder) ClipNonZero() {
	b.emit(OpClipNonZero)
}
