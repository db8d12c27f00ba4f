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
	"image/color"

	"seehuhn.de/go/geom/vec"
)

// SetFillColor sets the color used for text and filled shapes.
func (doc *Document) SetFillColor(c color.Color) {
	doc.fillColor = c
}

// SetStrokeColor sets the color used for lines.
func (doc *Document) SetStrokeColor(c color.Color) {
	doc.strokeColor = c
}

// SetLineWidth sets the width of lines.
func (doc *Document) SetLineWidth(w float64) {
	doc.lineWidth = w
}

// SaveColor runs fn with c as fill and stroke color.
func (doc *Document) SaveColor(c color.Color, fn func() error) error {
	fill, stroke := doc.fillColor, doc.strokeColor
	defer func() {
		doc.fillColor, doc.strokeColor = fill, stroke
	}()

	doc.fillColor, doc.strokeColor = c, c
	return fn()
}

// StrokeLine draws a straight line between two points, given in the
// coordinates of the active region.
func (doc *Document) StrokeLine(p1, p2 vec.Vec2) {
	region := doc.Bounds()
	a := region.ToAbsolute(p1)
	z := region.ToAbsolute(p2)

	b := doc.current.content
	b.SetStrokeColor(doc.strokeColor)
	b.SetLineWidth(doc.lineWidth)
	b.MoveTo(a.X, a.Y)
	b.LineTo(z.X, z.Y)
	b.Stroke()
}

// FillRect fills a rectangle given by its top-left corner in the
// coordinates of the active region.
func (doc *Document) FillRect(at vec.Vec2, width, height float64) {
	p := doc.Bounds().ToAbsolute(at)

	b := doc.current.content
	b.SetFillColor(doc.fillColor)
	b.Rectangle(p.X, p.Y-height, width, height)
	b.Fill()
}

// HorizontalLine draws a line across the active region at the cursor
// position, and moves the cursor down by the line width.  The line is
// indented by padding on both sides.
func (doc *Document) HorizontalLine(padding float64) {
	region := doc.Bounds()
	y := doc.Cursor() - doc.lineWidth/2
	doc.StrokeLine(vec.Vec2{X: padding, Y: y}, vec.Vec2{X: region.Width() - padding, Y: y})
	doc.MoveDown(doc.lineWidth)
}

// VerticalLine draws lines from the top to the bottom of the active region,
// at the given horizontal positions.
func (doc *Document) VerticalLine(xs ...float64) {
	h := doc.Bounds().Height()
	for _, x := range xs {
		doc.StrokeLine(vec.Vec2{X: x, Y: 0}, vec.Vec2{X: x, Y: h})
	}
}
