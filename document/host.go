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
	"seehuhn.de/go/geom/vec"

	"seehuhn.de/go/pdfreport/layout"
)

var _ layout.TextHost = (*Document)(nil)

// Bounds returns the active region.  Outside of bounding boxes, this is the
// area inside the page margins.
func (doc *Document) Bounds() *layout.Region {
	return doc.top().region
}

func (doc *Document) top() *frame {
	return doc.frames[len(doc.frames)-1]
}

// BoundingBox creates a sub-region of the active region and runs fn with
// the new region as the active region.  Drawing inside fn is clipped to the
// region.  Each region has its own text cursor, which starts at the top of
// the region.
func (doc *Document) BoundingBox(at vec.Vec2, width, height float64, fn func() error) (*layout.Region, error) {
	box, err := doc.Bounds().Child(at, width, height)
	if err != nil {
		return nil, err
	}

	b := doc.current.content
	b.PushGraphicsState()
	b.Rectangle(box.Rect.LLx, box.Rect.LLy, box.Width(), box.Height())
	b.ClipNonZero()
	b.EndPath()

	doc.frames = append(doc.frames, &frame{region: box, cursor: box.Height()})
	defer func() {
		doc.frames = doc.frames[:len(doc.frames)-1]
		b.PopGraphicsState()
	}()

	if fn == nil {
		return box, nil
	}
	return box, fn()
}

// Leading returns the additional space between lines of text.
func (doc *Document) Leading() float64 {
	return doc.leading
}

// SetLeading sets the additional space between lines of text.
func (doc *Document) SetLeading(leading float64) {
	doc.leading = leading
}

// Cursor returns the vertical text position in the active region,
// measured from the bottom of the region.
func (doc *Document) Cursor() float64 {
	return doc.top().cursor
}

// MoveCursorTo sets the vertical text position in the active region.
// The value is clamped to the region.
func (doc *Document) MoveCursorTo(y float64) {
	f := doc.top()
	f.cursor = min(max(y, 0), f.region.Height())
}

// MoveDown moves the text cursor down by dy.
func (doc *Document) MoveDown(dy float64) {
	doc.MoveCursorTo(doc.Cursor() - dy)
}
