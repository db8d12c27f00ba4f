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

package layout

import (
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// testHost is a minimal Host which keeps the active region on a stack and
// records the text it is asked to render.
type testHost struct {
	bounds  *Region
	leading float64

	created []*Region
	texts   []string
}

func newTestHost(x, y, width, height float64) *testHost {
	root := NewRegion(rect.Rect{LLx: x, LLy: y, URx: x + width, URy: y + height}, nil)
	return &testHost{bounds: root, leading: 12}
}

func (h *testHost) Bounds() *Region { return h.bounds }

func (h *testHost) BoundingBox(at vec.Vec2, width, height float64, fn func() error) (*Region, error) {
	r, err := h.bounds.Child(at, width, height)
	if err != nil {
		return nil, err
	}
	h.created = append(h.created, r)

	prev := h.bounds
	h.bounds = r
	defer func() { h.bounds = prev }()

	if fn == nil {
		return r, nil
	}
	return r, fn()
}

func (h *testHost) Leading() float64 { return h.leading }

func (h *testHost) SetLeading(leading float64) { h.leading = leading }

func (h *testHost) TextBox(text string) error {
	h.texts = append(h.texts, "box:"+text+"@"+h.bounds.String())
	return nil
}

func (h *testHost) TitledText(title, text string) error {
	h.texts = append(h.texts, title+":"+text+"@"+h.bounds.String())
	return nil
}

// plainHost is a Host without text support.
type plainHost struct {
	h *testHost
}

func (p plainHost) Bounds() *Region { return p.h.Bounds() }

func (p plainHost) BoundingBox(at vec.Vec2, width, height float64, fn func() error) (*Region, error) {
	return p.h.BoundingBox(at, width, height, fn)
}

func (p plainHost) Leading() float64 { return p.h.Leading() }

func (p plainHost) SetLeading(leading float64) { p.h.SetLeading(leading) }
