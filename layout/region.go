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

// Package layout places nested rectangular regions on a page.
//
// All layout operations run against a Host, which materializes regions and
// keeps track of the active coordinate frame.  Positions are given in the
// local frame of the active region: the origin is the lower-left corner of
// the region and y increases upward, so that the top-left corner of a region
// of height h is (0, h).
//
// Sizes can be given as absolute lengths or as percentages of the active
// region, see Size.  A Context remembers the most recently created box,
// so that boxes can be chained with BoxBesidePrevious and BoxBelowPrevious.
package layout

import (
	"fmt"
	"math"

	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// Region is a rectangle on a page, given in absolute page coordinates.
// Regions are not modified after creation.
type Region struct {
	Rect rect.Rect

	// Parent is the region which was active when this region was created.
	// It is nil for the root region of a page.
	Parent *Region
}

// NewRegion returns a region covering r.
func NewRegion(r rect.Rect, parent *Region) *Region {
	return &Region{Rect: r, Parent: parent}
}

// Child returns the sub-region of r with top-left corner at the local
// position at and the given size.
func (r *Region) Child(at vec.Vec2, width, height float64) (*Region, error) {
	if !(width >= 0) || !(height >= 0) || math.IsInf(width, 0) || math.IsInf(height, 0) {
		return nil, &InvalidRegionError{Width: width, Height: height}
	}
	left := r.Rect.LLx + at.X
	top := r.Rect.LLy + at.Y
	return &Region{
		Rect: rect.Rect{
			LLx: left,
			LLy: top - height,
			URx: left + width,
			URy: top,
		},
		Parent: r,
	}, nil
}

// Width returns the width of the region.
func (r *Region) Width() float64 {
	return r.Rect.Dx()
}

// Height returns the height of the region.
func (r *Region) Height() float64 {
	return r.Rect.Dy()
}

// Anchor returns the absolute position of the lower-left corner.
func (r *Region) Anchor() vec.Vec2 {
	return vec.Vec2{X: r.Rect.LLx, Y: r.Rect.LLy}
}

// AbsoluteLeft returns the absolute x coordinate of the left edge.
func (r *Region) AbsoluteLeft() float64 {
	return r.Rect.LLx
}

// AbsoluteRight returns the absolute x coordinate of the right edge.
func (r *Region) AbsoluteRight() float64 {
	return r.Rect.URx
}

// AbsoluteTop returns the absolute y coordinate of the top edge.
func (r *Region) AbsoluteTop() float64 {
	return r.Rect.URy
}

// AbsoluteBottom returns the absolute y coordinate of the bottom edge.
func (r *Region) AbsoluteBottom() float64 {
	return r.Rect.LLy
}

// AbsoluteTopLeft returns the absolute position of the top-left corner.
func (r *Region) AbsoluteTopLeft() vec.Vec2 {
	return vec.Vec2{X: r.Rect.LLx, Y: r.Rect.URy}
}

// AbsoluteTopRight returns the absolute position of the top-right corner.
func (r *Region) AbsoluteTopRight() vec.Vec2 {
	return vec.Vec2{X: r.Rect.URx, Y: r.Rect.URy}
}

// AbsoluteBottomLeft returns the absolute position of the bottom-left corner.
// This is the same as Anchor.
func (r *Region) AbsoluteBottomLeft() vec.Vec2 {
	return r.Anchor()
}

// Top returns the y coordinate of the top edge in the region's own frame.
func (r *Region) Top() float64 {
	return r.Height()
}

// TopLeft returns the top-left corner in the region's own frame.
func (r *Region) TopLeft() vec.Vec2 {
	return vec.Vec2{X: 0, Y: r.Height()}
}

// ToLocal converts an absolute position into the frame of r.
func (r *Region) ToLocal(p vec.Vec2) vec.Vec2 {
	return p.Sub(r.Anchor())
}

// ToAbsolute converts a position in the frame of r into absolute
// coordinates.
func (r *Region) ToAbsolute(p vec.Vec2) vec.Vec2 {
	return p.Add(r.Anchor())
}

func (r *Region) String() string {
	return fmt.Sprintf("[%g %g %g %g]", r.Rect.LLx, r.Rect.LLy, r.Rect.URx, r.Rect.URy)
}

// InvalidRegionError is returned when a region with negative or otherwise
// invalid dimensions is requested, for example because the padding is
// larger than the enclosing region.
type InvalidRegionError struct {
	Width, Height float64
}

func (err *InvalidRegionError) Error() string {
	return fmt.Sprintf("invalid region size %gx%g", err.Width, err.Height)
}
