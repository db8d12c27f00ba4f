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
	"fmt"

	"seehuhn.de/go/geom/vec"
)

// Host is implemented by the document engines which materialize regions.
type Host interface {
	// Bounds returns the active region.
	Bounds() *Region

	// BoundingBox creates a sub-region of the active region, with top-left
	// corner at the local position at, and calls fn with the new region as
	// the active region.  The previous active region is restored before
	// BoundingBox returns, also if fn fails or panics.
	//
	// If the region cannot be created, an *InvalidRegionError is returned
	// and fn is not called.  Otherwise the new region is returned together
	// with any error returned by fn.
	BoundingBox(at vec.Vec2, width, height float64, fn func() error) (*Region, error)

	// Leading returns the distance between two lines of text.
	Leading() float64

	// SetLeading sets the distance between two lines of text.
	SetLeading(leading float64)
}

// TextHost is a Host which can also render text.
type TextHost interface {
	Host

	// TextBox renders text at the top of the active region, wrapped to its
	// width.
	TextBox(text string) error

	// TitledText renders a label followed by text, wrapped to the width of
	// the active region.
	TitledText(title, text string) error
}

// Context places boxes and grids on a Host.
//
// A Context tracks the most recently created box.  Each document must use
// its own Context.
type Context struct {
	host        Host
	lastCreated *Region
}

// New returns a layout context for the given host.
func New(host Host) *Context {
	return &Context{host: host}
}

// Host returns the host of the context.
func (c *Context) Host() Host {
	return c.host
}

// Bounds returns the active region of the host.
func (c *Context) Bounds() *Region {
	return c.host.Bounds()
}

// LastCreatedBox returns the most recent box created by Box or one of its
// variants.  The result is nil if no box has been created, or if all boxes
// were created with the DontTrack option.
func (c *Context) LastCreatedBox() *Region {
	return c.lastCreated
}

// ResetLastCreatedBox forgets the most recently created box, so that the
// next chained box is placed at the top-left corner of the active region.
func (c *Context) ResetLastCreatedBox() {
	c.lastCreated = nil
}

// PercentW converts a percentage of the width of the active region into an
// absolute length.  Values outside the range from 0 to 100 are clamped.
func (c *Context) PercentW(v float64) float64 {
	return c.host.Bounds().Width() * clampPercentage(v) / 100
}

// PercentH converts a percentage of the height of the active region into an
// absolute length.  Values outside the range from 0 to 100 are clamped.
func (c *Context) PercentH(v float64) float64 {
	return c.host.Bounds().Height() * clampPercentage(v) / 100
}

// RemainingHeight returns the vertical distance between the bottom of base
// and the bottom of the active region.
func (c *Context) RemainingHeight(base *Region) float64 {
	return base.Anchor().Y - c.host.Bounds().Anchor().Y
}

// TopLeft returns the top-left corner of the active region, in its own
// frame.
func (c *Context) TopLeft() vec.Vec2 {
	return c.host.Bounds().TopLeft()
}

// PositionBeside returns the local position directly to the right of
// origin.  See the PositionBeside function.
func (c *Context) PositionBeside(origin *Region, gutter float64) vec.Vec2 {
	return PositionBeside(c.host.Bounds(), origin, gutter)
}

// PositionBelow returns the local position directly below origin.
// See the PositionBelow function.
func (c *Context) PositionBelow(origin *Region, gutter float64) vec.Vec2 {
	return PositionBelow(c.host.Bounds(), origin, gutter)
}

// BoxOptions holds optional parameters for creating boxes.
// A nil *BoxOptions is equivalent to the zero value.
type BoxOptions struct {
	// Padding is applied inside the box, before the content function runs.
	Padding Padding

	// Gutter is the space between the reference box and the new box, used
	// by the "beside" and "below" variants.
	Gutter float64

	// DontTrack prevents the box from becoming the last created box.
	DontTrack bool
}

// Box creates a box with top-left corner at the local position at, and runs
// fn with the padded interior of the box as the active region.  Width and
// height are resolved relative to the active region, using at as the start
// position for local percentages.
//
// The outer box is returned.  If fn fails, the box is still returned and
// tracked, together with the error.
func (c *Context) Box(at vec.Vec2, width, height Size, opt *BoxOptions, fn func() error) (*Region, error) {
	if opt == nil {
		opt = &BoxOptions{}
	}
	bounds := c.host.Bounds()
	w := width.Resolve(Horizontal, bounds, at)
	h := height.Resolve(Vertical, bounds, at)

	box, err := c.host.BoundingBox(at, w, h, func() error {
		return c.Padding(opt.Padding, fn)
	})
	if box != nil && !opt.DontTrack {
		c.lastCreated = box
	}
	if err != nil {
		return box, fmt.Errorf("box %s: %w", describeBox(at, w, h), err)
	}
	return box, nil
}

// BoxBeside creates a box directly to the right of origin.  If origin is
// nil, the box is placed at the top-left corner of the active region.
func (c *Context) BoxBeside(origin *Region, width, height Size, opt *BoxOptions, fn func() error) (*Region, error) {
	at := c.PositionBeside(origin, opt.gutter())
	return c.Box(at, width, height, opt, fn)
}

// BoxBelow creates a box directly below origin.  If origin is nil, the box
// is placed at the top-left corner of the active region.
func (c *Context) BoxBelow(origin *Region, width, height Size, opt *BoxOptions, fn func() error) (*Region, error) {
	at := c.PositionBelow(origin, opt.gutter())
	return c.Box(at, width, height, opt, fn)
}

// BoxBesidePrevious creates a box directly to the right of the last created
// box.
func (c *Context) BoxBesidePrevious(width, height Size, opt *BoxOptions, fn func() error) (*Region, error) {
	return c.BoxBeside(c.lastCreated, width, height, opt, fn)
}

// BoxBelowPrevious creates a box directly below the last created box.
func (c *Context) BoxBelowPrevious(width, height Size, opt *BoxOptions, fn func() error) (*Region, error) {
	return c.BoxBelow(c.lastCreated, width, height, opt, fn)
}

// Padding runs fn with the padded interior of the active region as the
// active region.
func (c *Context) Padding(p Padding, fn func() error) error {
	at, w, h := p.Apply(c.host.Bounds())
	_, err := c.host.BoundingBox(at, w, h, func() error {
		if fn == nil {
			return nil
		}
		return fn()
	})
	return err
}

func (opt *BoxOptions) gutter() float64 {
	if opt == nil {
		return 0
	}
	return opt.Gutter
}

func describeBox(at vec.Vec2, w, h float64) string {
	return fmt.Sprintf("at (%g, %g) size %gx%g", at.X, at.Y, w, h)
}
