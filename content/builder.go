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
	"image/color"
	"math"
	"strconv"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfreport/pdf"
)

// Font is a font which can be selected in a content stream.
type Font interface {
	// Encode converts a string to the character codes used by the font.
	Encode(s string) pdf.String
}

// Resources lists the named resources used by a content stream.
type Resources struct {
	Font map[pdf.Name]Font
}

// Builder constructs a content stream.
//
// Errors are sticky: once an operation fails, Err is set and all further
// operations are ignored.
type Builder struct {
	Stream    Stream
	Resources *Resources
	Err       error

	state   graphicsState
	stack   []graphicsState
	inText  bool
	resName map[Font]pdf.Name
}

type graphicsState struct {
	known stateBits

	lineWidth   float64
	strokeColor color.Color
	fillColor   color.Color
	font        Font
	fontSize    float64
	leading     float64
}

type stateBits uint8

const (
	stateLineWidth stateBits = 1 << iota
	stateStrokeColor
	stateFillColor
	stateFont
	stateLeading
)

// NewBuilder creates a new Builder for a page content stream.
// The initial graphics state has line width 1, black stroke and fill color,
// and leading 0.
func NewBuilder() *Builder {
	return &Builder{
		Resources: &Resources{Font: make(map[pdf.Name]Font)},
		state: graphicsState{
			known:       stateLineWidth | stateStrokeColor | stateFillColor | stateLeading,
			lineWidth:   1,
			strokeColor: color.Gray{},
			fillColor:   color.Gray{},
		},
		resName: make(map[Font]pdf.Name),
	}
}

// emit appends an operator to the stream.
func (b *Builder) emit(name OpName, args ...pdf.Object) {
	if b.Err != nil {
		return
	}
	b.Stream = append(b.Stream, Operator{Name: name, Args: args})
}

// Depth returns the number of saved graphics states.
func (b *Builder) Depth() int {
	return len(b.stack)
}

// ErrUnbalanced is returned when PopGraphicsState is called without a
// matching PushGraphicsState.
var ErrUnbalanced = errors.New("unbalanced graphics state")

// PushGraphicsState saves the current graphics state.
//
// This implements the PDF graphics operator "q".
func (b *Builder) PushGraphicsState() {
	if b.Err != nil {
		return
	}
	if b.inText {
		b.Err = errors.New("PushGraphicsState: not allowed in text object")
		return
	}
	b.stack = append(b.stack, b.state)
	b.emit(OpPushGraphicsState)
}

// PopGraphicsState restores the previous graphics state.
//
// This implements the PDF graphics operator "Q".
func (b *Builder) PopGraphicsState() {
	if b.Err != nil {
		return
	}
	if len(b.stack) == 0 {
		b.Err = ErrUnbalanced
		return
	}
	if b.inText {
		b.Err = errors.New("PopGraphicsState: not allowed in text object")
		return
	}
	n := len(b.stack) - 1
	b.state = b.stack[n]
	b.stack = b.stack[:n]
	b.emit(OpPopGraphicsState)
}

// Transform applies a transformation matrix to the coordinate system.
// The new transformation is applied to the user coordinates first, followed
// by the existing transformation.
//
// This implements the PDF graphics operator "cm".
func (b *Builder) Transform(m matrix.Matrix) {
	b.emit(OpTransform,
		pdf.Number(m[0]), pdf.Number(m[1]),
		pdf.Number(m[2]), pdf.Number(m[3]),
		pdf.Number(m[4]), pdf.Number(m[5]))
}

// SetLineWidth sets the line width.
//
// This implements the PDF graphics operator "w".
func (b *Builder) SetLineWidth(width float64) {
	if b.Err != nil {
		return
	}
	if width < 0 {
		b.Err = fmt.Errorf("SetLineWidth: negative width %f", width)
		return
	}
	if b.isKnown(stateLineWidth) && nearlyEqual(width, b.state.lineWidth) {
		return
	}
	b.state.lineWidth = width
	b.state.known |= stateLineWidth
	b.emit(OpSetLineWidth, pdf.Number(width))
}

// LineWidth returns the current line width.
func (b *Builder) LineWidth() float64 {
	return b.state.lineWidth
}

// SetStrokeColor sets the color used for stroking operations.
// Gray colors use the DeviceGray color space, all other colors
// use DeviceRGB.  The alpha channel is ignored.
//
// This implements the PDF graphics operators "G" and "RG".
func (b *Builder) SetStrokeColor(c color.Color) {
	if b.Err != nil {
		return
	}
	if b.isKnown(stateStrokeColor) && sameColor(c, b.state.strokeColor) {
		return
	}
	b.state.strokeColor = c
	b.state.known |= stateStrokeColor
	if g, ok := grayValue(c); ok {
		b.emit(OpSetStrokeGray, pdf.Number(g))
		return
	}
	r, g, bl := rgbValues(c)
	b.emit(OpSetStrokeRGB, pdf.Number(r), pdf.Number(g), pdf.Number(bl))
}

// SetFillColor sets the color used for filling operations and for text.
//
// This implements the PDF graphics operators "g" and "rg".
func (b *Builder) SetFillColor(c color.Color) {
	if b.Err != nil {
		return
	}
	if b.isKnown(stateFillColor) && sameColor(c, b.state.fillColor) {
		return
	}
	b.state.fillColor = c
	b.state.known |= stateFillColor
	if g, ok := grayValue(c); ok {
		b.emit(OpSetFillGray, pdf.Number(g))
		return
	}
	r, g, bl := rgbValues(c)
	b.emit(OpSetFillRGB, pdf.Number(r), pdf.Number(g), pdf.Number(bl))
}

// StrokeColor returns the current stroke color.
func (b *Builder) StrokeColor() color.Color {
	return b.state.strokeColor
}

// FillColor returns the current fill color.
func (b *Builder) FillColor() color.Color {
	return b.state.fillColor
}

func (b *Builder) isKnown(bits stateBits) bool {
	return b.state.known&bits == bits
}

func nearlyEqual(a, b float64) bool {
	const ε = 1e-6
	return math.Abs(a-b) < ε
}

func grayValue(c color.Color) (float64, bool) {
	switch c := c.(type) {
	case color.Gray:
		return float64(c.Y) / 255, true
	case color.Gray16:
		return float64(c.Y) / 65535, true
	}
	return 0, false
}

func rgbValues(c color.Color) (r, g, b float64) {
	r16, g16, b16, _ := c.RGBA()
	return float64(r16) / 65535, float64(g16) / 65535, float64(b16) / 65535
}

func sameColor(a, b color.Color) bool {
	if a == nil || b == nil {
		return a == b
	}
	_, aGray := grayValue(a)
	_, bGray := grayValue(b)
	if aGray != bGray {
		return false
	}
	r1, g1, b1, _ := a.RGBA()
	r2, g2, b2, _ := b.RGBA()
	return r1 == r2 && g1 == g2 && b1 == b2
}

// allocateName generates a new unique name with the given prefix in the dict.
func allocateName[T any](prefix pdf.Name, dict map[pdf.Name]T) pdf.Name {
	for i := 1; ; i++ {
		name := pdf.Name(string(prefix) + strconv.Itoa(i))
		if _, exists := dict[name]; !exists {
			return name
		}
	}
}
