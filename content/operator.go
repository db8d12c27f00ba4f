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

// Package content represents PDF content streams.
//
// A content stream is a sequence of operators, each preceded by its
// arguments.  The Builder type in this package produces content streams
// while tracking the graphics state, so that redundant operators are elided.
package content

import (
	"bytes"
	"io"

	"seehuhn.de/go/pdfreport/pdf"
)

// OpName is the name of a content stream operator.
type OpName string

// The operators used by this package.
const (
	// General graphics state
	OpPushGraphicsState OpName = "q"
	OpPopGraphicsState  OpName = "Q"
	OpTransform         OpName = "cm"
	OpSetLineWidth      OpName = "w"

	// Path construction and painting
	OpMoveTo    OpName = "m"
	OpLineTo    OpName = "l"
	OpRectangle OpName = "re"
	OpStroke    OpName = "S"
	OpFill      OpName = "f"
	OpEndPath   OpName = "n"

	// Clipping paths
	OpClipNonZero OpName = "W"

	// Text objects, state, positioning and showing
	OpTextBegin      OpName = "BT"
	OpTextEnd        OpName = "ET"
	OpTextSetLeading OpName = "TL"
	OpTextSetFont    OpName = "Tf"
	OpTextMoveOffset OpName = "Td"
	OpTextNextLine   OpName = "T*"
	OpTextShow       OpName = "Tj"

	// Color
	OpSetStrokeGray OpName = "G"
	OpSetFillGray   OpName = "g"
	OpSetStrokeRGB  OpName = "RG"
	OpSetFillRGB    OpName = "rg"
)

// Operator represents a content stream operator with its arguments
type Operator struct {
	Name OpName
	Args []pdf.Object
}

// Stream is a sequence of content stream operators.
type Stream []Operator

// WriteTo writes the content stream in PDF syntax, one operator per line.
func (s Stream) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	for _, op := range s {
		for _, arg := range op.Args {
			if err := arg.PDF(cw); err != nil {
				return cw.n, err
			}
			if _, err := io.WriteString(cw, " "); err != nil {
				return cw.n, err
			}
		}
		if _, err := io.WriteString(cw, string(op.Name)+"\n"); err != nil {
			return cw.n, err
		}
	}
	return cw.n, nil
}

// Bytes returns the content stream in PDF syntax.
func (s Stream) Bytes() []byte {
	buf := &bytes.Buffer{}
	s.WriteTo(buf)
	return buf.Bytes()
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
