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
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdfreport/pdf"
)

type testFont struct{ name string }

func (testFont) Encode(s string) pdf.String { return pdf.String(s) }

func TestBuilderOutput(t *testing.T) {
	b := NewBuilder()
	b.PushGraphicsState()
	b.Transform(matrix.Translate(10, 20))
	b.Rectangle(0, 0, 100, 50)
	b.ClipNonZero()
	b.EndPath()
	b.SetLineWidth(0.5)
	b.MoveTo(0, 0)
	b.LineTo(100, 0)
	b.Stroke()
	b.PopGraphicsState()

	if b.Err != nil {
		t.Fatal(b.Err)
	}
	want := "q\n1 0 0 1 10 20 cm\n0 0 100 50 re\nW\nn\n0.5 w\n0 0 m\n100 0 l\nS\nQ\n"
	if d := cmp.Diff(want, string(b.Stream.Bytes())); d != "" {
		t.Errorf("wrong content stream (-want +got):\n%s", d)
	}
}

func TestBuilderElision(t *testing.T) {
	b := NewBuilder()
	b.SetLineWidth(1) // initial value
	b.SetStrokeColor(color.Gray{})
	b.SetFillColor(color.RGBA{R: 255, A: 255})
	b.SetFillColor(color.RGBA{R: 255, A: 255})
	b.TextSetLeading(0)

	var names []OpName
	for _, op := range b.Stream {
		names = append(names, op.Name)
	}
	if d := cmp.Diff([]OpName{OpSetFillRGB}, names); d != "" {
		t.Errorf("wrong operators (-want +got):\n%s", d)
	}
}

func TestBuilderRestoresState(t *testing.T) {
	b := NewBuilder()
	b.PushGraphicsState()
	b.SetLineWidth(3)
	b.SetStrokeColor(color.Gray{Y: 128})
	b.PopGraphicsState()

	if b.LineWidth() != 1 {
		t.Errorf("line width not restored: %g", b.LineWidth())
	}
	if !sameColor(b.StrokeColor(), color.Gray{}) {
		t.Errorf("stroke color not restored: %v", b.StrokeColor())
	}

	// after restoring, setting the old value again is redundant
	n := len(b.Stream)
	b.SetLineWidth(1)
	if len(b.Stream) != n {
		t.Error("redundant line width was emitted")
	}
}

func TestBuilderText(t *testing.T) {
	b := NewBuilder()
	f1 := &testFont{name: "one"}
	f2 := &testFont{name: "two"}
	b.TextBegin()
	b.TextSetFont(f1, 10)
	b.TextSetLeading(12)
	b.TextFirstLine(72, 700)
	b.TextShow("a(b")
	b.TextNextLine()
	b.TextSetFont(f2, 10)
	b.TextShow("c")
	b.TextSetFont(f1, 10)
	b.TextEnd()

	if b.Err != nil {
		t.Fatal(b.Err)
	}
	want := "BT\n/F1 10 Tf\n12 TL\n72 700 Td\n(a\\(b) Tj\nT*\n/F2 10 Tf\n(c) Tj\n/F1 10 Tf\nET\n"
	if d := cmp.Diff(want, string(b.Stream.Bytes())); d != "" {
		t.Errorf("wrong content stream (-want +got):\n%s", d)
	}
	if len(b.Resources.Font) != 2 {
		t.Errorf("expected 2 font resources, got %d", len(b.Resources.Font))
	}
	if b.Resources.Font["F1"] != Font(f1) {
		t.Error("wrong font for /F1")
	}
}

func TestBuilderErrors(t *testing.T) {
	b := NewBuilder()
	b.PopGraphicsState()
	if !errors.Is(b.Err, ErrUnbalanced) {
		t.Errorf("expected ErrUnbalanced, got %v", b.Err)
	}

	// errors are sticky
	b.MoveTo(0, 0)
	if len(b.Stream) != 0 {
		t.Error("operator emitted after error")
	}

	b = NewBuilder()
	b.TextBegin()
	b.TextShow("x")
	if b.Err == nil {
		t.Error("showing text without font succeeded")
	}

	b = NewBuilder()
	b.TextShow("x")
	if b.Err == nil {
		t.Error("showing text outside a text object succeeded")
	}
}
