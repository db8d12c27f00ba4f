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

import (
	"bytes"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"

	"seehuhn.de/go/pdfreport/pdf"
)

func TestEncode(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	got := f.Encode("Bär€\t✓")
	want := pdf.String{'B', 0xE4, 'r', 0x80, '?', '?'}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("wrong encoding (-want +got):\n%s", d)
	}
}

func TestMetrics(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	if w := f.Width("", 12); w != 0 {
		t.Errorf("empty string has width %g", w)
	}
	w1 := f.Width("M", 10)
	if w1 <= 0 || w1 > 10 {
		t.Errorf("implausible width %g for M at 10pt", w1)
	}
	if w2 := f.Width("MM", 20); math.Abs(w2-4*w1) > 1e-9 {
		t.Errorf("width does not scale: %g != 4*%g", w2, w1)
	}
	if f.Ascent(10) <= 0 {
		t.Errorf("ascent %g should be positive", f.Ascent(10))
	}
	if f.Descent(10) >= 0 {
		t.Errorf("descent %g should be negative", f.Descent(10))
	}
}

func TestEmbed(t *testing.T) {
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}

	buf := &bytes.Buffer{}
	w, err := pdf.NewWriter(buf, &pdf.WriterOptions{})
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	err = f.Embed(w, ref)
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	for _, key := range []string{
		"/Subtype /TrueType",
		"/Encoding /WinAnsiEncoding",
		"/FirstChar 32",
		"/LastChar 255",
		"/Type /FontDescriptor",
		"/FontFile2 ",
		"/BaseFont /" + f.PostScriptName(),
	} {
		if !strings.Contains(out, key) {
			t.Errorf("missing %q in font dictionary", key)
		}
	}
	if !bytes.Contains(buf.Bytes(), goregular.TTF[:64]) {
		t.Error("font file not embedded")
	}

	bbox := f.info.FontBBox()
	if bbox.URx <= bbox.LLx || bbox.URy <= bbox.LLy {
		t.Fatalf("degenerate font bounding box %v", bbox)
	}
	q := 1000 / float64(f.info.UnitsPerEm)
	rectBuf := &bytes.Buffer{}
	err = pdf.Rectangle(
		bbox.LLx.AsFloat(q), bbox.LLy.AsFloat(q),
		bbox.URx.AsFloat(q), bbox.URy.AsFloat(q)).PDF(rectBuf)
	if err != nil {
		t.Fatal(err)
	}
	if want := "/FontBBox " + rectBuf.String(); !strings.Contains(out, want) {
		t.Errorf("missing %q in font descriptor", want)
	}
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if d := cmp.Diff([]string{"Go", "Go Mono"}, r.Families()); d != "" {
		t.Errorf("wrong families (-want +got):\n%s", d)
	}

	bold, err := r.Lookup("Go", Bold)
	if err != nil {
		t.Fatal(err)
	}
	regular, _ := r.Lookup("Go", Regular)
	if bold == regular {
		t.Error("bold and regular are the same font")
	}

	_, err = r.Lookup("go", Regular)
	var unknown *UnknownFamilyError
	if !errors.As(err, &unknown) {
		t.Fatalf("expected *UnknownFamilyError, got %v", err)
	}
	if unknown.Suggestion != "Go" {
		t.Errorf("wrong suggestion %q", unknown.Suggestion)
	}

	_, err = r.Lookup("Helvetica", Regular)
	if !errors.As(err, &unknown) || unknown.Suggestion != "" {
		t.Errorf("unexpected error %v", err)
	}
}

func TestCreateFamily(t *testing.T) {
	dir := t.TempDir()
	write := func(name string, data []byte) {
		err := os.WriteFile(filepath.Join(dir, name), data, 0o644)
		if err != nil {
			t.Fatal(err)
		}
	}
	write("Test.ttf", goregular.TTF)
	write("Test_Bold.ttf", gobold.TTF)

	r, err := NewRegistry()
	if err != nil {
		t.Fatal(err)
	}
	fam, err := r.CreateFamily(dir, "Test", "")
	if err != nil {
		t.Fatal(err)
	}

	if d := cmp.Diff([]Style{Regular, Bold}, fam.Styles()); d != "" {
		t.Errorf("wrong styles (-want +got):\n%s", d)
	}
	if fam.Font(Italic) != fam.Font(Regular) {
		t.Error("italic does not fall back to regular")
	}
	if fam.Font(BoldItalic) != fam.Font(Bold) {
		t.Error("bold italic does not fall back to bold")
	}
	if _, err := r.Lookup("Test", Bold); err != nil {
		t.Error(err)
	}
	if !Exists(dir, "Test", ".ttf") || Exists(dir, "Other", "") {
		t.Error("Exists gives wrong results")
	}

	if _, err := r.CreateFamily(dir, "Missing", "ttf"); err == nil {
		t.Error("family without regular style was accepted")
	}
}

func TestParseStyle(t *testing.T) {
	cases := map[string]Style{
		"":            Regular,
		"normal":      Regular,
		"Bold":        Bold,
		"italic":      Italic,
		"bold_italic": BoldItalic,
		"BoldItalic":  BoldItalic,
	}
	for in, want := range cases {
		got, err := ParseStyle(in)
		if err != nil || got != want {
			t.Errorf("ParseStyle(%q) = %v, %v", in, got, err)
		}
	}
	if _, err := ParseStyle("heavy"); err == nil {
		t.Error("unknown style accepted")
	}
}
