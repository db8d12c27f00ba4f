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

package report

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"seehuhn.de/go/geom/rect"

	"seehuhn.de/go/pdfreport/document"
	"seehuhn.de/go/pdfreport/internal/source"
	"seehuhn.de/go/pdfreport/pdf"
)

func TestBands(t *testing.T) {
	fields := []source.Field{
		{Label: "a", Span: 2},
		{Label: "b", Span: 1},
		{Label: "c", Span: 2},
		{Label: "d", Span: 5},
		{Label: "e"},
	}
	var got [][]string
	for _, row := range bands(fields, 3) {
		var labels []string
		for _, c := range row {
			labels = append(labels, fmt.Sprintf("%s:%d-%d", c.field.Label, c.cols.First, c.cols.Last))
		}
		got = append(got, labels)
	}
	want := [][]string{
		{"a:0-1", "b:2-2"},
		{"c:0-1"},
		{"d:0-2"},
		{"e:0-0"},
	}
	if d := cmp.Diff(want, got); d != "" {
		t.Errorf("bands (-want +got):\n%s", d)
	}
	if bands(nil, 2) != nil {
		t.Error("expected no bands for no fields")
	}
}

func newTestDocument(t *testing.T, buf *bytes.Buffer) *document.Document {
	t.Helper()
	doc, err := document.New(buf, &document.Options{
		PaperSize: rect.Rect{URx: 300, URy: 250},
		Margins:   &document.Margins{Top: 20, Right: 20, Bottom: 20, Left: 20},
		Writer:    &pdf.WriterOptions{Version: pdf.V1_7},
	})
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func makeReport(sections, fields int) *source.Report {
	rep := &source.Report{Title: "Test Report", Subtitle: "generated"}
	for i := range sections {
		sec := source.Section{Title: fmt.Sprintf("Section %d", i+1), Columns: 2}
		for j := range fields {
			sec.Fields = append(sec.Fields, source.Field{
				Label: fmt.Sprintf("Field %d", j+1),
				Value: "value",
				Span:  1,
			})
		}
		rep.Sections = append(rep.Sections, sec)
	}
	return rep
}

func collectSections(doc *document.Document) *[]string {
	var got []string
	doc.Repeat(document.AllPages, func(page int) error {
		got = append(got, doc.ValueInPage(SectionKey, page))
		return nil
	})
	return &got
}

func TestSectionPerPage(t *testing.T) {
	doc := newTestDocument(t, &bytes.Buffer{})

	err := Render(doc, makeReport(3, 2), &Options{PageBreakPerSection: true})
	if err != nil {
		t.Fatal(err)
	}
	got := collectSections(doc)
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}

	want := []string{"Section 1", "Section 2", "Section 3"}
	if d := cmp.Diff(want, *got); d != "" {
		t.Errorf("sections (-want +got):\n%s", d)
	}
}

func TestLongSection(t *testing.T) {
	buf := &bytes.Buffer{}
	doc := newTestDocument(t, buf)

	err := Render(doc, makeReport(2, 30), nil)
	if err != nil {
		t.Fatal(err)
	}
	got := collectSections(doc)
	n := doc.PageCount()
	if n < 3 {
		t.Fatalf("expected at least 3 pages, got %d", n)
	}
	if err := doc.Close(); err != nil {
		t.Fatal(err)
	}

	// Pages without a section start show the section continued from the
	// previous page.
	if (*got)[1] != "Section 1" {
		t.Errorf("page 2 shows section %q", (*got)[1])
	}
	if (*got)[n-1] != "Section 2" {
		t.Errorf("last page shows section %q", (*got)[n-1])
	}

	out := buf.String()
	for page := 1; page <= n; page++ {
		footer := fmt.Sprintf("(Page %d of %d) Tj", page, n)
		if !strings.Contains(out, footer) {
			t.Errorf("missing footer %q", footer)
		}
	}
}

func TestUntrackedBoxes(t *testing.T) {
	doc := newTestDocument(t, &bytes.Buffer{})
	rep := &source.Report{
		Sections: []source.Section{{
			Title:   "S",
			Columns: 2,
			Fields:  []source.Field{{Label: "x", Value: "y", Span: 2}},
		}},
	}
	// A negative gutter is replaced by zero, so the row still fits.
	err := Render(doc, rep, &Options{Gutter: -5})
	if err != nil {
		t.Fatal(err)
	}
	if doc.Layout().LastCreatedBox() != nil {
		t.Error("report boxes should not be tracked")
	}
}
