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

package pdf

import (
	"bytes"
	"compress/zlib"
	"errors"
	"io"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestWriterStructure(t *testing.T) {
	buf := &bytes.Buffer{}
	w, err := NewWriter(buf, &WriterOptions{Version: V1_4, ID: []byte("abc")})
	if err != nil {
		t.Fatal(err)
	}

	catalog := w.Alloc()
	pages := w.Alloc()
	err = w.Put(catalog, Dict{"Type": Name("Catalog"), "Pages": pages})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Put(pages, Dict{"Type": Name("Pages"), "Kids": Array{}, "Count": Integer(0)})
	if err != nil {
		t.Fatal(err)
	}
	err = w.Close(catalog, Reference{})
	if err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.HasPrefix(out, "%PDF-1.4\n") {
		t.Errorf("wrong header %q", out[:10])
	}
	if !strings.HasSuffix(out, "%%EOF\n") {
		t.Errorf("missing %%EOF marker")
	}

	// the startxref offset must point at the xref table
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	pos, err := strconv.Atoi(lines[len(lines)-2])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out[pos:], "xref\n0 3\n") {
		t.Errorf("startxref points to %q", out[pos:pos+10])
	}

	// every xref entry must point at the matching object
	for i, ref := range []Reference{catalog, pages} {
		entry := out[pos+len("xref\n0 3\n")+20*(i+1):][:20]
		objPos, err := strconv.Atoi(entry[:10])
		if err != nil {
			t.Fatal(err)
		}
		want := strconv.Itoa(ref.Number) + " 0 obj\n"
		if !strings.HasPrefix(out[objPos:], want) {
			t.Errorf("xref entry %d points to %q", ref.Number, out[objPos:objPos+8])
		}
	}

	if !strings.Contains(out, "/ID [(abc) (abc)]") {
		t.Error("missing file identifier")
	}
}

func TestWriterErrors(t *testing.T) {
	w, err := NewWriter(io.Discard, nil)
	if err != nil {
		t.Fatal(err)
	}

	if err := w.Put(Reference{Number: 5}, Integer(1)); err == nil {
		t.Error("writing an unallocated object succeeded")
	}

	ref := w.Alloc()
	if err := w.Put(ref, Integer(1)); err != nil {
		t.Fatal(err)
	}
	if err := w.Put(ref, Integer(2)); err == nil {
		t.Error("writing an object twice succeeded")
	}

	if err := w.Close(Reference{}, Reference{}); err == nil {
		t.Error("closing without catalog succeeded")
	}
	if err := w.Close(ref, Reference{}); err != nil {
		t.Fatal(err)
	}
	if err := w.Close(ref, Reference{}); !errors.Is(err, ErrClosed) {
		t.Errorf("second Close: got %v, want ErrClosed", err)
	}
}

func TestCloseReleasesOutput(t *testing.T) {
	out := &recordingCloser{}
	w, err := NewWriter(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	ref := w.Alloc()
	if err := w.Put(ref, Dict{"Type": Name("Catalog")}); err != nil {
		t.Fatal(err)
	}

	// the trailer does not fit, but the output must be closed anyway
	out.limit = out.buf.Len() + 10
	if err := w.Close(ref, Reference{}); !errors.Is(err, errFull) {
		t.Errorf("Close: got %v, want %v", err, errFull)
	}
	if out.closed != 1 {
		t.Errorf("output closed %d times, want 1", out.closed)
	}
	if err := w.Abort(); !errors.Is(err, ErrClosed) {
		t.Errorf("Abort after Close: got %v, want ErrClosed", err)
	}
}

func TestAbort(t *testing.T) {
	out := &recordingCloser{}
	w, err := NewWriter(out, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := w.Abort(); err != nil {
		t.Fatal(err)
	}
	if out.closed != 1 {
		t.Errorf("output closed %d times, want 1", out.closed)
	}
	if strings.Contains(out.buf.String(), "%%EOF") {
		t.Error("aborted output contains a trailer")
	}
	if err := w.Close(Reference{Number: 1}, Reference{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Close after Abort: got %v, want ErrClosed", err)
	}
	if out.closed != 1 {
		t.Errorf("output closed %d times, want 1", out.closed)
	}
}

var errFull = errors.New("output full")

// recordingCloser counts calls to Close.  If limit is positive, writes which
// would grow the output beyond limit bytes fail.
type recordingCloser struct {
	buf    bytes.Buffer
	limit  int
	closed int
}

func (c *recordingCloser) Write(p []byte) (int, error) {
	if c.limit > 0 && c.buf.Len()+len(p) > c.limit {
		return 0, errFull
	}
	return c.buf.Write(p)
}

func (c *recordingCloser) Close() error {
	c.closed++
	return nil
}

func TestPutStream(t *testing.T) {
	data := []byte(strings.Repeat("0 0 m 10 10 l S\n", 20))

	for _, compress := range []bool{false, true} {
		buf := &bytes.Buffer{}
		w, err := NewWriter(buf, &WriterOptions{Compress: compress})
		if err != nil {
			t.Fatal(err)
		}
		ref := w.Alloc()
		err = w.PutStream(ref, Dict{"Type": Name("Test")}, data)
		if err != nil {
			t.Fatal(err)
		}

		out := buf.Bytes()
		start := bytes.Index(out, []byte("\nstream\n")) + len("\nstream\n")
		end := bytes.Index(out, []byte("\nendstream"))
		body := out[start:end]

		if compress {
			if !bytes.Contains(out, []byte("/Filter /FlateDecode")) {
				t.Error("missing /Filter")
			}
			r, err := zlib.NewReader(bytes.NewReader(body))
			if err != nil {
				t.Fatal(err)
			}
			body, err = io.ReadAll(r)
			if err != nil {
				t.Fatal(err)
			}
		}
		if d := cmp.Diff(string(data), string(body)); d != "" {
			t.Errorf("compress=%t: stream data differs (-want +got):\n%s", compress, d)
		}
	}
}

func TestParseVersion(t *testing.T) {
	cases := []struct {
		in  string
		out Version
		ok  bool
	}{
		{"1.4", V1_4, true},
		{"1.7", V1_7, true},
		{"1.3", 0, false},
		{"2.0", 0, false},
		{"", 0, false},
	}
	for _, test := range cases {
		v, err := ParseVersion(test.in)
		if (err == nil) != test.ok {
			t.Errorf("%q: unexpected err = %v", test.in, err)
			continue
		}
		if v != test.out {
			t.Errorf("%q: wrong version %s != %s", test.in, v, test.out)
		}
	}
}
