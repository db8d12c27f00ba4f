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
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// Version represents a version of the PDF standard.
type Version int

// PDF versions supported by this library.
const (
	V1_4 Version = iota + 4
	V1_5
	V1_6
	V1_7
)

func (ver Version) String() string {
	if ver < V1_4 || ver > V1_7 {
		return fmt.Sprintf("Version(%d)", int(ver))
	}
	return fmt.Sprintf("1.%d", int(ver))
}

// ParseVersion parses a PDF version string like "1.7".
func ParseVersion(s string) (Version, error) {
	for v := V1_4; v <= V1_7; v++ {
		if v.String() == s {
			return v, nil
		}
	}
	return 0, fmt.Errorf("unsupported PDF version %q", s)
}

// WriterOptions allows to influence the way PDF files are written.
// A nil value selects the defaults.
type WriterOptions struct {
	Version Version

	// Compress selects whether stream data is FlateDecode compressed.
	Compress bool

	// ID, if non-empty, is used for both parts of the file identifier.
	// Otherwise a random identifier is generated.
	ID []byte
}

var defaultWriterOptions = &WriterOptions{
	Version:  V1_7,
	Compress: true,
}

// ErrClosed is returned when writing to a Writer after Close has been called.
var ErrClosed = errors.New("PDF writer is closed")

// Writer represents a PDF file open for writing.
// Objects are written sequentially, each object number can be used once.
type Writer struct {
	Version Version

	w        *posWriter
	compress bool
	id       []byte
	xref     map[int]int64
	nextRef  int
}

// NewWriter prepares a PDF file for writing.
func NewWriter(w io.Writer, opt *WriterOptions) (*Writer, error) {
	if opt == nil {
		opt = defaultWriterOptions
	}
	ver := opt.Version
	if ver == 0 {
		ver = V1_7
	}
	if ver < V1_4 || ver > V1_7 {
		return nil, fmt.Errorf("unsupported PDF version %s", ver)
	}

	id := opt.ID
	if len(id) == 0 {
		u := uuid.New()
		id = u[:]
	}

	pdf := &Writer{
		Version:  ver,
		w:        &posWriter{w: w},
		compress: opt.Compress,
		id:       id,
		xref:     make(map[int]int64),
		nextRef:  1,
	}

	_, err := fmt.Fprintf(pdf.w, "%%PDF-%s\n%%\x80\x80\x80\x80\n", ver)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// Create creates the named PDF file and opens it for output.  If a previous
// file with the same name exists, it is overwritten.  After writing is
// complete, Close() must be called to write the trailer and to close the
// underlying file.
func Create(name string, opt *WriterOptions) (*Writer, error) {
	fd, err := os.Create(name)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(fd, opt)
	if err != nil {
		fd.Close()
		return nil, err
	}
	return w, nil
}

// Alloc allocates an object number for an indirect object.
func (pdf *Writer) Alloc() Reference {
	ref := Reference{Number: pdf.nextRef}
	pdf.nextRef++
	return ref
}

// Put writes obj to the file as the indirect object ref.
// Each reference can be written only once.
func (pdf *Writer) Put(ref Reference, obj Object) error {
	if pdf.w == nil {
		return ErrClosed
	}
	if ref.IsZero() || ref.Number >= pdf.nextRef {
		return fmt.Errorf("object %d was not allocated", ref.Number)
	}
	if _, seen := pdf.xref[ref.Number]; seen {
		return fmt.Errorf("object %d already written", ref.Number)
	}

	pos := pdf.w.pos
	_, err := fmt.Fprintf(pdf.w, "%d %d obj\n", ref.Number, ref.Generation)
	if err != nil {
		return err
	}
	if obj == nil {
		_, err = io.WriteString(pdf.w, "null")
	} else {
		err = obj.PDF(pdf.w)
	}
	if err != nil {
		return err
	}
	_, err = io.WriteString(pdf.w, "\nendobj\n")
	if err != nil {
		return err
	}

	pdf.xref[ref.Number] = pos
	return nil
}

// PutStream writes a stream object with the given dictionary and data.
// If compression is enabled, the data is FlateDecode compressed.  The /Length
// and /Filter entries of dict are set by this method.
func (pdf *Writer) PutStream(ref Reference, dict Dict, data []byte) error {
	d := Dict{}
	for key, val := range dict {
		d[key] = val
	}

	if pdf.compress && len(data) > 0 {
		buf := &bytes.Buffer{}
		zw := zlib.NewWriter(buf)
		_, err := zw.Write(data)
		if err != nil {
			return err
		}
		err = zw.Close()
		if err != nil {
			return err
		}
		data = buf.Bytes()
		d["Filter"] = Name("FlateDecode")
	}
	d["Length"] = Integer(len(data))

	return pdf.Put(ref, &Stream{Dict: d, R: bytes.NewReader(data)})
}

// Close writes the cross-reference table and the trailer.  If the underlying
// io.Writer has a Close() method, it is closed as well, even if writing the
// trailer fails.
//
// All allocated objects should have been written before Close is called;
// missing objects are recorded as free entries.
func (pdf *Writer) Close(catalog Reference, info Reference) error {
	if pdf.w == nil {
		return ErrClosed
	}
	if catalog.IsZero() {
		return errors.New("missing /Catalog")
	}

	trailer := Dict{
		"Size": Integer(pdf.nextRef),
		"Root": catalog,
		"ID":   Array{String(pdf.id), String(pdf.id)},
	}
	if !info.IsZero() {
		trailer["Info"] = info
	}

	err := pdf.writeTrailer(trailer)
	closeErr := pdf.release()
	if err != nil {
		return err
	}
	return closeErr
}

// Abort closes the underlying io.Writer, if it has a Close() method, without
// writing the trailer.  The output is left incomplete.
func (pdf *Writer) Abort() error {
	if pdf.w == nil {
		return ErrClosed
	}
	return pdf.release()
}

func (pdf *Writer) writeTrailer(trailer Dict) error {
	xRefPos := pdf.w.pos
	err := pdf.writeXRefTable(trailer)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(pdf.w, "\nstartxref\n%d\n%%%%EOF\n", xRefPos)
	return err
}

func (pdf *Writer) release() error {
	out := pdf.w.w
	pdf.w = nil
	if closer, ok := out.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func (pdf *Writer) writeXRefTable(trailer Dict) error {
	_, err := fmt.Fprintf(pdf.w, "xref\n0 %d\n", pdf.nextRef)
	if err != nil {
		return err
	}
	for i := 0; i < pdf.nextRef; i++ {
		pos, ok := pdf.xref[i]
		if ok {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d n\r\n", pos, 0)
		} else {
			_, err = fmt.Fprintf(pdf.w, "%010d %05d f\r\n", 0, 65535)
		}
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(pdf.w, "trailer\n")
	if err != nil {
		return err
	}
	return trailer.PDF(pdf.w)
}

type posWriter struct {
	w   io.Writer
	pos int64
}

func (w *posWriter) Write(p []byte) (int, error) {
	n, err := w.w.Write(p)
	w.pos += int64(n)
	return n, err
}
