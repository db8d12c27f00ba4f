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

// Package pdf implements the PDF object model and a sequential writer for
// PDF files.
//
// Only the subset of PDF needed to produce documents is implemented: objects
// are written once, in order, and the file is finished by a classic
// cross-reference table.
package pdf

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"
	"unicode/utf16"

	"golang.org/x/exp/maps"
)

// Object represents an object in a PDF file.  The native PDF object types
// implement this interface: Array, Bool, Dict, Integer, Name, Number, Real,
// Reference, *Stream, and String.
type Object interface {
	// PDF writes the PDF file representation of the object to w.
	PDF(w io.Writer) error
}

// Bool represents a boolean value in a PDF file.
type Bool bool

// PDF implements the Object interface.
func (x Bool) PDF(w io.Writer) error {
	s := "false"
	if x {
		s = "true"
	}
	_, err := io.WriteString(w, s)
	return err
}

// Integer represents an integer constant in a PDF file.
type Integer int64

// PDF implements the Object interface.
func (x Integer) PDF(w io.Writer) error {
	_, err := io.WriteString(w, strconv.FormatInt(int64(x), 10))
	return err
}

// Real represents a real number in a PDF file.
// Reals are always written with a decimal point.
type Real float64

// PDF implements the Object interface.
func (x Real) PDF(w io.Writer) error {
	s := strconv.FormatFloat(float64(x), 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s = s + "."
	}
	_, err := io.WriteString(w, s)
	return err
}

// Number represents a numeric value in a content stream or a dictionary.
// Numbers are rounded to four decimal places and written in the shortest
// form, so that integral values appear without a decimal point.
type Number float64

// PDF implements the Object interface.
func (x Number) PDF(w io.Writer) error {
	_, err := io.WriteString(w, FormatNumber(float64(x)))
	return err
}

// FormatNumber returns the shortest text representation of x, rounded to
// four decimal places.
func FormatNumber(x float64) string {
	s := strconv.FormatFloat(x, 'f', 4, 64)
	s = strings.TrimRight(s, "0")
	s = strings.TrimSuffix(s, ".")
	if s == "-0" || s == "" {
		s = "0"
	}
	return s
}

// String represents a raw string in a PDF file.  The character set encoding,
// if any, is determined by the context.
type String []byte

// PDF implements the Object interface.
func (x String) PDF(w io.Writer) error {
	// Parentheses only need escaping if they are unbalanced.
	depth, balanced := 0, true
	for _, c := range x {
		switch c {
		case '(':
			depth++
		case ')':
			depth--
		}
		if depth < 0 {
			balanced = false
			break
		}
	}
	balanced = balanced && depth == 0

	escapes := 0
	for _, c := range x {
		if needsEscape(c, balanced) {
			escapes++
		}
	}

	buf := &bytes.Buffer{}
	if 3*escapes > len(x) {
		fmt.Fprintf(buf, "<%x>", []byte(x))
	} else {
		buf.WriteByte('(')
		for _, c := range x {
			if !needsEscape(c, balanced) {
				buf.WriteByte(c)
				continue
			}
			switch c {
			case '\r':
				buf.WriteString(`\r`)
			case '\b':
				buf.WriteString(`\b`)
			case '\f':
				buf.WriteString(`\f`)
			case '(', ')', '\\':
				buf.WriteByte('\\')
				buf.WriteByte(c)
			default:
				fmt.Fprintf(buf, `\%03o`, c)
			}
		}
		buf.WriteByte(')')
	}

	_, err := w.Write(buf.Bytes())
	return err
}

func needsEscape(c byte, balanced bool) bool {
	switch {
	case c == '\n' || c == '\t':
		return false
	case c < 32 || c >= 127 || c == '\\':
		return true
	case c == '(' || c == ')':
		return !balanced
	}
	return false
}

// TextString creates a String object using the "text string" encoding.
// Printable ASCII text is stored as is, everything else is stored as
// UTF-16BE with a byte order mark.
func TextString(s string) String {
	ascii := true
	for i := 0; i < len(s); i++ {
		if s[i] < 32 || s[i] >= 127 {
			ascii = false
			break
		}
	}
	if ascii {
		return String(s)
	}

	enc := utf16.Encode([]rune(s))
	buf := make([]byte, 2*len(enc)+2)
	buf[0] = 0xFE
	buf[1] = 0xFF
	for i, c := range enc {
		buf[2*i+2] = byte(c >> 8)
		buf[2*i+3] = byte(c)
	}
	return String(buf)
}

// Date creates a PDF String object encoding the given date and time.
func Date(t time.Time) String {
	s := t.Format("D:20060102150405-0700")
	k := len(s) - 2
	s = s[:k] + "'" + s[k:]
	return String(s)
}

// Name represents a name in a PDF file.
type Name string

// PDF implements the Object interface.
func (x Name) PDF(w io.Writer) error {
	buf := &bytes.Buffer{}
	buf.WriteString("/")
	for _, c := range []byte(x) {
		if c < 0x21 || c > 0x7e || c == '#' || strings.IndexByte("()<>[]{}/%", c) >= 0 {
			fmt.Fprintf(buf, "#%02x", c)
		} else {
			buf.WriteByte(c)
		}
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// Array represent an array of objects in a PDF file.
type Array []Object

// PDF implements the Object interface.
func (x Array) PDF(w io.Writer) error {
	_, err := io.WriteString(w, "[")
	if err != nil {
		return err
	}
	for i, val := range x {
		if i > 0 {
			_, err := io.WriteString(w, " ")
			if err != nil {
				return err
			}
		}
		if val == nil {
			_, err = io.WriteString(w, "null")
		} else {
			err = val.PDF(w)
		}
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "]")
	return err
}

// Dict represent a Dictionary object in a PDF file.
// Keys are written in sorted order, entries with nil values are omitted.
type Dict map[Name]Object

// PDF implements the Object interface.
func (x Dict) PDF(w io.Writer) error {
	if x == nil {
		_, err := io.WriteString(w, "null")
		return err
	}

	_, err := io.WriteString(w, "<<")
	if err != nil {
		return err
	}
	names := maps.Keys(x)
	slices.Sort(names)
	for _, name := range names {
		val := x[name]
		if val == nil {
			continue
		}

		_, err = io.WriteString(w, "\n")
		if err != nil {
			return err
		}
		err = name.PDF(w)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, " ")
		if err != nil {
			return err
		}
		err = val.PDF(w)
		if err != nil {
			return err
		}
	}
	_, err = io.WriteString(w, "\n>>")
	return err
}

// Stream represent a stream object in a PDF file.
// The caller is responsible for setting the /Length entry of the dictionary;
// Writer.PutStream does this automatically.
type Stream struct {
	Dict
	R io.Reader
}

// PDF implements the Object interface.
func (x *Stream) PDF(w io.Writer) error {
	err := x.Dict.PDF(w)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nstream\n")
	if err != nil {
		return err
	}
	_, err = io.Copy(w, x.R)
	if err != nil {
		return err
	}
	_, err = io.WriteString(w, "\nendstream")
	return err
}

// Reference represents a reference to an indirect object in a PDF file.
type Reference struct {
	Number     int
	Generation uint16
}

// PDF implements the Object interface.
func (x Reference) PDF(w io.Writer) error {
	_, err := fmt.Fprintf(w, "%d %d R", x.Number, x.Generation)
	return err
}

// IsZero reports whether x has not been allocated.
func (x Reference) IsZero() bool {
	return x.Number == 0
}

// Rectangle returns a PDF array describing the rectangle with corners
// (llx, lly) and (urx, ury).
func Rectangle(llx, lly, urx, ury float64) Array {
	return Array{Number(llx), Number(lly), Number(urx), Number(ury)}
}
