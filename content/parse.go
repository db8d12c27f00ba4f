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
	"bufio"
	"fmt"
	"io"
	"strconv"

	"seehuhn.de/go/pdfreport/pdf"
)

// Parse reads a content stream in PDF syntax.  Inline images and
// dictionaries are not supported.
func Parse(r io.Reader) (Stream, error) {
	p := &parser{r: bufio.NewReader(r)}

	var res Stream
	var args []pdf.Object
	for {
		tok, err := p.token()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		switch tok := tok.(type) {
		case keyword:
			if tok == "[" {
				arr, err := p.array()
				if err != nil {
					return nil, err
				}
				args = append(args, arr)
				continue
			}
			if tok == "]" {
				return nil, &ParseError{Pos: p.pos, Msg: "unexpected ']'"}
			}
			res = append(res, Operator{Name: OpName(tok), Args: args})
			args = nil
		default:
			args = append(args, tok)
		}
	}
	if len(args) > 0 {
		return nil, &ParseError{Pos: p.pos, Msg: "operands without operator"}
	}
	return res, nil
}

// ParseError is returned by Parse for malformed content streams.
type ParseError struct {
	Pos int64
	Msg string
}

func (err *ParseError) Error() string {
	return fmt.Sprintf("content stream: %s at byte %d", err.Msg, err.Pos)
}

// keyword is an operator name, or an array delimiter.
type keyword string

func (k keyword) PDF(w io.Writer) error {
	_, err := io.WriteString(w, string(k))
	return err
}

type parser struct {
	r   *bufio.Reader
	pos int64
}

func (p *parser) readByte() (byte, error) {
	b, err := p.r.ReadByte()
	if err == nil {
		p.pos++
	}
	return b, err
}

func (p *parser) unreadByte() {
	p.r.UnreadByte()
	p.pos--
}

// unexpectedEOF converts io.EOF into io.ErrUnexpectedEOF.
func unexpectedEOF(err error) error {
	if err == io.EOF {
		return io.ErrUnexpectedEOF
	}
	return err
}

func (p *parser) array() (pdf.Array, error) {
	res := pdf.Array{}
	for {
		tok, err := p.token()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		switch tok {
		case keyword("]"):
			return res, nil
		case keyword("["):
			inner, err := p.array()
			if err != nil {
				return nil, err
			}
			res = append(res, inner)
		default:
			if _, isOp := tok.(keyword); isOp {
				return nil, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("operator %q inside array", tok)}
			}
			res = append(res, tok)
		}
	}
}

func (p *parser) token() (pdf.Object, error) {
	b, err := p.skipSpace()
	if err != nil {
		return nil, err
	}

	switch {
	case b == '(':
		return p.literalString()
	case b == '<':
		return p.hexString()
	case b == '/':
		word, err := p.word()
		if err != nil {
			return nil, err
		}
		return pdf.Name(decodeName(word)), nil
	case b == '[' || b == ']':
		return keyword(b), nil
	case isDelimiter(b):
		return nil, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("unexpected %q", b)}
	}

	p.unreadByte()
	word, err := p.word()
	if err != nil {
		return nil, err
	}
	if x, err := strconv.ParseInt(word, 10, 64); err == nil {
		return pdf.Integer(x), nil
	}
	if x, err := strconv.ParseFloat(word, 64); err == nil && isNumeric(word) {
		return pdf.Number(x), nil
	}
	switch word {
	case "true":
		return pdf.Bool(true), nil
	case "false":
		return pdf.Bool(false), nil
	}
	return keyword(word), nil
}

// skipSpace skips white space and comments, and returns the next byte.
func (p *parser) skipSpace() (byte, error) {
	inComment := false
	for {
		b, err := p.readByte()
		if err != nil {
			return 0, err
		}
		switch {
		case inComment:
			inComment = b != '\n' && b != '\r'
		case b == '%':
			inComment = true
		case !isSpace(b):
			return b, nil
		}
	}
}

func (p *parser) word() (string, error) {
	var buf []byte
	for {
		b, err := p.readByte()
		if err == io.EOF {
			break
		} else if err != nil {
			return "", err
		}
		if isSpace(b) || isDelimiter(b) {
			p.unreadByte()
			break
		}
		buf = append(buf, b)
	}
	return string(buf), nil
}

func (p *parser) literalString() (pdf.String, error) {
	var res []byte
	depth := 1
	for {
		b, err := p.readByte()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		switch b {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return pdf.String(res), nil
			}
		case '\\':
			b, err = p.readByte()
			if err != nil {
				return nil, unexpectedEOF(err)
			}
			switch b {
			case 'n':
				b = '\n'
			case 'r':
				b = '\r'
			case 't':
				b = '\t'
			case 'b':
				b = '\b'
			case 'f':
				b = '\f'
			case '\r', '\n':
				continue
			case '0', '1', '2', '3', '4', '5', '6', '7':
				b -= '0'
				for range 2 {
					c, err := p.readByte()
					if err != nil {
						return nil, unexpectedEOF(err)
					}
					if c < '0' || c > '7' {
						p.unreadByte()
						break
					}
					b = b*8 + c - '0'
				}
			}
		}
		res = append(res, b)
	}
}

func (p *parser) hexString() (pdf.String, error) {
	var digits []byte
	for {
		b, err := p.readByte()
		if err != nil {
			return nil, unexpectedEOF(err)
		}
		if b == '>' {
			break
		}
		if isSpace(b) {
			continue
		}
		v, ok := hexValue(b)
		if !ok {
			return nil, &ParseError{Pos: p.pos, Msg: fmt.Sprintf("invalid hex digit %q", b)}
		}
		digits = append(digits, v)
	}
	if len(digits)%2 != 0 {
		digits = append(digits, 0)
	}
	res := make(pdf.String, len(digits)/2)
	for i := range res {
		res[i] = digits[2*i]<<4 | digits[2*i+1]
	}
	return res, nil
}

// decodeName resolves #xx escapes in a name.
func decodeName(s string) string {
	var res []byte
	for i := 0; i < len(s); i++ {
		if s[i] == '#' && i+2 < len(s) {
			hi, ok1 := hexValue(s[i+1])
			lo, ok2 := hexValue(s[i+2])
			if ok1 && ok2 {
				res = append(res, hi<<4|lo)
				i += 2
				continue
			}
		}
		res = append(res, s[i])
	}
	return string(res)
}

func hexValue(b byte) (byte, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	}
	return 0, false
}

func isNumeric(s string) bool {
	for i, c := range []byte(s) {
		if (c == '+' || c == '-') && i == 0 || c == '.' || c >= '0' && c <= '9' {
			continue
		}
		return false
	}
	return true
}

func isSpace(b byte) bool {
	switch b {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelimiter(b byte) bool {
	switch b {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}
