// Copyright 2023 Niklas Kohl
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plist

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// ErrEmpty is returned when the input contains no property list at all.
// The application returns empty output to mean "no data", which is
// distinct from a plist containing an empty array or dict.
var ErrEmpty = errors.New("empty property list")

// SyntaxError reports malformed property list input.
type SyntaxError struct {
	Offset int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("malformed property list at offset %d: %s", e.Offset, e.Msg)
}

// Decode parses text as an XML property list document and returns its root
// node. Whitespace-only input and documents whose <plist> element has no
// child yield ErrEmpty; any other deviation from the format yields a
// *SyntaxError.
func Decode(text string) (Node, error) {
	s, err := newScanner(text)
	if err != nil {
		return nil, &SyntaxError{Offset: 0, Msg: err.Error()}
	}
	p := parser{scanner: s}
	return p.parse()
}

type parser struct {
	*scanner
}

func (p *parser) parse() (Node, error) {
	if err := p.space(); err != nil {
		return nil, err
	}
	if p.current == eof {
		return nil, ErrEmpty
	}
	// Prolog: an XML declaration and a doctype, both optional.
	for {
		if err := p.readCharacter('<'); err != nil {
			return nil, p.wrap(err)
		}
		if p.current != '?' && p.current != '!' {
			break
		}
		if _, err := p.readUntil(func(r rune) bool { return r == '>' }); err != nil {
			return nil, p.wrap(err)
		}
		if err := p.readCharacter('>'); err != nil {
			return nil, p.wrap(err)
		}
		if err := p.space(); err != nil {
			return nil, err
		}
	}
	name, selfClosed, err := p.tagRest()
	if err != nil {
		return nil, err
	}
	if name != "plist" {
		return nil, p.errorf("expected <plist>, got <%s>", name)
	}
	if selfClosed {
		return nil, ErrEmpty
	}
	if err := p.space(); err != nil {
		return nil, err
	}
	if err := p.readCharacter('<'); err != nil {
		return nil, p.wrap(err)
	}
	if p.current == '/' {
		if err := p.closeTagRest("plist"); err != nil {
			return nil, err
		}
		return nil, ErrEmpty
	}
	root, err := p.element()
	if err != nil {
		return nil, err
	}
	if err := p.space(); err != nil {
		return nil, err
	}
	if err := p.readCharacter('<'); err != nil {
		return nil, p.wrap(err)
	}
	if err := p.closeTagRest("plist"); err != nil {
		return nil, err
	}
	if err := p.space(); err != nil {
		return nil, err
	}
	if p.current != eof {
		return nil, p.errorf("unexpected content after </plist>")
	}
	return root, nil
}

// element parses one value element. The leading '<' has been consumed and
// the current rune is the first rune of the element name.
func (p *parser) element() (Node, error) {
	name, selfClosed, err := p.tagRest()
	if err != nil {
		return nil, err
	}
	switch name {
	case "integer":
		text, err := p.leafText(name, selfClosed)
		if err != nil {
			return nil, err
		}
		i, err := strconv.ParseInt(strings.TrimSpace(text), 10, 64)
		if err != nil {
			return nil, p.errorf("invalid integer %q", text)
		}
		return Integer(i), nil

	case "real":
		text, err := p.leafText(name, selfClosed)
		if err != nil {
			return nil, err
		}
		d, err := decimal.NewFromString(strings.TrimSpace(text))
		if err != nil {
			return nil, p.errorf("invalid real %q", text)
		}
		return Real{d}, nil

	case "string":
		text, err := p.leafText(name, selfClosed)
		if err != nil {
			return nil, err
		}
		return String(text), nil

	case "true", "false":
		if !selfClosed {
			return nil, p.errorf("expected self-closing <%s/>", name)
		}
		return Boolean(name == "true"), nil

	case "date":
		text, err := p.leafText(name, selfClosed)
		if err != nil {
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, strings.TrimSpace(text))
		if err != nil {
			return nil, p.errorf("invalid date %q", text)
		}
		return Date{t}, nil

	case "data":
		text, err := p.leafText(name, selfClosed)
		if err != nil {
			return nil, err
		}
		stripped := strings.Map(func(r rune) rune {
			if unicode.IsSpace(r) {
				return -1
			}
			return r
		}, text)
		b, err := base64.StdEncoding.DecodeString(stripped)
		if err != nil {
			return nil, p.errorf("invalid base64 data")
		}
		return Data(b), nil

	case "array":
		return p.array(selfClosed)

	case "dict":
		return p.dict(selfClosed)
	}
	return nil, p.errorf("unknown element <%s>", name)
}

func (p *parser) array(selfClosed bool) (Node, error) {
	arr := Array{}
	if selfClosed {
		return arr, nil
	}
	for {
		if err := p.space(); err != nil {
			return nil, err
		}
		if err := p.readCharacter('<'); err != nil {
			return nil, p.wrap(err)
		}
		if p.current == '/' {
			if err := p.closeTagRest("array"); err != nil {
				return nil, err
			}
			return arr, nil
		}
		child, err := p.element()
		if err != nil {
			return nil, err
		}
		arr = append(arr, child)
	}
}

func (p *parser) dict(selfClosed bool) (Node, error) {
	d := newDict()
	if selfClosed {
		return d, nil
	}
	for {
		if err := p.space(); err != nil {
			return nil, err
		}
		if err := p.readCharacter('<'); err != nil {
			return nil, p.wrap(err)
		}
		if p.current == '/' {
			if err := p.closeTagRest("dict"); err != nil {
				return nil, err
			}
			return d, nil
		}
		name, sc, err := p.tagRest()
		if err != nil {
			return nil, err
		}
		if name != "key" {
			return nil, p.errorf("expected <key>, got <%s>", name)
		}
		var key string
		if !sc {
			if key, err = p.text(); err != nil {
				return nil, err
			}
			if err := p.readCharacter('<'); err != nil {
				return nil, p.wrap(err)
			}
			if err := p.closeTagRest("key"); err != nil {
				return nil, err
			}
		}
		if err := p.space(); err != nil {
			return nil, err
		}
		if err := p.readCharacter('<'); err != nil {
			return nil, p.wrap(err)
		}
		if p.current == '/' {
			return nil, p.errorf("missing value for key %q", key)
		}
		value, err := p.element()
		if err != nil {
			return nil, err
		}
		if !d.set(key, value) {
			return nil, p.errorf("duplicate key %q", key)
		}
	}
}

// tagRest parses an element name, skips over any attributes and consumes
// the closing '>'. It reports whether the tag was self-closing.
func (p *parser) tagRest() (string, bool, error) {
	name, err := p.readWhile1("an element name", isNameRune)
	if err != nil {
		return "", false, p.wrap(err)
	}
	rest, err := p.readUntil(func(r rune) bool { return r == '>' })
	if err != nil {
		return name, false, p.wrap(err)
	}
	if err := p.readCharacter('>'); err != nil {
		return name, false, p.wrap(err)
	}
	return name, strings.HasSuffix(strings.TrimSpace(rest), "/"), nil
}

// closeTagRest parses a closing tag for the named element. The leading '<'
// has been consumed and the current rune is '/'.
func (p *parser) closeTagRest(name string) error {
	if err := p.readCharacter('/'); err != nil {
		return p.wrap(err)
	}
	if err := p.readString(name); err != nil {
		return p.wrap(err)
	}
	return p.wrap(p.readCharacter('>'))
}

// leafText parses the text content and closing tag of a scalar element.
func (p *parser) leafText(name string, selfClosed bool) (string, error) {
	if selfClosed {
		return "", nil
	}
	text, err := p.text()
	if err != nil {
		return "", err
	}
	if err := p.readCharacter('<'); err != nil {
		return "", p.wrap(err)
	}
	if err := p.closeTagRest(name); err != nil {
		return "", err
	}
	return text, nil
}

// text reads character data up to the next '<', decoding entity
// references.
func (p *parser) text() (string, error) {
	var b strings.Builder
	for {
		switch p.current {
		case eof:
			return "", p.errorf("unexpected end of input in text content")
		case '<':
			return b.String(), nil
		case '&':
			r, err := p.entity()
			if err != nil {
				return "", err
			}
			b.WriteRune(r)
		default:
			b.WriteRune(p.current)
			if err := p.advance(); err != nil {
				return "", p.wrap(err)
			}
		}
	}
}

// entity decodes one entity reference, with the current rune at '&'.
func (p *parser) entity() (rune, error) {
	if err := p.readCharacter('&'); err != nil {
		return 0, p.wrap(err)
	}
	ref, err := p.readUntil(func(r rune) bool { return r == ';' || r == '<' })
	if err != nil {
		return 0, p.wrap(err)
	}
	if err := p.readCharacter(';'); err != nil {
		return 0, p.wrap(err)
	}
	switch ref {
	case "lt":
		return '<', nil
	case "gt":
		return '>', nil
	case "amp":
		return '&', nil
	case "quot":
		return '"', nil
	case "apos":
		return '\'', nil
	}
	if strings.HasPrefix(ref, "#") {
		digits := ref[1:]
		base := 10
		if strings.HasPrefix(digits, "x") || strings.HasPrefix(digits, "X") {
			digits, base = digits[1:], 16
		}
		n, err := strconv.ParseUint(digits, base, 32)
		if err == nil && utf8.ValidRune(rune(n)) {
			return rune(n), nil
		}
	}
	return 0, p.errorf("invalid entity reference &%s;", ref)
}

func isNameRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r)
}

func (p *parser) space() error {
	_, err := p.readWhile(unicode.IsSpace)
	return p.wrap(err)
}

func (p *parser) errorf(format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{Offset: p.offset(), Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) wrap(err error) error {
	if err == nil {
		return nil
	}
	var serr *SyntaxError
	if errors.As(err, &serr) {
		return err
	}
	return &SyntaxError{Offset: p.offset(), Msg: err.Error()}
}
