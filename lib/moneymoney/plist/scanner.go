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
	"fmt"
	"unicode/utf8"
)

// eof is a rune representing the end of the input.
const eof = rune(0)

// scanner walks the input rune by rune.
type scanner struct {
	text string

	// current contains the current rune
	current    rune
	currentLen int
	pos        int
}

func newScanner(text string) (*scanner, error) {
	s := &scanner{text: text}
	if err := s.advance(); err != nil {
		return nil, err
	}
	return s, nil
}

// offset returns the byte offset of the current rune.
func (s *scanner) offset() int {
	return s.pos
}

// advance reads a rune.
func (s *scanner) advance() error {
	s.pos += s.currentLen
	if s.pos == len(s.text) {
		s.current = eof
		s.currentLen = 0
		return nil
	}
	s.current, s.currentLen = utf8.DecodeRuneInString(s.text[s.pos:])
	if s.current == utf8.RuneError && s.currentLen == 1 {
		return fmt.Errorf("invalid UTF-8 encoding")
	}
	return nil
}

// readWhile consumes runes while the predicate holds and returns them.
func (s *scanner) readWhile(pred func(r rune) bool) (string, error) {
	start := s.pos
	for s.current != eof && pred(s.current) {
		if err := s.advance(); err != nil {
			return s.text[start:s.pos], err
		}
	}
	return s.text[start:s.pos], nil
}

// readWhile1 consumes runes while the predicate holds. The predicate must
// be satisfied at least once.
func (s *scanner) readWhile1(desc string, pred func(r rune) bool) (string, error) {
	if s.current == eof {
		return "", fmt.Errorf("expected %s, got end of input", desc)
	}
	if !pred(s.current) {
		return "", fmt.Errorf("expected %s, got %q", desc, s.current)
	}
	return s.readWhile(pred)
}

// readUntil consumes runes until the predicate holds, erroring out at the
// end of the input.
func (s *scanner) readUntil(pred func(r rune) bool) (string, error) {
	start := s.pos
	for !pred(s.current) {
		if s.current == eof {
			return s.text[start:s.pos], fmt.Errorf("unexpected end of input")
		}
		if err := s.advance(); err != nil {
			return s.text[start:s.pos], err
		}
	}
	return s.text[start:s.pos], nil
}

// readCharacter consumes the given rune.
func (s *scanner) readCharacter(r rune) error {
	if s.current != r {
		if s.current == eof {
			return fmt.Errorf("expected %q, got end of input", r)
		}
		return fmt.Errorf("expected %q, got %q", r, s.current)
	}
	return s.advance()
}

// readString consumes the given string.
func (s *scanner) readString(str string) error {
	start := s.pos
	for _, ch := range str {
		if s.current != ch {
			return fmt.Errorf("expected %q, got %q", str, s.text[start:s.pos+s.currentLen])
		}
		if err := s.advance(); err != nil {
			return err
		}
	}
	return nil
}
