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

package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/shopspring/decimal"
)

// TextRenderer renders a table as aligned text. Numbers are printed with
// thousands separators and rounded to Round digits; negative amounts are
// red and positive ones green when Color is set.
type TextRenderer struct {
	Color bool
	Round int32
}

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed)
)

// Render writes t to w.
func (r *TextRenderer) Render(t *Table, w io.Writer) error {
	color.NoColor = !r.Color

	widths := make([]int, t.Width())
	for _, row := range t.rows {
		for i, c := range row.cells {
			if l := r.minLength(c); widths[i] < l {
				widths[i] = l
			}
		}
	}
	for _, row := range t.rows {
		sep := len(row.cells) > 0 && row.cells[0].isSep()
		if sep {
			if _, err := io.WriteString(w, "+-"); err != nil {
				return err
			}
		} else {
			if _, err := io.WriteString(w, "| "); err != nil {
				return err
			}
		}
		for i, c := range row.cells {
			if err := r.renderCell(c, widths[i], w); err != nil {
				return err
			}
			if i < len(row.cells)-1 {
				if _, err := io.WriteString(w, joint(c, row.cells[i+1])); err != nil {
					return err
				}
			}
		}
		end := " |\n"
		if sep {
			end = "-+\n"
		}
		if _, err := io.WriteString(w, end); err != nil {
			return err
		}
	}
	_, err := io.WriteString(w, "\n")
	return err
}

func (r *TextRenderer) renderCell(c cell, width int, w io.Writer) error {
	switch t := c.(type) {

	case emptyCell:
		return writeSpace(w, width)

	case separatorCell:
		return writeRepeated(w, "-", width)

	case textCell:
		var before int
		switch t.Align {
		case Left:
			before = t.Indent
		case Right:
			before = width - utf8.RuneCountInString(t.Content)
		case Center:
			before = (width - utf8.RuneCountInString(t.Content)) / 2
		}
		if err := writeSpace(w, before); err != nil {
			return err
		}
		if _, err := io.WriteString(w, t.Content); err != nil {
			return err
		}
		return writeSpace(w, width-before-utf8.RuneCountInString(t.Content))

	case numberCell:
		return r.renderNumber(t.n, r.amount(t.n), width, w)

	case percentCell:
		return r.renderNumber(t.n, t.n.StringFixed(2)+"%", width, w)
	}
	return fmt.Errorf("%v is not a valid cell type", c)
}

// renderNumber writes s right-aligned, colored by the sign of n.
func (r *TextRenderer) renderNumber(n decimal.Decimal, s string, width int, w io.Writer) error {
	before := width - utf8.RuneCountInString(s)
	if err := writeSpace(w, before); err != nil {
		return err
	}
	var err error
	switch {
	case n.IsNegative():
		_, err = red.Fprint(w, s)
	case n.IsPositive():
		_, err = green.Fprint(w, s)
	default:
		_, err = fmt.Fprint(w, s)
	}
	return err
}

func (r *TextRenderer) minLength(c cell) int {
	switch t := c.(type) {
	case emptyCell, separatorCell:
		return 0
	case textCell:
		if t.Align == Left {
			return t.Indent + utf8.RuneCountInString(t.Content)
		}
		return utf8.RuneCountInString(t.Content)
	case numberCell:
		return utf8.RuneCountInString(r.amount(t.n))
	case percentCell:
		return utf8.RuneCountInString(t.n.StringFixed(2)) + 1
	}
	return 0
}

func (r *TextRenderer) amount(d decimal.Decimal) string {
	return addThousandsSep(d.StringFixed(r.Round))
}

func joint(c1, c2 cell) string {
	switch {
	case c1.isSep() && c2.isSep():
		return "-+-"
	case c1.isSep():
		return "-+ "
	case c2.isSep():
		return " +-"
	default:
		return " | "
	}
}

func writeRepeated(w io.Writer, s string, n int) error {
	for i := 0; i < n; i++ {
		if _, err := io.WriteString(w, s); err != nil {
			return err
		}
	}
	return nil
}

func writeSpace(w io.Writer, n int) error {
	return writeRepeated(w, " ", n)
}

func addThousandsSep(e string) string {
	index := strings.Index(e, ".")
	if index < 0 {
		index = len(e)
	}
	var (
		b  strings.Builder
		ok bool
	)
	for i, ch := range e {
		if i >= index && ch != '-' {
			b.WriteString(e[i:])
			break
		}
		if (index-i)%3 == 0 && ok {
			b.WriteRune(',')
		}
		b.WriteRune(ch)
		if unicode.IsDigit(ch) {
			ok = true
		}
	}
	return b.String()
}
