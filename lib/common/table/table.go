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

// Package table renders listings of accounts, categories, transactions and
// portfolio positions as aligned text or CSV.
package table

import (
	"github.com/shopspring/decimal"
)

// Table is a matrix of cells with a fixed width.
type Table struct {
	width int
	rows  []*Row
}

// New creates a table with the given number of columns.
func New(width int) *Table {
	return &Table{width: width}
}

// Width returns the number of columns.
func (t *Table) Width() int {
	return t.width
}

// AddRow adds a row. Cells are appended to it left to right.
func (t *Table) AddRow() *Row {
	row := &Row{cells: make([]cell, 0, t.width)}
	t.rows = append(t.rows, row)
	return row
}

// AddSeparatorRow adds a horizontal rule.
func (t *Table) AddSeparatorRow() {
	row := t.AddRow()
	for i := 0; i < t.width; i++ {
		row.addCell(separatorCell{})
	}
}

// Row is a table row.
type Row struct {
	cells []cell
}

func (r *Row) addCell(c cell) {
	r.cells = append(r.cells, c)
}

// AddText adds an aligned text cell.
func (r *Row) AddText(content string, align Alignment) *Row {
	r.addCell(textCell{Content: content, Align: align})
	return r
}

// AddIndented adds a left-aligned text cell indented by two spaces per
// level, matching the sidebar depth of the exported records.
func (r *Row) AddIndented(content string, level int) *Row {
	r.addCell(textCell{Content: content, Align: Left, Indent: 2 * level})
	return r
}

// AddNumber adds a numeric cell. Text rendering colors it by sign.
func (r *Row) AddNumber(n decimal.Decimal) *Row {
	r.addCell(numberCell{n})
	return r
}

// AddNullNumber adds a numeric cell that renders empty when n is not set.
func (r *Row) AddNullNumber(n decimal.NullDecimal) *Row {
	if !n.Valid {
		return r.AddEmpty()
	}
	return r.AddNumber(n.Decimal)
}

// AddPercent adds a percentage cell that renders empty when n is not set.
func (r *Row) AddPercent(n decimal.NullDecimal) *Row {
	if !n.Valid {
		return r.AddEmpty()
	}
	r.addCell(percentCell{n.Decimal})
	return r
}

// AddEmpty adds an empty cell.
func (r *Row) AddEmpty() *Row {
	r.addCell(emptyCell{})
	return r
}

// FillEmpty pads the row with empty cells up to the table width.
func (r *Row) FillEmpty() {
	for i := len(r.cells); i < cap(r.cells); i++ {
		r.AddEmpty()
	}
}

// Alignment is the alignment of a text cell.
type Alignment int

const (
	// Left aligns to the left.
	Left Alignment = iota
	// Right aligns to the right.
	Right
	// Center centers.
	Center
)

type cell interface {
	isSep() bool
}

type textCell struct {
	Content string
	Align   Alignment
	Indent  int
}

func (textCell) isSep() bool { return false }

type numberCell struct {
	n decimal.Decimal
}

func (numberCell) isSep() bool { return false }

type percentCell struct {
	n decimal.Decimal
}

func (percentCell) isSep() bool { return false }

type separatorCell struct{}

func (separatorCell) isSep() bool { return true }

type emptyCell struct{}

func (emptyCell) isSep() bool { return false }
