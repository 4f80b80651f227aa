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

// Package plist decodes the XML property lists which MoneyMoney returns
// from its scripting interface. The decoder is strict: it accepts exactly
// the value elements Apple's plist format defines and reports anything
// else as a syntax error. Empty output is reported as ErrEmpty, distinct
// from an empty array or dict.
package plist

import (
	"time"

	"github.com/shopspring/decimal"
)

// Node is a single value of a decoded property list. The set of
// implementations is closed: Integer, Real, String, Boolean, Date, Data,
// Array and *Dict. Consumers switch over these and treat any unexpected
// variant as an error rather than coercing it.
type Node interface {
	node()
}

// Integer is a whole number.
type Integer int64

// Real is a decimal number. The value is parsed from the source text
// without a float64 intermediate, so monetary amounts keep their exact
// decimal representation.
type Real struct {
	decimal.Decimal
}

// String is a text value.
type String string

// Boolean is a truth value.
type Boolean bool

// Date is a point in time.
type Date struct {
	time.Time
}

// Data is a binary blob.
type Data []byte

// Array is an ordered sequence of nodes.
type Array []Node

// Dict is a keyed record. Keys are unique; their order is preserved as
// encountered in the source.
type Dict struct {
	keys   []string
	values map[string]Node
}

func (Integer) node() {}
func (Real) node()    {}
func (String) node()  {}
func (Boolean) node() {}
func (Date) node()    {}
func (Data) node()    {}
func (Array) node()   {}
func (*Dict) node()   {}

func newDict() *Dict {
	return &Dict{values: make(map[string]Node)}
}

func (d *Dict) set(key string, n Node) bool {
	if _, ok := d.values[key]; ok {
		return false
	}
	d.keys = append(d.keys, key)
	d.values[key] = n
	return true
}

// Get returns the node stored under key.
func (d *Dict) Get(key string) (Node, bool) {
	n, ok := d.values[key]
	return n, ok
}

// Keys returns the keys in source order.
func (d *Dict) Keys() []string {
	return d.keys
}

// Len returns the number of entries.
func (d *Dict) Len() int {
	return len(d.keys)
}

// Type names the variant of the given node, for use in error messages.
func Type(n Node) string {
	switch n.(type) {
	case Integer:
		return "integer"
	case Real:
		return "real"
	case String:
		return "string"
	case Boolean:
		return "boolean"
	case Date:
		return "date"
	case Data:
		return "data"
	case Array:
		return "array"
	case *Dict:
		return "dict"
	}
	return "unknown"
}
