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

package model

import (
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
)

// record wraps a keyed plist node with typed field accessors. Every
// accessor reports absent required fields as *MissingFieldError and wrong
// node types as *TypeMismatchError, naming the entity and field.
type record struct {
	entity string
	dict   *plist.Dict
}

func newRecord(entity string, n plist.Node) (record, error) {
	d, ok := n.(*plist.Dict)
	if !ok {
		return record{}, &TypeMismatchError{Entity: entity, Want: "dict", Got: plist.Type(n)}
	}
	return record{entity: entity, dict: d}, nil
}

func (r record) field(name string) (plist.Node, error) {
	n, ok := r.dict.Get(name)
	if !ok {
		return nil, &MissingFieldError{Entity: r.entity, Field: name}
	}
	return n, nil
}

func (r record) mismatch(field, want string, got plist.Node) error {
	return &TypeMismatchError{Entity: r.entity, Field: field, Want: want, Got: plist.Type(got)}
}

func (r record) string(field string) (string, error) {
	n, err := r.field(field)
	if err != nil {
		return "", err
	}
	s, ok := n.(plist.String)
	if !ok {
		return "", r.mismatch(field, "string", n)
	}
	return string(s), nil
}

// optString returns the empty string when the field is absent.
func (r record) optString(field string) (string, error) {
	if _, ok := r.dict.Get(field); !ok {
		return "", nil
	}
	return r.string(field)
}

func (r record) bool(field string) (bool, error) {
	n, err := r.field(field)
	if err != nil {
		return false, err
	}
	b, ok := n.(plist.Boolean)
	if !ok {
		return false, r.mismatch(field, "boolean", n)
	}
	return bool(b), nil
}

// optBool returns false when the field is absent.
func (r record) optBool(field string) (bool, error) {
	if _, ok := r.dict.Get(field); !ok {
		return false, nil
	}
	return r.bool(field)
}

func (r record) integer(field string) (int64, error) {
	n, err := r.field(field)
	if err != nil {
		return 0, err
	}
	i, ok := n.(plist.Integer)
	if !ok {
		return 0, r.mismatch(field, "integer", n)
	}
	return int64(i), nil
}

// optInteger returns zero when the field is absent.
func (r record) optInteger(field string) (int64, error) {
	if _, ok := r.dict.Get(field); !ok {
		return 0, nil
	}
	return r.integer(field)
}

// decimal accepts both real and integer nodes; the application emits whole
// amounts either way.
func (r record) decimal(field string) (decimal.Decimal, error) {
	n, err := r.field(field)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return r.toDecimal(field, n)
}

// optDecimal reports absence through the Valid flag.
func (r record) optDecimal(field string) (decimal.NullDecimal, error) {
	n, ok := r.dict.Get(field)
	if !ok {
		return decimal.NullDecimal{}, nil
	}
	d, err := r.toDecimal(field, n)
	if err != nil {
		return decimal.NullDecimal{}, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, nil
}

func (r record) toDecimal(field string, n plist.Node) (decimal.Decimal, error) {
	switch v := n.(type) {
	case plist.Real:
		return v.Decimal, nil
	case plist.Integer:
		return decimal.NewFromInt(int64(v)), nil
	}
	return decimal.Decimal{}, r.mismatch(field, "real", n)
}

// date returns the calendar date of a date field, truncating any
// time-of-day component.
func (r record) date(field string) (time.Time, error) {
	t, err := r.timestamp(field)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func (r record) timestamp(field string) (time.Time, error) {
	n, err := r.field(field)
	if err != nil {
		return time.Time{}, err
	}
	d, ok := n.(plist.Date)
	if !ok {
		return time.Time{}, r.mismatch(field, "date", n)
	}
	return d.Time, nil
}

// optTimestamp returns the zero time when the field is absent.
func (r record) optTimestamp(field string) (time.Time, error) {
	if _, ok := r.dict.Get(field); !ok {
		return time.Time{}, nil
	}
	return r.timestamp(field)
}

func (r record) uuid(field string) (uuid.UUID, error) {
	s, err := r.string(field)
	if err != nil {
		return uuid.UUID{}, err
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, &TypeMismatchError{Entity: r.entity, Field: field, Want: "uuid", Got: strconv.Quote(s)}
	}
	return id, nil
}

// optUUID returns nil when the field is absent or empty.
func (r record) optUUID(field string) (*uuid.UUID, error) {
	s, err := r.optString(field)
	if err != nil {
		return nil, err
	}
	if s == "" {
		return nil, nil
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return nil, &TypeMismatchError{Entity: r.entity, Field: field, Want: "uuid", Got: strconv.Quote(s)}
	}
	return &id, nil
}

func (r record) currency(field string) (currency.Currency, error) {
	s, err := r.string(field)
	if err != nil {
		return currency.Currency{}, err
	}
	c, err := currency.Parse(s)
	if err != nil {
		return currency.Currency{}, &UnknownCurrencyError{Entity: r.entity, Field: field, Code: s}
	}
	return c, nil
}

func (r record) array(field string) (plist.Array, error) {
	n, err := r.field(field)
	if err != nil {
		return nil, err
	}
	a, ok := n.(plist.Array)
	if !ok {
		return nil, r.mismatch(field, "array", n)
	}
	return a, nil
}

// optData returns nil when the field is absent.
func (r record) optData(field string) ([]byte, error) {
	n, ok := r.dict.Get(field)
	if !ok {
		return nil, nil
	}
	d, ok := n.(plist.Data)
	if !ok {
		return nil, r.mismatch(field, "data", n)
	}
	return []byte(d), nil
}

// optDict returns nil when the field is absent.
func (r record) optDict(field string) (*plist.Dict, error) {
	n, ok := r.dict.Get(field)
	if !ok {
		return nil, nil
	}
	d, ok := n.(*plist.Dict)
	if !ok {
		return nil, r.mismatch(field, "dict", n)
	}
	return d, nil
}

// optStringMap decodes a dict of string values, as used for custom account
// attributes.
func (r record) optStringMap(field string) (map[string]string, error) {
	d, err := r.optDict(field)
	if err != nil || d == nil {
		return nil, err
	}
	m := make(map[string]string, d.Len())
	for _, key := range d.Keys() {
		n, _ := d.Get(key)
		s, ok := n.(plist.String)
		if !ok {
			return nil, r.mismatch(field+"."+key, "string", n)
		}
		m[key] = string(s)
	}
	return m, nil
}
