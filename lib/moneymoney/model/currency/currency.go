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

// Package currency provides the closed table of ISO 4217 currency codes.
// Values are only obtainable through Parse, so a validated Currency can be
// trusted everywhere downstream.
package currency

import (
	"fmt"

	xcurrency "golang.org/x/text/currency"
)

// Currency is an ISO 4217 currency.
type Currency struct {
	unit xcurrency.Unit
}

// Well-known currencies.
var (
	CHF = MustParse("CHF")
	EUR = MustParse("EUR")
	GBP = MustParse("GBP")
	USD = MustParse("USD")
)

// Parse looks up code in the ISO 4217 table.
func Parse(code string) (Currency, error) {
	unit, err := xcurrency.ParseISO(code)
	if err != nil {
		return Currency{}, fmt.Errorf("unknown currency %q", code)
	}
	return Currency{unit: unit}, nil
}

// MustParse looks up code and panics if it is not a valid ISO 4217 code.
func MustParse(code string) Currency {
	c, err := Parse(code)
	if err != nil {
		panic(err)
	}
	return c
}

// Code returns the three-letter code.
func (c Currency) Code() string {
	return c.unit.String()
}

func (c Currency) String() string {
	return c.Code()
}

// SEPA reports whether payment orders in this currency can be submitted
// through the SEPA schemes, which are euro-denominated.
func (c Currency) SEPA() bool {
	return c == EUR
}

// MarshalText implements encoding.TextMarshaler.
func (c Currency) MarshalText() ([]byte, error) {
	return []byte(c.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Currency) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
