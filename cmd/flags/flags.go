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

package flags

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/pflag"

	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
)

// DateFlag manages a flag holding a calendar date.
type DateFlag time.Time

var _ pflag.Value = (*DateFlag)(nil)

func (tf DateFlag) String() string {
	if time.Time(tf).IsZero() {
		return ""
	}
	return time.Time(tf).Format("2006-01-02")
}

// Set implements pflag.Value.
func (tf *DateFlag) Set(v string) error {
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return err
	}
	*tf = DateFlag(t)
	return nil
}

// Type implements pflag.Value.
func (tf DateFlag) Type() string {
	return "YYYY-MM-DD"
}

// Value returns the flag value.
func (tf DateFlag) Value() time.Time {
	return time.Time(tf)
}

// IsSet reports whether the flag was given.
func (tf DateFlag) IsSet() bool {
	return !time.Time(tf).IsZero()
}

// CurrencyFlag manages a flag holding an ISO 4217 currency code.
type CurrencyFlag struct {
	cur currency.Currency
	set bool
}

var _ pflag.Value = (*CurrencyFlag)(nil)

func (cf CurrencyFlag) String() string {
	if !cf.set {
		return ""
	}
	return cf.cur.Code()
}

// Set implements pflag.Value.
func (cf *CurrencyFlag) Set(v string) error {
	cur, err := currency.Parse(v)
	if err != nil {
		return err
	}
	cf.cur = cur
	cf.set = true
	return nil
}

// Type implements pflag.Value.
func (cf CurrencyFlag) Type() string {
	return "CUR"
}

// ValueOr returns the flag value, or def when the flag was not given.
func (cf CurrencyFlag) ValueOr(def currency.Currency) currency.Currency {
	if !cf.set {
		return def
	}
	return cf.cur
}

// DecimalFlag manages a flag holding a decimal amount.
type DecimalFlag decimal.Decimal

var _ pflag.Value = (*DecimalFlag)(nil)

func (df DecimalFlag) String() string {
	return decimal.Decimal(df).String()
}

// Set implements pflag.Value.
func (df *DecimalFlag) Set(v string) error {
	d, err := decimal.NewFromString(v)
	if err != nil {
		return err
	}
	*df = DecimalFlag(d)
	return nil
}

// Type implements pflag.Value.
func (df DecimalFlag) Type() string {
	return "AMOUNT"
}

// Value returns the flag value.
func (df DecimalFlag) Value() decimal.Decimal {
	return decimal.Decimal(df)
}
