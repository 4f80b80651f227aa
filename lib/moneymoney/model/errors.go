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
	"fmt"
	"strings"
)

// MissingFieldError reports a required field absent from a record.
type MissingFieldError struct {
	Entity string
	Field  string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s: missing field %q", e.Entity, e.Field)
}

// TypeMismatchError reports a field whose value has the wrong type.
type TypeMismatchError struct {
	Entity string
	Field  string
	Want   string
	Got    string
}

func (e *TypeMismatchError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%s: expected %s, got %s", e.Entity, e.Want, e.Got)
	}
	return fmt.Sprintf("%s: field %q: expected %s, got %s", e.Entity, e.Field, e.Want, e.Got)
}

// UnknownCurrencyError reports a currency code outside the ISO 4217 table.
type UnknownCurrencyError struct {
	Entity string
	Field  string
	Code   string
}

func (e *UnknownCurrencyError) Error() string {
	return fmt.Sprintf("%s: field %q: unknown currency %q", e.Entity, e.Field, e.Code)
}

// CycleError reports a category which is reachable from itself through
// parent references.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("cyclic category hierarchy: %s", strings.Join(e.Path, " -> "))
}
