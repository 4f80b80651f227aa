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

package moneymoney

import (
	"errors"
	"fmt"
)

// TransportError reports that the executor itself failed, as opposed to the
// application returning unusable data. The underlying message is preserved
// verbatim and never retried; an executor failure is never turned into an
// empty result.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport: %v", e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Validation errors, raised before any command is built. All of them are
// matchable with errors.Is even when several are reported at once.
var (
	ErrDegenerateDateRange  = errors.New("from date is after to date")
	ErrGroupAccountTarget   = errors.New("target account is a group account")
	ErrMissingTarget        = errors.New("target account is required")
	ErrMissingTransactionID = errors.New("transaction id is required")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrInvalidIBAN          = errors.New("invalid iban")
	ErrCurrencyNotSEPA      = errors.New("currency is not SEPA eligible")
	ErrExperimentalDisabled = errors.New("experimental operations are disabled")
)
