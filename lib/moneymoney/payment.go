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
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/nkohl/pfennig/lib/iban"
	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
	"github.com/nkohl/pfennig/lib/moneymoney/script"
)

// TransferInstrument is the SEPA local instrument of a bank transfer.
type TransferInstrument string

const (
	// TransferStandard is an ordinary SEPA credit transfer.
	TransferStandard TransferInstrument = "TRF"
	// TransferInstant is a SEPA instant payment.
	TransferInstant TransferInstrument = "INST"
)

// DebitInstrument is the SEPA direct debit scheme.
type DebitInstrument string

const (
	// DebitCore is the consumer scheme.
	DebitCore DebitInstrument = "CORE"
	// DebitB2B is the business-to-business scheme.
	DebitB2B DebitInstrument = "B2B"
)

// SequenceCode positions a direct debit within its mandate.
type SequenceCode string

const (
	SequenceFirst     SequenceCode = "FRST"
	SequenceRecurring SequenceCode = "RCUR"
	SequenceFinal     SequenceCode = "FNAL"
	SequenceOneOff    SequenceCode = "OOFF"
)

// TransferOrder is a SEPA credit transfer placed into MoneyMoney's outbox.
// The application does not return a confirmed copy; a nil error means the
// order was accepted into the outbox, nothing more.
type TransferOrder struct {
	// FromAccount identifies the debited account by UUID, IBAN, account
	// number or name.
	FromAccount string
	// Payee is the recipient's name.
	Payee string
	// IBAN is the recipient's account. It is normalized and checked
	// locally before any command is built.
	IBAN string
	// BIC is optional for SEPA reachable banks.
	BIC string
	// Amount must be strictly positive.
	Amount decimal.Decimal
	// Currency must be SEPA eligible.
	Currency currency.Currency
	Purpose  string
	// EndToEndRef is the SEPA end-to-end reference.
	EndToEndRef string
	// PurposeCode is the SEPA purpose code, such as "SALA".
	PurposeCode string
	// Instrument defaults to TransferStandard.
	Instrument TransferInstrument
	// ScheduledDate defers execution; the zero value executes immediately.
	ScheduledDate time.Time
}

func (o TransferOrder) validate() error {
	var errs error
	if o.FromAccount == "" {
		errs = multierr.Append(errs, errors.New("from account is required"))
	}
	if o.Payee == "" {
		errs = multierr.Append(errs, errors.New("payee name is required"))
	}
	errs = multierr.Append(errs, validateIBAN(o.IBAN))
	errs = multierr.Append(errs, validatePositive(o.Amount))
	errs = multierr.Append(errs, validateSEPACurrency(o.Currency))
	switch o.Instrument {
	case "", TransferStandard, TransferInstant:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown instrument code %q", o.Instrument))
	}
	return errs
}

// DirectDebitOrder is a SEPA direct debit placed into MoneyMoney's outbox,
// collecting from the debtor into the creditor's account.
type DirectDebitOrder struct {
	// CreditorAccount identifies the collecting account.
	CreditorAccount string
	// Debtor is the name of the account holder being charged.
	Debtor string
	// IBAN is the debtor's account.
	IBAN string
	BIC  string
	// Amount must be strictly positive.
	Amount decimal.Decimal
	// Currency must be SEPA eligible.
	Currency currency.Currency
	Purpose  string
	// EndToEndRef is the SEPA end-to-end reference.
	EndToEndRef string
	// MandateRef identifies the signed mandate. Required.
	MandateRef string
	// MandateDate is the day the mandate was signed. Required.
	MandateDate time.Time
	// Sequence defaults to SequenceOneOff.
	Sequence SequenceCode
	// Instrument defaults to DebitCore.
	Instrument DebitInstrument
	// ScheduledDate defers collection; the zero value collects at the
	// earliest date the scheme permits.
	ScheduledDate time.Time
}

func (o DirectDebitOrder) validate() error {
	var errs error
	if o.CreditorAccount == "" {
		errs = multierr.Append(errs, errors.New("creditor account is required"))
	}
	if o.Debtor == "" {
		errs = multierr.Append(errs, errors.New("debtor name is required"))
	}
	errs = multierr.Append(errs, validateIBAN(o.IBAN))
	errs = multierr.Append(errs, validatePositive(o.Amount))
	errs = multierr.Append(errs, validateSEPACurrency(o.Currency))
	if o.MandateRef == "" {
		errs = multierr.Append(errs, errors.New("mandate reference is required"))
	}
	if o.MandateDate.IsZero() {
		errs = multierr.Append(errs, errors.New("mandate date is required"))
	}
	switch o.Sequence {
	case "", SequenceFirst, SequenceRecurring, SequenceFinal, SequenceOneOff:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown sequence code %q", o.Sequence))
	}
	switch o.Instrument {
	case "", DebitCore, DebitB2B:
	default:
		errs = multierr.Append(errs, fmt.Errorf("unknown instrument code %q", o.Instrument))
	}
	return errs
}

func (o TransferOrder) payload() script.Transfer {
	instrument := o.Instrument
	if instrument == "" {
		instrument = TransferStandard
	}
	return script.Transfer{
		Account:       o.FromAccount,
		Payee:         o.Payee,
		IBAN:          iban.Normalize(o.IBAN),
		BIC:           o.BIC,
		Amount:        o.Amount,
		Purpose:       o.Purpose,
		EndToEndRef:   o.EndToEndRef,
		PurposeCode:   o.PurposeCode,
		Instrument:    string(instrument),
		ScheduledDate: o.ScheduledDate,
	}
}

// Command renders the command CreateBankTransfer would submit for the
// order, without submitting it. The order is validated first.
func (o TransferOrder) Command(application string) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	return script.CreateBankTransfer(o.payload()).Render(application), nil
}

// CreateBankTransfer places a transfer order into the outbox. The order is
// validated locally first: rejecting a bad IBAN here avoids an ambiguous
// half-submitted state in the application. Requires WithExperimental.
func (c *Client) CreateBankTransfer(ctx context.Context, order TransferOrder) error {
	if !c.experimental {
		return ErrExperimentalDisabled
	}
	if err := order.validate(); err != nil {
		return err
	}
	_, err := c.run(ctx, script.CreateBankTransfer(order.payload()))
	if errors.Is(err, plist.ErrEmpty) {
		return nil
	}
	return err
}

func (o DirectDebitOrder) payload() script.DirectDebit {
	sequence := o.Sequence
	if sequence == "" {
		sequence = SequenceOneOff
	}
	instrument := o.Instrument
	if instrument == "" {
		instrument = DebitCore
	}
	return script.DirectDebit{
		Account:       o.CreditorAccount,
		Debtor:        o.Debtor,
		IBAN:          iban.Normalize(o.IBAN),
		BIC:           o.BIC,
		Amount:        o.Amount,
		Purpose:       o.Purpose,
		EndToEndRef:   o.EndToEndRef,
		MandateRef:    o.MandateRef,
		MandateDate:   o.MandateDate,
		Sequence:      string(sequence),
		Instrument:    string(instrument),
		ScheduledDate: o.ScheduledDate,
	}
}

// Command renders the command CreateDirectDebit would submit for the
// order, without submitting it. The order is validated first.
func (o DirectDebitOrder) Command(application string) (string, error) {
	if err := o.validate(); err != nil {
		return "", err
	}
	return script.CreateDirectDebit(o.payload()).Render(application), nil
}

// CreateDirectDebit places a direct debit order into the outbox. Requires
// WithExperimental.
func (c *Client) CreateDirectDebit(ctx context.Context, order DirectDebitOrder) error {
	if !c.experimental {
		return ErrExperimentalDisabled
	}
	if err := order.validate(); err != nil {
		return err
	}
	_, err := c.run(ctx, script.CreateDirectDebit(order.payload()))
	if errors.Is(err, plist.ErrEmpty) {
		return nil
	}
	return err
}

func validateIBAN(s string) error {
	if !iban.Valid(iban.Normalize(s)) {
		return fmt.Errorf("iban %q: %w", s, ErrInvalidIBAN)
	}
	return nil
}

func validatePositive(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount %s must be strictly positive: %w", amount, ErrInvalidAmount)
	}
	return nil
}

func validateSEPACurrency(c currency.Currency) error {
	if !c.SEPA() {
		return fmt.Errorf("currency %q: %w", c, ErrCurrencyNotSEPA)
	}
	return nil
}
