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

// Package dkb imports checking account statements of Deutsche Kreditbank.
package dkb

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding/charmap"

	"github.com/nkohl/pfennig/cmd/importer"
	"github.com/nkohl/pfennig/lib/moneymoney"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	cmd := &cobra.Command{
		Use:   "de.dkb",
		Short: "Import DKB checking account statements",
		Long:  `Download the CSV export ("Umsätze exportieren") from the DKB online banking.`,

		Args: cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

func init() {
	importer.RegisterImporter(CreateCmd)
}

type runner struct {
	account string
	dryRun  bool
	guess   bool
}

func (r *runner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.account, "account", "a", "", "target account (UUID, IBAN, account number or name)")
	cmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "print the commands instead of submitting them")
	cmd.Flags().BoolVar(&r.guess, "guess-category", false, "guess missing categories from past bookings")
	cmd.MarkFlagRequired("account")
}

func (r *runner) run(cmd *cobra.Command, args []string) (err error) {
	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	defer func() {
		err = multierr.Append(err, f.Close())
	}()
	// DKB exports are ISO 8859-1 encoded.
	p := parser{reader: csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(f))}
	if err := p.parse(); err != nil {
		return err
	}
	return importer.Book(cmd, r.account, p.drafts, r.dryRun, r.guess)
}

type parser struct {
	reader *csv.Reader
	drafts []moneymoney.TransactionDraft
}

type column int

const (
	buchungstag column = iota
	wertstellung
	buchungstext
	auftraggeber
	verwendungszweck
	kontonummer
	blz
	betrag
	gläubigerID
	mandatsreferenz
	kundenreferenz
)

func (p *parser) parse() error {
	p.reader.TrimLeadingSpace = true
	p.reader.Comma = ';'
	p.reader.FieldsPerRecord = -1
	if err := p.skipPreamble(); err != nil {
		return err
	}
	p.reader.FieldsPerRecord = 11
	for {
		err := p.readBooking()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

// skipPreamble reads up to the column header row. The export starts with an
// account metadata block of varying length.
func (p *parser) skipPreamble() error {
	for {
		rec, err := p.reader.Read()
		if err == io.EOF {
			return errors.New("no header row found")
		}
		if err != nil {
			return err
		}
		if len(rec) > 0 && rec[0] == "Buchungstag" {
			return nil
		}
	}
}

func (p *parser) readBooking() error {
	rec, err := p.reader.Read()
	if err != nil {
		return err
	}
	day, err := time.Parse("02.01.2006", rec[buchungstag])
	if err != nil {
		return fmt.Errorf("invalid booking date in record %v: %w", rec, err)
	}
	value, err := parseAmount(rec[betrag])
	if err != nil {
		return fmt.Errorf("invalid amount in record %v: %w", rec, err)
	}
	name := rec[auftraggeber]
	if name == "" {
		// Fee and interest rows carry no counterparty.
		name = rec[buchungstext]
	}
	p.drafts = append(p.drafts, moneymoney.TransactionDraft{}.
		WithDate(day).
		WithPayee(name).
		WithAmount(value).
		WithPurpose(rec[verwendungszweck]))
	return nil
}

// parseAmount reads a German formatted amount such as "-1.234,56".
func parseAmount(s string) (decimal.Decimal, error) {
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return decimal.NewFromString(s)
}
