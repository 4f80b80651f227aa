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

// Package generic imports CSV statements with a fixed five column layout.
package generic

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"

	"github.com/nkohl/pfennig/cmd/importer"
	"github.com/nkohl/pfennig/lib/moneymoney"
)

// CreateCmd creates the command.
func CreateCmd() *cobra.Command {
	var r runner
	cmd := &cobra.Command{
		Use:   "csv",
		Short: "Import a generic CSV statement",
		Long: `Import a generic CSV statement.

The file is UTF-8 with a header line and the columns date, payee, purpose,
amount and category. Dates are YYYY-MM-DD, amounts use a dot as the decimal
separator.`,

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
	p := parser{reader: csv.NewReader(f)}
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
	date column = iota
	payee
	purpose
	amount
	category
)

func (p *parser) parse() error {
	p.reader.TrimLeadingSpace = true
	p.reader.FieldsPerRecord = 5
	if err := p.readHeader(); err != nil {
		return err
	}
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

func (p *parser) readHeader() error {
	_, err := p.reader.Read()
	return err
}

func (p *parser) readBooking() error {
	rec, err := p.reader.Read()
	if err != nil {
		return err
	}
	day, err := time.Parse("2006-01-02", rec[date])
	if err != nil {
		return fmt.Errorf("invalid date in record %v: %w", rec, err)
	}
	value, err := decimal.NewFromString(rec[amount])
	if err != nil {
		return fmt.Errorf("invalid amount in record %v: %w", rec, err)
	}
	p.drafts = append(p.drafts, moneymoney.TransactionDraft{}.
		WithDate(day).
		WithPayee(rec[payee]).
		WithAmount(value).
		WithPurpose(rec[purpose]).
		WithCategory(rec[category]))
	return nil
}
