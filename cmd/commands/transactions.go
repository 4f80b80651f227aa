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

package commands

import (
	"bytes"
	"strconv"

	"github.com/natefinch/atomic"
	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/cmd/flags"
	"github.com/nkohl/pfennig/lib/common/compare"
	"github.com/nkohl/pfennig/lib/common/table"
	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

// CreateTransactionsCommand creates the transactions command.
func CreateTransactionsCommand() *cobra.Command {
	var r transactionsRunner
	cmd := &cobra.Command{
		Use:   "transactions",
		Short: "List transactions",
		Long: `List transactions within a booking date range, ordered by booking date.

Both bounds are inclusive and default to MoneyMoney's export defaults when
omitted. The account and category filters take a UUID, an IBAN, an account
number or a name.`,
		Args: cobra.NoArgs,
		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type transactionsRunner struct {
	from, to flags.DateFlag
	account  string
	category string
	csv      bool
	color    bool
	out      string
}

func (r *transactionsRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().Var(&r.from, "from", "first booking date to include")
	cmd.Flags().Var(&r.to, "to", "last booking date to include")
	cmd.Flags().StringVar(&r.account, "account", "", "limit to one account")
	cmd.Flags().StringVar(&r.category, "category", "", "limit to one category")
	cmd.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
	cmd.Flags().BoolVar(&r.color, "color", true, "print output in color")
	cmd.Flags().StringVarP(&r.out, "out", "o", "", "write to a file instead of stdout")
}

func (r *transactionsRunner) run(cmd *cobra.Command, args []string) error {
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	var params moneymoney.ExportTransactionsParams
	if r.from.IsSet() {
		params = params.WithFrom(r.from.Value())
	}
	if r.to.IsSet() {
		params = params.WithTo(r.to.Value())
	}
	if r.account != "" {
		params = params.WithAccount(r.account)
	}
	if r.category != "" {
		params = params.WithCategory(r.category)
	}
	list, err := client.ExportTransactions(cmd.Context(), params)
	if err != nil {
		return err
	}
	compare.Sort(list.Transactions, compare.Combine(
		func(t1, t2 model.Transaction) compare.Order { return compare.Time(t1.BookingDate, t2.BookingDate) },
		func(t1, t2 model.Transaction) compare.Order { return compare.Ordered(t1.ID, t2.ID) },
	))
	tbl := transactionsTable(list.Transactions)
	if r.out != "" {
		var buf bytes.Buffer
		if err := renderTable(tbl, r.csv, false, 2, &buf); err != nil {
			return err
		}
		return atomic.WriteFile(r.out, &buf)
	}
	return renderTable(tbl, r.csv, r.color, 2, cmd.OutOrStdout())
}

// transactionsTable lists transactions with their ids, so that a row can be
// addressed by the set command afterwards.
func transactionsTable(transactions []model.Transaction) *table.Table {
	tbl := table.New(7)
	tbl.AddSeparatorRow()
	header := tbl.AddRow()
	header.AddText("ID", table.Center)
	header.AddText("Date", table.Center)
	header.AddText("Payee", table.Left)
	header.AddText("Purpose", table.Left)
	header.AddText("Category", table.Left)
	header.AddText("Amount", table.Center)
	header.AddText("Currency", table.Center)
	tbl.AddSeparatorRow()
	for _, t := range transactions {
		row := tbl.AddRow()
		row.AddText(strconv.FormatInt(t.ID, 10), table.Right)
		row.AddText(t.BookingDate.Format("2006-01-02"), table.Left)
		row.AddText(t.Name, table.Left)
		row.AddText(t.Purpose, table.Left)
		row.AddText(t.Category, table.Left)
		row.AddNumber(t.Amount)
		row.AddText(t.Currency.Code(), table.Center)
	}
	tbl.AddSeparatorRow()
	return tbl
}
