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
	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/lib/common/table"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

// CreateAccountsCommand creates the accounts command.
func CreateAccountsCommand() *cobra.Command {
	var r accountsRunner
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and balances",
		Long:  `List the account sidebar with the balances MoneyMoney reported on its last refresh.`,
		Args:  cobra.NoArgs,
		RunE:  r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type accountsRunner struct {
	csv   bool
	color bool
}

func (r *accountsRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
	cmd.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *accountsRunner) run(cmd *cobra.Command, args []string) error {
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	accounts, err := client.ExportAccounts(cmd.Context())
	if err != nil {
		return err
	}
	return renderTable(accountsTable(accounts), r.csv, r.color, 2, cmd.OutOrStdout())
}

// accountsTable lays out accounts the way the sidebar shows them, one row
// per account, indented by group depth. Only the primary balance is shown;
// multi-currency accounts keep their full balance list in the JSON and CSV
// exports.
func accountsTable(accounts []model.Account) *table.Table {
	tbl := table.New(4)
	tbl.AddSeparatorRow()
	header := tbl.AddRow()
	header.AddText("Account", table.Left)
	header.AddText("Type", table.Center)
	header.AddText("Currency", table.Center)
	header.AddText("Balance", table.Center)
	tbl.AddSeparatorRow()
	for _, a := range accounts {
		row := tbl.AddRow()
		row.AddIndented(a.Name, a.Indentation)
		row.AddText(string(a.Type), table.Left)
		row.AddText(a.Balance().Currency.Code(), table.Center)
		row.AddNumber(a.Balance().Amount)
	}
	tbl.AddSeparatorRow()
	return tbl
}
