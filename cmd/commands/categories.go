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

// CreateCategoriesCommand creates the categories command.
func CreateCategoriesCommand() *cobra.Command {
	var r categoriesRunner
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the category tree",
		Long:  `List the category tree with the budgets configured in MoneyMoney.`,
		Args:  cobra.NoArgs,
		RunE:  r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type categoriesRunner struct {
	csv   bool
	color bool
}

func (r *categoriesRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
	cmd.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *categoriesRunner) run(cmd *cobra.Command, args []string) error {
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	categories, err := client.ExportCategories(cmd.Context())
	if err != nil {
		return err
	}
	return renderTable(categoriesTable(categories), r.csv, r.color, 2, cmd.OutOrStdout())
}

func categoriesTable(categories []model.Category) *table.Table {
	tbl := table.New(5)
	tbl.AddSeparatorRow()
	header := tbl.AddRow()
	header.AddText("Category", table.Left)
	header.AddText("Currency", table.Center)
	header.AddText("Period", table.Center)
	header.AddText("Budget", table.Center)
	header.AddText("Available", table.Center)
	tbl.AddSeparatorRow()
	for _, c := range categories {
		row := tbl.AddRow()
		row.AddIndented(c.Name, c.Indentation)
		row.AddText(c.Currency.Code(), table.Center)
		if c.Budget == nil {
			row.FillEmpty()
			continue
		}
		row.AddText(string(c.Budget.Period), table.Center)
		row.AddNumber(c.Budget.Amount)
		row.AddNumber(c.Budget.Available)
	}
	tbl.AddSeparatorRow()
	return tbl
}
