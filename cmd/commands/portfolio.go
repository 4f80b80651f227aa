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
	"github.com/nkohl/pfennig/lib/common/compare"
	"github.com/nkohl/pfennig/lib/common/table"
	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

// CreatePortfolioCommand creates the portfolio command.
func CreatePortfolioCommand() *cobra.Command {
	var r portfolioRunner
	cmd := &cobra.Command{
		Use:   "portfolio",
		Short: "List security positions",
		Long:  `List the security positions of the portfolio accounts, largest market value first.`,
		Args:  cobra.NoArgs,
		RunE:  r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type portfolioRunner struct {
	account    string
	assetClass string
	csv        bool
	color      bool
}

func (r *portfolioRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.account, "account", "", "limit to one portfolio account")
	cmd.Flags().StringVar(&r.assetClass, "asset-class", "", "limit to one asset class")
	cmd.Flags().BoolVar(&r.csv, "csv", false, "render as CSV")
	cmd.Flags().BoolVar(&r.color, "color", true, "print output in color")
}

func (r *portfolioRunner) run(cmd *cobra.Command, args []string) error {
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	var params moneymoney.ExportPortfolioParams
	if r.account != "" {
		params = params.WithAccount(r.account)
	}
	if r.assetClass != "" {
		params = params.WithAssetClass(r.assetClass)
	}
	positions, err := client.ExportPortfolio(cmd.Context(), params)
	if err != nil {
		return err
	}
	compare.Sort(positions, compare.Desc(
		func(p1, p2 model.Position) compare.Order { return compare.Decimal(p1.MarketValue, p2.MarketValue) },
	))
	return renderTable(portfolioTable(positions), r.csv, r.color, 2, cmd.OutOrStdout())
}

func portfolioTable(positions []model.Position) *table.Table {
	tbl := table.New(8)
	tbl.AddSeparatorRow()
	header := tbl.AddRow()
	header.AddText("Security", table.Left)
	header.AddText("ISIN", table.Center)
	header.AddText("Quantity", table.Center)
	header.AddText("Price", table.Center)
	header.AddText("Value", table.Center)
	header.AddText("Profit", table.Center)
	header.AddText("Profit %", table.Center)
	header.AddText("Currency", table.Center)
	tbl.AddSeparatorRow()
	for _, p := range positions {
		row := tbl.AddRow()
		row.AddText(p.Name, table.Left)
		row.AddText(p.ISIN, table.Left)
		row.AddNumber(p.Quantity)
		row.AddNullNumber(p.MarketPrice)
		row.AddNumber(p.MarketValue)
		row.AddNullNumber(p.Profit)
		row.AddPercent(p.ProfitPercent)
		row.AddText(p.Currency.Code(), table.Center)
	}
	tbl.AddSeparatorRow()
	return tbl
}
