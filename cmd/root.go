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

// Package cmd assembles the pfennig command line tool.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/commands"
	"github.com/nkohl/pfennig/cmd/web"
)

// CreateCmd creates the root command.
func CreateCmd(version string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pfennig",
		Short: "pfennig drives the MoneyMoney application from the command line",
		Long: `pfennig drives the MoneyMoney banking application from the command line.
It exports accounts, categories, transactions and portfolio positions,
books transactions into offline accounts, imports bank statements and
places payment orders into the outbox.

The application must be running and its database must be unlocked. All
data stays on this machine, pfennig talks to MoneyMoney through the
scripting bridge and to nothing else.`,
		Version: version,

		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().String("config", "", "config file (default is $XDG_CONFIG_HOME/pfennig/config.yaml)")
	cmd.PersistentFlags().String("application", "", `application bundle name (default is "MoneyMoney")`)
	cmd.PersistentFlags().String("osascript", "", "path of the osascript binary (default is looked up on the PATH)")
	cmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	cmd.PersistentFlags().Bool("experimental", false, "unlock the payment order commands")

	cmd.AddCommand(commands.CreateAccountsCommand())
	cmd.AddCommand(commands.CreateCategoriesCommand())
	cmd.AddCommand(commands.CreateTransactionsCommand())
	cmd.AddCommand(commands.CreatePortfolioCommand())
	cmd.AddCommand(commands.CreateAddCommand())
	cmd.AddCommand(commands.CreateSetCommand())
	cmd.AddCommand(commands.CreateTransferCommand())
	cmd.AddCommand(commands.CreateDebitCommand())
	cmd.AddCommand(commands.CreateImportCommand())
	cmd.AddCommand(web.CreateCmd())
	return cmd
}

// Execute runs the tool. This is called by main.main().
func Execute(version string) {
	cmd := CreateCmd(version)
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), err)
		os.Exit(1)
	}
}
