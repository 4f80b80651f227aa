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
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/cmd/flags"
	"github.com/nkohl/pfennig/lib/moneymoney"
)

// CreateAddCommand creates the add command.
func CreateAddCommand() *cobra.Command {
	var r addRunner
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Book a transaction into an offline account",
		Long: `Book a new transaction into an offline account, such as a cash account.

MoneyMoney assigns the transaction id; it is printed when the application
reports it back.`,
		Args: cobra.NoArgs,
		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type addRunner struct {
	account   string
	date      flags.DateFlag
	payee     string
	amount    flags.DecimalFlag
	purpose   string
	category  string
	checkmark bool
	dryRun    bool
}

func (r *addRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&r.account, "account", "a", "", "target account (UUID, IBAN, account number or name)")
	cmd.Flags().Var(&r.date, "date", "booking date, today when omitted")
	cmd.Flags().StringVar(&r.payee, "payee", "", "payee name")
	cmd.Flags().Var(&r.amount, "amount", "signed amount in the account's currency")
	cmd.Flags().StringVar(&r.purpose, "purpose", "", "purpose text")
	cmd.Flags().StringVar(&r.category, "category", "", "category (UUID or name)")
	cmd.Flags().BoolVar(&r.checkmark, "checkmark", false, "set the checkmark")
	cmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "print the command instead of submitting it")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("payee")
	cmd.MarkFlagRequired("amount")
}

func (r *addRunner) run(cmd *cobra.Command, args []string) error {
	day := r.date.Value()
	if !r.date.IsSet() {
		day = time.Now()
	}
	draft := moneymoney.TransactionDraft{}.
		WithDate(day).
		WithPayee(r.payee).
		WithAmount(r.amount.Value()).
		WithPurpose(r.purpose).
		WithCategory(r.category).
		WithCheckmark(r.checkmark)
	if r.dryRun {
		cfg, err := config.FromCommand(cmd)
		if err != nil {
			return err
		}
		command, err := draft.WithTargetIdentifier(r.account).Command(cfg.ApplicationName())
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), command)
		return nil
	}
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	accounts, err := client.ExportAccounts(cmd.Context())
	if err != nil {
		return err
	}
	account, ok := moneymoney.FindAccount(accounts, r.account)
	if !ok {
		return fmt.Errorf("account %q not found", r.account)
	}
	receipt, err := client.AddTransaction(cmd.Context(), draft.WithTarget(account))
	if err != nil {
		return err
	}
	if receipt.TransactionID != nil {
		fmt.Fprintf(cmd.OutOrStdout(), "booked transaction %d\n", *receipt.TransactionID)
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "booked transaction")
	}
	return nil
}
