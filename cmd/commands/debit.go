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

	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/cmd/flags"
	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
)

// CreateDebitCommand creates the debit command.
func CreateDebitCommand() *cobra.Command {
	var r debitRunner
	cmd := &cobra.Command{
		Use:   "debit",
		Short: "Place a SEPA direct debit into the outbox",
		Long: `Place a SEPA direct debit into MoneyMoney's payment outbox, collecting
from the debtor into the creditor's account.

The order waits in the outbox until it is confirmed in the application.
Requires the experimental flag, MoneyMoney documents the payment commands
as subject to change.`,
		Args: cobra.NoArgs,
		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type debitRunner struct {
	account     string
	debtor      string
	iban        string
	bic         string
	amount      flags.DecimalFlag
	currency    flags.CurrencyFlag
	purpose     string
	endToEnd    string
	mandate     string
	mandateDate flags.DateFlag
	sequence    string
	instrument  string
	scheduled   flags.DateFlag
	dryRun      bool
}

func (r *debitRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.account, "account", "", "collecting account (UUID, IBAN, account number or name)")
	cmd.Flags().StringVar(&r.debtor, "debtor", "", "debtor name")
	cmd.Flags().StringVar(&r.iban, "iban", "", "debtor IBAN")
	cmd.Flags().StringVar(&r.bic, "bic", "", "debtor BIC")
	cmd.Flags().Var(&r.amount, "amount", "amount to collect")
	cmd.Flags().Var(&r.currency, "currency", "currency, EUR when omitted")
	cmd.Flags().StringVar(&r.purpose, "purpose", "", "purpose text")
	cmd.Flags().StringVar(&r.endToEnd, "endtoend", "", "SEPA end-to-end reference")
	cmd.Flags().StringVar(&r.mandate, "mandate", "", "mandate reference")
	cmd.Flags().Var(&r.mandateDate, "mandate-date", "day the mandate was signed")
	cmd.Flags().StringVar(&r.sequence, "sequence", "", "sequence code: FRST, RCUR, FNAL or OOFF (default)")
	cmd.Flags().StringVar(&r.instrument, "instrument", "", "instrument code: CORE (default) or B2B")
	cmd.Flags().Var(&r.scheduled, "scheduled", "defer collection to this date")
	cmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "print the command instead of submitting it")
	cmd.MarkFlagRequired("account")
	cmd.MarkFlagRequired("debtor")
	cmd.MarkFlagRequired("iban")
	cmd.MarkFlagRequired("amount")
	cmd.MarkFlagRequired("mandate")
	cmd.MarkFlagRequired("mandate-date")
}

func (r *debitRunner) order() moneymoney.DirectDebitOrder {
	return moneymoney.DirectDebitOrder{
		CreditorAccount: r.account,
		Debtor:          r.debtor,
		IBAN:            r.iban,
		BIC:             r.bic,
		Amount:          r.amount.Value(),
		Currency:        r.currency.ValueOr(currency.EUR),
		Purpose:         r.purpose,
		EndToEndRef:     r.endToEnd,
		MandateRef:      r.mandate,
		MandateDate:     r.mandateDate.Value(),
		Sequence:        moneymoney.SequenceCode(r.sequence),
		Instrument:      moneymoney.DebitInstrument(r.instrument),
		ScheduledDate:   r.scheduled.Value(),
	}
}

func (r *debitRunner) run(cmd *cobra.Command, args []string) error {
	if r.dryRun {
		cfg, err := config.FromCommand(cmd)
		if err != nil {
			return err
		}
		command, err := r.order().Command(cfg.ApplicationName())
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
	if err := client.CreateDirectDebit(cmd.Context(), r.order()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "direct debit placed into the outbox")
	return nil
}
