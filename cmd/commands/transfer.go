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

// CreateTransferCommand creates the transfer command.
func CreateTransferCommand() *cobra.Command {
	var r transferRunner
	cmd := &cobra.Command{
		Use:   "transfer",
		Short: "Place a SEPA credit transfer into the outbox",
		Long: `Place a SEPA credit transfer into MoneyMoney's payment outbox.

The order is not sent to the bank: it waits in the outbox until it is
confirmed in the application. The IBAN is checked locally before anything
is submitted. Requires the experimental flag, MoneyMoney documents the
payment commands as subject to change.`,
		Args: cobra.NoArgs,
		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type transferRunner struct {
	from        string
	to          string
	iban        string
	bic         string
	amount      flags.DecimalFlag
	currency    flags.CurrencyFlag
	purpose     string
	endToEnd    string
	purposeCode string
	instant     bool
	scheduled   flags.DateFlag
	dryRun      bool
}

func (r *transferRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&r.from, "from", "", "debited account (UUID, IBAN, account number or name)")
	cmd.Flags().StringVar(&r.to, "to", "", "recipient name")
	cmd.Flags().StringVar(&r.iban, "iban", "", "recipient IBAN")
	cmd.Flags().StringVar(&r.bic, "bic", "", "recipient BIC")
	cmd.Flags().Var(&r.amount, "amount", "amount to transfer")
	cmd.Flags().Var(&r.currency, "currency", "currency, EUR when omitted")
	cmd.Flags().StringVar(&r.purpose, "purpose", "", "purpose text")
	cmd.Flags().StringVar(&r.endToEnd, "endtoend", "", "SEPA end-to-end reference")
	cmd.Flags().StringVar(&r.purposeCode, "purpose-code", "", "SEPA purpose code, such as SALA")
	cmd.Flags().BoolVar(&r.instant, "instant", false, "request a SEPA instant payment")
	cmd.Flags().Var(&r.scheduled, "scheduled", "defer execution to this date")
	cmd.Flags().BoolVar(&r.dryRun, "dry-run", false, "print the command instead of submitting it")
	cmd.MarkFlagRequired("from")
	cmd.MarkFlagRequired("to")
	cmd.MarkFlagRequired("iban")
	cmd.MarkFlagRequired("amount")
}

func (r *transferRunner) order() moneymoney.TransferOrder {
	order := moneymoney.TransferOrder{
		FromAccount:   r.from,
		Payee:         r.to,
		IBAN:          r.iban,
		BIC:           r.bic,
		Amount:        r.amount.Value(),
		Currency:      r.currency.ValueOr(currency.EUR),
		Purpose:       r.purpose,
		EndToEndRef:   r.endToEnd,
		PurposeCode:   r.purposeCode,
		ScheduledDate: r.scheduled.Value(),
	}
	if r.instant {
		order.Instrument = moneymoney.TransferInstant
	}
	return order
}

func (r *transferRunner) run(cmd *cobra.Command, args []string) error {
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
	if err := client.CreateBankTransfer(cmd.Context(), r.order()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), "transfer placed into the outbox")
	return nil
}
