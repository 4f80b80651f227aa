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

// Package importer hosts the statement importers. Each importer registers
// its command constructor at init time and parses one statement format into
// transaction drafts.
package importer

import (
	"bufio"
	"context"
	"fmt"

	"github.com/cheggaaa/pb/v3"
	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"golang.org/x/sync/errgroup"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/lib/bayes"
	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

var importers []func() *cobra.Command

// RegisterImporter registers an importer constructor.
func RegisterImporter(f func() *cobra.Command) {
	importers = append(importers, f)
}

func GetImporters() []func() *cobra.Command {
	return importers
}

// Book books the drafts into the given offline account, or prints the
// commands it would submit when dryRun is set. With guess set, drafts
// without a category get one suggested from past bookings. The account is
// resolved once; bookings continue past individual failures and the errors
// are collected.
func Book(cmd *cobra.Command, account string, drafts []moneymoney.TransactionDraft, dryRun, guess bool) error {
	if dryRun {
		return printCommands(cmd, account, drafts, guess)
	}
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	var (
		accounts   []model.Account
		categories []model.Category
		guesser    *bayes.Model
	)
	g, ctx := errgroup.WithContext(cmd.Context())
	g.Go(func() error {
		var err error
		accounts, err = client.ExportAccounts(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = client.ExportCategories(ctx)
		return err
	})
	if guess {
		g.Go(func() error {
			var err error
			guesser, err = trainGuesser(ctx, client)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	if guesser != nil {
		drafts = moneymoney.GuessCategories(guesser, drafts)
	}
	target, ok := moneymoney.FindAccount(accounts, account)
	if !ok {
		return fmt.Errorf("account %q not found", account)
	}
	for _, name := range moneymoney.UnknownCategories(categories, drafts) {
		fmt.Fprintf(cmd.ErrOrStderr(), "note: category %q does not exist yet\n", name)
	}
	bar := pb.StartNew(len(drafts))
	var errs error
	for _, draft := range drafts {
		_, err := client.AddTransaction(cmd.Context(), draft.WithTarget(target))
		errs = multierr.Append(errs, err)
		bar.Increment()
	}
	bar.Finish()
	return errs
}

// printCommands renders the command each draft would submit, one per line.
// Guessing still queries the application, for the bookings to learn from.
func printCommands(cmd *cobra.Command, account string, drafts []moneymoney.TransactionDraft, guess bool) error {
	cfg, err := config.FromCommand(cmd)
	if err != nil {
		return err
	}
	if guess {
		client, _, err := config.Client(cmd)
		if err != nil {
			return err
		}
		guesser, err := trainGuesser(cmd.Context(), client)
		if err != nil {
			return err
		}
		drafts = moneymoney.GuessCategories(guesser, drafts)
	}
	w := bufio.NewWriter(cmd.OutOrStdout())
	defer w.Flush()
	for _, draft := range drafts {
		command, err := draft.WithTargetIdentifier(account).Command(cfg.ApplicationName())
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(w, command); err != nil {
			return err
		}
	}
	return nil
}

// trainGuesser trains a classifier on every categorized transaction in the
// database.
func trainGuesser(ctx context.Context, client *moneymoney.Client) (*bayes.Model, error) {
	export, err := client.ExportTransactions(ctx, moneymoney.ExportTransactionsParams{})
	if err != nil {
		return nil, err
	}
	m := bayes.NewModel()
	for _, t := range export.Transactions {
		m.Update(t.Category, t.Name, t.Purpose)
	}
	return m, nil
}
