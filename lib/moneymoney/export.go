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

package moneymoney

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/nkohl/pfennig/lib/moneymoney/model"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
	"github.com/nkohl/pfennig/lib/moneymoney/script"
)

// ExportTransactionsParams filters a transaction export. The zero value
// exports everything; each With method returns a modified copy, leaving the
// receiver untouched. Date bounds are calendar dates, any time of day is
// discarded.
type ExportTransactionsParams struct {
	from, to          time.Time
	account, category string
}

// WithFrom bounds the export to transactions booked on or after day.
func (p ExportTransactionsParams) WithFrom(day time.Time) ExportTransactionsParams {
	p.from = midnight(day)
	return p
}

// WithTo bounds the export to transactions booked on or before day.
func (p ExportTransactionsParams) WithTo(day time.Time) ExportTransactionsParams {
	p.to = midnight(day)
	return p
}

// WithAccount restricts the export to one account, identified by UUID,
// IBAN, account number or name.
func (p ExportTransactionsParams) WithAccount(identifier string) ExportTransactionsParams {
	p.account = identifier
	return p
}

// WithCategory restricts the export to one category, identified by UUID or
// name.
func (p ExportTransactionsParams) WithCategory(identifier string) ExportTransactionsParams {
	p.category = identifier
	return p
}

func (p ExportTransactionsParams) validate() error {
	if !p.from.IsZero() && !p.to.IsZero() && p.from.After(p.to) {
		return fmt.Errorf("from %s, to %s: %w",
			p.from.Format("2006-01-02"), p.to.Format("2006-01-02"), ErrDegenerateDateRange)
	}
	return nil
}

func (p ExportTransactionsParams) filter() script.TransactionsFilter {
	return script.TransactionsFilter{
		From:     p.from,
		To:       p.to,
		Account:  p.account,
		Category: p.category,
	}
}

// ExportPortfolioParams filters a portfolio export.
type ExportPortfolioParams struct {
	account, assetClass string
}

// WithAccount restricts the export to one portfolio account.
func (p ExportPortfolioParams) WithAccount(identifier string) ExportPortfolioParams {
	p.account = identifier
	return p
}

// WithAssetClass restricts the export to one asset class, by UUID or name.
func (p ExportPortfolioParams) WithAssetClass(identifier string) ExportPortfolioParams {
	p.assetClass = identifier
	return p
}

// ExportAccounts returns all accounts and account groups, in the sidebar's
// depth-first order. Empty application output means no accounts.
func (c *Client) ExportAccounts(ctx context.Context) ([]model.Account, error) {
	n, err := c.run(ctx, script.ExportAccounts())
	if err != nil {
		if errors.Is(err, plist.ErrEmpty) {
			return nil, nil
		}
		return nil, err
	}
	return model.DecodeAccounts(n)
}

// ExportCategories returns the category hierarchy as a flat, depth-first
// list with parents restored.
func (c *Client) ExportCategories(ctx context.Context) ([]model.Category, error) {
	n, err := c.run(ctx, script.ExportCategories())
	if err != nil {
		if errors.Is(err, plist.ErrEmpty) {
			return nil, nil
		}
		return nil, err
	}
	return model.DecodeCategories(n)
}

// ExportTransactions returns the transactions matching params. Filtering is
// done by the application; the result is passed on unfiltered, so
// application side and client side never disagree silently.
func (c *Client) ExportTransactions(ctx context.Context, params ExportTransactionsParams) (model.TransactionList, error) {
	if err := params.validate(); err != nil {
		return model.TransactionList{}, err
	}
	n, err := c.run(ctx, script.ExportTransactions(params.filter()))
	if err != nil {
		if errors.Is(err, plist.ErrEmpty) {
			return model.TransactionList{}, nil
		}
		return model.TransactionList{}, err
	}
	return model.DecodeTransactionList(n)
}

// ExportPortfolio returns the security positions matching params.
func (c *Client) ExportPortfolio(ctx context.Context, params ExportPortfolioParams) ([]model.Position, error) {
	n, err := c.run(ctx, script.ExportPortfolio(script.PortfolioFilter{
		Account:    params.account,
		AssetClass: params.assetClass,
	}))
	if err != nil {
		if errors.Is(err, plist.ErrEmpty) {
			return nil, nil
		}
		return nil, err
	}
	return model.DecodePositions(n)
}

// FindAccount locates an account by UUID, name, account number or IBAN.
// UUIDs compare case-insensitively, everything else exactly.
func FindAccount(accounts []model.Account, identifier string) (model.Account, bool) {
	for _, a := range accounts {
		switch {
		case strings.EqualFold(a.UUID.String(), identifier),
			a.Name == identifier,
			a.AccountNumber != "" && a.AccountNumber == identifier:
			return a, true
		}
	}
	return model.Account{}, false
}

// UnknownCategories returns the category identifiers referenced by the
// drafts that match no exported category, neither by UUID nor by name.
// Sorted and without duplicates.
func UnknownCategories(categories []model.Category, drafts []TransactionDraft) []string {
	known := make(map[string]bool, 2*len(categories))
	for _, c := range categories {
		known[c.Name] = true
		known[strings.ToLower(c.UUID.String())] = true
	}
	seen := make(map[string]bool)
	var unknown []string
	for _, d := range drafts {
		if d.category == "" || seen[d.category] {
			continue
		}
		seen[d.category] = true
		if known[d.category] || known[strings.ToLower(d.category)] {
			continue
		}
		unknown = append(unknown, d.category)
	}
	sort.Strings(unknown)
	return unknown
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
