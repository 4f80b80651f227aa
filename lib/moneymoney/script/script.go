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

// Package script renders typed requests into the one-line AppleScript
// commands MoneyMoney documents for its scripting interface. Verb spellings
// and clause keywords follow the application's API byte for byte. Rendering
// is a total function: any value representable by the parameter types
// produces a command.
package script

import (
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Command is a single scripting call. Commands are built by the
// per-operation constructors below and rendered with Render.
type Command struct {
	verb    string
	clauses []clause
	export  bool
}

// Render produces the full command line addressed to the named application.
func (c *Command) Render(application string) string {
	var b strings.Builder
	b.WriteString(`tell application "`)
	b.WriteString(escape(application))
	b.WriteString(`" to `)
	b.WriteString(c.verb)
	for _, cl := range c.clauses {
		b.WriteByte(' ')
		b.WriteString(cl.keyword)
		if cl.value != "" {
			b.WriteByte(' ')
			b.WriteString(cl.value)
		}
	}
	if c.export {
		b.WriteString(` as "plist"`)
	}
	return b.String()
}

type clause struct {
	keyword string
	value   string
}

func (c *Command) add(cl clause) {
	c.clauses = append(c.clauses, cl)
}

// quoted renders a string literal, escaping backslashes and double quotes.
func quoted(keyword, value string) clause {
	return clause{keyword: keyword, value: `"` + escape(value) + `"`}
}

// bare renders a value without quotes: numbers and enumeration tokens.
func bare(keyword, value string) clause {
	return clause{keyword: keyword, value: value}
}

// onDate renders a calendar date literal.
func onDate(keyword string, t time.Time) clause {
	return quoted(keyword, t.Format("2006-01-02"))
}

// amount renders a decimal with full precision.
func amount(keyword string, d decimal.Decimal) clause {
	return bare(keyword, d.String())
}

func checkmark(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func escape(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return strings.ReplaceAll(s, `"`, `\"`)
}

// ExportAccounts requests the flat account list.
func ExportAccounts() *Command {
	return &Command{verb: "export accounts", export: true}
}

// ExportCategories requests the flat category list.
func ExportCategories() *Command {
	return &Command{verb: "export categories", export: true}
}

// TransactionsFilter narrows an export transactions command. Zero fields
// are omitted from the command entirely; an absent date bound means
// unbounded on that side.
type TransactionsFilter struct {
	From     time.Time
	To       time.Time
	Account  string
	Category string
}

func ExportTransactions(f TransactionsFilter) *Command {
	c := &Command{verb: "export transactions", export: true}
	if !f.From.IsZero() {
		c.add(onDate("from date", f.From))
	}
	if !f.To.IsZero() {
		c.add(onDate("to date", f.To))
	}
	if f.Account != "" {
		c.add(quoted("from account", f.Account))
	}
	if f.Category != "" {
		c.add(quoted("from category", f.Category))
	}
	return c
}

// PortfolioFilter narrows an export portfolio command.
type PortfolioFilter struct {
	Account    string
	AssetClass string
}

func ExportPortfolio(f PortfolioFilter) *Command {
	c := &Command{verb: "export portfolio", export: true}
	if f.Account != "" {
		c.add(quoted("from account", f.Account))
	}
	if f.AssetClass != "" {
		c.add(quoted("from asset class", f.AssetClass))
	}
	return c
}

// NewTransaction is the payload of an add transaction command. The
// application assigns the id, so none is carried here.
type NewTransaction struct {
	Account   string
	Date      time.Time
	Payee     string
	Amount    decimal.Decimal
	Purpose   string
	Category  string
	Checkmark bool
}

func AddTransaction(tx NewTransaction) *Command {
	c := &Command{verb: "add transaction"}
	c.add(quoted("to account", tx.Account))
	c.add(onDate("on date", tx.Date))
	c.add(quoted("to", tx.Payee))
	c.add(amount("amount", tx.Amount))
	if tx.Purpose != "" {
		c.add(quoted("purpose", tx.Purpose))
	}
	if tx.Category != "" {
		c.add(quoted("category", tx.Category))
	}
	c.add(quoted("checkmark", checkmark(tx.Checkmark)))
	return c
}

// TransactionChange is the payload of a set transaction command. All three
// mutable fields are always rendered; the command replaces the stored
// values wholesale.
type TransactionChange struct {
	ID        int64
	Checkmark bool
	Category  string
	Comment   string
}

func SetTransaction(ch TransactionChange) *Command {
	c := &Command{verb: "set transaction"}
	c.add(bare("id", strconv.FormatInt(ch.ID, 10)))
	c.add(quoted("checkmark to", checkmark(ch.Checkmark)))
	c.add(quoted("category to", ch.Category))
	c.add(quoted("comment to", ch.Comment))
	return c
}

// Transfer is the payload of a create bank transfer command. The order is
// always placed into the outbox rather than opening a payment window.
type Transfer struct {
	Account       string
	Payee         string
	IBAN          string
	BIC           string
	Amount        decimal.Decimal
	Purpose       string
	EndToEndRef   string
	PurposeCode   string
	Instrument    string
	ScheduledDate time.Time
}

func CreateBankTransfer(tr Transfer) *Command {
	c := &Command{verb: "create bank transfer"}
	c.add(quoted("from account", tr.Account))
	c.add(quoted("to", tr.Payee))
	c.add(quoted("iban", tr.IBAN))
	if tr.BIC != "" {
		c.add(quoted("bic", tr.BIC))
	}
	c.add(amount("amount", tr.Amount))
	if tr.Purpose != "" {
		c.add(quoted("purpose", tr.Purpose))
	}
	if tr.EndToEndRef != "" {
		c.add(quoted("endtoend reference", tr.EndToEndRef))
	}
	if tr.PurposeCode != "" {
		c.add(quoted("purpose code", tr.PurposeCode))
	}
	c.add(quoted("instrument code", tr.Instrument))
	if !tr.ScheduledDate.IsZero() {
		c.add(onDate("scheduled date", tr.ScheduledDate))
	}
	c.add(bare("into", "outbox"))
	return c
}

// DirectDebit is the payload of a create direct debit command.
type DirectDebit struct {
	Account       string
	Debtor        string
	IBAN          string
	BIC           string
	Amount        decimal.Decimal
	Purpose       string
	EndToEndRef   string
	MandateRef    string
	MandateDate   time.Time
	Sequence      string
	Instrument    string
	ScheduledDate time.Time
}

func CreateDirectDebit(d DirectDebit) *Command {
	c := &Command{verb: "create direct debit"}
	c.add(quoted("from account", d.Account))
	c.add(quoted("for", d.Debtor))
	c.add(quoted("iban", d.IBAN))
	if d.BIC != "" {
		c.add(quoted("bic", d.BIC))
	}
	c.add(amount("amount", d.Amount))
	if d.Purpose != "" {
		c.add(quoted("purpose", d.Purpose))
	}
	if d.EndToEndRef != "" {
		c.add(quoted("endtoend reference", d.EndToEndRef))
	}
	c.add(quoted("mandate reference", d.MandateRef))
	c.add(onDate("mandate date", d.MandateDate))
	c.add(quoted("sequence code", d.Sequence))
	c.add(quoted("instrument code", d.Instrument))
	if !d.ScheduledDate.IsZero() {
		c.add(onDate("scheduled date", d.ScheduledDate))
	}
	c.add(bare("into", "outbox"))
	return c
}
