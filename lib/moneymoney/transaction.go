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
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/nkohl/pfennig/lib/moneymoney/model"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
	"github.com/nkohl/pfennig/lib/moneymoney/script"
)

// TransactionDraft is a new transaction for an offline account. A draft
// carries no id; MoneyMoney assigns one when it books the transaction. Each
// With method returns a modified copy.
type TransactionDraft struct {
	target      string
	targetGroup bool
	resolved    bool
	date        time.Time
	payee       string
	amount      decimal.Decimal
	purpose     string
	category    string
	checkmark   bool
}

// WithTarget books into a previously exported account. Group accounts are
// rejected at validation time.
func (d TransactionDraft) WithTarget(account model.Account) TransactionDraft {
	d.target = account.UUID.String()
	d.targetGroup = account.Group
	d.resolved = true
	return d
}

// WithTargetIdentifier books into an account the caller has not resolved,
// identified by UUID, IBAN, account number or name. Whether the target is a
// group account cannot be checked locally in this case.
func (d TransactionDraft) WithTargetIdentifier(identifier string) TransactionDraft {
	d.target = identifier
	d.targetGroup = false
	d.resolved = false
	return d
}

// WithDate sets the booking date.
func (d TransactionDraft) WithDate(day time.Time) TransactionDraft {
	d.date = midnight(day)
	return d
}

// WithPayee sets the payee name.
func (d TransactionDraft) WithPayee(name string) TransactionDraft {
	d.payee = name
	return d
}

// WithAmount sets the amount. Negative amounts are expenses.
func (d TransactionDraft) WithAmount(amount decimal.Decimal) TransactionDraft {
	d.amount = amount
	return d
}

// WithPurpose sets the purpose text.
func (d TransactionDraft) WithPurpose(text string) TransactionDraft {
	d.purpose = text
	return d
}

// WithCategory assigns a category, by UUID or name.
func (d TransactionDraft) WithCategory(identifier string) TransactionDraft {
	d.category = identifier
	return d
}

// WithCheckmark sets the checkmark flag.
func (d TransactionDraft) WithCheckmark(on bool) TransactionDraft {
	d.checkmark = on
	return d
}

func (d TransactionDraft) validate() error {
	var errs error
	if d.target == "" {
		errs = multierr.Append(errs, ErrMissingTarget)
	}
	if d.resolved && d.targetGroup {
		errs = multierr.Append(errs, ErrGroupAccountTarget)
	}
	if d.date.IsZero() {
		errs = multierr.Append(errs, errors.New("booking date is required"))
	}
	if d.payee == "" {
		errs = multierr.Append(errs, errors.New("payee name is required"))
	}
	if d.amount.IsZero() {
		errs = multierr.Append(errs, fmt.Errorf("amount must not be zero: %w", ErrInvalidAmount))
	}
	return errs
}

func (d TransactionDraft) payload() script.NewTransaction {
	return script.NewTransaction{
		Account:   d.target,
		Date:      d.date,
		Payee:     d.payee,
		Amount:    d.amount,
		Purpose:   d.purpose,
		Category:  d.category,
		Checkmark: d.checkmark,
	}
}

// Command renders the command AddTransaction would submit for the draft,
// without submitting it. The draft is validated first.
func (d TransactionDraft) Command(application string) (string, error) {
	if err := d.validate(); err != nil {
		return "", err
	}
	return script.AddTransaction(d.payload()).Render(application), nil
}

// A CategoryGuesser suggests a category for a booking, based on its payee
// and purpose. An empty suggestion means the guesser has no opinion.
type CategoryGuesser interface {
	Infer(texts ...string) string
}

// GuessCategories returns a copy of drafts in which every empty category is
// replaced by the guesser's suggestion. Drafts that already carry a category
// keep it.
func GuessCategories(g CategoryGuesser, drafts []TransactionDraft) []TransactionDraft {
	res := make([]TransactionDraft, len(drafts))
	for i, d := range drafts {
		if d.category == "" {
			if category := g.Infer(d.payee, d.purpose); category != "" {
				d = d.WithCategory(category)
			}
		}
		res[i] = d
	}
	return res
}

// TransactionUpdate replaces the mutable fields of an existing transaction.
// All three fields are always sent: leaving one at its zero value clears
// the stored value rather than keeping it. Callers replacing a single field
// must first export the transaction and carry the other fields over.
type TransactionUpdate struct {
	ID        int64
	Checkmark bool
	Category  string
	Comment   string
}

// Receipt acknowledges an added transaction. TransactionID is set when the
// application echoes the new id; otherwise the caller must re-export to
// observe the booked record.
type Receipt struct {
	TransactionID *int64
}

// AddTransaction books a draft into an offline account. The draft is
// validated before any command is built. Empty application output is an
// error here: a write must be acknowledged, and a silently dropped one must
// not look like success.
func (c *Client) AddTransaction(ctx context.Context, draft TransactionDraft) (Receipt, error) {
	if err := draft.validate(); err != nil {
		return Receipt{}, err
	}
	n, err := c.run(ctx, script.AddTransaction(draft.payload()))
	if err != nil {
		if errors.Is(err, plist.ErrEmpty) {
			return Receipt{}, fmt.Errorf("add transaction was not acknowledged: %w", err)
		}
		return Receipt{}, err
	}
	return decodeReceipt(n)
}

// decodeReceipt accepts the acknowledgment shapes the application is known
// to produce: a keyed record carrying the new id, or a bare scalar marker.
func decodeReceipt(n plist.Node) (Receipt, error) {
	switch v := n.(type) {
	case *plist.Dict:
		idNode, ok := v.Get("id")
		if !ok {
			return Receipt{}, nil
		}
		i, ok := idNode.(plist.Integer)
		if !ok {
			return Receipt{}, &model.TypeMismatchError{
				Entity: "acknowledgment", Field: "id", Want: "integer", Got: plist.Type(idNode),
			}
		}
		id := int64(i)
		return Receipt{TransactionID: &id}, nil
	case plist.Boolean, plist.Integer, plist.String:
		return Receipt{}, nil
	default:
		return Receipt{}, &model.TypeMismatchError{
			Entity: "acknowledgment", Want: "dict or scalar marker", Got: plist.Type(n),
		}
	}
}

// SetTransaction replaces the checkmark, category and comment of the
// transaction identified by update.ID. The full field set is sent on every
// call; see TransactionUpdate for the clearing contract.
func (c *Client) SetTransaction(ctx context.Context, update TransactionUpdate) error {
	if update.ID == 0 {
		return ErrMissingTransactionID
	}
	_, err := c.run(ctx, script.SetTransaction(script.TransactionChange{
		ID:        update.ID,
		Checkmark: update.Checkmark,
		Category:  update.Category,
		Comment:   update.Comment,
	}))
	if errors.Is(err, plist.ErrEmpty) {
		return nil
	}
	return err
}
