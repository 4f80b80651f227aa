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

package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
)

// AccountType classifies an account. The application localizes type names in
// its exports; ParseAccountType folds the known spellings into the canonical
// ones below and carries anything else through unchanged.
type AccountType string

const (
	AccountTypeGroup            AccountType = "Account group"
	AccountTypeGiro             AccountType = "Giro account"
	AccountTypeSavings          AccountType = "Savings account"
	AccountTypeFixedTermDeposit AccountType = "Fixed term deposit"
	AccountTypeLoan             AccountType = "Loan account"
	AccountTypeCreditCard       AccountType = "Credit card"
	AccountTypeCash             AccountType = "Cash"
	AccountTypeOther            AccountType = "Other"
)

var localizedAccountTypes = map[string]AccountType{
	"Kontengruppe":   AccountTypeGroup,
	"Girokonto":      AccountTypeGiro,
	"Sparkonto":      AccountTypeSavings,
	"Festgeldanlage": AccountTypeFixedTermDeposit,
	"Darlehenskonto": AccountTypeLoan,
	"Kreditkarte":    AccountTypeCreditCard,
	"Bargeld":        AccountTypeCash,
	"Sonstige":       AccountTypeOther,
}

func ParseAccountType(s string) AccountType {
	if t, ok := localizedAccountTypes[s]; ok {
		return t
	}
	return AccountType(s)
}

// Balance is one amount held in an account. Accounts holding several
// currencies report one entry per currency.
type Balance struct {
	Amount   decimal.Decimal   `json:"amount"`
	Currency currency.Currency `json:"currency"`
}

// Account is a bank account or account group as exported by the application.
type Account struct {
	UUID          uuid.UUID         `json:"uuid"`
	Name          string            `json:"name"`
	Type          AccountType       `json:"type"`
	Currency      currency.Currency `json:"currency"`
	Balances      []Balance         `json:"balances"`
	Group         bool              `json:"group"`
	Portfolio     bool              `json:"portfolio"`
	AccountNumber string            `json:"accountNumber,omitempty"`
	BankCode      string            `json:"bankCode,omitempty"`
	Owner         string            `json:"owner,omitempty"`
	Indentation   int               `json:"indentation"`
	RefreshedAt   time.Time         `json:"refreshedAt,omitempty"`
	Icon          []byte            `json:"icon,omitempty"`
	Attributes    map[string]string `json:"attributes,omitempty"`
}

// Balance returns the primary balance, the first entry of the non-empty
// balance list.
func (a Account) Balance() Balance {
	return a.Balances[0]
}

// DecodeAccounts maps an exported account list. The first element that fails
// to map aborts the whole list.
func DecodeAccounts(n plist.Node) ([]Account, error) {
	a, ok := n.(plist.Array)
	if !ok {
		return nil, &TypeMismatchError{Entity: "account list", Want: "array", Got: plist.Type(n)}
	}
	accounts := make([]Account, 0, len(a))
	for i, el := range a {
		account, err := DecodeAccount(el)
		if err != nil {
			return nil, fmt.Errorf("account %d: %w", i, err)
		}
		accounts = append(accounts, account)
	}
	return accounts, nil
}

func DecodeAccount(n plist.Node) (Account, error) {
	r, err := newRecord("account", n)
	if err != nil {
		return Account{}, err
	}
	var account Account
	if account.UUID, err = r.uuid("uuid"); err != nil {
		return Account{}, err
	}
	if account.Name, err = r.string("name"); err != nil {
		return Account{}, err
	}
	typeName, err := r.string("type")
	if err != nil {
		return Account{}, err
	}
	account.Type = ParseAccountType(typeName)
	if account.Currency, err = r.currency("currency"); err != nil {
		return Account{}, err
	}
	if account.Balances, err = decodeBalances(r); err != nil {
		return Account{}, err
	}
	if account.Group, err = r.bool("group"); err != nil {
		return Account{}, err
	}
	if account.Portfolio, err = r.optBool("portfolio"); err != nil {
		return Account{}, err
	}
	if account.AccountNumber, err = r.optString("accountNumber"); err != nil {
		return Account{}, err
	}
	if account.BankCode, err = r.optString("bankCode"); err != nil {
		return Account{}, err
	}
	if account.Owner, err = r.optString("owner"); err != nil {
		return Account{}, err
	}
	indentation, err := r.integer("indentation")
	if err != nil {
		return Account{}, err
	}
	account.Indentation = int(indentation)
	if account.RefreshedAt, err = r.optTimestamp("refreshTimestamp"); err != nil {
		return Account{}, err
	}
	if account.Icon, err = r.optData("icon"); err != nil {
		return Account{}, err
	}
	if account.Attributes, err = r.optStringMap("attributes"); err != nil {
		return Account{}, err
	}
	return account, nil
}

// decodeBalances maps the balance field, a non-empty sequence of
// [amount, currency] pairs. An empty sequence counts as missing.
func decodeBalances(r record) ([]Balance, error) {
	a, err := r.array("balance")
	if err != nil {
		return nil, err
	}
	if len(a) == 0 {
		return nil, &MissingFieldError{Entity: r.entity, Field: "balance"}
	}
	balances := make([]Balance, 0, len(a))
	for _, el := range a {
		pair, ok := el.(plist.Array)
		if !ok {
			return nil, r.mismatch("balance", "array", el)
		}
		if len(pair) != 2 {
			return nil, &TypeMismatchError{
				Entity: r.entity,
				Field:  "balance",
				Want:   "pair of amount and currency",
				Got:    fmt.Sprintf("array of length %d", len(pair)),
			}
		}
		amount, err := r.toDecimal("balance", pair[0])
		if err != nil {
			return nil, err
		}
		code, ok := pair[1].(plist.String)
		if !ok {
			return nil, r.mismatch("balance", "string", pair[1])
		}
		c, err := currency.Parse(string(code))
		if err != nil {
			return nil, &UnknownCurrencyError{Entity: r.entity, Field: "balance", Code: string(code)}
		}
		balances = append(balances, Balance{Amount: amount, Currency: c})
	}
	return balances, nil
}
