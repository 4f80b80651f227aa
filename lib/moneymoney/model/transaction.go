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

// Transaction is a booked or pending transaction as exported by the
// application. CategoryUUID is nil for uncategorized transactions.
type Transaction struct {
	ID            int64             `json:"id"`
	AccountUUID   uuid.UUID         `json:"accountUuid"`
	BookingDate   time.Time         `json:"bookingDate"`
	ValueDate     time.Time         `json:"valueDate"`
	Amount        decimal.Decimal   `json:"amount"`
	Currency      currency.Currency `json:"currency"`
	Name          string            `json:"name"`
	AccountNumber string            `json:"accountNumber,omitempty"`
	BankCode      string            `json:"bankCode,omitempty"`
	Purpose       string            `json:"purpose,omitempty"`
	Category      string            `json:"category,omitempty"`
	CategoryUUID  *uuid.UUID        `json:"categoryUuid,omitempty"`
	Booked        bool              `json:"booked"`
	Checkmark     bool              `json:"checkmark"`
	Comment       string            `json:"comment,omitempty"`
}

// TransactionList is the envelope of a transaction export: the application's
// creator tag plus the matching transactions.
type TransactionList struct {
	Creator      string        `json:"creator"`
	Transactions []Transaction `json:"transactions"`
}

// DecodeTransactionList maps a transaction export. The envelope is a keyed
// record with a creator string and the transaction sequence.
func DecodeTransactionList(n plist.Node) (TransactionList, error) {
	r, err := newRecord("transaction list", n)
	if err != nil {
		return TransactionList{}, err
	}
	var list TransactionList
	if list.Creator, err = r.string("creator"); err != nil {
		return TransactionList{}, err
	}
	a, err := r.array("transactions")
	if err != nil {
		return TransactionList{}, err
	}
	list.Transactions = make([]Transaction, 0, len(a))
	for i, el := range a {
		transaction, err := DecodeTransaction(el)
		if err != nil {
			return TransactionList{}, fmt.Errorf("transaction %d: %w", i, err)
		}
		list.Transactions = append(list.Transactions, transaction)
	}
	return list, nil
}

func DecodeTransaction(n plist.Node) (Transaction, error) {
	r, err := newRecord("transaction", n)
	if err != nil {
		return Transaction{}, err
	}
	var transaction Transaction
	if transaction.ID, err = r.integer("id"); err != nil {
		return Transaction{}, err
	}
	if transaction.AccountUUID, err = r.uuid("accountUuid"); err != nil {
		return Transaction{}, err
	}
	if transaction.BookingDate, err = r.date("bookingDate"); err != nil {
		return Transaction{}, err
	}
	if transaction.ValueDate, err = r.date("valueDate"); err != nil {
		return Transaction{}, err
	}
	if transaction.Amount, err = r.decimal("amount"); err != nil {
		return Transaction{}, err
	}
	if transaction.Currency, err = r.currency("currency"); err != nil {
		return Transaction{}, err
	}
	if transaction.Name, err = r.string("name"); err != nil {
		return Transaction{}, err
	}
	if transaction.AccountNumber, err = r.optString("accountNumber"); err != nil {
		return Transaction{}, err
	}
	if transaction.BankCode, err = r.optString("bankCode"); err != nil {
		return Transaction{}, err
	}
	if transaction.Purpose, err = r.optString("purpose"); err != nil {
		return Transaction{}, err
	}
	if transaction.Category, err = r.optString("category"); err != nil {
		return Transaction{}, err
	}
	if transaction.CategoryUUID, err = r.optUUID("categoryUuid"); err != nil {
		return Transaction{}, err
	}
	if transaction.Booked, err = r.bool("booked"); err != nil {
		return Transaction{}, err
	}
	if transaction.Checkmark, err = r.bool("checkmark"); err != nil {
		return Transaction{}, err
	}
	if transaction.Comment, err = r.optString("comment"); err != nil {
		return Transaction{}, err
	}
	return transaction, nil
}
