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

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
)

// Position is a security position of a portfolio account.
type Position struct {
	UUID          uuid.UUID           `json:"uuid"`
	Name          string              `json:"name"`
	ISIN          string              `json:"isin,omitempty"`
	WKN           string              `json:"wkn,omitempty"`
	Symbol        string              `json:"symbol,omitempty"`
	Quantity      decimal.Decimal     `json:"quantity"`
	AccountUUID   uuid.UUID           `json:"accountUuid"`
	AccountName   string              `json:"accountName,omitempty"`
	MarketPrice   decimal.NullDecimal `json:"marketPrice,omitempty"`
	Currency      currency.Currency   `json:"currency"`
	MarketValue   decimal.Decimal     `json:"marketValue"`
	PurchasePrice decimal.NullDecimal `json:"purchasePrice,omitempty"`
	PurchaseValue decimal.NullDecimal `json:"purchaseValue,omitempty"`
	Profit        decimal.NullDecimal `json:"profit,omitempty"`
	ProfitPercent decimal.NullDecimal `json:"profitPercent,omitempty"`
	AssetClass    string              `json:"assetClass,omitempty"`
}

// DecodePositions maps a portfolio export, a keyed record holding the
// security sequence.
func DecodePositions(n plist.Node) ([]Position, error) {
	r, err := newRecord("portfolio", n)
	if err != nil {
		return nil, err
	}
	a, err := r.array("securities")
	if err != nil {
		return nil, err
	}
	positions := make([]Position, 0, len(a))
	for i, el := range a {
		position, err := DecodePosition(el)
		if err != nil {
			return nil, fmt.Errorf("security %d: %w", i, err)
		}
		positions = append(positions, position)
	}
	return positions, nil
}

func DecodePosition(n plist.Node) (Position, error) {
	r, err := newRecord("security", n)
	if err != nil {
		return Position{}, err
	}
	var position Position
	if position.UUID, err = r.uuid("uuid"); err != nil {
		return Position{}, err
	}
	if position.Name, err = r.string("name"); err != nil {
		return Position{}, err
	}
	if position.ISIN, err = r.optString("isin"); err != nil {
		return Position{}, err
	}
	if position.WKN, err = r.optString("wkn"); err != nil {
		return Position{}, err
	}
	if position.Symbol, err = r.optString("symbol"); err != nil {
		return Position{}, err
	}
	if position.Quantity, err = r.decimal("quantity"); err != nil {
		return Position{}, err
	}
	if position.AccountUUID, err = r.uuid("accountUuid"); err != nil {
		return Position{}, err
	}
	if position.AccountName, err = r.optString("accountName"); err != nil {
		return Position{}, err
	}
	if position.MarketPrice, err = r.optDecimal("marketPrice"); err != nil {
		return Position{}, err
	}
	if position.Currency, err = r.currency("currency"); err != nil {
		return Position{}, err
	}
	if position.MarketValue, err = r.decimal("marketValue"); err != nil {
		return Position{}, err
	}
	if position.PurchasePrice, err = r.optDecimal("purchasePrice"); err != nil {
		return Position{}, err
	}
	if position.PurchaseValue, err = r.optDecimal("purchaseValue"); err != nil {
		return Position{}, err
	}
	if position.Profit, err = r.optDecimal("profit"); err != nil {
		return Position{}, err
	}
	if position.ProfitPercent, err = r.optDecimal("profitPercent"); err != nil {
		return Position{}, err
	}
	if position.AssetClass, err = r.optString("assetClass"); err != nil {
		return Position{}, err
	}
	return position, nil
}
