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

// Period is the time span a budget covers. The application reports the
// spellings below; other values are carried through unchanged.
type Period string

const (
	PeriodMonthly   Period = "monthly"
	PeriodQuarterly Period = "quarterly"
	PeriodYearly    Period = "yearly"
	PeriodTotal     Period = "total"
)

// Budget is the spending budget attached to a category, in the category's
// currency.
type Budget struct {
	Amount    decimal.Decimal   `json:"amount"`
	Available decimal.Decimal   `json:"available"`
	Period    Period            `json:"period"`
	Currency  currency.Currency `json:"currency"`
}

// Category is a node of the category hierarchy. Parent is nil for roots.
type Category struct {
	UUID        uuid.UUID         `json:"uuid"`
	Name        string            `json:"name"`
	Parent      *uuid.UUID        `json:"parent,omitempty"`
	Currency    currency.Currency `json:"currency"`
	Group       bool              `json:"group"`
	Default     bool              `json:"default"`
	Indentation int               `json:"indentation"`
	Icon        []byte            `json:"icon,omitempty"`
	Budget      *Budget           `json:"budget,omitempty"`
}

// DecodeCategories maps an exported category list and restores the
// hierarchy. The export is a depth-first flat list; a category's parent is
// taken from an explicit parent field when present, otherwise it is the most
// recent category one indentation level up. The restored hierarchy is
// checked: every parent must be part of the export, and no category may be
// reachable from itself.
func DecodeCategories(n plist.Node) ([]Category, error) {
	a, ok := n.(plist.Array)
	if !ok {
		return nil, &TypeMismatchError{Entity: "category list", Want: "array", Got: plist.Type(n)}
	}
	categories := make([]Category, 0, len(a))
	lastAtDepth := make(map[int]uuid.UUID)
	for i, el := range a {
		category, explicit, err := decodeCategory(el)
		if err != nil {
			return nil, fmt.Errorf("category %d: %w", i, err)
		}
		if !explicit && category.Indentation > 0 {
			parent, ok := lastAtDepth[category.Indentation-1]
			if !ok {
				return nil, fmt.Errorf("category %d (%s): no category at indentation %d precedes it", i, category.Name, category.Indentation-1)
			}
			category.Parent = &parent
		}
		lastAtDepth[category.Indentation] = category.UUID
		categories = append(categories, category)
	}
	if err := checkHierarchy(categories); err != nil {
		return nil, err
	}
	return categories, nil
}

func decodeCategory(n plist.Node) (Category, bool, error) {
	r, err := newRecord("category", n)
	if err != nil {
		return Category{}, false, err
	}
	var category Category
	if category.UUID, err = r.uuid("uuid"); err != nil {
		return Category{}, false, err
	}
	if category.Name, err = r.string("name"); err != nil {
		return Category{}, false, err
	}
	if category.Parent, err = r.optUUID("parent"); err != nil {
		return Category{}, false, err
	}
	if category.Currency, err = r.currency("currency"); err != nil {
		return Category{}, false, err
	}
	if category.Group, err = r.bool("group"); err != nil {
		return Category{}, false, err
	}
	if category.Default, err = r.optBool("default"); err != nil {
		return Category{}, false, err
	}
	indentation, err := r.integer("indentation")
	if err != nil {
		return Category{}, false, err
	}
	category.Indentation = int(indentation)
	if category.Icon, err = r.optData("icon"); err != nil {
		return Category{}, false, err
	}
	if category.Budget, err = decodeBudget(r, category.Currency); err != nil {
		return Category{}, false, err
	}
	return category, category.Parent != nil, nil
}

// decodeBudget maps the budget field. Absent fields and empty dicts both
// mean "no budget".
func decodeBudget(r record, c currency.Currency) (*Budget, error) {
	d, err := r.optDict("budget")
	if err != nil || d == nil {
		return nil, err
	}
	if d.Len() == 0 {
		return nil, nil
	}
	br := record{entity: "budget", dict: d}
	budget := Budget{Currency: c}
	if budget.Amount, err = br.decimal("amount"); err != nil {
		return nil, err
	}
	if budget.Available, err = br.decimal("available"); err != nil {
		return nil, err
	}
	period, err := br.string("period")
	if err != nil {
		return nil, err
	}
	budget.Period = Period(period)
	return &budget, nil
}

func checkHierarchy(categories []Category) error {
	byUUID := make(map[uuid.UUID]*Category, len(categories))
	for i := range categories {
		byUUID[categories[i].UUID] = &categories[i]
	}
	for i := range categories {
		if err := walkParents(byUUID, &categories[i]); err != nil {
			return err
		}
	}
	return nil
}

// walkParents follows parent links from c with a visited set, so that even a
// degenerate self-referencing export terminates.
func walkParents(byUUID map[uuid.UUID]*Category, c *Category) error {
	var path []string
	seen := make(map[uuid.UUID]bool)
	for cur := c; cur.Parent != nil; {
		if seen[cur.UUID] {
			return &CycleError{Path: append(path, cur.Name)}
		}
		seen[cur.UUID] = true
		path = append(path, cur.Name)
		next, ok := byUUID[*cur.Parent]
		if !ok {
			return fmt.Errorf("category %q: parent %s is not part of the export", cur.Name, cur.Parent)
		}
		cur = next
	}
	return nil
}
