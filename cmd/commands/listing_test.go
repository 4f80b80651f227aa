package commands

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/lib/common/table"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
)

func renderText(t *testing.T, tbl *table.Table) []byte {
	t.Helper()
	var buf bytes.Buffer
	renderer := table.TextRenderer{Round: 2}
	require.NoError(t, renderer.Render(tbl, &buf))
	return buf.Bytes()
}

func euros(s string) []model.Balance {
	return []model.Balance{{Amount: decimal.RequireFromString(s), Currency: currency.EUR}}
}

func TestAccountsTable(t *testing.T) {
	accounts := []model.Account{
		{
			Name:     "Alle Konten",
			Type:     model.AccountTypeGroup,
			Currency: currency.EUR,
			Balances: euros("1217.06"),
			Group:    true,
		},
		{
			Name:        "Girokonto",
			Type:        model.AccountTypeGiro,
			Currency:    currency.EUR,
			Balances:    euros("1234.56"),
			Indentation: 1,
		},
		{
			Name:        "Bargeld",
			Type:        model.AccountTypeCash,
			Currency:    currency.EUR,
			Balances:    euros("-17.5"),
			Indentation: 1,
		},
	}

	goldie.New(t).Assert(t, "accounts", renderText(t, accountsTable(accounts)))
}

func TestCategoriesTable(t *testing.T) {
	categories := []model.Category{
		{
			Name:     "Haushalt",
			Currency: currency.EUR,
			Group:    true,
		},
		{
			Name:        "Lebensmittel",
			Currency:    currency.EUR,
			Indentation: 1,
			Budget: &model.Budget{
				Amount:    decimal.RequireFromString("400"),
				Available: decimal.RequireFromString("123.45"),
				Period:    model.PeriodMonthly,
				Currency:  currency.EUR,
			},
		},
		{
			Name:        "Drogerie",
			Currency:    currency.EUR,
			Indentation: 1,
		},
	}

	goldie.New(t).Assert(t, "categories", renderText(t, categoriesTable(categories)))
}

func TestTransactionsTable(t *testing.T) {
	transactions := []model.Transaction{
		{
			ID:          4711,
			BookingDate: time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC),
			Name:        "Bäckerei Müller",
			Purpose:     "Brot",
			Category:    "Lebensmittel",
			Amount:      decimal.RequireFromString("-4.20"),
			Currency:    currency.EUR,
		},
		{
			ID:          4712,
			BookingDate: time.Date(2024, time.May, 2, 0, 0, 0, 0, time.UTC),
			Name:        "Arbeitgeber",
			Purpose:     "Gehalt Mai",
			Category:    "Gehalt",
			Amount:      decimal.RequireFromString("3210"),
			Currency:    currency.EUR,
		},
	}

	goldie.New(t).Assert(t, "transactions", renderText(t, transactionsTable(transactions)))
}

func TestPortfolioTable(t *testing.T) {
	positions := []model.Position{
		{
			Name:          "iShares Core MSCI World",
			ISIN:          "IE00B4L5Y983",
			Quantity:      decimal.RequireFromString("42"),
			MarketPrice:   decimal.NewNullDecimal(decimal.RequireFromString("90.12")),
			MarketValue:   decimal.RequireFromString("3785.04"),
			Profit:        decimal.NewNullDecimal(decimal.RequireFromString("785.04")),
			ProfitPercent: decimal.NewNullDecimal(decimal.RequireFromString("26.17")),
			Currency:      currency.EUR,
		},
		{
			Name:        "Cash",
			Quantity:    decimal.RequireFromString("1000"),
			MarketValue: decimal.RequireFromString("1000"),
			Currency:    currency.EUR,
		},
	}

	goldie.New(t).Assert(t, "portfolio", renderText(t, portfolioTable(positions)))
}
