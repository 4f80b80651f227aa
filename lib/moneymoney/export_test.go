package moneymoney

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

const accountsDoc = `<array>
<dict>
<key>balance</key><array><array><real>1234.56</real><string>EUR</string></array></array>
<key>currency</key><string>EUR</string>
<key>group</key><false/>
<key>indentation</key><integer>0</integer>
<key>name</key><string>Girokonto</string>
<key>type</key><string>Giro account</string>
<key>uuid</key><string>11111111-1111-1111-1111-111111111111</string>
</dict>
</array>`

const transactionsDoc = `<dict>
<key>creator</key><string>MoneyMoney</string>
<key>transactions</key><array>
<dict>
<key>accountUuid</key><string>11111111-1111-1111-1111-111111111111</string>
<key>amount</key><real>-9.99</real>
<key>booked</key><true/>
<key>bookingDate</key><date>2024-01-02T00:00:00Z</date>
<key>checkmark</key><false/>
<key>currency</key><string>EUR</string>
<key>id</key><integer>4711</integer>
<key>name</key><string>Kiosk</string>
<key>valueDate</key><date>2024-01-02T00:00:00Z</date>
</dict>
</array>
</dict>`

const portfolioDoc = `<dict>
<key>securities</key><array>
<dict>
<key>accountUuid</key><string>11111111-1111-1111-1111-111111111111</string>
<key>currency</key><string>EUR</string>
<key>marketValue</key><real>8261.00</real>
<key>name</key><string>iShares Core MSCI World</string>
<key>quantity</key><real>100</real>
<key>uuid</key><string>33333333-3333-3333-3333-333333333333</string>
</dict>
</array>
</dict>`

func TestExportAccounts(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, `tell application "MoneyMoney" to export accounts as "plist"`).
		Return(doc(accountsDoc), nil)
	client := New(exec)

	accounts, err := client.ExportAccounts(context.Background())

	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Girokonto", accounts[0].Name)
	assert.Equal(t, model.AccountTypeGiro, accounts[0].Type)
	assert.Equal(t, "1234.56", accounts[0].Balance().Amount.String())
	exec.AssertExpectations(t)
}

func TestExportAccountsEmptySequence(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return(doc(`<array/>`), nil)
	client := New(exec)

	accounts, err := client.ExportAccounts(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, accounts)
	assert.Empty(t, accounts)
}

func TestExportAccountsEmptyOutput(t *testing.T) {
	for _, test := range []struct {
		desc   string
		output string
	}{
		{"blank", ""},
		{"whitespace", "\n\t  \n"},
		{"childless plist", `<?xml version="1.0" encoding="UTF-8"?><plist version="1.0"></plist>`},
	} {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			exec := new(mockExecutor)
			exec.On("Execute", mock.Anything, mock.Anything).Return(test.output, nil)
			client := New(exec)

			accounts, err := client.ExportAccounts(context.Background())

			require.NoError(t, err)
			assert.Empty(t, accounts)
		})
	}
}

func TestExportCategories(t *testing.T) {
	body := `<array>
<dict>
<key>currency</key><string>EUR</string>
<key>group</key><true/>
<key>indentation</key><integer>0</integer>
<key>name</key><string>Lebenshaltung</string>
<key>uuid</key><string>11111111-1111-1111-1111-111111111111</string>
</dict>
<dict>
<key>currency</key><string>EUR</string>
<key>group</key><false/>
<key>indentation</key><integer>1</integer>
<key>name</key><string>Lebensmittel</string>
<key>uuid</key><string>22222222-2222-2222-2222-222222222222</string>
</dict>
</array>`
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, `tell application "MoneyMoney" to export categories as "plist"`).
		Return(doc(body), nil)
	client := New(exec)

	categories, err := client.ExportCategories(context.Background())

	require.NoError(t, err)
	require.Len(t, categories, 2)
	require.NotNil(t, categories[1].Parent)
	assert.Equal(t, categories[0].UUID, *categories[1].Parent)
	exec.AssertExpectations(t)
}

func TestExportTransactions(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything,
		`tell application "MoneyMoney" to export transactions from date "2024-01-01" to date "2024-03-31" from account "Girokonto" as "plist"`).
		Return(doc(transactionsDoc), nil)
	client := New(exec)
	params := ExportTransactionsParams{}.
		WithFrom(time.Date(2024, time.January, 1, 15, 4, 5, 0, time.UTC)).
		WithTo(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)).
		WithAccount("Girokonto")

	list, err := client.ExportTransactions(context.Background(), params)

	require.NoError(t, err)
	assert.Equal(t, "MoneyMoney", list.Creator)
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, int64(4711), list.Transactions[0].ID)
	exec.AssertExpectations(t)
}

func TestExportTransactionsEmptyOutput(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return("", nil)
	client := New(exec)

	list, err := client.ExportTransactions(context.Background(), ExportTransactionsParams{})

	require.NoError(t, err)
	assert.Empty(t, list.Transactions)
}

func TestExportTransactionsDegenerateRange(t *testing.T) {
	exec := new(mockExecutor)
	client := New(exec)
	params := ExportTransactionsParams{}.
		WithFrom(time.Date(2024, time.March, 31, 0, 0, 0, 0, time.UTC)).
		WithTo(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	_, err := client.ExportTransactions(context.Background(), params)

	require.ErrorIs(t, err, ErrDegenerateDateRange)
	exec.AssertNotCalled(t, "Execute")
}

func TestExportTransactionsParamsImmutable(t *testing.T) {
	base := ExportTransactionsParams{}.WithAccount("Girokonto")

	withDate := base.WithFrom(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	assert.True(t, base.from.IsZero(), "WithFrom must not mutate the receiver")
	assert.False(t, withDate.from.IsZero())
}

func TestExportPortfolio(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything,
		`tell application "MoneyMoney" to export portfolio from account "Depot" from asset class "Stocks" as "plist"`).
		Return(doc(portfolioDoc), nil)
	client := New(exec)
	params := ExportPortfolioParams{}.WithAccount("Depot").WithAssetClass("Stocks")

	positions, err := client.ExportPortfolio(context.Background(), params)

	require.NoError(t, err)
	require.Len(t, positions, 1)
	assert.Equal(t, "iShares Core MSCI World", positions[0].Name)
	exec.AssertExpectations(t)
}

func TestExportPortfolioEmptyOutput(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return("", nil)
	client := New(exec)

	positions, err := client.ExportPortfolio(context.Background(), ExportPortfolioParams{})

	require.NoError(t, err)
	assert.Empty(t, positions)
}

func TestFindAccount(t *testing.T) {
	accounts := []model.Account{
		{UUID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), Name: "Girokonto", AccountNumber: "DE02120300000000202051"},
		{UUID: uuid.MustParse("ab22cd22-2222-2222-2222-222222222222"), Name: "Depot"},
	}
	for _, test := range []struct {
		desc       string
		identifier string
		wantName   string
		wantFound  bool
	}{
		{"by name", "Depot", "Depot", true},
		{"by iban", "DE02120300000000202051", "Girokonto", true},
		{"by uuid", "11111111-1111-1111-1111-111111111111", "Girokonto", true},
		{"by uppercase uuid", "AB22CD22-2222-2222-2222-222222222222", "Depot", true},
		{"unknown", "Sparkonto", "", false},
		{"empty identifier", "", "", false},
	} {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			t.Parallel()
			account, found := FindAccount(accounts, test.identifier)
			require.Equal(t, test.wantFound, found)
			if found {
				assert.Equal(t, test.wantName, account.Name)
			}
		})
	}
}

func TestUnknownCategories(t *testing.T) {
	categories := []model.Category{
		{UUID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), Name: "Lebensmittel"},
		{UUID: uuid.MustParse("44444444-4444-4444-4444-444444444444"), Name: "Haushalt"},
	}
	drafts := []TransactionDraft{
		TransactionDraft{}.WithCategory("Lebensmittel"),
		TransactionDraft{}.WithCategory("Drogerie"),
		TransactionDraft{}.WithCategory("Drogerie"),
		TransactionDraft{}.WithCategory("33333333-3333-3333-3333-333333333333"),
		TransactionDraft{}.WithCategory("Bücher"),
		{},
	}

	unknown := UnknownCategories(categories, drafts)

	assert.Equal(t, []string{"Bücher", "Drogerie"}, unknown)
}
