package moneymoney

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"

	"github.com/nkohl/pfennig/lib/moneymoney/model"
	"github.com/nkohl/pfennig/lib/moneymoney/plist"
)

func validDraft() TransactionDraft {
	return TransactionDraft{}.
		WithTargetIdentifier("Bargeld").
		WithDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)).
		WithPayee("Bäckerei").
		WithAmount(decimal.RequireFromString("-4.20"))
}

func TestAddTransaction(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything,
		`tell application "MoneyMoney" to add transaction to account "Bargeld" on date "2024-05-01" to "Bäckerei" amount -12.34 purpose "Brot und \"Brezeln\"" category "Lebensmittel" checkmark "on"`).
		Return(doc(`<dict><key>id</key><integer>4712</integer></dict>`), nil)
	client := New(exec)
	draft := validDraft().
		WithAmount(decimal.RequireFromString("-12.34")).
		WithPurpose(`Brot und "Brezeln"`).
		WithCategory("Lebensmittel").
		WithCheckmark(true)

	receipt, err := client.AddTransaction(context.Background(), draft)

	require.NoError(t, err)
	require.NotNil(t, receipt.TransactionID)
	assert.Equal(t, int64(4712), *receipt.TransactionID)
	exec.AssertExpectations(t)
}

func TestAddTransactionAcknowledgments(t *testing.T) {
	for _, test := range []struct {
		desc   string
		body   string
		wantID *int64
	}{
		{"record without id", `<dict><key>ok</key><true/></dict>`, nil},
		{"boolean marker", `<true/>`, nil},
		{"string marker", `<string>ok</string>`, nil},
	} {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			exec := new(mockExecutor)
			exec.On("Execute", mock.Anything, mock.Anything).Return(doc(test.body), nil)
			client := New(exec)

			receipt, err := client.AddTransaction(context.Background(), validDraft())

			require.NoError(t, err)
			assert.Equal(t, test.wantID, receipt.TransactionID)
		})
	}
}

func TestAddTransactionEmptyAck(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return("", nil)
	client := New(exec)

	_, err := client.AddTransaction(context.Background(), validDraft())

	require.Error(t, err)
	assert.ErrorIs(t, err, plist.ErrEmpty)
	assert.Contains(t, err.Error(), "not acknowledged")
}

func TestAddTransactionMalformedAck(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return(doc(`<array/>`), nil)
	client := New(exec)

	_, err := client.AddTransaction(context.Background(), validDraft())

	var merr *model.TypeMismatchError
	require.ErrorAs(t, err, &merr)
}

func TestAddTransactionNonIntegerAckID(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return(doc(`<dict><key>id</key><string>4712</string></dict>`), nil)
	client := New(exec)

	_, err := client.AddTransaction(context.Background(), validDraft())

	var merr *model.TypeMismatchError
	require.ErrorAs(t, err, &merr)
	assert.Equal(t, "id", merr.Field)
}

func TestAddTransactionGroupTarget(t *testing.T) {
	exec := new(mockExecutor)
	client := New(exec)
	group := model.Account{
		UUID:  uuid.MustParse("11111111-1111-1111-1111-111111111111"),
		Name:  "Alle Konten",
		Group: true,
	}
	draft := validDraft().WithTarget(group)

	_, err := client.AddTransaction(context.Background(), draft)

	require.ErrorIs(t, err, ErrGroupAccountTarget)
	exec.AssertNotCalled(t, "Execute")
}

func TestAddTransactionValidation(t *testing.T) {
	exec := new(mockExecutor)
	client := New(exec)

	_, err := client.AddTransaction(context.Background(), TransactionDraft{})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingTarget)
	assert.ErrorIs(t, err, ErrInvalidAmount)
	assert.Len(t, multierr.Errors(err), 4)
	exec.AssertNotCalled(t, "Execute")
}

// readQuoted reads a quoted argument from s, which must start with a
// double quote, and returns the unescaped value and the remainder after the
// closing quote.
func readQuoted(t *testing.T, s string) (string, string) {
	t.Helper()
	require.True(t, strings.HasPrefix(s, `"`), "expected a quoted argument, got %q", s)
	var b strings.Builder
	i := 1
	for i < len(s) {
		switch s[i] {
		case '\\':
			require.Less(t, i+1, len(s), "dangling escape in %q", s)
			b.WriteByte(s[i+1])
			i += 2
		case '"':
			return b.String(), s[i+1:]
		default:
			b.WriteByte(s[i])
			i++
		}
	}
	t.Fatalf("unterminated quoted argument in %q", s)
	return "", ""
}

func cutPrefix(t *testing.T, s, prefix string) string {
	t.Helper()
	require.True(t, strings.HasPrefix(s, prefix), "expected %q as the next token, got %q", prefix, s)
	return s[len(prefix):]
}

// TestAddTransactionCommandRoundTrip reads a rendered command back into its
// parameters and renders it again. Quoting and field order must survive the
// trip unchanged, even for values carrying quotes and backslashes.
func TestAddTransactionCommandRoundTrip(t *testing.T) {
	draft := TransactionDraft{}.
		WithTargetIdentifier(`Kasse "Laden 2"`).
		WithDate(time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC)).
		WithPayee(`Müller \ "Sohn"`).
		WithAmount(decimal.RequireFromString("-12.34")).
		WithPurpose(`Brot & Brezeln`).
		WithCategory("Lebensmittel").
		WithCheckmark(true)
	command, err := draft.Command(DefaultApplication)
	require.NoError(t, err)
	assert.NotContains(t, command, " id ", "a draft must not carry an id")

	rest := cutPrefix(t, command, `tell application "MoneyMoney" to add transaction to account `)
	account, rest := readQuoted(t, rest)
	rest = cutPrefix(t, rest, ` on date `)
	date, rest := readQuoted(t, rest)
	rest = cutPrefix(t, rest, ` to `)
	payee, rest := readQuoted(t, rest)
	rest = cutPrefix(t, rest, ` amount `)
	amount, rest, found := strings.Cut(rest, " ")
	require.True(t, found)
	rest = cutPrefix(t, rest, `purpose `)
	purpose, rest := readQuoted(t, rest)
	rest = cutPrefix(t, rest, ` category `)
	category, rest := readQuoted(t, rest)
	rest = cutPrefix(t, rest, ` checkmark `)
	checkmark, rest := readQuoted(t, rest)
	require.Empty(t, rest)

	day, err := time.Parse("2006-01-02", date)
	require.NoError(t, err)
	rebuilt := TransactionDraft{}.
		WithTargetIdentifier(account).
		WithDate(day).
		WithPayee(payee).
		WithAmount(decimal.RequireFromString(amount)).
		WithPurpose(purpose).
		WithCategory(category).
		WithCheckmark(checkmark == "on")

	recommand, err := rebuilt.Command(DefaultApplication)
	require.NoError(t, err)
	assert.Equal(t, command, recommand)
}

func TestSetTransaction(t *testing.T) {
	for _, test := range []struct {
		desc   string
		update TransactionUpdate
		want   string
	}{
		{
			desc:   "all fields",
			update: TransactionUpdate{ID: 4711, Checkmark: true, Category: "Lebensmittel", Comment: "geprüft"},
			want:   `tell application "MoneyMoney" to set transaction id 4711 checkmark to "on" category to "Lebensmittel" comment to "geprüft"`,
		},
		{
			desc:   "zero values clear",
			update: TransactionUpdate{ID: 4711},
			want:   `tell application "MoneyMoney" to set transaction id 4711 checkmark to "off" category to "" comment to ""`,
		},
	} {
		test := test
		t.Run(test.desc, func(t *testing.T) {
			exec := new(mockExecutor)
			exec.On("Execute", mock.Anything, test.want).Return("", nil)
			client := New(exec)

			err := client.SetTransaction(context.Background(), test.update)

			require.NoError(t, err)
			exec.AssertExpectations(t)
		})
	}
}

func TestSetTransactionMissingID(t *testing.T) {
	exec := new(mockExecutor)
	client := New(exec)

	err := client.SetTransaction(context.Background(), TransactionUpdate{Category: "Lebensmittel"})

	require.ErrorIs(t, err, ErrMissingTransactionID)
	exec.AssertNotCalled(t, "Execute")
}

func TestSetTransactionTransportError(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return("", errors.New("execution error: MoneyMoney got an error"))
	client := New(exec)

	err := client.SetTransaction(context.Background(), TransactionUpdate{ID: 4711})

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
}

type stubGuesser map[string]string

func (g stubGuesser) Infer(texts ...string) string {
	return g[strings.Join(texts, " ")]
}

func TestGuessCategories(t *testing.T) {
	guesser := stubGuesser{
		"Bäckerei Brötchen": "Lebensmittel",
		"Kiosk Zeitung":     "",
	}
	drafts := []TransactionDraft{
		validDraft().WithPayee("Bäckerei").WithPurpose("Brötchen"),
		validDraft().WithPayee("Bäckerei").WithPurpose("Brötchen").WithCategory("Haushalt"),
		validDraft().WithPayee("Kiosk").WithPurpose("Zeitung"),
	}

	got := GuessCategories(guesser, drafts)

	require.Len(t, got, 3)
	assert.Equal(t, "Lebensmittel", got[0].category)
	assert.Equal(t, "Haushalt", got[1].category, "existing categories are kept")
	assert.Equal(t, "", got[2].category, "no suggestion leaves the draft alone")
	assert.Equal(t, "", drafts[0].category, "input drafts are not mutated")
}
