package moneymoney

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/lib/osascript"
)

// Live tests talk to a running MoneyMoney instance and only run when
// PFENNIG_LIVE_TEST is set. Booking tests additionally require
// PFENNIG_LIVE_ACCOUNT naming an offline account; its name must start with
// "test-" so that no real account can be hit by accident.

func liveClient(t *testing.T) *Client {
	t.Helper()
	if os.Getenv("PFENNIG_LIVE_TEST") == "" {
		t.Skip("PFENNIG_LIVE_TEST not set")
	}
	return New(&osascript.Runner{})
}

func TestLiveExportAccounts(t *testing.T) {
	client := liveClient(t)

	accounts, err := client.ExportAccounts(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, accounts)
}

func TestLiveExportCategories(t *testing.T) {
	client := liveClient(t)

	_, err := client.ExportCategories(context.Background())

	require.NoError(t, err)
}

func TestLiveAddTransaction(t *testing.T) {
	client := liveClient(t)
	account := os.Getenv("PFENNIG_LIVE_ACCOUNT")
	if account == "" {
		t.Skip("PFENNIG_LIVE_ACCOUNT not set")
	}
	if !strings.HasPrefix(account, "test-") {
		t.Fatalf("refusing to book into %q, live test accounts must be named test-*", account)
	}

	draft := TransactionDraft{}.
		WithTargetIdentifier(account).
		WithDate(time.Now()).
		WithPayee("pfennig live test").
		WithAmount(decimal.New(-1, -2))

	_, err := client.AddTransaction(context.Background(), draft)

	require.NoError(t, err)
}
