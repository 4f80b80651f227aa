package web

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/moneymoney/model"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Execute(ctx context.Context, command string) (string, error) {
	args := m.Called(ctx, command)
	return args.String(0), args.Error(1)
}

const accountsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<array>
<dict>
<key>balance</key><array><array><real>1234.56</real><string>EUR</string></array></array>
<key>currency</key><string>EUR</string>
<key>group</key><false/>
<key>indentation</key><integer>0</integer>
<key>name</key><string>Girokonto</string>
<key>type</key><string>Giro account</string>
<key>uuid</key><string>11111111-1111-1111-1111-111111111111</string>
</dict>
</array>
</plist>`

const transactionsDoc = `<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict>
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
</dict>
</plist>`

func newTestServer(exec moneymoney.Executor) *Server {
	return NewServer(ServerConfig{
		Address: "localhost",
		Client:  moneymoney.New(exec),
		Log:     zerolog.Nop(),
	})
}

func get(srv *Server, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", target, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestAccounts(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, `tell application "MoneyMoney" to export accounts as "plist"`).
		Return(accountsDoc, nil)
	srv := newTestServer(exec)

	w := get(srv, "/accounts")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var accounts []model.Account
	require.NoError(t, json.NewDecoder(w.Body).Decode(&accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, "Girokonto", accounts[0].Name)
	assert.Equal(t, "1234.56", accounts[0].Balance().Amount.String())
	exec.AssertExpectations(t)
}

func TestTransactionsPassesFilter(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything,
		`tell application "MoneyMoney" to export transactions from date "2024-01-01" to date "2024-03-31" from account "Girokonto" as "plist"`).
		Return(transactionsDoc, nil)
	srv := newTestServer(exec)

	w := get(srv, "/transactions?from=2024-01-01&to=2024-03-31&account=Girokonto")

	assert.Equal(t, http.StatusOK, w.Code)
	var list model.TransactionList
	require.NoError(t, json.NewDecoder(w.Body).Decode(&list))
	require.Len(t, list.Transactions, 1)
	assert.Equal(t, int64(4711), list.Transactions[0].ID)
	exec.AssertExpectations(t)
}

func TestTransactionsRejectsMalformedDate(t *testing.T) {
	exec := new(mockExecutor)
	srv := newTestServer(exec)

	w := get(srv, "/transactions?from=01.05.2024")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body["error"], "01.05.2024")
	exec.AssertNumberOfCalls(t, "Execute", 0)
}

func TestTransactionsRejectsDegenerateRange(t *testing.T) {
	exec := new(mockExecutor)
	srv := newTestServer(exec)

	w := get(srv, "/transactions?from=2024-06-01&to=2024-01-01")

	assert.Equal(t, http.StatusBadRequest, w.Code)
	exec.AssertNumberOfCalls(t, "Execute", 0)
}

func TestTransportFailureIsBadGateway(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).
		Return("", errors.New("osascript: MoneyMoney got an error: Application isn't running. (-600)"))
	srv := newTestServer(exec)

	w := get(srv, "/accounts")

	assert.Equal(t, http.StatusBadGateway, w.Code)
	var body map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&body))
	assert.Contains(t, body["error"], "(-600)")
}

func TestPortfolioPassesFilter(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything,
		`tell application "MoneyMoney" to export portfolio from account "Depot" from asset class "Stocks" as "plist"`).
		Return(`<?xml version="1.0" encoding="UTF-8"?>
<plist version="1.0">
<dict><key>securities</key><array/></dict>
</plist>`, nil)
	srv := newTestServer(exec)

	w := get(srv, "/portfolio?account=Depot&assetClass=Stocks")

	assert.Equal(t, http.StatusOK, w.Code)
	exec.AssertExpectations(t)
}
