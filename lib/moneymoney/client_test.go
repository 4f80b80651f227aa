package moneymoney

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockExecutor struct {
	mock.Mock
}

func (m *mockExecutor) Execute(ctx context.Context, command string) (string, error) {
	args := m.Called(ctx, command)
	return args.String(0), args.Error(1)
}

// doc wraps a root element into a complete plist document, the way the
// application prints its exports.
func doc(body string) string {
	return strings.Join([]string{
		`<?xml version="1.0" encoding="UTF-8"?>`,
		`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">`,
		`<plist version="1.0">`,
		body,
		`</plist>`,
		``,
	}, "\n")
}

func TestTransportErrorPreservedVerbatim(t *testing.T) {
	exec := new(mockExecutor)
	cause := errors.New("osascript: MoneyMoney got an error: Application isn't running. (-600)")
	exec.On("Execute", mock.Anything, mock.Anything).Return("", cause)
	client := New(exec)

	_, err := client.ExportAccounts(context.Background())

	var terr *TransportError
	require.ErrorAs(t, err, &terr)
	assert.Equal(t, cause, terr.Unwrap())
	assert.Contains(t, err.Error(), "(-600)")
	exec.AssertExpectations(t)
}

func TestTransportErrorIsNotEmptyResult(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return("", errors.New("connection refused"))
	client := New(exec)

	accounts, err := client.ExportAccounts(context.Background())

	require.Error(t, err)
	assert.Nil(t, accounts)
}

func TestWithApplication(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, `tell application "MoneyMoney Beta" to export accounts as "plist"`).
		Return("", nil)
	client := New(exec, WithApplication("MoneyMoney Beta"))

	_, err := client.ExportAccounts(context.Background())

	require.NoError(t, err)
	exec.AssertExpectations(t)
}

func TestMalformedOutput(t *testing.T) {
	exec := new(mockExecutor)
	exec.On("Execute", mock.Anything, mock.Anything).Return("not a plist", nil)
	client := New(exec)

	_, err := client.ExportAccounts(context.Background())

	require.Error(t, err)
	var terr *TransportError
	assert.False(t, errors.As(err, &terr), "a decode failure must not masquerade as a transport failure")
}
