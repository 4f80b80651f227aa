package flags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/lib/moneymoney/model/currency"
)

func TestDateFlag(t *testing.T) {
	var f DateFlag

	assert.False(t, f.IsSet())
	assert.Equal(t, "", f.String())

	require.NoError(t, f.Set("2024-05-01"))

	assert.True(t, f.IsSet())
	assert.Equal(t, "2024-05-01", f.String())
	assert.Equal(t, time.Date(2024, time.May, 1, 0, 0, 0, 0, time.UTC), f.Value())
}

func TestDateFlagRejectsOtherLayouts(t *testing.T) {
	var f DateFlag
	for _, input := range []string{"01.05.2024", "2024-5-1", "yesterday", ""} {
		assert.Error(t, f.Set(input), "input %q", input)
	}
}

func TestCurrencyFlag(t *testing.T) {
	var f CurrencyFlag

	assert.Equal(t, currency.EUR, f.ValueOr(currency.EUR))

	require.NoError(t, f.Set("CHF"))

	assert.Equal(t, currency.CHF, f.ValueOr(currency.EUR))
	assert.Equal(t, "CHF", f.String())
}

func TestCurrencyFlagRejectsUnknownCode(t *testing.T) {
	var f CurrencyFlag
	assert.Error(t, f.Set("TALER"))
}

func TestDecimalFlag(t *testing.T) {
	var f DecimalFlag

	require.NoError(t, f.Set("-4.20"))

	assert.Equal(t, "-4.20", f.Value().String())
	assert.Error(t, f.Set("4,20"))
}
