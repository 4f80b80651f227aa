package dkb

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nkohl/pfennig/cmd/cmdtest"
)

func TestGolden(t *testing.T) {
	got := cmdtest.Run(t, CreateCmd(), "--account", "Girokonto", "--dry-run", "testdata/example1.input")

	goldie.New(t).Assert(t, "example1", got)
}

func TestParseAmount(t *testing.T) {
	for _, test := range []struct {
		input string
		want  string
	}{
		{"-1.234,56", "-1234.56"},
		{"2.500,00", "2500.00"},
		{"0,99", "0.99"},
		{"12", "12"},
	} {
		got, err := parseAmount(test.input)

		require.NoError(t, err, test.input)
		assert.Equal(t, test.want, got.String(), test.input)
	}
}

func TestParseAmountInvalid(t *testing.T) {
	_, err := parseAmount("1,234,56")

	assert.Error(t, err)
}
