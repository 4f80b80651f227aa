package generic

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/nkohl/pfennig/cmd/cmdtest"
)

func TestGolden(t *testing.T) {
	got := cmdtest.Run(t, CreateCmd(), "--account", "Bargeld", "--dry-run", "testdata/example1.input")

	goldie.New(t).Assert(t, "example1", got)
}
