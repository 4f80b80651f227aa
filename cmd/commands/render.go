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

// Package commands holds the subcommands of the pfennig tool.
package commands

import (
	"bufio"
	"io"

	"github.com/nkohl/pfennig/lib/common/table"
)

// renderTable writes a listing as aligned text or as CSV.
func renderTable(tbl *table.Table, asCSV, color bool, round int32, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()
	if asCSV {
		return (&table.CSVRenderer{}).Render(tbl, w)
	}
	renderer := table.TextRenderer{Color: color, Round: round}
	return renderer.Render(tbl, w)
}
