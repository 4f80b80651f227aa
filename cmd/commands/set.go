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

package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd/config"
	"github.com/nkohl/pfennig/lib/moneymoney"
)

// CreateSetCommand creates the set command.
func CreateSetCommand() *cobra.Command {
	var r setRunner
	cmd := &cobra.Command{
		Use:   "set <id>",
		Short: "Update checkmark, category and comment of a transaction",
		Long: `Update the user-editable fields of the transaction with the given id, as
listed by the transactions command.

The update replaces all three fields at once. A flag left out clears its
field: omitting --category removes the category from the transaction. Pass
every value you want to keep.`,

		Args: cobra.ExactArgs(1),

		RunE: r.run,
	}
	r.setupFlags(cmd)
	return cmd
}

type setRunner struct {
	checkmark bool
	category  string
	comment   string
}

func (r *setRunner) setupFlags(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&r.checkmark, "checkmark", false, "set the checkmark")
	cmd.Flags().StringVar(&r.category, "category", "", "category (UUID or name)")
	cmd.Flags().StringVar(&r.comment, "comment", "", "comment text")
}

func (r *setRunner) run(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid transaction id %q", args[0])
	}
	client, _, err := config.Client(cmd)
	if err != nil {
		return err
	}
	update := moneymoney.TransactionUpdate{
		ID:        id,
		Checkmark: r.checkmark,
		Category:  r.category,
		Comment:   r.comment,
	}
	if err := client.SetTransaction(cmd.Context(), update); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "updated transaction %d\n", id)
	return nil
}
