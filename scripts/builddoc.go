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

// Builddoc renders the command reference as markdown on stdout. It runs
// every command with --help and captures the output, so the reference can
// never drift from the code.
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nkohl/pfennig/cmd"

	// enable importers here
	_ "github.com/nkohl/pfennig/cmd/importer/dkb"
	_ "github.com/nkohl/pfennig/cmd/importer/generic"
)

func main() {
	var b strings.Builder
	b.WriteString("# pfennig command reference\n")
	writeCommand(&b, cmd.CreateCmd("development"), nil)
	os.Stdout.WriteString(b.String())
}

func writeCommand(b *strings.Builder, c *cobra.Command, path []string) {
	if len(path) > 0 {
		fmt.Fprintf(b, "\n## pfennig %s\n\n", strings.Join(path, " "))
		b.WriteString("```\n")
		b.WriteString(run(append(path, "--help")...))
		b.WriteString("```\n")
	}
	for _, sub := range c.Commands() {
		if sub.Hidden || sub.Name() == "help" || sub.Name() == "completion" {
			continue
		}
		next := append(append([]string{}, path...), sub.Name())
		writeCommand(b, sub, next)
	}
}

func run(args ...string) string {
	c := cmd.CreateCmd("development")
	c.SetArgs(args)
	var b strings.Builder
	b.WriteString("$ pfennig")
	for _, a := range args {
		b.WriteRune(' ')
		b.WriteString(a)
	}
	b.WriteRune('\n')
	c.SetOut(&b)
	c.SetErr(&b)
	c.Execute()
	return b.String()
}
