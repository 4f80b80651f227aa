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

// Pfennig drives the MoneyMoney application from the command line.
package main

import (
	"github.com/nkohl/pfennig/cmd"

	// enable importers here
	_ "github.com/nkohl/pfennig/cmd/importer/dkb"
	_ "github.com/nkohl/pfennig/cmd/importer/generic"
)

// version is overridden by the linker on release builds.
var version = "development"

func main() {
	cmd.Execute(version)
}
