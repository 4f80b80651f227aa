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

// Package config resolves the tool configuration from the config file and
// the global flags. Flags win over the file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/nkohl/pfennig/lib/moneymoney"
	"github.com/nkohl/pfennig/lib/osascript"
	"github.com/nkohl/pfennig/pkg/logger"
)

// Config is the tool configuration.
type Config struct {
	// Application is the bundle name commands are addressed to,
	// "MoneyMoney" when empty.
	Application string `yaml:"application"`
	// Osascript is the path of the osascript binary, looked up on the
	// PATH when empty.
	Osascript string `yaml:"osascript"`
	// Experimental unlocks the payment order commands.
	Experimental bool `yaml:"experimental"`

	Log LogConfig `yaml:"log"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Pretty bool   `yaml:"pretty"`
}

// Default returns the configuration used without a config file.
func Default() Config {
	return Config{}
}

// ApplicationName returns the application bundle name to address.
func (c Config) ApplicationName() string {
	if c.Application == "" {
		return moneymoney.DefaultApplication
	}
	return c.Application
}

// Path returns the default config file location.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "pfennig", "config.yaml"), nil
}

// Load reads the configuration from a YAML file. Unknown keys are an
// error, an empty file yields the defaults.
func Load(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer f.Close()
	dec := yaml.NewDecoder(f)
	dec.SetStrict(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		if errors.Is(err, io.EOF) {
			return Default(), nil
		}
		return Config{}, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// FromCommand resolves the configuration for a command invocation. The
// config file named by --config must exist; without the flag, a missing
// file at the default location is not an error. Global flags that were
// given override the file.
func FromCommand(cmd *cobra.Command) (Config, error) {
	cfg, err := load(cmd)
	if err != nil {
		return cfg, err
	}
	if v, ok := stringFlag(cmd, "application"); ok {
		cfg.Application = v
	}
	if v, ok := stringFlag(cmd, "osascript"); ok {
		cfg.Osascript = v
	}
	if boolFlag(cmd, "experimental") {
		cfg.Experimental = true
	}
	if boolFlag(cmd, "verbose") {
		cfg.Log.Level = "debug"
	}
	return cfg, nil
}

// Client builds the MoneyMoney client for a command invocation.
func Client(cmd *cobra.Command) (*moneymoney.Client, Config, error) {
	cfg, err := FromCommand(cmd)
	if err != nil {
		return nil, cfg, err
	}
	log := logger.New(logger.Config{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})
	runner := &osascript.Runner{Binary: cfg.Osascript}
	opts := []moneymoney.Option{moneymoney.WithLogger(log)}
	if cfg.Application != "" {
		opts = append(opts, moneymoney.WithApplication(cfg.Application))
	}
	if cfg.Experimental {
		opts = append(opts, moneymoney.WithExperimental())
	}
	return moneymoney.New(runner, opts...), cfg, nil
}

func load(cmd *cobra.Command) (Config, error) {
	f := cmd.Flags().Lookup("config")
	if f == nil {
		return Default(), nil
	}
	if f.Changed {
		return Load(f.Value.String())
	}
	path, err := Path()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

func stringFlag(cmd *cobra.Command, name string) (string, bool) {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return "", false
	}
	return f.Value.String(), true
}

func boolFlag(cmd *cobra.Command, name string) bool {
	f := cmd.Flags().Lookup(name)
	if f == nil || !f.Changed {
		return false
	}
	v, err := strconv.ParseBool(f.Value.String())
	return err == nil && v
}
