package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	path := write(t, ""+
		"application: MoneyMoney Beta\n"+
		"osascript: /opt/local/bin/osascript\n"+
		"experimental: true\n"+
		"log:\n"+
		"  level: debug\n"+
		"  pretty: true\n")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, Config{
		Application:  "MoneyMoney Beta",
		Osascript:    "/opt/local/bin/osascript",
		Experimental: true,
		Log:          LogConfig{Level: "debug", Pretty: true},
	}, cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := write(t, "aplication: MoneyMoney\n")

	_, err := Load(path)

	assert.Error(t, err)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(write(t, ""))

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))

	assert.ErrorIs(t, err, os.ErrNotExist)
}

// Commands run in isolation carry none of the global flags and must fall
// back to the defaults.
func TestFromCommandWithoutFlags(t *testing.T) {
	cfg, err := FromCommand(&cobra.Command{})

	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFromCommandFlagsOverrideFile(t *testing.T) {
	path := write(t, "application: From File\nosascript: /opt/osascript\n")
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	cmd.Flags().String("application", "", "")
	cmd.Flags().String("osascript", "", "")
	cmd.Flags().Bool("experimental", false, "")
	cmd.Flags().BoolP("verbose", "v", false, "")
	require.NoError(t, cmd.Flags().Set("config", path))
	require.NoError(t, cmd.Flags().Set("application", "From Flag"))
	require.NoError(t, cmd.Flags().Set("verbose", "true"))

	cfg, err := FromCommand(cmd)

	require.NoError(t, err)
	assert.Equal(t, "From Flag", cfg.Application)
	assert.Equal(t, "/opt/osascript", cfg.Osascript)
	assert.False(t, cfg.Experimental)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestFromCommandMissingExplicitConfig(t *testing.T) {
	cmd := &cobra.Command{}
	cmd.Flags().String("config", "", "")
	require.NoError(t, cmd.Flags().Set("config", filepath.Join(t.TempDir(), "nope.yaml")))

	_, err := FromCommand(cmd)

	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestApplicationName(t *testing.T) {
	assert.Equal(t, "MoneyMoney", Config{}.ApplicationName())
	assert.Equal(t, "MoneyMoney Beta", Config{Application: "MoneyMoney Beta"}.ApplicationName())
}
