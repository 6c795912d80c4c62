package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigPaths(t *testing.T) {
	cfg := DefaultConfig("/tmp/daohome")
	require.Equal(t, "/tmp/daohome", cfg.Home)
	require.Equal(t, "/tmp/daohome/config/genesis.json", cfg.GenesisFile())
	require.Equal(t, "/tmp/daohome/config/member_key.json", cfg.KeyFilePath())
	require.Equal(t, "/tmp/daohome/data", cfg.DataDirPath())
	require.Equal(t, "/tmp/daohome/data/relay.db", cfg.RelayDBPath())

	// absolute paths are honored as-is
	cfg.Genesis = "/etc/funddao/genesis.json"
	require.Equal(t, "/etc/funddao/genesis.json", cfg.GenesisFile())
}

func TestWriteAndLoad(t *testing.T) {
	home := t.TempDir()
	cfg := DefaultConfig(home)
	cfg.ListenAddr = "127.0.0.1:9000"
	cfg.LogLevel = "debug"
	require.NoError(t, cfg.EnsureRoot())
	WriteConfigFile(cfg.ConfigFilePath(), cfg)

	got, err := Load(home)
	require.NoError(t, err)
	require.Equal(t, "127.0.0.1:9000", got.ListenAddr)
	require.Equal(t, "debug", got.LogLevel)
	require.Equal(t, filepath.Join(home, "data"), got.DataDirPath())
}

func TestLoadMissingConfig(t *testing.T) {
	_, err := Load(t.TempDir())
	require.Error(t, err)
}

func TestEnsureRoot(t *testing.T) {
	home := filepath.Join(t.TempDir(), "nested", "home")
	cfg := DefaultConfig(home)
	require.NoError(t, cfg.EnsureRoot())

	for _, dir := range []string{home, filepath.Join(home, "config"), filepath.Join(home, "data")} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		require.True(t, info.IsDir())
	}
}
