package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const (
	DefaultHomeEnv    = "$HOME/.funddao"
	DefaultListenAddr = "0.0.0.0:8571"

	defaultConfigDir  = "config"
	defaultDataDir    = "data"
	defaultConfigFile = "config.toml"
	defaultGenesis    = "genesis.json"
	defaultKeyFile    = "member_key.json"
	defaultRelayDB    = "relay.db"
)

type Config struct {
	Home string `mapstructure:"-"`

	// ListenAddr is where the governance service serves HTTP.
	ListenAddr string `mapstructure:"listen_addr"`
	// ServerUrl is the service endpoint CLI commands talk to.
	ServerUrl string `mapstructure:"server_url"`
	LogLevel  string `mapstructure:"log_level"`

	Genesis string `mapstructure:"genesis_file"`
	KeyFile string `mapstructure:"key_file"`
	DataDir string `mapstructure:"data_dir"`
	RelayDB string `mapstructure:"relay_db"`
}

func DefaultConfig(home string) *Config {
	if len(home) == 0 {
		home = os.ExpandEnv(DefaultHomeEnv)
	}
	return &Config{
		Home:       home,
		ListenAddr: DefaultListenAddr,
		ServerUrl:  "http://127.0.0.1:8571",
		LogLevel:   "info",
		Genesis:    filepath.Join(defaultConfigDir, defaultGenesis),
		KeyFile:    filepath.Join(defaultConfigDir, defaultKeyFile),
		DataDir:    defaultDataDir,
		RelayDB:    filepath.Join(defaultDataDir, defaultRelayDB),
	}
}

// Load reads config.toml under home, filling defaults for anything the
// file leaves out.
func Load(home string) (*Config, error) {
	cfg := DefaultConfig(home)
	v := viper.New()
	v.SetConfigFile(filepath.Join(cfg.Home, defaultConfigDir, defaultConfigFile))
	v.SetConfigType("toml")
	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrap(err, "read config")
	}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	return cfg, nil
}

// rooted resolves a configured path against home unless it is absolute.
func (c *Config) rooted(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(c.Home, path)
}

func (c *Config) GenesisFile() string { return c.rooted(c.Genesis) }
func (c *Config) KeyFilePath() string { return c.rooted(c.KeyFile) }
func (c *Config) DataDirPath() string { return c.rooted(c.DataDir) }
func (c *Config) RelayDBPath() string { return c.rooted(c.RelayDB) }

func (c *Config) ConfigFilePath() string {
	return filepath.Join(c.Home, defaultConfigDir, defaultConfigFile)
}

// EnsureRoot creates the home layout.
func (c *Config) EnsureRoot() error {
	for _, dir := range []string{
		c.Home,
		filepath.Join(c.Home, defaultConfigDir),
		c.DataDirPath(),
	} {
		if err := os.MkdirAll(dir, DefaultDirPerm); err != nil {
			return errors.Wrapf(err, "create dir %q", dir)
		}
	}
	return nil
}
