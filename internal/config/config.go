package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/typefill-labs/typefill/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTool        = "tool"
	KeyRegistry    = "registry"
	KeyConcurrency = "concurrency"
	KeyTimeout     = "timeout"
)

// Keys lists every key accepted by Set.
var Keys = []string{KeyTool, KeyRegistry, KeyConcurrency, KeyTimeout}

// Defaults for keys that are not set anywhere.
const (
	DefaultConcurrency = 4
	DefaultTimeout     = 30 * time.Second
)

// Dir returns the path to the config directory (~/.typefill/).
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.typefill/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	viper.SetDefault(KeyRegistry, branding.RegistryURL())
	viper.SetDefault(KeyConcurrency, DefaultConcurrency)
	viper.SetDefault(KeyTimeout, DefaultTimeout)

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// LoadDotEnv loads <dir>/.env into the process environment. Variables that
// are already set keep their values. A missing file is not an error.
func LoadDotEnv(dir string) error {
	path := filepath.Join(dir, ".env")
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// Concurrency returns the configured registry lookup concurrency (minimum 1).
func Concurrency() int {
	n := viper.GetInt(KeyConcurrency)
	if n < 1 {
		return 1
	}
	return n
}

// Timeout returns the per-request registry timeout.
func Timeout() time.Duration {
	d := viper.GetDuration(KeyTimeout)
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if !slices.Contains(Keys, key) {
		return fmt.Errorf("unknown config key %q (valid keys: %v)", key, Keys)
	}
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
