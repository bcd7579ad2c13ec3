// Package branding provides compile-time identity values for the CLI.
//
// branding.yaml is embedded with //go:embed; the hard defaults below apply
// when a key is missing from it.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName     string `yaml:"cli_name"`
	DisplayName string `yaml:"display_name"`
	Description string `yaml:"description"`
	HomeDir     string `yaml:"home_dir"`
	EnvPrefix   string `yaml:"env_prefix"`
	GoModule    string `yaml:"go_module"`
	RegistryURL string `yaml:"registry_url"`
	TypesScope  string `yaml:"types_scope"`
}

func load() {
	once.Do(func() {
		defaults = brand{
			CLIName:     "typefill",
			DisplayName: "typefill",
			Description: "Install missing @types packages for a project's dependencies",
			HomeDir:     ".typefill",
			EnvPrefix:   "TYPEFILL",
			GoModule:    "github.com/typefill-labs/typefill",
			RegistryURL: "https://registry.npmjs.org/",
			TypesScope:  "@types/",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "typefill").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".typefill").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "TYPEFILL").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path reported by `version --json`.
func GoModule() string { load(); return defaults.GoModule }

// RegistryURL returns the default package registry base URL.
func RegistryURL() string { load(); return defaults.RegistryURL }

// TypesScope returns the namespace prefix of type-declaration packages.
func TypesScope() string { load(); return defaults.TypesScope }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("tool") → "TYPEFILL_TOOL".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
