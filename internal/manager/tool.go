package manager

import (
	"strings"
)

// Tool is a supported package manager and the arguments that add packages as
// development dependencies.
type Tool struct {
	Name        string
	InstallArgs []string
}

// Supported lists the known tools in preference order.
var Supported = []Tool{
	{Name: "yarn", InstallArgs: []string{"add", "-D"}},
	{Name: "npm", InstallArgs: []string{"install", "--save-dev"}},
	{Name: "pnpm", InstallArgs: []string{"add", "-D"}},
	{Name: "bun", InstallArgs: []string{"add", "-d"}},
}

// Lookup returns the supported tool called name.
func Lookup(name string) (Tool, bool) {
	for _, t := range Supported {
		if t.Name == name {
			return t, true
		}
	}
	return Tool{}, false
}

// Names returns the names of all supported tools in preference order.
func Names() []string {
	names := make([]string, len(Supported))
	for i, t := range Supported {
		names[i] = t.Name
	}
	return names
}

// Args returns the full argument list for installing pkgs.
func (t Tool) Args(pkgs []string) []string {
	args := make([]string, 0, len(t.InstallArgs)+len(pkgs))
	args = append(args, t.InstallArgs...)
	return append(args, pkgs...)
}

// CommandLine renders the install command as it would be typed in a shell.
func (t Tool) CommandLine(pkgs []string) string {
	return strings.Join(append([]string{t.Name}, t.Args(pkgs)...), " ")
}

// IsZero reports whether t is the unset tool.
func (t Tool) IsZero() bool {
	return t.Name == ""
}
