package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// File and directory names of the npm layout.
const (
	FileName       = "package.json"
	NodeModulesDir = "node_modules"
)

// ErrNotFound is returned by Load when the project has no package.json.
var ErrNotFound = errors.New("package.json not found")

// Dep is one entry of a dependency field. Version is the constraint string as
// written; it is never interpreted.
type Dep struct {
	Name    string
	Version string
}

// Package is a project manifest. Dependency slices keep declaration order.
type Package struct {
	Name            string
	Version         string
	Dependencies    []Dep
	DevDependencies []Dep
}

// AllDependencies returns dependencies followed by devDependencies.
func (p *Package) AllDependencies() []Dep {
	all := make([]Dep, 0, len(p.Dependencies)+len(p.DevDependencies))
	all = append(all, p.Dependencies...)
	return append(all, p.DevDependencies...)
}

// Metadata is the subset of an installed dependency's package.json that
// matters for type detection.
type Metadata struct {
	Name    string
	Version string
	Types   string
	Typings string
}

// BundlesTypes reports whether the package declares its own type entry point.
func (m *Metadata) BundlesTypes() bool {
	return m != nil && (strings.TrimSpace(m.Types) != "" || strings.TrimSpace(m.Typings) != "")
}

// ValidationError reports a manifest that does not match the schema.
type ValidationError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid %s", e.Path)
	for _, issue := range e.Issues {
		fmt.Fprintf(&b, "\n  %s: %s", issue.Path, issue.Message)
	}
	return b.String()
}
