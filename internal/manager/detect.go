package manager

import (
	"context"
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Status describes one supported tool on this machine.
type Status struct {
	Tool      Tool
	Path      string
	Available bool
	// Version is the raw --version output; Semver is set when it parses.
	Version string
	Semver  *semver.Version
}

// Detector finds tools on PATH.
type Detector struct {
	// LookPath defaults to exec.LookPath.
	LookPath func(file string) (string, error)
	// Runner is used to query tool versions; defaults to ExecRunner.
	Runner Runner
}

func (d Detector) lookPath(name string) (string, error) {
	if d.LookPath != nil {
		return d.LookPath(name)
	}
	return exec.LookPath(name)
}

func (d Detector) runner() Runner {
	if d.Runner != nil {
		return d.Runner
	}
	return ExecRunner{}
}

// Detect returns the first supported tool found on PATH. Tools declared later
// in Supported are never preferred over an earlier one.
func (d Detector) Detect() (Tool, bool) {
	for _, t := range Supported {
		if _, err := d.lookPath(t.Name); err == nil {
			return t, true
		}
	}
	return Tool{}, false
}

// Probe reports every supported tool, in preference order, with its version
// when it is available.
func (d Detector) Probe(ctx context.Context) []Status {
	statuses := make([]Status, 0, len(Supported))
	for _, t := range Supported {
		st := Status{Tool: t}
		path, err := d.lookPath(t.Name)
		if err == nil {
			st.Path = path
			st.Available = true
			st.Version, st.Semver = d.version(ctx, path)
		}
		statuses = append(statuses, st)
	}
	return statuses
}

func (d Detector) version(ctx context.Context, path string) (string, *semver.Version) {
	out, err := d.runner().Run(ctx, "", path, "--version")
	if err != nil {
		return "", nil
	}
	raw := strings.TrimSpace(string(out))
	if i := strings.IndexByte(raw, '\n'); i >= 0 {
		raw = strings.TrimSpace(raw[:i])
	}
	v, err := semver.NewVersion(strings.TrimPrefix(raw, "v"))
	if err != nil {
		return raw, nil
	}
	return raw, v
}
