package manager

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/typefill-labs/typefill/internal/logging"
)

// ErrNoTool is returned when an install is attempted without a tool.
var ErrNoTool = errors.New("no supported package manager found")

// InstallError reports a package manager that exited unsuccessfully.
type InstallError struct {
	Command string
	Output  string
	Err     error
}

func (e *InstallError) Error() string {
	msg := fmt.Sprintf("%s: %v", e.Command, e.Err)
	if out := strings.TrimSpace(e.Output); out != "" {
		msg += "\n" + out
	}
	return msg
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Runner executes a program and returns its combined output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run executes name in dir. An empty dir means the current directory.
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	return cmd.CombinedOutput()
}

// Installer adds packages as development dependencies of the project in Dir.
type Installer struct {
	Tool   Tool
	Dir    string
	Runner Runner
}

// Install runs the tool once with all of pkgs.
func (i *Installer) Install(ctx context.Context, pkgs []string) error {
	if i.Tool.IsZero() {
		return fmt.Errorf("%w (supported: %s)", ErrNoTool, strings.Join(Names(), ", "))
	}

	runner := i.Runner
	if runner == nil {
		runner = ExecRunner{}
	}

	logging.From(ctx).Debug().
		Str("tool", i.Tool.Name).
		Strs("packages", pkgs).
		Msg("running installer")

	out, err := runner.Run(ctx, i.Dir, i.Tool.Name, i.Tool.Args(pkgs)...)
	if err != nil {
		return &InstallError{
			Command: i.Tool.CommandLine(pkgs),
			Output:  string(out),
			Err:     err,
		}
	}
	return nil
}
