package resolve

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/typefill-labs/typefill/internal/classify"
)

var (
	okColor   = color.New(color.FgGreen)
	addColor  = color.New(color.FgCyan)
	warnColor = color.New(color.FgYellow)
	skipColor = color.New(color.Faint)
)

// PrintOutcome writes the status line for one classified dependency.
func PrintOutcome(w io.Writer, o classify.Outcome) {
	switch o.Kind {
	case classify.AlreadyHasTypes:
		_, _ = skipColor.Fprintf(w, "  ✓ %s: %s already declared\n", o.Name, classify.TypesPackage(o.Name))
	case classify.BundlesOwnTypes:
		_, _ = skipColor.Fprintf(w, "  ✓ %s: ships its own types\n", o.Name)
	case classify.NeedsInstall:
		_, _ = addColor.Fprintf(w, "  + %s: %s\n", o.Name, o.TypesPackage)
	case classify.NotFoundInRegistry:
		_, _ = warnColor.Fprintf(w, "  ✗ %s: no types published\n", o.Name)
	}
}

// PrintNothingToInstall reports an empty batch.
func PrintNothingToInstall(w io.Writer) {
	fmt.Fprintln(w)
	_, _ = okColor.Fprintln(w, "Nothing to install. Every dependency has types or none are published.")
}

// PrintDryRun lists the batch that would have been installed.
func PrintDryRun(w io.Writer, batch []string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Would install %d %s: %s\n", len(batch), pluralize(len(batch)), strings.Join(batch, " "))
}

// PrintInstalling announces the install invocation.
func PrintInstalling(w io.Writer, batch []string) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Installing %d %s...\n", len(batch), pluralize(len(batch)))
}

// PrintSummary writes the closing counts of a successful run.
func PrintSummary(w io.Writer, res *Result) {
	_, _ = okColor.Fprintf(w, "✓ Installed %d %s.", len(res.Batch), pluralize(len(res.Batch)))
	skipped := res.Count(classify.AlreadyHasTypes) + res.Count(classify.BundlesOwnTypes)
	if skipped > 0 {
		fmt.Fprintf(w, " %d already typed (skipped).", skipped)
	}
	if missing := res.Count(classify.NotFoundInRegistry); missing > 0 {
		fmt.Fprintf(w, " %d without types.", missing)
	}
	fmt.Fprintln(w)
}

func pluralize(n int) string {
	if n == 1 {
		return "type package"
	}
	return "type packages"
}
