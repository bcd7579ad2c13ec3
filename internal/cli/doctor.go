package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/typefill-labs/typefill/internal/branding"
	"github.com/typefill-labs/typefill/internal/config"
	"github.com/typefill-labs/typefill/internal/manager"
	"github.com/typefill-labs/typefill/internal/manifest"
	"github.com/typefill-labs/typefill/internal/registry"
)

// Any published types package will do for a connectivity check.
const probePackage = "@types/node"

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check package managers, registry and project",
	Long: `Run diagnostic checks: which package managers are on PATH and their versions,
whether the registry answers, and whether the project manifest is readable.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		ctx := cmd.Context()

		checkTools(ctx, w)
		checkRegistry(ctx, w)

		dir, err := projectDir()
		if err != nil {
			return err
		}
		checkManifest(w, dir)
		return nil
	},
}

func label(kind string) string {
	switch kind {
	case "ok":
		return color.GreenString("[ OK ]")
	case "miss":
		return color.YellowString("[MISS]")
	case "warn":
		return color.YellowString("[WARN]")
	default:
		return color.RedString("[FAIL]")
	}
}

func checkTools(ctx context.Context, w io.Writer) {
	fmt.Fprintln(w, "Package managers:")

	selected := config.Get(config.KeyTool)
	chosen := false
	for _, st := range detector.Probe(ctx) {
		if !st.Available {
			fmt.Fprintf(w, "  %s %s not on PATH\n", label("miss"), st.Tool.Name)
			continue
		}

		version := st.Version
		if st.Semver != nil {
			version = st.Semver.String()
		}
		if version == "" {
			version = "unknown version"
		}

		line := fmt.Sprintf("  %s %s %s (%s)", label("ok"), st.Tool.Name, version, st.Path)
		if (selected == "" && !chosen) || selected == st.Tool.Name {
			line += " " + color.CyanString("<- will be used")
			chosen = true
		}
		fmt.Fprintln(w, line)
	}

	if selected != "" {
		if _, ok := manager.Lookup(selected); !ok {
			fmt.Fprintf(w, "  %s configured tool %q is not supported\n", label("fail"), selected)
		}
	} else if !chosen {
		fmt.Fprintf(w, "  %s no supported package manager found; installs will fail\n", label("fail"))
	}
}

func checkRegistry(ctx context.Context, w io.Writer) {
	client := registry.New(
		registry.WithBaseURL(config.Get(config.KeyRegistry)),
		registry.WithTimeout(config.Timeout()),
	)
	fmt.Fprintf(w, "Registry: %s\n", client.BaseURL())

	if _, err := client.Exists(ctx, probePackage); err != nil {
		fmt.Fprintf(w, "  %s unreachable: %v\n", label("fail"), err)
		return
	}
	fmt.Fprintf(w, "  %s reachable\n", label("ok"))
}

func checkManifest(w io.Writer, dir string) {
	fmt.Fprintf(w, "Project: %s\n", dir)

	if !manifest.Exists(dir) {
		fmt.Fprintf(w, "  %s no %s; %s has nothing to do here\n", label("miss"), manifest.FileName, branding.CLIName())
		return
	}

	pkg, err := manifest.Load(dir)
	var verr *manifest.ValidationError
	if errors.As(err, &verr) {
		fmt.Fprintf(w, "  %s %s is invalid:\n", label("fail"), manifest.FileName)
		for _, issue := range verr.Issues {
			fmt.Fprintf(w, "      %s: %s\n", issue.Path, issue.Message)
		}
		return
	}
	if err != nil {
		fmt.Fprintf(w, "  %s %v\n", label("fail"), err)
		return
	}

	fmt.Fprintf(w, "  %s %s (%d dependencies, %d devDependencies)\n",
		label("ok"), manifest.FileName, len(pkg.Dependencies), len(pkg.DevDependencies))
}
