package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/typefill-labs/typefill/internal/branding"
	"github.com/typefill-labs/typefill/internal/config"
	"github.com/typefill-labs/typefill/internal/logging"
	"github.com/typefill-labs/typefill/internal/manager"
	"github.com/typefill-labs/typefill/internal/manifest"
	"github.com/typefill-labs/typefill/internal/registry"
	"github.com/typefill-labs/typefill/internal/resolve"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	rootDir         string
	rootTool        string
	rootRegistry    string
	rootConcurrency int
	rootDryRun      bool
	rootVerbose     bool
)

// Replaced in tests.
var (
	detector      = manager.Detector{}
	installRunner manager.Runner = manager.ExecRunner{}
)

// Flags that override a config key of the same name.
var boundFlags = []string{config.KeyTool, config.KeyRegistry, config.KeyConcurrency}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&rootDir, "dir", "C", ".", "Project directory containing "+manifest.FileName)
	pf.StringVar(&rootTool, "tool", "", "Package manager to use ("+strings.Join(manager.Names(), ", ")+")")
	pf.StringVar(&rootRegistry, "registry", "", "Registry base URL (default "+branding.RegistryURL()+")")
	pf.BoolVarP(&rootVerbose, "verbose", "v", false, "Log registry and metadata lookups")

	rootCmd.Flags().IntVarP(&rootConcurrency, "concurrency", "j", config.DefaultConcurrency, "Maximum concurrent registry lookups")
	rootCmd.Flags().BoolVarP(&rootDryRun, "dry-run", "n", false, "Report what would be installed without installing")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [flags]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads package.json, works out which dependencies have no TypeScript
declarations, and installs the matching ` + branding.TypesScope() + `* packages as development
dependencies in a single package manager invocation.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}

		logger := logging.New(cmd.ErrOrStderr(), rootVerbose)
		if err := config.LoadDotEnv(dir); err != nil {
			logger.Warn().Err(err).Msg("ignoring .env")
		}
		config.Load()
		for _, name := range boundFlags {
			if f := cmd.Flags().Lookup(name); f != nil {
				if err := viper.BindPFlag(name, f); err != nil {
					return fmt.Errorf("binding --%s: %w", name, err)
				}
			}
		}

		cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
		return nil
	},
	RunE: runSync,
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "%s %v\n", color.RedString("Error:"), err)
		return err
	}
	return nil
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	dir, err := projectDir()
	if err != nil {
		return err
	}

	pkg, err := manifest.Load(dir)
	if errors.Is(err, manifest.ErrNotFound) {
		fmt.Fprintf(w, "No %s found in %s. Nothing to do.\n", manifest.FileName, dir)
		return nil
	}
	if err != nil {
		return err
	}

	tool, err := selectTool(w)
	if err != nil {
		return err
	}

	client := registry.New(
		registry.WithBaseURL(config.Get(config.KeyRegistry)),
		registry.WithTimeout(config.Timeout()),
	)
	logging.From(ctx).Debug().
		Str("dir", dir).
		Str("tool", tool.Name).
		Str("registry", client.BaseURL()).
		Int("concurrency", config.Concurrency()).
		Msg("starting")

	r := &resolve.Resolver{
		Metadata:    manifest.BundledTypesLookup(dir),
		Registry:    client.Exists,
		Installer:   &manager.Installer{Tool: tool, Dir: dir, Runner: installRunner},
		Out:         w,
		Concurrency: config.Concurrency(),
		DryRun:      rootDryRun,
	}
	_, err = r.Sync(ctx, pkg)
	return err
}

// selectTool honours an explicit tool setting and otherwise detects one.
// Finding nothing is only a warning; the install step reports the failure.
func selectTool(w io.Writer) (manager.Tool, error) {
	if name := config.Get(config.KeyTool); name != "" {
		tool, ok := manager.Lookup(name)
		if !ok {
			return manager.Tool{}, fmt.Errorf("unsupported tool %q (supported: %s)", name, strings.Join(manager.Names(), ", "))
		}
		return tool, nil
	}

	tool, ok := detector.Detect()
	if !ok {
		fmt.Fprintf(w, "%s no package manager found on PATH (looked for %s); use --tool to pick one.\n",
			color.YellowString("Warning:"), strings.Join(manager.Names(), ", "))
	}
	return tool, nil
}

func projectDir() (string, error) {
	dir, err := filepath.Abs(rootDir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory %s: %w", rootDir, err)
	}
	return dir, nil
}
