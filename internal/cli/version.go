package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/typefill-labs/typefill/internal/branding"
)

var (
	versionShort bool
	versionJSON  bool
)

// buildInfo is the --json shape of the version command.
type buildInfo struct {
	Name    string `json:"name"`
	Module  string `json:"module"`
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

func currentBuild() buildInfo {
	return buildInfo{
		Name:    branding.CLIName(),
		Module:  branding.GoModule(),
		Version: buildVersion,
		Commit:  buildCommit,
		Date:    buildDate,
	}
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "Print the version number only")
	versionCmd.Flags().BoolVar(&versionJSON, "json", false, "Print name, module and build info as JSON")
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print " + branding.DisplayName() + " build information",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		info := currentBuild()

		switch {
		case versionShort:
			fmt.Fprintln(w, info.Version)
		case versionJSON:
			out, err := json.MarshalIndent(info, "", "  ")
			if err != nil {
				return fmt.Errorf("marshaling version info: %w", err)
			}
			fmt.Fprintln(w, string(out))
		default:
			fmt.Fprintf(w, "%s version %s (commit: %s, built: %s)\n", info.Name, info.Version, info.Commit, info.Date)
		}
		return nil
	},
}
