package cmd

import (
	"os"

	"github.com/huangsam/satscout/core"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/spf13/cobra"
)

// browseCmd lists the schools and shows scores for schools picked interactively.
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Pick schools from the list and view their SAT scores",
	Long: `List the schools, then read selections from standard input.

Enter a rank from the list or a DBN to view that school's scores. A new
selection replaces one that is still loading, so only the latest pick is
ever shown. Enter q to quit.

Examples:
  # Browse Brooklyn schools by name
  satscout browse --filter brooklyn`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteBrowse(rootCtx, cfg, client, historyManager, os.Stdin, os.Stdout); err != nil {
			contract.LogFatal("Cannot browse schools", err)
		}
	},
}
