package cmd

import (
	"github.com/huangsam/satscout/core"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/spf13/cobra"
)

// schoolsCmd lists the school directory.
var schoolsCmd = &cobra.Command{
	Use:   "schools",
	Short: "List high schools from the NYC school directory",
	Long: `Fetch the NYC high school directory and list the schools sorted by name.

Each row shows:
- Rank in the sorted list (usable with 'browse')
- DBN, the district-borough-number identifier
- School name and address
- Whether a map location is available

If the directory cannot be fetched, an empty list is shown and the reason
is logged to stderr.

Examples:
  # List every school
  satscout schools

  # Schools in district 01 as CSV
  satscout schools --filter 01M --output csv

  # First 20 schools to a Parquet file
  satscout schools --limit 20 --output parquet --output-file schools.parquet`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteSchools(rootCtx, cfg, client, historyManager); err != nil {
			contract.LogFatal("Cannot list schools", err)
		}
	},
}
