package cmd

import (
	"github.com/huangsam/satscout/core"
	"github.com/huangsam/satscout/internal/contract"
	"github.com/spf13/cobra"
)

// scoreCmd shows the SAT scores of one school.
var scoreCmd = &cobra.Command{
	Use:   "score <dbn>",
	Short: "Show the average SAT scores of a school",
	Long: `Look up the average SAT scores of one school by its DBN.

Shows the number of test takers and, for reading, math and writing, the
average score with its tier:
- Low: 450 and below
- Medium: 451 to 650
- High: above 650

Schools with zero test takers or no SAT record show "No data found".

Examples:
  # Scores for Henry Street School for International Studies
  satscout score 01M292

  # As JSON, including the fetch outcome
  satscout score 01M292 --output json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, args []string) {
		if err := core.ExecuteScore(rootCtx, cfg, client, historyManager, args[0]); err != nil {
			contract.LogFatal("Cannot look up score", err)
		}
	},
}
