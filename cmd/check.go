package cmd

import (
	"fmt"
	"os"

	"github.com/huangsam/botspot/core"
	"github.com/huangsam/botspot/internal/contract"
	"github.com/spf13/cobra"
)

// checkCmd runs the full classification pipeline for one repository.
var checkCmd = &cobra.Command{
	Use:   "check <repo-url>",
	Short: "Classify a repository for AI-generated authorship and competition eligibility",
	Long: `Analyze a GitHub repository's commit history and render a likelihood verdict.

The pipeline:
- Fetches repository metadata and recent commits
- Computes deterministic signals (verification ratio, rapid commits, timing patterns)
- Checks eligibility against the competition start date
- Scans common project files for a generation marker
- Asks an AI model for a structured second opinion (unless --no-ai)
- Composes a final verdict and records it in the verdict store

Exit code is non-zero when the pipeline fails. An ineligible or likely-automated
repository is still a successful classification.

Examples:
  # Classify a repository by URL
  botspot check https://github.com/octocat/hello-world

  # Shorthand owner/name form
  botspot check octocat/hello-world

  # Deterministic only, no AI call
  botspot check octocat/hello-world --no-ai

  # Classify a local clone
  botspot check octocat/hello-world --source local --local-path ./hello-world

  # Export the verdict as JSON
  botspot check octocat/hello-world --output json --output-file verdict.json`,
	Args:    cobra.ExactArgs(1),
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteClassify(rootCtx, cfg, verdictManager); err != nil {
			fmt.Fprintf(os.Stderr, "❌ Classification failed (%s): %v\n", contract.ErrorCategory(err), err)
			os.Exit(1)
		}
	},
}
