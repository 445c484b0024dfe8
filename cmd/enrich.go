package cmd

import (
	"github.com/spf13/cobra"

	"github.com/radiofrance/maestro-allure/internal/logger"
	"github.com/radiofrance/maestro-allure/pkg/enrich"
)

func enrichCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Convert Maestro JUnit reports into enriched Allure results",
		Long: `maestro-allure enrich reads every known report file from the results
directory, rebuilds the executed steps from the matching flow file, and writes
one Allure result file per test case. Source reports are deleted once consumed.

The report set defaults to the regression suite and can be overridden in the
config file:

  reports:
    - key: assets_report
      flow: assets_test.yaml
      output_dir: maestro-assets`,
		Run: func(cmd *cobra.Command, _ []string) {
			bindPFlagsSnakeCase(cmd.Flags())

			opts := enrich.Opts{}
			hydrateOptsFromViper(&opts)

			if err := enrich.Run(opts); err != nil {
				logger.Fatalf("Enrichment failed: %v", err)
			}
		},
	}

	cmd.Flags().String("results-dir", defaultResultsDir,
		"Directory containing the JUnit reports, also receives the enriched results and copied screenshots.")
	cmd.Flags().String("flows-dir", defaultFlowsDir,
		"Directory containing the Maestro flow files the reports were produced from.")

	return cmd
}
