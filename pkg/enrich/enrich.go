// Package enrich converts Maestro JUnit reports into enriched Allure
// results: one result file per test case, carrying the steps extracted
// from the corresponding flow file, failure diagnostics and a screenshot
// when one is available. Consumed reports are deleted so the Allure
// generator only sees the enriched results.
package enrich

import (
	"time"

	"github.com/radiofrance/maestro-allure/internal/logger"
	"github.com/radiofrance/maestro-allure/pkg/allure"
)

// ReportMapping binds a JUnit report to the flow file it was produced
// from and to the Maestro --test-output-dir holding failure screenshots.
type ReportMapping struct {
	Key       string `mapstructure:"key"`
	FlowFile  string `mapstructure:"flow"`
	OutputDir string `mapstructure:"output_dir"`
}

type Opts struct {
	// Root options
	ResultsDir string `mapstructure:"results_dir"`
	FlowsDir   string `mapstructure:"flows_dir"`

	// Report set, in execution order. Empty means DefaultMappings.
	Reports []ReportMapping `mapstructure:"reports"`
}

// DefaultMappings returns the regression suite reports in execution
// order, regression.sh runs the flows alphabetically.
func DefaultMappings() []ReportMapping {
	return []ReportMapping{
		{Key: "assets_report", FlowFile: "assets_test.yaml", OutputDir: "maestro-assets"},
		{Key: "dashboard_report", FlowFile: "dashboard_test.yaml", OutputDir: "maestro-dashboard"},
		{Key: "profile_report", FlowFile: "profile_test.yaml", OutputDir: "maestro-profile"},
	}
}

// Run executes the whole enrichment batch: collect test cases from every
// report file, then emit one Allure result per test case over a
// sequential timeline so the report shows the total run duration as the
// sum of all tests. Finding no test case at all is a silent no-op.
func Run(opts Opts) error {
	mappings := opts.Reports
	if len(mappings) == 0 {
		mappings = DefaultMappings()
	}

	cases, err := CollectCases(opts.ResultsDir, mappings)
	if err != nil {
		return err
	}
	if len(cases) == 0 {
		logger.Debugf("No test case found in %s, nothing to enrich", opts.ResultsDir)
		return nil
	}

	var totalSec float64
	for _, c := range cases {
		totalSec += c.Duration
	}

	emt := &emitter{
		resultsDir: opts.ResultsDir,
		flowsDir:   opts.FlowsDir,
		cursor:     time.Now().UnixMilli() - int64(totalSec*1000),
	}

	results := make([]allure.Result, 0, len(cases))
	for _, c := range cases {
		result, err := emt.emit(c)
		if err != nil {
			return err
		}
		results = append(results, result)
	}

	printSummary(results)
	logger.Infof("Enriched %d test case(s) into %s", len(results), opts.ResultsDir)

	return nil
}
