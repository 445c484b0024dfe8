package enrich

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strconv"
	"strings"

	"github.com/radiofrance/maestro-allure/internal/logger"
	"github.com/radiofrance/maestro-allure/pkg/allure"
	"github.com/radiofrance/maestro-allure/pkg/junit"
)

// Case is one test case read from a JUnit report, in execution order.
type Case struct {
	ReportKey string
	FlowFile  string
	OutputDir string
	Name      string
	Status    string
	Duration  float64 // seconds
	Details   *allure.StatusDetails
}

// CollectCases reads every report file named after a mapping key, in
// mapping order, and returns the test cases found in document order.
// Each report file is deleted once fully parsed so it cannot be consumed
// twice; a missing report file is skipped, a malformed one is fatal.
func CollectCases(resultsDir string, mappings []ReportMapping) ([]Case, error) {
	var cases []Case

	for _, mapping := range mappings {
		reportPath := path.Join(resultsDir, mapping.Key+".xml")

		raw, err := os.ReadFile(reportPath)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, err
		}

		suites, err := junit.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse report %s: %w", reportPath, err)
		}

		for _, suite := range suites {
			for _, testCase := range suite.TestCases {
				cases = append(cases, newCase(mapping, testCase))
			}
		}

		if err := os.Remove(reportPath); err != nil {
			return nil, err
		}
		logger.Debugf("Consumed report %s", reportPath)
	}

	return cases, nil
}

// newCase derives the case status. A <failure>/<error> marker wins over
// the status attribute, Maestro may write the marker alone; an explicit
// status="failure" also fails the case; anything else passes.
func newCase(mapping ReportMapping, testCase junit.TestCase) Case {
	c := Case{
		ReportKey: mapping.Key,
		FlowFile:  mapping.FlowFile,
		OutputDir: mapping.OutputDir,
		Name:      testCase.DisplayName(),
		Status:    allure.StatusPassed,
		Duration:  parseSeconds(testCase.Time),
	}

	if marker := testCase.Marker(); marker != nil {
		c.Status = allure.StatusFailed
		c.Details = statusDetails(marker)
	} else if strings.EqualFold(testCase.Status, "failure") {
		c.Status = allure.StatusFailed
	}

	return c
}

// statusDetails extracts the failure message from the marker, preferring
// the message attribute over the body. The trace is kept only when it
// adds something over the message.
func statusDetails(marker *junit.Marker) *allure.StatusDetails {
	message := strings.TrimSpace(marker.Message)
	body := strings.TrimSpace(marker.Body)

	if message == "" {
		message = body
	}
	if message == "" {
		message = "Test failed"
	}

	trace := body
	if trace == message {
		trace = ""
	}

	return &allure.StatusDetails{Message: message, Trace: trace}
}

// parseSeconds reads a JUnit time attribute, an absent or malformed
// value counts as zero duration.
func parseSeconds(value string) float64 {
	if value == "" {
		return 0
	}
	seconds, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0
	}
	return seconds
}
