package enrich

import (
	"fmt"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/radiofrance/maestro-allure/pkg/allure"
	"github.com/radiofrance/maestro-allure/pkg/flow"
)

// emitter writes one Allure result per test case. The timeline cursor
// advances by each test's duration so consecutive tests occupy disjoint,
// back-to-back windows: the report's total duration then equals the sum
// of the individual durations instead of wall-clock gaps.
type emitter struct {
	resultsDir string
	flowsDir   string
	cursor     int64 // epoch milliseconds
}

// resultID returns a 24 character identifier in Allure's compact form.
func resultID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:24]
}

func (e *emitter) emit(c Case) (allure.Result, error) {
	flowPath := path.Join(e.flowsDir, c.FlowFile)
	stepNames, err := flow.ExtractSteps(flowPath)
	if err != nil {
		return allure.Result{}, err
	}
	header := flow.ParseHeader(flowPath)

	start := e.cursor
	stop := start + int64(c.Duration*1000)
	e.cursor = stop

	failedIndex := -1
	if c.Status == allure.StatusFailed {
		failedIndex = failedStepIndex(stepNames, c.Details)
	}

	result := allure.Result{
		UUID:      resultID(),
		HistoryID: fmt.Sprintf("Test Suite:%s#%s", c.Name, c.Name),
		FullName:  "Test Suite:" + c.Name,
		Name:      c.Name,
		Status:    c.Status,
		Start:     start,
		Stop:      stop,
		Labels:    buildLabels(c.Name, header),
		Steps:     buildSteps(stepNames, c, failedIndex, start, stop),
	}
	if c.Status == allure.StatusFailed && c.Details != nil {
		result.StatusDetails = c.Details
	}

	// Screenshots only exist for reports run with --test-output-dir.
	if c.Status == allure.StatusFailed && c.OutputDir != "" {
		attachment, err := copyScreenshot(path.Join(e.resultsDir, c.OutputDir), e.resultsDir, resultID())
		if err != nil {
			return allure.Result{}, err
		}
		if attachment != nil {
			result.Attachments = []allure.Attachment{*attachment}
			if failedIndex >= 0 && failedIndex < len(result.Steps) {
				result.Steps[failedIndex].Attachments = []allure.Attachment{*attachment}
			}
		}
	}

	if err := result.Write(e.resultsDir); err != nil {
		return allure.Result{}, err
	}

	return result, nil
}

// buildSteps maps the case status onto the step sequence: a passed test
// passes every step, a failed test passes the steps before the failed
// one, fails it with the failure details, and skips the rest as they
// never ran. Step windows split [start, stop] into equal intervals, the
// last one absorbing the integer division remainder.
func buildSteps(names []string, c Case, failedIndex int, start, stop int64) []allure.Step {
	steps := make([]allure.Step, 0, len(names))
	if len(names) == 0 {
		return steps
	}

	stepDuration := (stop - start) / int64(len(names))
	for i, name := range names {
		stepStart := start + int64(i)*stepDuration
		stepStop := stepStart + stepDuration
		if i == len(names)-1 {
			stepStop = stop
		}

		step := allure.Step{
			Name:   name,
			Status: allure.StatusPassed,
			Start:  stepStart,
			Stop:   stepStop,
		}
		if c.Status == allure.StatusFailed {
			switch {
			case i == failedIndex:
				step.Status = allure.StatusFailed
				step.StatusDetails = c.Details
			case i > failedIndex:
				step.Status = allure.StatusSkipped
			}
		}

		steps = append(steps, step)
	}

	return steps
}

func buildLabels(name string, header flow.Header) []allure.Label {
	labels := []allure.Label{
		{Name: "suite", Value: "Test Suite"},
		{Name: "testClass", Value: name},
		{Name: "package", Value: name},
	}

	if header.AppID != "" {
		labels = append(labels, allure.Label{Name: "appId", Value: header.AppID})
	}
	for _, tag := range header.Tags {
		labels = append(labels, allure.Label{Name: "tag", Value: tag})
	}

	return labels
}
