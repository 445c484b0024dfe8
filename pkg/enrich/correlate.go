package enrich

import (
	"regexp"
	"strings"

	"github.com/radiofrance/maestro-allure/pkg/allure"
)

var patternQuoted = regexp.MustCompile(`"([^"]+)"`)

// failedStepIndex picks the step presumed responsible for the failure.
// Maestro messages quote the assertion target, e.g.
// `Assertion is false: "coverage-percentage" is visible`, so each quoted
// substring of the message and trace is matched literally against the
// step descriptions; the first hit wins. Without a hit the last step is
// blamed, most actions fail at the final step. Best effort only: a
// quoted dynamic value can pick the wrong step, which degrades the
// display but is not treated as an error.
func failedStepIndex(steps []string, details *allure.StatusDetails) int {
	index := len(steps) - 1
	if details == nil {
		return index
	}

	message := details.Message + " " + details.Trace
	for _, match := range patternQuoted.FindAllStringSubmatch(message, -1) {
		quoted := match[1]
		if len(quoted) <= 2 {
			continue
		}
		for i, step := range steps {
			if strings.Contains(step, quoted) {
				return i
			}
		}
	}

	return index
}
