package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radiofrance/maestro-allure/pkg/allure"
)

func TestFailedStepIndex(t *testing.T) {
	t.Parallel()

	steps := []string{
		"Launch app (clear state)",
		"Tap: login-button",
		"Assert visible: Welcome",
		"Tap: logout",
	}

	tests := []struct {
		name     string
		details  *allure.StatusDetails
		expected int
	}{
		{
			name:     "quoted substring selects the matching step",
			details:  &allure.StatusDetails{Message: `Assertion is false: "Welcome" is visible`},
			expected: 2,
		},
		{
			name:     "no quoted match defaults to the last step",
			details:  &allure.StatusDetails{Message: `Element "does-not-exist" not found`},
			expected: 3,
		},
		{
			name:     "short quoted candidates are skipped",
			details:  &allure.StatusDetails{Message: `Got "ok" but "login-button" was gone`},
			expected: 1,
		},
		{
			name:     "trace is searched too",
			details:  &allure.StatusDetails{Message: "Test failed", Trace: `tap on "login-button" timed out`},
			expected: 1,
		},
		{
			name:     "nil details default to the last step",
			details:  nil,
			expected: 3,
		},
		{
			name:     "unquoted message defaults to the last step",
			details:  &allure.StatusDetails{Message: "Timeout waiting for animation to end"},
			expected: 3,
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, test.expected, failedStepIndex(steps, test.details))
		})
	}
}

func TestFailedStepIndex_EmptySteps(t *testing.T) {
	t.Parallel()

	assert.Equal(t, -1, failedStepIndex(nil, &allure.StatusDetails{Message: `"Welcome"`}))
}
