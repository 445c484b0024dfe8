package enrich

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/radiofrance/maestro-allure/pkg/allure"
	"github.com/radiofrance/maestro-allure/pkg/junit"
)

func TestNewCase_StatusPriority(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		testCase junit.TestCase
		expected string
	}{
		{
			name:     "failure marker wins over success attribute",
			testCase: junit.TestCase{Status: "SUCCESS", Failure: &junit.Marker{Message: "boom"}},
			expected: allure.StatusFailed,
		},
		{
			name:     "error marker alone fails the case",
			testCase: junit.TestCase{Error: &junit.Marker{Message: "crash"}},
			expected: allure.StatusFailed,
		},
		{
			name:     "explicit failure attribute without marker",
			testCase: junit.TestCase{Status: "FAILURE"},
			expected: allure.StatusFailed,
		},
		{
			name:     "explicit success attribute",
			testCase: junit.TestCase{Status: "SUCCESS"},
			expected: allure.StatusPassed,
		},
		{
			name:     "absent status attribute",
			testCase: junit.TestCase{},
			expected: allure.StatusPassed,
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()

			c := newCase(ReportMapping{Key: "lorem"}, test.testCase)
			assert.Equal(t, test.expected, c.Status)
		})
	}
}

func TestStatusDetails(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		marker   junit.Marker
		expected allure.StatusDetails
	}{
		{
			name:     "body kept as trace when it differs from the message",
			marker:   junit.Marker{Message: "Assertion is false", Body: "Assertion is false\n\nstack"},
			expected: allure.StatusDetails{Message: "Assertion is false", Trace: "Assertion is false\n\nstack"},
		},
		{
			name:     "trace dropped when identical to the message",
			marker:   junit.Marker{Message: "Assertion is false", Body: "Assertion is false"},
			expected: allure.StatusDetails{Message: "Assertion is false"},
		},
		{
			name:     "body promoted to message when the attribute is empty",
			marker:   junit.Marker{Body: "App crashed"},
			expected: allure.StatusDetails{Message: "App crashed"},
		},
		{
			name:     "default message when both are empty",
			marker:   junit.Marker{},
			expected: allure.StatusDetails{Message: "Test failed"},
		},
	}

	for _, test := range tests {
		test := test

		t.Run(test.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, &test.expected, statusDetails(&test.marker))
		})
	}
}

func TestParseSeconds(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 42.5, parseSeconds("42.5"), 0)
	assert.InDelta(t, 0, parseSeconds(""), 0)
	assert.InDelta(t, 0, parseSeconds("not-a-number"), 0)
}
