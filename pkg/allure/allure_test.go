package allure_test

import (
	"encoding/json"
	"os"
	"path"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/radiofrance/maestro-allure/pkg/allure"
)

func TestResult_Write(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	result := allure.Result{
		UUID:      "0123456789abcdef01234567",
		HistoryID: "Test Suite:lorem#lorem",
		FullName:  "Test Suite:lorem",
		Name:      "lorem",
		Status:    allure.StatusPassed,
		Start:     1000,
		Stop:      2000,
		Labels:    []allure.Label{{Name: "suite", Value: "Test Suite"}},
		Steps:     []allure.Step{},
	}

	require.NoError(t, result.Write(dir))

	data, err := os.ReadFile(path.Join(dir, "0123456789abcdef01234567-result.json"))
	require.NoError(t, err)

	// Optional fields stay out of the file, the generator treats their
	// presence as meaningful.
	assert.NotContains(t, string(data), "statusDetails")
	assert.NotContains(t, string(data), "attachments")
	assert.Contains(t, string(data), `"steps": []`)

	actual := allure.Result{}
	require.NoError(t, json.Unmarshal(data, &actual))
	assert.Equal(t, result, actual)
}
