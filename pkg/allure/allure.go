// Package allure holds the result file format consumed by the Allure
// report generator, see https://allurereport.org/docs/how-it-works/.
package allure

import (
	"encoding/json"
	"os"
	"path"
)

const (
	StatusPassed  = "passed"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Result is one emitted test result, serialized as <uuid>-result.json.
type Result struct {
	UUID          string         `json:"uuid"`
	HistoryID     string         `json:"historyId"`
	FullName      string         `json:"fullName"`
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
	Labels        []Label        `json:"labels"`
	Steps         []Step         `json:"steps"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
}

type Step struct {
	Name          string         `json:"name"`
	Status        string         `json:"status"`
	Start         int64          `json:"start"`
	Stop          int64          `json:"stop"`
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`
	Attachments   []Attachment   `json:"attachments,omitempty"`
}

type StatusDetails struct {
	Message string `json:"message"`
	Trace   string `json:"trace"`
}

type Label struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Attachment references a file stored beside the result files.
type Attachment struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Type   string `json:"type"`
}

// Write persists the result inside dir, named after its uuid. Result
// files are write-once, the report generator never expects updates.
func (r Result) Write(dir string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path.Join(dir, r.UUID+"-result.json"), data, 0o644) //nolint:gosec
}
