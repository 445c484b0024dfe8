package junit

import (
	"encoding/xml"
)

type TestSuites struct {
	XMLName xml.Name    `xml:"testsuites"`
	Suites  []TestSuite `xml:"testsuite"`
}

type TestSuite struct {
	XMLName   xml.Name   `xml:"testsuite"`
	Name      string     `xml:"name,attr"`
	Errors    string     `xml:"errors,attr"`
	Tests     string     `xml:"tests,attr"`
	Failures  string     `xml:"failures,attr"`
	Skipped   string     `xml:"skipped,attr"`
	Time      string     `xml:"time,attr"`
	Timestamp string     `xml:"timestamp,attr"`
	TestCases []TestCase `xml:"testcase"`
}

type TestCase struct {
	XMLName   xml.Name `xml:"testcase"`
	ClassName string   `xml:"classname,attr"`
	ID        string   `xml:"id,attr"`
	Name      string   `xml:"name,attr"`
	Status    string   `xml:"status,attr"`
	Time      string   `xml:"time,attr"`
	Failure   *Marker  `xml:"failure"`
	Error     *Marker  `xml:"error"`
}

// Marker is a <failure> or <error> child element. The message lives in
// the message attribute, the body usually repeats it with more context.
type Marker struct {
	Message string `xml:"message,attr"`
	Body    string `xml:",chardata"`
}

// Parse casts a raw XML JUnit report into its list of test suites.
// Both a single <testsuite> root and a <testsuites> wrapper are accepted,
// Maestro emits the former while most CI runners emit the latter.
func Parse(report []byte) ([]TestSuite, error) {
	var root struct {
		XMLName xml.Name
	}
	if err := xml.Unmarshal(report, &root); err != nil {
		return nil, err
	}

	if root.XMLName.Local == "testsuites" {
		wrapper := TestSuites{}
		if err := xml.Unmarshal(report, &wrapper); err != nil {
			return nil, err
		}
		return wrapper.Suites, nil
	}

	suite := TestSuite{}
	if err := xml.Unmarshal(report, &suite); err != nil {
		return nil, err
	}
	return []TestSuite{suite}, nil
}

// Marker returns the failure marker of the test case, <failure> taking
// precedence over <error>, or nil when the test case carries none.
func (tc TestCase) Marker() *Marker {
	if tc.Failure != nil {
		return tc.Failure
	}
	return tc.Error
}

// DisplayName returns the name attribute, falling back to the id attribute.
func (tc TestCase) DisplayName() string {
	if tc.Name != "" {
		return tc.Name
	}
	if tc.ID != "" {
		return tc.ID
	}
	return "Unnamed"
}
