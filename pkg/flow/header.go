package flow

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Header is the YAML document preceding the "---" separator in a Maestro
// flow file.
type Header struct {
	AppID string   `yaml:"appId"`
	Name  string   `yaml:"name"`
	Tags  []string `yaml:"tags"`
}

// ParseHeader decodes the flow header. It is best effort: a missing file
// or an undecodable header yields a zero Header, never an error, as the
// header only enriches result labels.
func ParseHeader(path string) Header {
	header := Header{}

	raw, err := os.ReadFile(path)
	if err != nil {
		return header
	}

	head, _, _ := strings.Cut(string(raw), "\n---")
	_ = yaml.Unmarshal([]byte(head), &header)

	return header
}
