// Package flow extracts human-readable step descriptions from Maestro
// flow files. The extraction is a best-effort heuristic over the raw
// lines rather than a full YAML walk: it recognizes a handful of command
// shapes and silently skips everything else.
package flow

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"regexp"
	"strings"
)

var (
	patternCommand = regexp.MustCompile(`^\s*-\s+(\w+)\s*:\s*(.*)$`)
	patternSubflow = regexp.MustCompile(`file:\s*\.\./subflows/(\S+)`)
	patternID      = regexp.MustCompile(`id:\s*["']?([^"'\s]+)`)
	patternText    = regexp.MustCompile(`text:\s*["']?([^"'\n]+)`)
)

// ExtractSteps reads the flow file and returns one description per
// recognized command, in document order. A missing file yields an empty
// step list, any other read failure is an error. Everything before the
// "---" document separator is the flow header and produces no steps.
func ExtractSteps(path string) ([]string, error) {
	raw, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(raw), "\n")
	var steps []string
	inSteps := false

	for i, line := range lines {
		line = strings.TrimRight(line, " \t\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "---" {
			inSteps = true
			continue
		}
		if !inSteps {
			continue
		}

		// Comment lines double as step labels, a bare "#" does not.
		if strings.HasPrefix(trimmed, "#") && trimmed != "#" {
			label := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
			if label == "" {
				label = "Comment"
			}
			steps = append(steps, label)
			continue
		}

		match := patternCommand.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		command, inline := match[1], strings.TrimSpace(match[2])

		switch command {
		case "runFlow":
			steps = append(steps, "Run flow: "+subflowName(lines, i+1))
		case "launchApp":
			steps = append(steps, "Launch app (clear state)")
		case "tapOn":
			detail := inline
			if detail == "" {
				detail = lookaheadID(lines, i+1)
			}
			if strings.Contains(detail, "id:") {
				if m := patternID.FindStringSubmatch(detail); m != nil {
					detail = m[1]
				}
			}
			if detail != "" {
				steps = append(steps, "Tap: "+detail)
			} else {
				steps = append(steps, "Tap")
			}
		case "assertVisible":
			steps = append(steps, assertVisibleStep(lines, i+1, inline))
		default:
			if inline != "" {
				steps = append(steps, fmt.Sprintf("%s (%s)", command, inline))
			} else {
				steps = append(steps, command)
			}
		}
	}

	return steps, nil
}

// subflowName scans the indented block following a runFlow command for a
// relative subflow file reference and returns its base name.
func subflowName(lines []string, start int) string {
	for j := start; j < len(lines); j++ {
		if !strings.HasPrefix(lines[j], " ") && !strings.HasPrefix(lines[j], "\t") {
			break
		}
		if m := patternSubflow.FindStringSubmatch(lines[j]); m != nil {
			return strings.TrimSuffix(m[1], ".yaml")
		}
	}
	return "subflow"
}

// lookaheadID scans the indented block following a command for an id:
// field, up to 5 lines, and returns the identifier token.
func lookaheadID(lines []string, start int) string {
	end := min(start+5, len(lines))
	for j := start; j < end; j++ {
		if !strings.HasPrefix(lines[j], " ") && !strings.HasPrefix(lines[j], "\t") {
			break
		}
		if m := patternID.FindStringSubmatch(lines[j]); m != nil {
			return m[1]
		}
	}
	return ""
}

// assertVisibleStep resolves the assertion target, either from the inline
// value or by scanning the next few lines for an id: or text: field.
// An id match wins over a text match.
func assertVisibleStep(lines []string, next int, inline string) string {
	detail := inline
	if detail == "" {
		end := min(next+5, len(lines))
		for j := next; j < end; j++ {
			if m := patternID.FindStringSubmatch(lines[j]); m != nil {
				detail = m[1]
				break
			}
			if strings.Contains(lines[j], "text:") {
				if m := patternText.FindStringSubmatch(lines[j]); m != nil {
					detail = strings.Trim(strings.TrimSpace(m[1]), `"`)
				}
				break
			}
		}
	}

	if strings.Contains(detail, "id:") {
		if m := patternID.FindStringSubmatch(detail); m != nil {
			detail = m[1]
		}
	} else if strings.Contains(detail, "text:") {
		if m := patternText.FindStringSubmatch(detail); m != nil {
			detail = strings.TrimSpace(m[1])
		}
	}

	if detail != "" {
		return "Assert visible: " + detail
	}
	return "Assert visible"
}
