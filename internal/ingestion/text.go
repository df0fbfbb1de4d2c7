// Package ingestion turns job postings and skill lists from files or URLs
// into clean text for analysis.
package ingestion

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	multiSpace  = regexp.MustCompile(`[ \t]+`)
	extraBlanks = regexp.MustCompile(`\n{3,}`)
)

// CleanText normalizes line endings and whitespace while keeping headings,
// bullets and paragraph breaks.
func CleanText(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = cleanLine(line)
	}

	result := extraBlanks.ReplaceAllString(strings.Join(lines, "\n"), "\n\n")
	return strings.TrimSpace(result)
}

// cleanLine collapses runs of spaces inside a line. Leading indentation is
// kept for bullets and plain lines; headings are flushed left.
func cleanLine(line string) string {
	line = strings.TrimRight(line, " \t")
	trimmed := strings.TrimLeft(line, " \t")
	if trimmed == "" {
		return ""
	}

	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}

	indent := len(line) - len(trimmed)
	body := multiSpace.ReplaceAllString(trimmed, " ")
	if indent > 0 {
		return strings.Repeat(" ", indent) + body
	}
	return body
}

// ReadFile reads a text file and returns its cleaned content with metadata.
func ReadFile(path string) (string, *Metadata, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil, fmt.Errorf("file not found: %w", err)
		}
		return "", nil, fmt.Errorf("failed to read file: %w", err)
	}

	cleanedText := CleanText(string(content))
	if cleanedText == "" {
		return "", nil, fmt.Errorf("file %s is empty", path)
	}

	metadata := NewMetadata(cleanedText, SourceFile)
	metadata.Path = path
	return cleanedText, metadata, nil
}
