// Package prompts holds the skill gap prompt and the response schema
// descriptions, embedded from analysis.json.
package prompts

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed analysis.json
var analysisJSON []byte

// Keys in analysis.json.
const (
	SkillGap             = "skill-gap"
	CommonSkillsField    = "common-skills-field"
	CommonSkillsItem     = "common-skills-item"
	SkillsToDevelopField = "skills-to-develop-field"
	SkillsToDevelopItem  = "skills-to-develop-item"
)

var loadAnalysis = sync.OnceValues(func() (map[string]string, error) {
	return parse("analysis.json", analysisJSON)
})

func parse(name string, data []byte) (map[string]string, error) {
	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", name, err)
	}
	return prompts, nil
}

// Get returns the prompt text stored under key.
func Get(key string) (string, error) {
	prompts, err := loadAnalysis()
	if err != nil {
		return "", err
	}
	prompt, ok := prompts[key]
	if !ok {
		return "", fmt.Errorf("prompt key %q not found", key)
	}
	return prompt, nil
}

// MustGet is Get for keys compiled into the binary. It panics on a missing key.
func MustGet(key string) string {
	prompt, err := Get(key)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders of the form {{.Key}} with values from data.
// Values are inserted verbatim in a single pass, so placeholder-like text
// inside a value is never expanded.
func Format(template string, data map[string]string) string {
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}
