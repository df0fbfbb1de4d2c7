// Package schemas holds the JSON Schema documents for structured model output.
package schemas

import "embed"

// SkillGapAnalysis is the file name of the gap analysis schema.
const SkillGapAnalysis = "skill_gap_analysis.schema.json"

// Files contains every schema document in this directory.
//
//go:embed *.schema.json
var Files embed.FS
