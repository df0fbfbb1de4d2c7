package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// Source values for Metadata.
const (
	SourceFile = "file"
	SourceURL  = "url"
)

// Metadata describes where an ingested text came from.
type Metadata struct {
	Source    string `json:"source"`
	URL       string `json:"url,omitempty"`
	Path      string `json:"path,omitempty"`
	Platform  string `json:"platform,omitempty"`  // Detected job board platform
	Rendered  bool   `json:"rendered,omitempty"`  // Text came from a headless browser render
	Timestamp string `json:"timestamp"`           // RFC3339 format
	Hash      string `json:"hash"`                // SHA256 hex digest of the cleaned text
	Chars     int    `json:"chars"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		Chars:     len(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}
