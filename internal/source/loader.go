// Package source reads the JSON documents an ingestion run loads from.
package source

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"ecomingest/internal/ingest"
)

// Record is one JSON object, kept undecoded until its table loader maps it.
type Record map[string]json.RawMessage

// Load reads the document at path and returns its records in file order.
// A missing file wraps ingest.ErrMissingSourceFile; content that is not a
// JSON array of objects wraps ingest.ErrMalformedSource. Any other read
// failure is returned as is.
func Load(path string) ([]Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file %s not found: %w", path, ingest.ErrMissingSourceFile)
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(path, data)
}

// Parse decodes data as a document named name.
func Parse(name string, data []byte) ([]Record, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("invalid JSON in %s: expected a top-level array: %w", name, ingest.ErrMalformedSource)
	}

	var records []Record
	if err := json.Unmarshal(trimmed, &records); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %v: %w", name, err, ingest.ErrMalformedSource)
	}
	if records == nil {
		records = []Record{}
	}
	return records, nil
}
