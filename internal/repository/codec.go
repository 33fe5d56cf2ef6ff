package repository

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// EncodeTasks serializes records as a JSON array. A nil slice encodes as [].
func EncodeTasks(records []TaskRecord) ([]byte, error) {
	if records == nil {
		records = []TaskRecord{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("encode tasks: %w", err)
	}
	return data, nil
}

// DecodeTasks parses a JSON array of task records. Blank input yields an empty slice.
func DecodeTasks(data []byte) ([]TaskRecord, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []TaskRecord{}, nil
	}
	var records []TaskRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	if records == nil {
		records = []TaskRecord{}
	}
	return records, nil
}
