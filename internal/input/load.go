// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/vulnradar/radar-notify/internal/types"
)

// Load reads a radar scan export from path and returns its records.
// An unreadable file is an error; an unexpected payload shape is not.
func Load(path string) ([]types.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return Parse(data), nil
}

// Parse extracts records from a scan export payload. Accepted shapes are
// a top-level array, or an object whose "items" field holds an array;
// anything else yields no records. Array elements that are not objects
// are skipped.
func Parse(data []byte) []types.Record {
	var rawItems []json.RawMessage
	if err := json.Unmarshal(data, &rawItems); err != nil {
		var probe struct {
			Items json.RawMessage `json:"items"`
		}
		if err := json.Unmarshal(data, &probe); err != nil || probe.Items == nil {
			return nil
		}
		if err := json.Unmarshal(probe.Items, &rawItems); err != nil {
			return nil
		}
	}

	records := make([]types.Record, 0, len(rawItems))
	for _, raw := range rawItems {
		var r types.Record
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records
}
