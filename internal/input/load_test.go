// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_TopLevelArray(t *testing.T) {
	data := `[
		{"cve_id": "CVE-2024-0001", "is_critical": true},
		{"cve_id": "CVE-2024-0002", "is_warning": true}
	]`

	records := Parse([]byte(data))
	require.Len(t, records, 2)
	assert.Equal(t, "CVE-2024-0001", records[0].CVEID)
	assert.True(t, records[0].IsCritical)
	assert.Equal(t, "CVE-2024-0002", records[1].CVEID)
	assert.True(t, records[1].IsWarning)
}

func TestParse_ItemsWrapper(t *testing.T) {
	data := `{"generated_at": "2026-02-12", "items": [{"cve_id": "CVE-2024-0001"}]}`

	records := Parse([]byte(data))
	require.Len(t, records, 1)
	assert.Equal(t, "CVE-2024-0001", records[0].CVEID)
}

func TestParse_UnexpectedShapes(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{name: "empty object", data: `{}`},
		{name: "items not an array", data: `{"items": 5}`},
		{name: "items is object", data: `{"items": {"cve_id": "CVE-2024-1"}}`},
		{name: "string", data: `"hello"`},
		{name: "number", data: `42`},
		{name: "wrong key", data: `{"records": [{"cve_id": "CVE-2024-1"}]}`},
		{name: "null", data: `null`},
		{name: "garbage", data: `{{{`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Empty(t, Parse([]byte(tc.data)))
		})
	}
}

func TestParse_SkipsNonObjectElements(t *testing.T) {
	data := `[1, "CVE-2024-0001", null, {"cve_id": "CVE-2024-0002"}, [2]]`

	records := Parse([]byte(data))
	require.Len(t, records, 1)
	assert.Equal(t, "CVE-2024-0002", records[0].CVEID)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "radar_data.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"cve_id": "CVE-2024-0001"}]`), 0o644))

	records, err := Load(path)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "CVE-2024-0001", records[0].CVEID)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
