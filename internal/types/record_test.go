// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScore_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name  string
		data  string
		valid bool
		value float64
	}{
		{name: "number", data: `0.9`, valid: true, value: 0.9},
		{name: "integer", data: `7`, valid: true, value: 7},
		{name: "numeric string", data: `"9.8"`, valid: true, value: 9.8},
		{name: "padded numeric string", data: `" 4.2 "`, valid: true, value: 4.2},
		{name: "non-numeric string", data: `"n/a"`, valid: false},
		{name: "null", data: `null`, valid: false},
		{name: "bool", data: `true`, valid: false},
		{name: "object", data: `{"score": 1}`, valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var s Score
			require.NoError(t, json.Unmarshal([]byte(tc.data), &s))
			assert.Equal(t, tc.valid, s.Valid)
			if tc.valid {
				assert.InDelta(t, tc.value, s.Value, 1e-9)
			}
		})
	}
}

func TestScore_Format(t *testing.T) {
	assert.Equal(t, "0.900", Score{Value: 0.9, Valid: true}.Format(3))
	assert.Equal(t, "9.8", Score{Value: 9.8, Valid: true}.Format(1))
	assert.Equal(t, "", Score{}.Format(3))
}

func TestScore_Or(t *testing.T) {
	assert.Equal(t, 0.5, Score{Value: 0.5, Valid: true}.Or(0))
	assert.Equal(t, 0.0, Score{Value: 0.5}.Or(0))
}

func TestScore_MarshalJSON(t *testing.T) {
	out, err := json.Marshal(Score{Value: 9.8, Valid: true})
	require.NoError(t, err)
	assert.Equal(t, "9.8", string(out))

	out, err = json.Marshal(Score{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestRecord_UnmarshalJSON(t *testing.T) {
	data := `{
		"cve_id": "CVE-2024-1111",
		"description": "Remote code execution.",
		"probability_score": 0.942,
		"cvss_score": "9.8",
		"active_threat": true,
		"in_patchthis": true,
		"watchlist_hit": false,
		"is_critical": true,
		"is_warning": false,
		"kev": {"dueDate": "2024-03-01"}
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))
	assert.Equal(t, "CVE-2024-1111", r.CVEID)
	assert.Equal(t, "Remote code execution.", r.Description)
	assert.True(t, r.ProbabilityScore.Valid)
	assert.InDelta(t, 0.942, r.ProbabilityScore.Value, 1e-9)
	assert.True(t, r.CVSSScore.Valid)
	assert.InDelta(t, 9.8, r.CVSSScore.Value, 1e-9)
	assert.True(t, r.ActiveThreat)
	assert.True(t, r.InPatchThis)
	assert.False(t, r.WatchlistHit)
	assert.True(t, r.IsCritical)
	assert.False(t, r.IsWarning)
	require.NotNil(t, r.KEV)
	assert.Equal(t, "2024-03-01", r.KEV.DueDate)
}

func TestRecord_UnmarshalJSON_ToleratesBadFields(t *testing.T) {
	// Wrong-typed fields keep their zero value; the record survives.
	data := `{
		"cve_id": 12345,
		"probability_score": "not-a-number",
		"active_threat": "yes",
		"is_critical": true,
		"kev": "overdue"
	}`

	var r Record
	require.NoError(t, json.Unmarshal([]byte(data), &r))
	assert.Empty(t, r.CVEID)
	assert.False(t, r.ProbabilityScore.Valid)
	assert.False(t, r.ActiveThreat)
	assert.True(t, r.IsCritical)
	assert.Nil(t, r.KEV)
}

func TestRecord_UnmarshalJSON_NonObject(t *testing.T) {
	var r Record
	assert.Error(t, json.Unmarshal([]byte(`"CVE-2024-1"`), &r))
	assert.Error(t, json.Unmarshal([]byte(`[1,2]`), &r))
}

func TestRecord_NormalizedCVE(t *testing.T) {
	r := Record{CVEID: "  cve-2024-12345 "}
	assert.Equal(t, "CVE-2024-12345", r.NormalizedCVE())
	assert.True(t, r.HasValidCVE())

	assert.False(t, (&Record{CVEID: "GHSA-xxxx-yyyy"}).HasValidCVE())
	assert.False(t, (&Record{}).HasValidCVE())
}

func TestRecord_KEVDueDate(t *testing.T) {
	assert.Equal(t, "", (&Record{}).KEVDueDate())
	assert.Equal(t, "", (&Record{KEV: &KEVInfo{DueDate: "  "}}).KEVDueDate())
	assert.Equal(t, "2024-03-01", (&Record{KEV: &KEVInfo{DueDate: " 2024-03-01 "}}).KEVDueDate())
}
