// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"encoding/json"
	"strconv"
	"strings"
)

// TitleMarker is the fixed token embedded in every notification issue
// title. The dedup resolver keys on it when scanning recent issues.
const TitleMarker = "[VulnRadar]"

// Score is an optional numeric severity score. Upstream exports carry
// EPSS and CVSS values as JSON numbers, numeric strings, or not at all;
// anything that cannot be coerced to a float leaves the score invalid
// rather than failing the record.
type Score struct {
	Value float64
	Valid bool
}

// UnmarshalJSON accepts a JSON number or a numeric string. Any other
// shape (null, bool, object) leaves the score invalid and returns nil.
func (s *Score) UnmarshalJSON(data []byte) error {
	var f float64
	if err := json.Unmarshal(data, &f); err == nil {
		s.Value, s.Valid = f, true
		return nil
	}
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		if f, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
			s.Value, s.Valid = f, true
		}
	}
	return nil
}

// MarshalJSON emits the numeric value, or null when the score is invalid.
// Invalid scores are never fabricated as 0 in output.
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(s.Value)
}

// Or returns the score value, or fallback when the score is invalid.
// Ranking uses Or(0); rendering uses Format so invalid scores stay blank.
func (s Score) Or(fallback float64) float64 {
	if !s.Valid {
		return fallback
	}
	return s.Value
}

// Format renders the score with the given number of decimal places, or
// an empty string when the score is invalid.
func (s Score) Format(prec int) string {
	if !s.Valid {
		return ""
	}
	return strconv.FormatFloat(s.Value, 'f', prec, 64)
}

// KEVInfo is the optional CISA KEV detail attached to a record.
type KEVInfo struct {
	DueDate string `json:"dueDate"`
}

// Record is a single vulnerability finding from a VulnRadar scan export.
type Record struct {
	CVEID            string
	Description      string
	ProbabilityScore Score // EPSS-like exploitation probability
	CVSSScore        Score
	ActiveThreat     bool
	InPatchThis      bool
	WatchlistHit     bool
	IsCritical       bool
	IsWarning        bool
	KEV              *KEVInfo
}

// UnmarshalJSON decodes a Record with per-field tolerance: each field is
// coerced independently, and a field that fails to decode keeps its zero
// value instead of failing the record. Only a non-object element is an
// error, which the loader uses to skip it.
func (r *Record) UnmarshalJSON(data []byte) error {
	var all map[string]json.RawMessage
	if err := json.Unmarshal(data, &all); err != nil {
		return err
	}

	coerce := func(key string, dst any) {
		raw, ok := all[key]
		if !ok {
			return
		}
		_ = json.Unmarshal(raw, dst)
	}

	coerce("cve_id", &r.CVEID)
	coerce("description", &r.Description)
	coerce("probability_score", &r.ProbabilityScore)
	coerce("cvss_score", &r.CVSSScore)
	coerce("active_threat", &r.ActiveThreat)
	coerce("in_patchthis", &r.InPatchThis)
	coerce("watchlist_hit", &r.WatchlistHit)
	coerce("is_critical", &r.IsCritical)
	coerce("is_warning", &r.IsWarning)

	if raw, ok := all["kev"]; ok {
		var k KEVInfo
		if err := json.Unmarshal(raw, &k); err == nil {
			r.KEV = &k
		}
	}

	return nil
}

// NormalizedCVE returns the trimmed, upper-cased CVE identifier used for
// matching and display.
func (r *Record) NormalizedCVE() string {
	return strings.ToUpper(strings.TrimSpace(r.CVEID))
}

// HasValidCVE reports whether the normalized identifier carries the
// CVE- prefix. Records without one are excluded from notification.
func (r *Record) HasValidCVE() bool {
	return strings.HasPrefix(r.NormalizedCVE(), "CVE-")
}

// KEVDueDate returns the trimmed KEV due date, or an empty string when
// the record has no KEV detail.
func (r *Record) KEVDueDate() string {
	if r.KEV == nil {
		return ""
	}
	return strings.TrimSpace(r.KEV.DueDate)
}
