// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package policy

import (
	"sort"

	"github.com/vulnradar/radar-notify/internal/types"
)

// Priority labels, highest first.
const (
	PriorityCritical = "CRITICAL"
	PriorityWarning  = "WARNING"
	PriorityAlert    = "ALERT"
)

// Select returns the records eligible for notification: every critical
// record, plus warning records when includeWarnings is set. Everything
// else is dropped without comment.
func Select(records []types.Record, includeWarnings bool) []types.Record {
	var candidates []types.Record
	for _, r := range records {
		switch {
		case r.IsCritical:
			candidates = append(candidates, r)
		case includeWarnings && r.IsWarning:
			candidates = append(candidates, r)
		}
	}
	return candidates
}

// Rank sorts candidates in place so the highest-priority record is
// notified first: criticality dominates, then known active exploitation,
// then the warning flag, then EPSS, then CVSS. Invalid scores compare
// as zero. Ties keep their input order.
func Rank(candidates []types.Record) {
	sort.SliceStable(candidates, func(i, j int) bool {
		a, b := rankKey(&candidates[i]), rankKey(&candidates[j])
		for k := range a {
			if a[k] != b[k] {
				return a[k] > b[k]
			}
		}
		return false
	})
}

// rankKey builds the composite ranking key, compared lexicographically.
func rankKey(r *types.Record) [5]float64 {
	return [5]float64{
		boolScore(r.IsCritical),
		boolScore(r.ActiveThreat),
		boolScore(r.IsWarning),
		r.ProbabilityScore.Or(0),
		r.CVSSScore.Or(0),
	}
}

func boolScore(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

// Priority derives the label used in both the issue title and label set.
// The precedence matches the leading components of the ranking key.
func Priority(r *types.Record) string {
	switch {
	case r.IsCritical:
		return PriorityCritical
	case r.IsWarning:
		return PriorityWarning
	default:
		return PriorityAlert
	}
}
