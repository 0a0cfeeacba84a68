// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

// Package notify iterates ranked candidates and files one notification
// issue per previously-unseen CVE, up to a per-run cap.
package notify

import (
	"fmt"
	"io"
	"strings"

	"github.com/vulnradar/radar-notify/internal/policy"
	"github.com/vulnradar/radar-notify/internal/types"
)

// IssueCreator files a ticket in the tracker.
type IssueCreator interface {
	CreateIssue(title, body string, labels []string) error
}

// Status describes what happened to a single candidate.
type Status string

const (
	StatusCreated   Status = "created"
	StatusDryRun    Status = "dry-run"
	StatusDuplicate Status = "duplicate"
	StatusInvalidID Status = "invalid-id"
)

// Outcome records the decision taken for one candidate.
type Outcome struct {
	CVE      string
	Priority string
	EPSS     string
	CVSS     string
	Status   Status
}

// Counted reports whether the outcome consumed the per-run cap.
func (o Outcome) Counted() bool {
	return o.Status == StatusCreated || o.Status == StatusDryRun
}

// Notifier files issues for ranked candidates.
type Notifier struct {
	Creator IssueCreator
	Out     io.Writer
	DryRun  bool
	// Max caps creations per run. Once reached, the run stops entirely;
	// remaining candidates become eligible next run.
	Max int
}

// Run processes candidates in order. The notified set accumulates every
// creation attempt, dry-run included, so a CVE appearing twice in the
// input yields at most one issue. A creation failure aborts the run
// immediately with the outcomes so far.
func (n *Notifier) Run(candidates []types.Record, notified map[string]struct{}) ([]Outcome, error) {
	if notified == nil {
		notified = make(map[string]struct{})
	}

	var outcomes []Outcome
	created := 0
	for i := range candidates {
		if created >= n.Max {
			break
		}
		rec := &candidates[i]

		cve := rec.NormalizedCVE()
		if !rec.HasValidCVE() {
			outcomes = append(outcomes, n.outcome(rec, cve, StatusInvalidID))
			continue
		}
		if _, seen := notified[cve]; seen {
			outcomes = append(outcomes, n.outcome(rec, cve, StatusDuplicate))
			continue
		}

		priority := policy.Priority(rec)
		title := fmt.Sprintf("%s %s: %s", types.TitleMarker, priority, cve)

		if n.DryRun {
			fmt.Fprintf(n.Out, "DRY RUN: would create issue: %s\n", title)
			notified[cve] = struct{}{}
			created++
			outcomes = append(outcomes, n.outcome(rec, cve, StatusDryRun))
			continue
		}

		if err := n.Creator.CreateIssue(title, issueBody(rec, cve, priority), issueLabels(rec)); err != nil {
			return outcomes, err
		}
		fmt.Fprintf(n.Out, "Created issue for %s\n", cve)
		notified[cve] = struct{}{}
		created++
		outcomes = append(outcomes, n.outcome(rec, cve, StatusCreated))
	}
	return outcomes, nil
}

func (n *Notifier) outcome(rec *types.Record, cve string, status Status) Outcome {
	return Outcome{
		CVE:      cve,
		Priority: policy.Priority(rec),
		EPSS:     rec.ProbabilityScore.Format(3),
		CVSS:     rec.CVSSScore.Format(1),
		Status:   status,
	}
}

// issueBody renders the fixed-order issue body for a record.
func issueBody(rec *types.Record, cve, priority string) string {
	lines := []string{
		"CVE: " + cve,
		"Priority: " + priority,
		"",
		"Signals:",
		"- PatchThis: " + yesNo(rec.InPatchThis),
		"- Watchlist: " + yesNo(rec.WatchlistHit),
		"- CISA KEV: " + yesNo(rec.ActiveThreat),
	}
	if due := rec.KEVDueDate(); due != "" {
		lines = append(lines, "- KEV Due Date: "+due)
	}
	lines = append(lines,
		"- EPSS: "+rec.ProbabilityScore.Format(3),
		"- CVSS: "+rec.CVSSScore.Format(1),
		"",
	)
	if desc := strings.TrimSpace(rec.Description); desc != "" {
		lines = append(lines, "Description:", desc, "")
	}
	lines = append(lines, "CVE.org record: https://www.cve.org/CVERecord?id="+cve)
	return strings.Join(lines, "\n")
}

// issueLabels builds the base label set plus conditional flags.
func issueLabels(rec *types.Record) []string {
	labels := []string{"vulnradar", "alert"}
	if rec.IsCritical {
		labels = append(labels, "critical")
	}
	if rec.IsWarning {
		labels = append(labels, "warning")
	}
	if rec.ActiveThreat {
		labels = append(labels, "kev")
	}
	return labels
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
