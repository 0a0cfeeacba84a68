// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package tracker

import (
	"regexp"
	"strings"

	"github.com/vulnradar/radar-notify/internal/types"
)

// DefaultMaxPages bounds how many listing pages the dedup resolver
// scans. Dedup is best-effort: a CVE notified far enough back to fall
// outside the bound can be re-notified. The bound keeps API cost flat
// on large repositories and is intentional, not a bug.
const DefaultMaxPages = 4

var cveRe = regexp.MustCompile(`(?i)\bCVE-\d{4}-\d+\b`)

// NotifiedCVEs returns the set of CVE identifiers that already have a
// notification issue, derived from up to maxPages of recent issue
// history (open and closed). Pull requests and issues without the
// title marker are ignored; an empty page ends the scan early.
func (c *Client) NotifiedCVEs(maxPages int) (map[string]struct{}, error) {
	if maxPages <= 0 {
		maxPages = DefaultMaxPages
	}

	out := make(map[string]struct{})
	for page := 1; page <= maxPages; page++ {
		issues, err := c.ListIssues(page)
		if err != nil {
			return nil, err
		}
		if len(issues) == 0 {
			break
		}
		for i := range issues {
			issue := &issues[i]
			if issue.IsPullRequest() {
				continue
			}
			if !strings.Contains(issue.Title, types.TitleMarker) {
				continue
			}
			if m := cveRe.FindString(issue.Title); m != "" {
				out[strings.ToUpper(m)] = struct{}{}
			}
		}
	}
	return out, nil
}
