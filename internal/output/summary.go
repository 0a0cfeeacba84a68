// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	aqtable "github.com/aquasecurity/table"
	"github.com/aquasecurity/tml"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/vulnradar/radar-notify/internal/notify"
	"github.com/vulnradar/radar-notify/internal/policy"
)

// IsOutputToTerminal returns true if the writer is stdout connected to a
// character device (TTY).
func IsOutputToTerminal(output io.Writer) bool {
	return output == os.Stdout && term.IsTerminal(int(os.Stdout.Fd()))
}

// WriteSummary renders the per-candidate outcomes as a table. When
// isTerminal is true, the header is underlined and priorities are
// colorized.
func WriteSummary(w io.Writer, outcomes []notify.Outcome, isTerminal bool) {
	title := fmt.Sprintf("Notification Summary (Total: %d)", len(outcomes))
	if isTerminal {
		_ = tml.Fprintf(w, "\n<underline><bold>%s</bold></underline>\n\n", title)
	} else {
		fmt.Fprintf(w, "\n%s\n", title)
		fmt.Fprintf(w, "%s\n", strings.Repeat("=", utf8.RuneCountInString(title)))
	}

	tw := newTableWriter(w, isTerminal)
	tw.SetHeaders("CVE", "Priority", "EPSS", "CVSS", "Status")
	for _, o := range outcomes {
		priority := o.Priority
		if isTerminal {
			priority = colorizePriority(priority)
		}
		tw.AddRow(o.CVE, priority, o.EPSS, o.CVSS, string(o.Status))
	}
	tw.Render()
}

// newTableWriter creates a table writer with borders and row lines; on
// terminals the header and lines pick up ANSI styling.
func newTableWriter(w io.Writer, isTerminal bool) *aqtable.Table {
	tw := aqtable.New(w)
	if isTerminal {
		tw.SetHeaderStyle(aqtable.StyleBold)
		tw.SetLineStyle(aqtable.StyleDim)
	}
	tw.SetBorders(true)
	tw.SetRowLines(true)
	return tw
}

// priorityColors maps priority labels to color functions.
var priorityColors = map[string]func(a ...any) string{
	policy.PriorityCritical: color.New(color.FgRed).SprintFunc(),
	policy.PriorityWarning:  color.New(color.FgYellow).SprintFunc(),
	policy.PriorityAlert:    color.New(color.FgCyan).SprintFunc(),
}

// colorizePriority returns the priority wrapped in ANSI color codes.
func colorizePriority(priority string) string {
	if fn, ok := priorityColors[priority]; ok {
		return fn(priority)
	}
	return priority
}
