// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vulnradar/radar-notify/internal/input"
	"github.com/vulnradar/radar-notify/internal/notify"
	"github.com/vulnradar/radar-notify/internal/output"
	"github.com/vulnradar/radar-notify/internal/policy"
	"github.com/vulnradar/radar-notify/internal/tracker"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ExitError signals a non-zero exit code with an optional message.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string { return e.Message }

// Options holds all CLI flag values.
type Options struct {
	Input           string
	MaxItems        int
	IncludeWarnings bool
	DryRun          bool
	Summary         bool
	DedupPages      int
}

// NewRootCommand creates the root cobra command with all flags.
func NewRootCommand() *cobra.Command {
	opts := &Options{}

	cmd := &cobra.Command{
		Use:     "radar-notify",
		Short:   "File deduplicated GitHub issues for critical VulnRadar findings",
		Version: Version,
		Long: `radar-notify reads a VulnRadar scan export, selects findings meeting the
severity policy, and files one GitHub issue per previously-unnotified CVE.

The target repository and credential come from the environment:
GITHUB_REPOSITORY (owner/name) and GITHUB_TOKEN (or GH_TOKEN).

Usage:
  GITHUB_REPOSITORY=acme/vuln-tracker radar-notify --in data/radar_data.json
  radar-notify --include-warnings --dry-run --summary`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			return run(opts)
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&opts.Input, "in", "data/radar_data.json", "Path to the radar scan export")
	flags.IntVar(&opts.MaxItems, "max", 25, "Maximum issues to create per run")
	flags.BoolVar(&opts.IncludeWarnings, "include-warnings", false, "Also notify on PatchThis WARNING (shadow IT) items")
	flags.BoolVar(&opts.DryRun, "dry-run", false, "Print would-notify CVEs without creating issues")
	flags.BoolVar(&opts.Summary, "summary", false, "Print a per-candidate outcome table after the run")
	flags.IntVar(&opts.DedupPages, "dedup-pages", tracker.DefaultMaxPages, "Issue-listing pages to scan for already-notified CVEs")

	return cmd
}

// run orchestrates the full notification pipeline.
func run(opts *Options) error {
	// Required environment, checked before any network call.
	token := os.Getenv("GITHUB_TOKEN")
	if token == "" {
		token = os.Getenv("GH_TOKEN")
	}
	repo := os.Getenv("GITHUB_REPOSITORY")
	if repo == "" {
		return &ExitError{Code: 2, Message: "GITHUB_REPOSITORY is required"}
	}
	if token == "" {
		return &ExitError{Code: 2, Message: "GITHUB_TOKEN (or GH_TOKEN) is required"}
	}

	records, err := input.Load(opts.Input)
	if err != nil {
		return fmt.Errorf("loading records: %w", err)
	}

	candidates := policy.Select(records, opts.IncludeWarnings)
	policy.Rank(candidates)

	client := tracker.NewClient(token, repo)
	client.UserAgent = "radar-notify/" + Version

	// Dedup state is resolved once, before any creation, so the run's
	// own writes never race the listing.
	notified, err := client.NotifiedCVEs(opts.DedupPages)
	if err != nil {
		return fmt.Errorf("resolving notified CVEs: %w", err)
	}

	n := &notify.Notifier{
		Creator: client,
		Out:     os.Stdout,
		DryRun:  opts.DryRun,
		Max:     opts.MaxItems,
	}
	outcomes, err := n.Run(candidates, notified)
	if err != nil {
		return fmt.Errorf("creating issues: %w", err)
	}

	if opts.Summary {
		output.WriteSummary(os.Stdout, outcomes, output.IsOutputToTerminal(os.Stdout))
	}

	created := 0
	for _, o := range outcomes {
		if o.Counted() {
			created++
		}
	}
	fmt.Printf("Done. Created %d issues.\n", created)
	return nil
}
