// SPDX-FileCopyrightText: 2026 VulnRadar Authors
// SPDX-License-Identifier: Apache-2.0

// Package tracker talks to the GitHub Issues REST API: listing recent
// issues for dedup resolution and creating notification issues.
package tracker

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

const (
	defaultBaseURL  = "https://api.github.com"
	perPage         = 100
	maxResponseSize = 10 * 1024 * 1024 // 10 MB
)

// Issue is a minimal representation of a GitHub issue list item. The
// generic issues listing interleaves pull requests; they carry a
// pull_request key and are skipped by the dedup resolver.
type Issue struct {
	Number      int             `json:"number"`
	Title       string          `json:"title"`
	State       string          `json:"state"`
	PullRequest json.RawMessage `json:"pull_request,omitempty"`
}

// IsPullRequest reports whether the listed item is a pull request.
func (i *Issue) IsPullRequest() bool {
	return len(i.PullRequest) > 0
}

// Client is a GitHub Issues API client for a single repository.
type Client struct {
	// BaseURL is the API root, overridable for tests.
	BaseURL string
	// Repo is the owner/name repository identifier.
	Repo string
	// UserAgent is sent on every request.
	UserAgent string

	token string
	http  *http.Client
}

// NewClient creates a client authenticated with the given bearer token.
func NewClient(token, repo string) *Client {
	return &Client{
		BaseURL:   defaultBaseURL,
		Repo:      repo,
		UserAgent: "radar-notify",
		token:     token,
		http:      &http.Client{Timeout: 60 * time.Second},
	}
}

// ListIssues fetches one page of the repository's issues, both open and
// closed, 100 per page. An empty slice marks the end of history.
func (c *Client) ListIssues(page int) ([]Issue, error) {
	params := url.Values{
		"state":    {"all"},
		"per_page": {fmt.Sprint(perPage)},
		"page":     {fmt.Sprint(page)},
	}
	u := fmt.Sprintf("%s/repos/%s/issues?%s", c.BaseURL, c.Repo, params.Encode())

	req, err := http.NewRequest(http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("building list request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("listing issues: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("HTTP %d listing issues for %s", resp.StatusCode, c.Repo)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("reading list response: %w", err)
	}

	var issues []Issue
	if err := json.Unmarshal(body, &issues); err != nil {
		return nil, fmt.Errorf("unmarshaling issue list: %w", err)
	}
	return issues, nil
}

// createIssueRequest is the create-issue POST payload.
type createIssueRequest struct {
	Title  string   `json:"title"`
	Body   string   `json:"body"`
	Labels []string `json:"labels,omitempty"`
}

// CreateIssue files a new issue. Any non-2xx response is an error; the
// caller treats it as fatal for the rest of the run.
func (c *Client) CreateIssue(title, body string, labels []string) error {
	payload, err := json.Marshal(createIssueRequest{
		Title:  title,
		Body:   body,
		Labels: labels,
	})
	if err != nil {
		return fmt.Errorf("marshaling issue payload: %w", err)
	}

	u := fmt.Sprintf("%s/repos/%s/issues", c.BaseURL, c.Repo)
	req, err := http.NewRequest(http.MethodPost, u, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("building create request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("creating issue: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("HTTP %d creating issue in %s: %s", resp.StatusCode, c.Repo, respBody)
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

func (c *Client) setHeaders(req *http.Request) {
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("User-Agent", c.UserAgent)
}
