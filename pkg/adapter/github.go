package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/umputun/watchmon/pkg/domain"
)

// GitHubAdapter reports recent issues, pull requests and comments of a repository.
// The item source id is "owner/repo".
type GitHubAdapter struct {
	APIURL string
	Token  string
	Limit  int
	HTTPOptions

	hc lazyClient
}

type ghUser struct {
	Login string `json:"login"`
}

type ghIssue struct {
	Number      int       `json:"number"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	User        ghUser    `json:"user"`
	CreatedAt   string    `json:"created_at"`
	UpdatedAt   string    `json:"updated_at"`
	PullRequest *struct{} `json:"pull_request"`
}

type ghComment struct {
	ID        int64  `json:"id"`
	Body      string `json:"body"`
	User      ghUser `json:"user"`
	CreatedAt string `json:"created_at"`
	IssueURL  string `json:"issue_url"`
}

// Fetch returns issues as "issue:N" and comments as "comment:N", issues first
func (g *GitHubAdapter) Fetch(ctx context.Context, item domain.WatchedItem) ([]domain.ContentMessage, error) {
	owner, repo, ok := strings.Cut(strings.Trim(item.SourceID, "/"), "/")
	if !ok || owner == "" || repo == "" {
		return nil, fmt.Errorf("invalid repository %q, expected owner/repo", item.SourceID)
	}

	limit := g.Limit
	if limit <= 0 || limit > 100 {
		limit = 100 // api page size cap
	}
	base := strings.TrimSuffix(g.APIURL, "/")
	if base == "" {
		base = "https://api.github.com"
	}
	repoURL := base + "/repos/" + url.PathEscape(owner) + "/" + url.PathEscape(repo)
	query := url.Values{"sort": {"updated"}, "direction": {"desc"}, "per_page": {strconv.Itoa(limit)}}

	headers := map[string]string{
		"Accept":               "application/vnd.github+json",
		"X-GitHub-Api-Version": "2022-11-28",
		"User-Agent":           g.userAgent(),
	}
	if g.Token != "" {
		headers["Authorization"] = "Bearer " + g.Token
	}

	client := g.hc.get(g.HTTPOptions)
	issuesQuery := url.Values{"state": {"all"}}
	for k, v := range query {
		issuesQuery[k] = v
	}
	var issues []ghIssue
	if err := getJSON(ctx, client, repoURL+"/issues?"+issuesQuery.Encode(), headers, &issues); err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}

	var comments []ghComment
	if err := getJSON(ctx, client, repoURL+"/issues/comments?"+query.Encode(), headers, &comments); err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}

	if len(issues) == 0 && len(comments) == 0 {
		return nil, nil
	}

	raw := make([]RawMessage, 0, len(issues)+len(comments))
	for _, is := range issues {
		kind := "issue"
		if is.PullRequest != nil {
			kind = "pull request"
		}
		text := fmt.Sprintf("%s #%d: %s", kind, is.Number, is.Title)
		if body := plainText(is.Body); body != "" {
			text += "\n" + body
		}
		ts := is.UpdatedAt
		if ts == "" {
			ts = is.CreatedAt
		}
		raw = append(raw, RawMessage{
			ID:        "issue:" + strconv.Itoa(is.Number),
			Text:      text,
			Author:    is.User.Login,
			Timestamp: ts,
		})
	}
	for _, c := range comments {
		text := plainText(c.Body)
		if n := issueNumber(c.IssueURL); n != "" && text != "" {
			text = "comment on #" + n + ": " + text
		}
		raw = append(raw, RawMessage{
			ID:        "comment:" + strconv.FormatInt(c.ID, 10),
			Text:      text,
			Author:    c.User.Login,
			Timestamp: c.CreatedAt,
		})
	}
	return Normalize(raw), nil
}

// issueNumber extracts the trailing number from an issue api url
func issueNumber(issueURL string) string {
	idx := strings.LastIndex(issueURL, "/")
	if idx < 0 || idx == len(issueURL)-1 {
		return ""
	}
	n := issueURL[idx+1:]
	if _, err := strconv.Atoi(n); err != nil {
		return ""
	}
	return n
}
