package linear

import (
	"context"
	"fmt"
)

// Issue is the subset of a Linear issue the sync tool cares about.
type Issue struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"-"`
}

// Label is a team-scoped issue label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

const issuesQuery = `
query Issues($teamId: ID!, $after: String) {
  issues(
    filter: { team: { id: { eq: $teamId } } }
    first: 100
    after: $after
  ) {
    pageInfo { hasNextPage endCursor }
    nodes {
      id
      title
      state { type }
    }
  }
}`

type issuesPage struct {
	Issues struct {
		PageInfo struct {
			HasNextPage bool   `json:"hasNextPage"`
			EndCursor   string `json:"endCursor"`
		} `json:"pageInfo"`
		Nodes []struct {
			ID    string `json:"id"`
			Title string `json:"title"`
			State struct {
				Type string `json:"type"`
			} `json:"state"`
		} `json:"nodes"`
	} `json:"issues"`
}

// ListIssues fetches every issue in the team, following cursor
// pagination. Completed is derived from the workflow state type.
func (c *Client) ListIssues(ctx context.Context) ([]Issue, error) {
	var issues []Issue
	var after *string

	for {
		variables := map[string]any{"teamId": c.teamID}
		if after != nil {
			variables["after"] = *after
		}

		var page issuesPage
		if err := c.do(ctx, issuesQuery, variables, &page); err != nil {
			return nil, fmt.Errorf("failed to list issues: %w", err)
		}

		for _, n := range page.Issues.Nodes {
			issues = append(issues, Issue{
				ID:        n.ID,
				Title:     n.Title,
				Completed: n.State.Type == "completed",
			})
		}

		if !page.Issues.PageInfo.HasNextPage {
			return issues, nil
		}
		cursor := page.Issues.PageInfo.EndCursor
		after = &cursor
	}
}

// ListCompletedIssues returns only the issues whose workflow state is a
// completed type.
func (c *Client) ListCompletedIssues(ctx context.Context) ([]Issue, error) {
	all, err := c.ListIssues(ctx)
	if err != nil {
		return nil, err
	}
	var done []Issue
	for _, issue := range all {
		if issue.Completed {
			done = append(done, issue)
		}
	}
	return done, nil
}

const labelsQuery = `
query Labels($teamId: ID!) {
  issueLabels(filter: { team: { id: { eq: $teamId } } }, first: 250) {
    nodes { id name color }
  }
}`

// ListLabels fetches the team's issue labels.
func (c *Client) ListLabels(ctx context.Context) ([]Label, error) {
	var out struct {
		IssueLabels struct {
			Nodes []Label `json:"nodes"`
		} `json:"issueLabels"`
	}
	if err := c.do(ctx, labelsQuery, map[string]any{"teamId": c.teamID}, &out); err != nil {
		return nil, fmt.Errorf("failed to list labels: %w", err)
	}
	return out.IssueLabels.Nodes, nil
}

const createLabelMutation = `
mutation CreateLabel($teamId: String!, $name: String!, $color: String!) {
  issueLabelCreate(input: { teamId: $teamId, name: $name, color: $color }) {
    issueLabel { id name color }
  }
}`

// CreateLabel creates a team label with the given name and hex color.
func (c *Client) CreateLabel(ctx context.Context, name, color string) (*Label, error) {
	var out struct {
		IssueLabelCreate struct {
			IssueLabel Label `json:"issueLabel"`
		} `json:"issueLabelCreate"`
	}
	variables := map[string]any{"teamId": c.teamID, "name": name, "color": color}
	if err := c.do(ctx, createLabelMutation, variables, &out); err != nil {
		return nil, fmt.Errorf("failed to create label %q: %w", name, err)
	}
	return &out.IssueLabelCreate.IssueLabel, nil
}

const createIssueMutation = `
mutation CreateIssue($input: IssueCreateInput!) {
  issueCreate(input: $input) {
    issue { id title }
  }
}`

// CreateIssue creates an issue, optionally tagged with label IDs.
func (c *Client) CreateIssue(ctx context.Context, title, description string, labelIDs []string) (*Issue, error) {
	input := map[string]any{
		"teamId":      c.teamID,
		"title":       title,
		"description": description,
	}
	if len(labelIDs) > 0 {
		input["labelIds"] = labelIDs
	}

	var out struct {
		IssueCreate struct {
			Issue Issue `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := c.do(ctx, createIssueMutation, map[string]any{"input": input}, &out); err != nil {
		return nil, fmt.Errorf("failed to create issue %q: %w", title, err)
	}
	return &out.IssueCreate.Issue, nil
}
