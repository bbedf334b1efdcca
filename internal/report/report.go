// Package report derives the dashboard, performance report and filtered post
// lists from the store's collections. Nothing here mutates its input.
package report

import (
	"sort"
	"strings"

	"contentcal/internal/models"
)

// Classifier decides whether a post status counts as delivered.
type Classifier struct {
	byLabel map[string]models.WorkflowStatus
}

// NewClassifier indexes the configured statuses by label.
func NewClassifier(statuses []models.WorkflowStatus) Classifier {
	byLabel := make(map[string]models.WorkflowStatus, len(statuses))
	for _, st := range statuses {
		if _, dup := byLabel[st.Label]; !dup {
			byLabel[st.Label] = st
		}
	}
	return Classifier{byLabel: byLabel}
}

// Complete resolves label against the configured statuses and falls back to
// the label heuristic when nothing matches.
func (c Classifier) Complete(label string) bool {
	if st, ok := c.byLabel[label]; ok {
		return st.IsComplete()
	}
	return models.IsCompletedLabel(label)
}

// UpcomingLimit caps the priority queue on the dashboard.
const UpcomingLimit = 5

// Upcoming is a pending post with its client's display name.
type Upcoming struct {
	models.Post
	ClientName string `json:"clientName"`
	Late       bool   `json:"late"`
}

// DashboardView is the overview shown on the landing page.
type DashboardView struct {
	Late      int        `json:"late"`
	Pending   int        `json:"pending"`
	Completed int        `json:"completed"`
	Upcoming  []Upcoming `json:"upcoming"`
}

// Dashboard counts late, pending and completed posts and lists the soonest
// pending deadlines. A post is late when it is pending and due before today.
func Dashboard(posts []models.Post, clients []models.Client, classifier Classifier, today models.Date) DashboardView {
	var view DashboardView
	var pending []models.Post
	for _, p := range posts {
		if classifier.Complete(p.Status) {
			view.Completed++
			continue
		}
		pending = append(pending, p)
		if p.Date.Before(today) {
			view.Late++
		}
	}
	view.Pending = len(pending)

	sortByDate(pending)
	if len(pending) > UpcomingLimit {
		pending = pending[:UpcomingLimit]
	}
	view.Upcoming = make([]Upcoming, 0, len(pending))
	for _, p := range pending {
		view.Upcoming = append(view.Upcoming, Upcoming{
			Post:       p,
			ClientName: models.ClientName(clients, p.ClientID),
			Late:       p.Date.Before(today),
		})
	}
	return view
}

// Filter narrows the report. Empty fields match everything.
type Filter struct {
	ClientID string `form:"client" json:"client,omitempty"`
	Status   string `form:"status" json:"status,omitempty"`
	Format   string `form:"format" json:"format,omitempty"`
}

func (f Filter) matches(p models.Post) bool {
	return (f.ClientID == "" || p.ClientID == f.ClientID) &&
		(f.Status == "" || p.Status == f.Status) &&
		(f.Format == "" || p.Format == f.Format)
}

// ClientRow is one bar of the posts-per-client chart.
type ClientRow struct {
	ClientID  string `json:"clientId"`
	Name      string `json:"name"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
	Total     int    `json:"total"`
	Goal      int    `json:"goal"`
}

// StatusCount is one slice of the status distribution.
type StatusCount struct {
	Label      string `json:"label"`
	ColorClass string `json:"colorClass"`
	Count      int    `json:"count"`
}

// View is the performance report.
type View struct {
	Filter         Filter        `json:"filter"`
	Total          int           `json:"total"`
	TotalCompleted int           `json:"totalCompleted"`
	Clients        []ClientRow   `json:"clients"`
	Statuses       []StatusCount `json:"statuses"`
	Formats        []string      `json:"formats"`
}

// Report aggregates the posts matching filter. Clients without matching
// posts are hidden unless the filter names them. Formats lists every format
// in use across all posts so the filter options do not shrink.
func Report(posts []models.Post, clients []models.Client, statuses []models.WorkflowStatus, filter Filter) View {
	classifier := NewClassifier(statuses)

	var filtered []models.Post
	for _, p := range posts {
		if filter.matches(p) {
			filtered = append(filtered, p)
		}
	}

	view := View{
		Filter:   filter,
		Total:    len(filtered),
		Clients:  []ClientRow{},
		Statuses: []StatusCount{},
		Formats:  Formats(posts),
	}

	rows := make(map[string]*ClientRow, len(clients))
	for _, c := range clients {
		if filter.ClientID != "" && c.ID != filter.ClientID {
			continue
		}
		view.Clients = append(view.Clients, ClientRow{ClientID: c.ID, Name: c.Name, Goal: c.ContractedPosts})
	}
	for i := range view.Clients {
		if _, dup := rows[view.Clients[i].ClientID]; !dup {
			rows[view.Clients[i].ClientID] = &view.Clients[i]
		}
	}

	for _, p := range filtered {
		done := classifier.Complete(p.Status)
		if done {
			view.TotalCompleted++
		}
		row, ok := rows[p.ClientID]
		if !ok {
			continue
		}
		row.Total++
		if done {
			row.Completed++
		} else {
			row.Pending++
		}
	}

	if filter.ClientID == "" {
		kept := view.Clients[:0]
		for _, row := range view.Clients {
			if row.Total > 0 {
				kept = append(kept, row)
			}
		}
		view.Clients = kept
	}

	for _, st := range statuses {
		n := 0
		for _, p := range filtered {
			if p.Status == st.Label {
				n++
			}
		}
		if n > 0 {
			view.Statuses = append(view.Statuses, StatusCount{Label: st.Label, ColorClass: st.ColorClass, Count: n})
		}
	}

	return view
}

// Formats lists the distinct non-empty formats in first-seen order.
func Formats(posts []models.Post) []string {
	seen := map[string]struct{}{}
	formats := []string{}
	for _, p := range posts {
		f := strings.TrimSpace(p.Format)
		if f == "" {
			continue
		}
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		formats = append(formats, f)
	}
	return formats
}

// PostFilter narrows the post list. Month is "YYYY-MM"; empty fields match everything.
type PostFilter struct {
	ClientID string `form:"client"`
	Month    string `form:"month"`
	Status   string `form:"status"`
}

// FilterPosts returns the matching posts ordered by delivery date.
func FilterPosts(posts []models.Post, f PostFilter) []models.Post {
	out := []models.Post{}
	for _, p := range posts {
		if f.ClientID != "" && p.ClientID != f.ClientID {
			continue
		}
		if f.Month != "" && !strings.HasPrefix(p.Date.String(), f.Month) {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		out = append(out, p)
	}
	sortByDate(out)
	return out
}

func sortByDate(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].Date.Before(posts[j].Date)
	})
}
