package model

import (
	"fmt"
	"net/url"
	"strings"
)

// Status filters tasks by their completion state.
type Status string

const (
	// StatusAll matches every task.
	StatusAll Status = "all"
	// StatusPending matches not completed tasks.
	StatusPending Status = "pending"
	// StatusCompleted matches completed tasks.
	StatusCompleted Status = "completed"
)

// Filter is a task list filter specification. Empty fields mean "no
// constraint on this dimension", never "exclude everything".
type Filter struct {
	Status   Status   `json:"status,omitempty"`
	Priority Priority `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Search   string   `json:"search,omitempty"`
}

// DefaultFilter is the filter used when nothing has been persisted yet.
func DefaultFilter() Filter {
	return Filter{Status: StatusPending}
}

// FilterPatch is a partial filter change, nil fields keep the current value.
type FilterPatch struct {
	Status   *Status
	Priority *Priority
	Tags     *[]string
	Search   *string
}

// Merge returns a copy of the filter with the patch fields applied over it.
func (f Filter) Merge(p FilterPatch) Filter {
	if p.Status != nil {
		f.Status = *p.Status
	}
	if p.Priority != nil {
		f.Priority = *p.Priority
	}
	if p.Tags != nil {
		f.Tags = *p.Tags
	}
	if p.Search != nil {
		f.Search = *p.Search
	}
	return f
}

// Query composes the server query parameters for the filter. Empty fields
// contribute no parameter at all.
func (f Filter) Query() url.Values {
	q := url.Values{}

	if f.Status != "" {
		q.Set("status", string(f.Status))
	}
	if f.Priority != "" {
		q.Set("priority", string(f.Priority))
	}
	for _, tag := range f.Tags {
		if tag != "" {
			q.Add("tags", tag)
		}
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		q.Set("search", s)
	}

	return q
}

// Matches is the local predicate equivalent of the server side filtering:
// tags require all of them present, search is a case-insensitive substring
// match on the title.
func (f Filter) Matches(t Task) bool {
	switch f.Status {
	case StatusPending:
		if t.Completed {
			return false
		}
	case StatusCompleted:
		if !t.Completed {
			return false
		}
	}

	if f.Priority != "" && t.Priority != f.Priority {
		return false
	}

	for _, tag := range f.Tags {
		if !t.HasTag(tag) {
			return false
		}
	}

	if s := strings.TrimSpace(f.Search); s != "" {
		if !strings.Contains(strings.ToLower(t.Title), strings.ToLower(s)) {
			return false
		}
	}

	return true
}

// Summary returns human-readable active filter descriptions for display,
// e.g. `Status: Completed`, `Tags: work, urgent`, `Search: "milk"`.
func (f Filter) Summary() []string {
	var out []string

	if f.Status != "" {
		out = append(out, fmt.Sprintf("Status: %s", capitalize(string(f.Status))))
	}
	if f.Priority != "" {
		out = append(out, fmt.Sprintf("Priority: %s", capitalize(string(f.Priority))))
	}
	if len(f.Tags) > 0 {
		out = append(out, fmt.Sprintf("Tags: %s", strings.Join(f.Tags, ", ")))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		out = append(out, fmt.Sprintf("Search: %q", s))
	}

	return out
}

// IsZero returns whether the filter has no constraint at all.
func (f Filter) IsZero() bool {
	return f.Status == "" && f.Priority == "" && len(f.Tags) == 0 && strings.TrimSpace(f.Search) == ""
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
