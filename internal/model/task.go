package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Priority represents the urgency of a task.
type Priority string

const (
	// PriorityHigh indicates an urgent task.
	PriorityHigh Priority = "high"
	// PriorityMedium is the default priority.
	PriorityMedium Priority = "medium"
	// PriorityLow indicates a task that can wait.
	PriorityLow Priority = "low"
)

// MaxTitleLength is the maximum allowed task title length after trimming.
const MaxTitleLength = 200

// MaxTags is the maximum number of tags a task can carry.
const MaxTags = 10

// Task represents a single to-do entry. The server is the sole authority for
// ID, CreatedAt, UpdatedAt and CompletedAt.
type Task struct {
	ID          string
	Title       string
	Completed   bool
	Priority    Priority
	Tags        []string
	Memo        string
	CreatedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time

	// Client-only state, never sent to the server nor persisted.
	// IsPending is set while an optimistic create has not been confirmed.
	IsPending bool
	// IsExiting is set while an optimistic delete is in flight.
	IsExiting bool
}

// HasTag returns whether the task carries the given tag.
func (t Task) HasTag(tag string) bool {
	for _, tt := range t.Tags {
		if tt == tag {
			return true
		}
	}
	return false
}

var validate = validator.New()

// TaskCreate is the user input for creating a task.
type TaskCreate struct {
	Title    string   `validate:"required,max=200"`
	Priority Priority `validate:"omitempty,oneof=high medium low"`
	Tags     []string `validate:"max=10"`
	Memo     string
}

// Sanitize returns a copy with the title trimmed and the priority defaulted
// to medium. Must be called before Validate.
func (c TaskCreate) Sanitize() TaskCreate {
	c.Title = strings.TrimSpace(c.Title)
	if c.Priority == "" {
		c.Priority = PriorityMedium
	}
	return c
}

// Validate validates the create input.
func (c TaskCreate) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid task input (%s): %w", validationDetail(err), ErrNotValid)
	}
	return nil
}

// TaskUpdate is a partial patch of a task, nil fields are left untouched.
type TaskUpdate struct {
	Title     *string `validate:"omitempty,max=200"`
	Completed *bool
	Priority  *Priority `validate:"omitempty,oneof=high medium low"`
	Tags      *[]string `validate:"omitempty,max=10"`
	Memo      *string
}

// IsZero returns whether the patch changes nothing.
func (u TaskUpdate) IsZero() bool {
	return u.Title == nil && u.Completed == nil && u.Priority == nil && u.Tags == nil && u.Memo == nil
}

// Sanitize returns a copy with the title trimmed (when present).
func (u TaskUpdate) Sanitize() TaskUpdate {
	if u.Title != nil {
		t := strings.TrimSpace(*u.Title)
		u.Title = &t
	}
	return u
}

// Validate validates the update patch.
func (u TaskUpdate) Validate() error {
	if u.Title != nil && *u.Title == "" {
		return fmt.Errorf("title can't be empty: %w", ErrNotValid)
	}

	if err := validate.Struct(u); err != nil {
		return fmt.Errorf("invalid task patch (%s): %w", validationDetail(err), ErrNotValid)
	}

	return nil
}

// Apply returns a copy of the task with the patch applied. Timestamps are not
// touched, the server owns them.
func (u TaskUpdate) Apply(t Task) Task {
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Completed != nil {
		t.Completed = *u.Completed
	}
	if u.Priority != nil {
		t.Priority = *u.Priority
	}
	if u.Tags != nil {
		t.Tags = *u.Tags
	}
	if u.Memo != nil {
		t.Memo = *u.Memo
	}
	return t
}

func validationDetail(err error) string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok || len(verrs) == 0 {
		return err.Error()
	}

	fields := make([]string, 0, len(verrs))
	for _, v := range verrs {
		fields = append(fields, fmt.Sprintf("%s %s", strings.ToLower(v.Field()), v.Tag()))
	}
	return strings.Join(fields, ", ")
}

// ArchiveGroup is a bucket of completed tasks grouped by completion date.
type ArchiveGroup struct {
	Date  string
	Count int
	Tasks []Task
}
