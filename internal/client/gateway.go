package client

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/slok/todoq/internal/model"
)

// taskPayload is the wire representation of a task.
type taskPayload struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags,omitempty"`
	Memo        string     `json:"memo,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

func (p taskPayload) toModel() model.Task {
	return model.Task{
		ID:          p.ID,
		Title:       p.Title,
		Completed:   p.Completed,
		Priority:    model.Priority(p.Priority),
		Tags:        p.Tags,
		Memo:        p.Memo,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
		CompletedAt: p.CompletedAt,
	}
}

func tasksToModel(ps []taskPayload) []model.Task {
	tasks := make([]model.Task, 0, len(ps))
	for _, p := range ps {
		tasks = append(tasks, p.toModel())
	}
	return tasks
}

type createPayload struct {
	Title    string   `json:"title"`
	Priority string   `json:"priority,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Memo     string   `json:"memo,omitempty"`
}

// updatePayload carries only the provided fields, the server merges.
type updatePayload struct {
	Title     *string   `json:"title,omitempty"`
	Completed *bool     `json:"completed,omitempty"`
	Priority  *string   `json:"priority,omitempty"`
	Tags      *[]string `json:"tags,omitempty"`
	Memo      *string   `json:"memo,omitempty"`
}

type archiveGroupPayload struct {
	Date  string        `json:"date"`
	Count int           `json:"count"`
	Tasks []taskPayload `json:"tasks"`
}

// List returns the tasks matching the filter, in server order.
func (c *Client) List(ctx context.Context, filter model.Filter) ([]model.Task, error) {
	payload, err := doJSON[[]taskPayload](ctx, c, http.MethodGet, "/todos", filter.Query(), nil)
	if err != nil {
		return nil, fmt.Errorf("could not list tasks: %w", err)
	}

	return tasksToModel(payload), nil
}

// Create creates a new task. The server assigns id and timestamps.
func (c *Client) Create(ctx context.Context, input model.TaskCreate) (*model.Task, error) {
	body := createPayload{
		Title:    input.Title,
		Priority: string(input.Priority),
		Tags:     input.Tags,
		Memo:     input.Memo,
	}

	payload, err := doJSON[taskPayload](ctx, c, http.MethodPost, "/todos", nil, body)
	if err != nil {
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	task := payload.toModel()
	return &task, nil
}

// Update sends a partial patch and returns the full merged task.
func (c *Client) Update(ctx context.Context, id string, patch model.TaskUpdate) (*model.Task, error) {
	body := updatePayload{
		Title:     patch.Title,
		Completed: patch.Completed,
		Tags:      patch.Tags,
		Memo:      patch.Memo,
	}
	if patch.Priority != nil {
		p := string(*patch.Priority)
		body.Priority = &p
	}

	payload, err := doJSON[taskPayload](ctx, c, http.MethodPut, "/todos/"+id, nil, body)
	if err != nil {
		return nil, fmt.Errorf("could not update task %s: %w", id, err)
	}

	task := payload.toModel()
	return &task, nil
}

// ToggleCompletion flips the completed state of a task.
//
// It lists the tasks first to discover the current state, then updates with
// the flipped value. A concurrent update between the read and the write is
// lost, the window is accepted until the server grows a toggle verb.
func (c *Client) ToggleCompletion(ctx context.Context, id string) (*model.Task, error) {
	tasks, err := c.List(ctx, model.Filter{Status: model.StatusAll})
	if err != nil {
		return nil, fmt.Errorf("could not read current state: %w", err)
	}

	var current *model.Task
	for i := range tasks {
		if tasks[i].ID == id {
			current = &tasks[i]
			break
		}
	}
	if current == nil {
		return nil, &ApplicationError{
			StatusCode: http.StatusNotFound,
			Code:       "not_found",
			Message:    fmt.Sprintf("task %s does not exist", id),
		}
	}

	completed := !current.Completed
	return c.Update(ctx, id, model.TaskUpdate{Completed: &completed})
}

// Delete removes a task.
func (c *Client) Delete(ctx context.Context, id string) error {
	_, err := doJSON[struct{}](ctx, c, http.MethodDelete, "/todos/"+id, nil, nil)
	if err != nil {
		return fmt.Errorf("could not delete task %s: %w", id, err)
	}

	return nil
}

// ListTags returns the known tag set, derived server side.
func (c *Client) ListTags(ctx context.Context) ([]string, error) {
	tags, err := doJSON[[]string](ctx, c, http.MethodGet, "/todos/tags", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list tags: %w", err)
	}

	return tags, nil
}

// ListArchive returns completed tasks bucketed by completion date.
func (c *Client) ListArchive(ctx context.Context) ([]model.ArchiveGroup, error) {
	payload, err := doJSON[[]archiveGroupPayload](ctx, c, http.MethodGet, "/todos/archive", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("could not list archive: %w", err)
	}

	groups := make([]model.ArchiveGroup, 0, len(payload))
	for _, g := range payload {
		groups = append(groups, model.ArchiveGroup{
			Date:  g.Date,
			Count: g.Count,
			Tasks: tasksToModel(g.Tasks),
		})
	}

	return groups, nil
}
