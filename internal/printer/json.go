package printer

import (
	"encoding/json"
	"io"
	"time"

	"github.com/slok/todoq/internal/model"
)

// JSONPrinter prints task information in JSON format.
type JSONPrinter struct {
	writer io.Writer
}

// NewJSONPrinter creates a new JSON printer.
func NewJSONPrinter(w io.Writer) *JSONPrinter {
	return &JSONPrinter{writer: w}
}

// taskItem represents a task in the JSON output.
type taskItem struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Completed   bool       `json:"completed"`
	Priority    string     `json:"priority"`
	Tags        []string   `json:"tags,omitempty"`
	Memo        string     `json:"memo,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	Pending     bool       `json:"pending,omitempty"`
}

// archiveGroupItem represents an archive group in the JSON output.
type archiveGroupItem struct {
	Date  string     `json:"date"`
	Count int        `json:"count"`
	Tasks []taskItem `json:"tasks"`
}

func toTaskItem(t model.Task) taskItem {
	return taskItem{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Tags:        t.Tags,
		Memo:        t.Memo,
		CreatedAt:   t.CreatedAt.UTC(),
		UpdatedAt:   t.UpdatedAt.UTC(),
		CompletedAt: t.CompletedAt,
		Pending:     t.IsPending,
	}
}

func (j *JSONPrinter) encode(v any) error {
	enc := json.NewEncoder(j.writer)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// PrintTasks prints tasks in JSON format.
func (j *JSONPrinter) PrintTasks(tasks []model.Task) error {
	items := make([]taskItem, len(tasks))
	for i, t := range tasks {
		items[i] = toTaskItem(t)
	}
	return j.encode(items)
}

// PrintTask prints a single task in JSON format.
func (j *JSONPrinter) PrintTask(task model.Task) error {
	return j.encode(toTaskItem(task))
}

// PrintTags prints the known tags in JSON format.
func (j *JSONPrinter) PrintTags(tags []string) error {
	if tags == nil {
		tags = []string{}
	}
	return j.encode(tags)
}

// PrintArchive prints archive groups in JSON format.
func (j *JSONPrinter) PrintArchive(groups []model.ArchiveGroup) error {
	items := make([]archiveGroupItem, len(groups))
	for i, g := range groups {
		tasks := make([]taskItem, len(g.Tasks))
		for ti, t := range g.Tasks {
			tasks[ti] = toTaskItem(t)
		}
		items[i] = archiveGroupItem{Date: g.Date, Count: g.Count, Tasks: tasks}
	}
	return j.encode(items)
}
