package printer

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/slok/todoq/internal/model"
)

// TablePrinter prints task information in a table format.
type TablePrinter struct {
	writer io.Writer
}

// NewTablePrinter creates a new table printer.
func NewTablePrinter(w io.Writer) *TablePrinter {
	return &TablePrinter{writer: w}
}

// PrintTasks prints tasks in a table format.
func (t *TablePrinter) PrintTasks(tasks []model.Task) error {
	if len(tasks) == 0 {
		return nil
	}

	tw := tabwriter.NewWriter(t.writer, 0, 0, 2, ' ', 0)
	defer tw.Flush()

	// Print header
	fmt.Fprintln(tw, "ID\tSTATE\tPRI\tTITLE\tTAGS\tCREATED")

	// Print rows
	for _, task := range tasks {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			task.ID,
			taskState(task),
			task.Priority,
			task.Title,
			strings.Join(task.Tags, ","),
			TimeAgo(task.CreatedAt),
		)
	}

	return nil
}

// PrintTask prints the details of a single task.
func (t *TablePrinter) PrintTask(task model.Task) error {
	fmt.Fprintf(t.writer, "ID:        %s\n", task.ID)
	fmt.Fprintf(t.writer, "Title:     %s\n", task.Title)
	fmt.Fprintf(t.writer, "State:     %s\n", taskState(task))
	fmt.Fprintf(t.writer, "Priority:  %s\n", task.Priority)

	if len(task.Tags) > 0 {
		fmt.Fprintf(t.writer, "Tags:      %s\n", strings.Join(task.Tags, ", "))
	}
	if task.Memo != "" {
		fmt.Fprintf(t.writer, "Memo:      %s\n", task.Memo)
	}

	fmt.Fprintf(t.writer, "Created:   %s\n", FormatTimestamp(task.CreatedAt))
	fmt.Fprintf(t.writer, "Updated:   %s\n", FormatTimestamp(task.UpdatedAt))
	if task.CompletedAt != nil {
		fmt.Fprintf(t.writer, "Completed: %s\n", FormatTimestamp(*task.CompletedAt))
	}

	return nil
}

// PrintTags prints the known tags, one per line.
func (t *TablePrinter) PrintTags(tags []string) error {
	for _, tag := range tags {
		fmt.Fprintln(t.writer, tag)
	}
	return nil
}

// PrintArchive prints archive groups with their tasks indented below each
// date header.
func (t *TablePrinter) PrintArchive(groups []model.ArchiveGroup) error {
	for i, g := range groups {
		if i > 0 {
			fmt.Fprintln(t.writer)
		}
		fmt.Fprintf(t.writer, "%s (%d)\n", g.Date, g.Count)
		for _, task := range g.Tasks {
			fmt.Fprintf(t.writer, "  [%s] %s\n", task.ID, task.Title)
		}
	}
	return nil
}

func taskState(t model.Task) string {
	switch {
	case t.IsPending:
		return "syncing"
	case t.IsExiting:
		return "deleting"
	case t.Completed:
		return "done"
	default:
		return "open"
	}
}
