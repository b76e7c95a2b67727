package printer

import (
	"github.com/slok/todoq/internal/model"
)

// Printer is the interface for output formatting of the CLI results.
type Printer interface {
	PrintTasks(tasks []model.Task) error
	PrintTask(task model.Task) error
	PrintTags(tags []string) error
	PrintArchive(groups []model.ArchiveGroup) error
}

var (
	_ Printer = (*TablePrinter)(nil)
	_ Printer = (*JSONPrinter)(nil)
)
