package printer_test

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todoq/internal/model"
	"github.com/slok/todoq/internal/printer"
)

func testTasks() []model.Task {
	created := time.Date(2026, 1, 30, 10, 0, 0, 0, time.UTC)
	completedAt := time.Date(2026, 1, 30, 12, 0, 0, 0, time.UTC)

	return []model.Task{
		{ID: "1", Title: "Buy milk", Priority: model.PriorityHigh, Tags: []string{"errands"}, CreatedAt: created, UpdatedAt: created},
		{ID: "2", Title: "Ship release", Completed: true, Priority: model.PriorityMedium, CreatedAt: created, UpdatedAt: completedAt, CompletedAt: &completedAt},
		{ID: "tmp-01ARZ3", Title: "Write notes", Priority: model.PriorityLow, CreatedAt: created, UpdatedAt: created, IsPending: true},
		{ID: "3", Title: "Old task", Priority: model.PriorityLow, CreatedAt: created, UpdatedAt: created, IsExiting: true},
	}
}

func TestTablePrinterPrintTasks(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	p := printer.NewTablePrinter(&b)

	err := p.PrintTasks(testTasks())
	require.NoError(t, err)

	out := b.String()
	assert.Contains(out, "ID")
	assert.Contains(out, "STATE")
	assert.Contains(out, "TITLE")
	assert.Contains(out, "Buy milk")
	assert.Contains(out, "errands")
	// Each lifecycle state renders with its own label.
	assert.Contains(out, "open")
	assert.Contains(out, "done")
	assert.Contains(out, "syncing")
	assert.Contains(out, "deleting")
}

func TestTablePrinterPrintTasksEmpty(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	p := printer.NewTablePrinter(&b)

	err := p.PrintTasks(nil)

	assert.NoError(err)
	assert.Empty(b.String())
}

func TestTablePrinterPrintTask(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	p := printer.NewTablePrinter(&b)

	task := testTasks()[1]
	err := p.PrintTask(task)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(out, "ID:        2")
	assert.Contains(out, "Title:     Ship release")
	assert.Contains(out, "State:     done")
	assert.Contains(out, "Completed:")
}

func TestTablePrinterPrintArchive(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	p := printer.NewTablePrinter(&b)

	groups := []model.ArchiveGroup{
		{Date: "2026-01-30", Count: 1, Tasks: []model.Task{testTasks()[1]}},
		{Date: "2026-01-29", Count: 1, Tasks: []model.Task{{ID: "9", Title: "Older"}}},
	}
	err := p.PrintArchive(groups)
	require.NoError(t, err)

	out := b.String()
	assert.Contains(out, "2026-01-30 (1)")
	assert.Contains(out, "  [2] Ship release")
	assert.Contains(out, "2026-01-29 (1)")
	assert.Contains(out, "  [9] Older")
}

func TestJSONPrinterPrintTasks(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	var b bytes.Buffer
	p := printer.NewJSONPrinter(&b)

	err := p.PrintTasks(testTasks())
	require.NoError(err)

	var decoded []map[string]any
	require.NoError(json.Unmarshal(b.Bytes(), &decoded))
	require.Len(decoded, 4)

	assert.Equal("1", decoded[0]["id"])
	assert.Equal("Buy milk", decoded[0]["title"])
	assert.Equal("high", decoded[0]["priority"])
	assert.Equal(false, decoded[0]["completed"])

	assert.Equal(true, decoded[1]["completed"])
	assert.NotEmpty(decoded[1]["completed_at"])

	// The pending flag marks unsynced tasks.
	assert.Equal(true, decoded[2]["pending"])
	_, hasPending := decoded[0]["pending"]
	assert.False(hasPending)
}

func TestJSONPrinterPrintTags(t *testing.T) {
	assert := assert.New(t)

	var b bytes.Buffer
	p := printer.NewJSONPrinter(&b)

	require.NoError(t, p.PrintTags(nil))

	assert.JSONEq(`[]`, b.String())
}
