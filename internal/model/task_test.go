package model_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todoq/internal/model"
)

func TestTaskCreateSanitize(t *testing.T) {
	tests := map[string]struct {
		input    model.TaskCreate
		expInput model.TaskCreate
	}{
		"title should be trimmed": {
			input:    model.TaskCreate{Title: "  Buy milk  "},
			expInput: model.TaskCreate{Title: "Buy milk", Priority: model.PriorityMedium},
		},

		"priority should default to medium": {
			input:    model.TaskCreate{Title: "Buy milk"},
			expInput: model.TaskCreate{Title: "Buy milk", Priority: model.PriorityMedium},
		},

		"explicit priority should be kept": {
			input:    model.TaskCreate{Title: "Buy milk", Priority: model.PriorityHigh},
			expInput: model.TaskCreate{Title: "Buy milk", Priority: model.PriorityHigh},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, test.expInput, test.input.Sanitize())
		})
	}
}

func TestTaskCreateValidate(t *testing.T) {
	tests := map[string]struct {
		input  model.TaskCreate
		expErr bool
	}{
		"valid input should pass": {
			input: model.TaskCreate{Title: "Buy milk", Priority: model.PriorityMedium},
		},

		"empty title should fail": {
			input:  model.TaskCreate{Title: "", Priority: model.PriorityMedium},
			expErr: true,
		},

		"title over 200 characters should fail": {
			input:  model.TaskCreate{Title: strings.Repeat("x", 201), Priority: model.PriorityMedium},
			expErr: true,
		},

		"title of exactly 200 characters should pass": {
			input: model.TaskCreate{Title: strings.Repeat("x", 200), Priority: model.PriorityMedium},
		},

		"unknown priority should fail": {
			input:  model.TaskCreate{Title: "Buy milk", Priority: model.Priority("urgent")},
			expErr: true,
		},

		"more than 10 tags should fail": {
			input: model.TaskCreate{
				Title:    "Buy milk",
				Priority: model.PriorityMedium,
				Tags:     []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k"},
			},
			expErr: true,
		},

		"10 tags should pass": {
			input: model.TaskCreate{
				Title:    "Buy milk",
				Priority: model.PriorityMedium,
				Tags:     []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"},
			},
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.input.Validate()

			if test.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskUpdateValidate(t *testing.T) {
	title := func(s string) *string { return &s }
	priority := func(p model.Priority) *model.Priority { return &p }

	tests := map[string]struct {
		patch  model.TaskUpdate
		expErr bool
	}{
		"empty patch should pass validation": {
			patch: model.TaskUpdate{},
		},

		"valid title should pass": {
			patch: model.TaskUpdate{Title: title("New title")},
		},

		"empty title after trim should fail": {
			patch:  model.TaskUpdate{Title: title("   ")}.Sanitize(),
			expErr: true,
		},

		"title over 200 characters should fail": {
			patch:  model.TaskUpdate{Title: title(strings.Repeat("x", 201))},
			expErr: true,
		},

		"unknown priority should fail": {
			patch:  model.TaskUpdate{Priority: priority("asap")},
			expErr: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			err := test.patch.Validate()

			if test.expErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrNotValid)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestTaskUpdateApply(t *testing.T) {
	title := "Walk the dog"
	completed := true
	tags := []string{"home"}

	base := model.Task{
		ID:       "42",
		Title:    "Buy milk",
		Priority: model.PriorityLow,
		Tags:     []string{"errands"},
		Memo:     "2 liters",
	}

	got := model.TaskUpdate{Title: &title, Completed: &completed, Tags: &tags}.Apply(base)

	assert.Equal(t, model.Task{
		ID:        "42",
		Title:     "Walk the dog",
		Completed: true,
		Priority:  model.PriorityLow,
		Tags:      []string{"home"},
		Memo:      "2 liters",
	}, got)

	// The original is untouched.
	assert.Equal(t, "Buy milk", base.Title)
}
