package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/todoq/internal/client"
	"github.com/slok/todoq/internal/model"
)

// recorderReporter counts the health signals the transport emits.
type recorderReporter struct {
	mu        sync.Mutex
	successes int
	failures  int
}

func (r *recorderReporter) ReportSuccess(time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.successes++
}

func (r *recorderReporter) ReportFailure() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures++
}

func newTestClient(t *testing.T, handler http.Handler) (*client.Client, *recorderReporter) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	reporter := &recorderReporter{}
	c, err := client.NewClient(client.ClientConfig{
		BaseURL: srv.URL + "/api",
		Health:  reporter,
	})
	require.NoError(t, err)

	return c, reporter
}

func TestClientErrorClassification(t *testing.T) {
	tests := map[string]struct {
		handler       http.HandlerFunc
		expNetworkErr bool
		expAppErr     bool
		expNotFound   bool
		expSuccesses  int
		expFailures   int
		expRawBody    string
	}{
		"a 2xx response with a valid payload should succeed": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`[]`))
			},
			expSuccesses: 1,
		},

		"a 400 with a parsable error body should be an application error": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`{"error":"validation_failed","message":"title is required","details":[{"field":"title","message":"required"}]}`))
			},
			expAppErr:    true,
			expSuccesses: 1,
		},

		"a 404 should be an application error that matches model.ErrNotFound": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
				w.Write([]byte(`{"error":"not_found","message":"task 9 does not exist"}`))
			},
			expAppErr:    true,
			expNotFound:  true,
			expSuccesses: 1,
		},

		"a 500 should be a network error even though a response arrived": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				w.Write([]byte(`boom`))
			},
			expNetworkErr: true,
			expFailures:   1,
		},

		"a 4xx with an unparsable body should be a network error carrying the raw text": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				w.Write([]byte(`<html>nope</html>`))
			},
			expNetworkErr: true,
			expFailures:   1,
			expRawBody:    "<html>nope</html>",
		},

		"a 2xx with an unparsable body should be a network error carrying the raw text": {
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`this is not json`))
			},
			expNetworkErr: true,
			expFailures:   1,
			expRawBody:    "this is not json",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			c, reporter := newTestClient(t, test.handler)
			_, err := c.List(context.Background(), model.Filter{})

			if !test.expNetworkErr && !test.expAppErr {
				assert.NoError(err)
			}
			if test.expNetworkErr {
				assert.True(client.IsNetworkError(err))
			}
			if test.expAppErr {
				_, ok := client.IsApplicationError(err)
				assert.True(ok)
				assert.False(client.IsNetworkError(err))
			}
			if test.expNotFound {
				assert.ErrorIs(err, model.ErrNotFound)
			}
			if test.expRawBody != "" {
				var netErr *client.NetworkError
				if assert.ErrorAs(err, &netErr) {
					assert.Equal(test.expRawBody, netErr.RawBody)
				}
			}

			assert.Equal(test.expSuccesses, reporter.successes)
			assert.Equal(test.expFailures, reporter.failures)
		})
	}
}

func TestClientConnectionFailure(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)

	// A server that is already closed refuses connections.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	reporter := &recorderReporter{}
	c, err := client.NewClient(client.ClientConfig{BaseURL: srv.URL + "/api", Health: reporter})
	require.NoError(err)

	_, err = c.List(context.Background(), model.Filter{})

	assert.True(client.IsNetworkError(err))
	assert.Equal(0, reporter.successes)
	assert.Equal(1, reporter.failures)
}

func TestClientListQueryComposition(t *testing.T) {
	tests := map[string]struct {
		filter   model.Filter
		expQuery string
	}{
		"an empty filter should send no query string": {
			filter:   model.Filter{},
			expQuery: "",
		},

		"all filter dimensions should map to their parameters": {
			filter: model.Filter{
				Status:   model.StatusPending,
				Priority: model.PriorityHigh,
				Tags:     []string{"work", "urgent"},
				Search:   " report ",
			},
			expQuery: "priority=high&search=report&status=pending&tags=work&tags=urgent",
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var gotQuery string
			c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotQuery = r.URL.RawQuery
				w.Write([]byte(`[]`))
			}))

			_, err := c.List(context.Background(), test.filter)

			assert.NoError(err)
			assert.Equal(test.expQuery, gotQuery)
		})
	}
}

func TestClientDelete(t *testing.T) {
	assert := assert.New(t)

	var gotMethod, gotPath string
	c, reporter := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	err := c.Delete(context.Background(), "42")

	assert.NoError(err)
	assert.Equal(http.MethodDelete, gotMethod)
	assert.Equal("/api/todos/42", gotPath)
	assert.Equal(1, reporter.successes)
}

func TestClientCreate(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(http.MethodPost, r.Method)
		assert.Equal("/api/todos", r.URL.Path)
		assert.Equal("application/json", r.Header.Get("Content-Type"))

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"42","title":"Buy milk","completed":false,"priority":"medium","createdAt":"2026-01-30T10:00:00Z","updatedAt":"2026-01-30T10:00:00Z"}`))
	}))

	task, err := c.Create(context.Background(), model.TaskCreate{Title: "Buy milk", Priority: model.PriorityMedium})

	assert.NoError(err)
	assert.Equal("42", task.ID)
	assert.Equal("Buy milk", task.Title)
	assert.Equal(model.PriorityMedium, task.Priority)
	assert.False(task.IsPending)
}

func TestClientUpdateSendsOnlyProvidedFields(t *testing.T) {
	assert := assert.New(t)

	var gotBody string
	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body := make([]byte, r.ContentLength)
		r.Body.Read(body)
		gotBody = string(body)
		w.Write([]byte(`{"id":"42","title":"Buy milk","completed":true,"priority":"medium","createdAt":"2026-01-30T10:00:00Z","updatedAt":"2026-01-30T10:05:00Z"}`))
	}))

	completed := true
	_, err := c.Update(context.Background(), "42", model.TaskUpdate{Completed: &completed})

	assert.NoError(err)
	assert.JSONEq(`{"completed":true}`, gotBody)
}

func TestClientToggleCompletion(t *testing.T) {
	tests := map[string]struct {
		listBody     string
		expErr       bool
		expNotFound  bool
		expCompleted *bool
	}{
		"toggling a pending task should send completed true": {
			listBody:     `[{"id":"42","title":"Buy milk","completed":false,"priority":"medium","createdAt":"2026-01-30T10:00:00Z","updatedAt":"2026-01-30T10:00:00Z"}]`,
			expCompleted: boolPtr(true),
		},

		"toggling a completed task should send completed false": {
			listBody:     `[{"id":"42","title":"Buy milk","completed":true,"priority":"medium","createdAt":"2026-01-30T10:00:00Z","updatedAt":"2026-01-30T10:00:00Z"}]`,
			expCompleted: boolPtr(false),
		},

		"a task absent from the list should fail with not found": {
			listBody:    `[]`,
			expErr:      true,
			expNotFound: true,
		},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			assert := assert.New(t)

			var gotUpdateBody string
			mux := http.NewServeMux()
			mux.HandleFunc("/api/todos", func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodGet {
					http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
					return
				}
				// The read step must include completed tasks.
				assert.Equal("all", r.URL.Query().Get("status"))
				w.Write([]byte(test.listBody))
			})
			mux.HandleFunc("/api/todos/42", func(w http.ResponseWriter, r *http.Request) {
				if r.Method != http.MethodPut {
					http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
					return
				}
				body := make([]byte, r.ContentLength)
				r.Body.Read(body)
				gotUpdateBody = string(body)
				w.Write([]byte(`{"id":"42","title":"Buy milk","completed":true,"priority":"medium","createdAt":"2026-01-30T10:00:00Z","updatedAt":"2026-01-30T10:05:00Z"}`))
			})

			c, _ := newTestClient(t, mux)
			_, err := c.ToggleCompletion(context.Background(), "42")

			if test.expErr {
				assert.Error(err)
				if test.expNotFound {
					assert.ErrorIs(err, model.ErrNotFound)
				}
				return
			}

			assert.NoError(err)
			if test.expCompleted != nil {
				if *test.expCompleted {
					assert.JSONEq(`{"completed":true}`, gotUpdateBody)
				} else {
					assert.JSONEq(`{"completed":false}`, gotUpdateBody)
				}
			}
		})
	}
}

func TestClientListArchive(t *testing.T) {
	assert := assert.New(t)

	c, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal("/api/todos/archive", r.URL.Path)
		w.Write([]byte(`[{"date":"2026-01-29","count":1,"tasks":[{"id":"7","title":"Done thing","completed":true,"priority":"low","createdAt":"2026-01-28T10:00:00Z","updatedAt":"2026-01-29T10:00:00Z","completedAt":"2026-01-29T10:00:00Z"}]}]`))
	}))

	groups, err := c.ListArchive(context.Background())

	assert.NoError(err)
	assert.Len(groups, 1)
	assert.Equal("2026-01-29", groups[0].Date)
	assert.Equal(1, groups[0].Count)
	assert.Len(groups[0].Tasks, 1)
	assert.Equal("7", groups[0].Tasks[0].ID)
}

func boolPtr(b bool) *bool { return &b }
