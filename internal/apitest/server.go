// Package apitest provides an in-memory implementation of the to-do HTTP
// API, used by integration style tests and the demo command. It speaks the
// same wire protocol the real server does, including the error body shape.
package apitest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/slok/todoq/internal/model"
)

// Server is the fake API state.
type Server struct {
	mu     sync.Mutex
	tasks  []model.Task
	nextID int
}

// NewServer creates an empty fake API server.
func NewServer() *Server {
	return &Server{nextID: 1}
}

// Seed preloads tasks, assigning ids when missing.
func (s *Server) Seed(tasks ...model.Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, t := range tasks {
		if t.ID == "" {
			t.ID = strconv.Itoa(s.nextID)
			s.nextID++
		}
		s.tasks = append(s.tasks, t)
	}
}

// Router returns the HTTP handler serving the API under /api.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Route("/api/todos", func(r chi.Router) {
		r.Get("/", s.listTasks)
		r.Post("/", s.createTask)
		r.Get("/tags", s.listTags)
		r.Get("/archive", s.listArchive)
		r.Put("/{id}", s.updateTask)
		r.Delete("/{id}", s.deleteTask)
	})

	return r
}

type taskDTO struct {
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

func toDTO(t model.Task) taskDTO {
	return taskDTO{
		ID:          t.ID,
		Title:       t.Title,
		Completed:   t.Completed,
		Priority:    string(t.Priority),
		Tags:        t.Tags,
		Memo:        t.Memo,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
		CompletedAt: t.CompletedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

type errorDTO struct {
	Code    string     `json:"error"`
	Message string     `json:"message"`
	Details []fieldDTO `json:"details,omitempty"`
}

type fieldDTO struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func writeError(w http.ResponseWriter, status int, code, message string, details ...fieldDTO) {
	writeJSON(w, status, errorDTO{Code: code, Message: message, Details: details})
}

func (s *Server) listTasks(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := model.Filter{
		Status:   model.Status(q.Get("status")),
		Priority: model.Priority(q.Get("priority")),
		Tags:     q["tags"],
		Search:   q.Get("search"),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]taskDTO, 0, len(s.tasks))
	for _, t := range s.tasks {
		if filter.Matches(t) {
			out = append(out, toDTO(t))
		}
	}

	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createTask(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Title    string   `json:"title"`
		Priority string   `json:"priority"`
		Tags     []string `json:"tags"`
		Memo     string   `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		writeError(w, http.StatusBadRequest, "validation_failed", "validation failed",
			fieldDTO{Field: "title", Message: "title is required"})
		return
	}
	if len(in.Title) > model.MaxTitleLength {
		writeError(w, http.StatusBadRequest, "validation_failed", "validation failed",
			fieldDTO{Field: "title", Message: fmt.Sprintf("title can't exceed %d characters", model.MaxTitleLength)})
		return
	}
	if in.Priority == "" {
		in.Priority = string(model.PriorityMedium)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	t := model.Task{
		ID:        strconv.Itoa(s.nextID),
		Title:     in.Title,
		Priority:  model.Priority(in.Priority),
		Tags:      in.Tags,
		Memo:      in.Memo,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.nextID++
	s.tasks = append([]model.Task{t}, s.tasks...)

	writeJSON(w, http.StatusCreated, toDTO(t))
}

func (s *Server) updateTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in struct {
		Title     *string   `json:"title"`
		Completed *bool     `json:"completed"`
		Priority  *string   `json:"priority"`
		Tags      *[]string `json:"tags"`
		Memo      *string   `json:"memo"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_body", "request body is not valid JSON")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}

		t := s.tasks[i]
		if in.Title != nil {
			t.Title = strings.TrimSpace(*in.Title)
		}
		if in.Priority != nil {
			t.Priority = model.Priority(*in.Priority)
		}
		if in.Tags != nil {
			t.Tags = *in.Tags
		}
		if in.Memo != nil {
			t.Memo = *in.Memo
		}
		if in.Completed != nil && *in.Completed != t.Completed {
			t.Completed = *in.Completed
			if t.Completed {
				now := time.Now().UTC()
				t.CompletedAt = &now
			} else {
				t.CompletedAt = nil
			}
		}
		t.UpdatedAt = time.Now().UTC()
		s.tasks[i] = t

		writeJSON(w, http.StatusOK, toDTO(t))
		return
	}

	writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("task %s does not exist", id))
}

func (s *Server) deleteTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.tasks {
		if s.tasks[i].ID == id {
			s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
			w.WriteHeader(http.StatusNoContent)
			return
		}
	}

	writeError(w, http.StatusNotFound, "not_found", fmt.Sprintf("task %s does not exist", id))
}

func (s *Server) listTags(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	seen := map[string]bool{}
	tags := []string{}
	for _, t := range s.tasks {
		for _, tag := range t.Tags {
			if !seen[tag] {
				seen[tag] = true
				tags = append(tags, tag)
			}
		}
	}
	sort.Strings(tags)

	writeJSON(w, http.StatusOK, tags)
}

type archiveGroupDTO struct {
	Date  string    `json:"date"`
	Count int       `json:"count"`
	Tasks []taskDTO `json:"tasks"`
}

func (s *Server) listArchive(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	byDate := map[string][]taskDTO{}
	for _, t := range s.tasks {
		if !t.Completed || t.CompletedAt == nil {
			continue
		}
		date := t.CompletedAt.UTC().Format("2006-01-02")
		byDate[date] = append(byDate[date], toDTO(t))
	}

	dates := make([]string, 0, len(byDate))
	for d := range byDate {
		dates = append(dates, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(dates)))

	groups := make([]archiveGroupDTO, 0, len(dates))
	for _, d := range dates {
		groups = append(groups, archiveGroupDTO{Date: d, Count: len(byDate[d]), Tasks: byDate[d]})
	}

	writeJSON(w, http.StatusOK, groups)
}
