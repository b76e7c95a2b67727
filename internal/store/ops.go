package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/slok/todoq/internal/model"
)

type opKind int

const (
	opCreate opKind = iota
	opUpdate
	opDelete
)

// pendingOp records one in-flight optimistic mutation with everything needed
// to undo it, so rollback is a pure function of the record instead of ad hoc
// per-call logic.
type pendingOp struct {
	kind   opKind
	taskID string
	// snapshot is the pre-mutation copy of the task, nil when the task did
	// not exist (optimistic create).
	snapshot *model.Task
}

// rollbackLocked restores the pre-operation state from the operation record.
func (s *Store) rollbackLocked(op pendingOp) {
	switch op.kind {
	case opCreate:
		s.removeLocked(op.taskID)
	case opUpdate, opDelete:
		if op.snapshot != nil {
			s.replaceLocked(op.taskID, *op.snapshot)
		}
	}
}

func (s *Store) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) removeLocked(id string) {
	if i := s.indexLocked(id); i >= 0 {
		s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	}
}

func (s *Store) replaceLocked(id string, t model.Task) {
	if i := s.indexLocked(id); i >= 0 {
		s.tasks[i] = t
	}
}

// Create validates the input locally, materializes a pending placeholder at
// the top of the list and reconciles it with the server's task. Validation
// failures never reach the network nor mutate state.
func (s *Store) Create(ctx context.Context, input model.TaskCreate) (*model.Task, error) {
	input = input.Sanitize()
	if err := input.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	placeholder := model.Task{
		ID:        newTempID(),
		Title:     input.Title,
		Priority:  input.Priority,
		Tags:      input.Tags,
		Memo:      input.Memo,
		CreatedAt: now,
		UpdatedAt: now,
		IsPending: true,
	}
	// The operation record (not the placeholder's content) identifies what
	// to reconcile when the server answers.
	op := pendingOp{kind: opCreate, taskID: placeholder.ID}

	s.mu.Lock()
	s.tasks = append([]model.Task{placeholder}, s.tasks...)
	s.notifyLocked()
	s.mu.Unlock()

	created, err := s.gateway.Create(ctx, input)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.rollbackLocked(op)
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return nil, fmt.Errorf("could not create task: %w", err)
	}

	s.replaceLocked(op.taskID, *created)
	s.lastError = ""
	s.notifyLocked()

	return created, nil
}

// Update applies the patch in place immediately and reconciles with the
// server's merged task, restoring the snapshot on failure.
func (s *Store) Update(ctx context.Context, id string, patch model.TaskUpdate) (*model.Task, error) {
	patch = patch.Sanitize()
	if err := patch.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	snapshot := s.tasks[i]
	op := pendingOp{kind: opUpdate, taskID: id, snapshot: &snapshot}
	s.tasks[i] = patch.Apply(snapshot)
	s.notifyLocked()
	s.mu.Unlock()

	updated, err := s.gateway.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.rollbackLocked(op)
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return nil, fmt.Errorf("could not update task %s: %w", id, err)
	}

	s.replaceLocked(id, *updated)
	s.lastError = ""
	s.notifyLocked()

	return updated, nil
}

// ToggleCompletion optimistically flips the completed state and reconciles
// with the server's task. A not found answer means the task is already gone
// remotely, so it is dropped from the list instead of restored.
func (s *Store) ToggleCompletion(ctx context.Context, id string) (*model.Task, error) {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	snapshot := s.tasks[i]
	op := pendingOp{kind: opUpdate, taskID: id, snapshot: &snapshot}

	toggled := snapshot
	toggled.Completed = !snapshot.Completed
	if toggled.Completed {
		now := time.Now().UTC()
		toggled.CompletedAt = &now
	} else {
		toggled.CompletedAt = nil
	}
	s.tasks[i] = toggled
	s.notifyLocked()
	s.mu.Unlock()

	updated, err := s.gateway.ToggleCompletion(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// Already gone remotely, reconcile by dropping it locally.
			s.removeLocked(id)
		} else {
			s.rollbackLocked(op)
		}
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return nil, fmt.Errorf("could not toggle task %s: %w", id, err)
	}

	s.replaceLocked(id, *updated)
	s.lastError = ""
	s.notifyLocked()

	return updated, nil
}

// Delete marks the task as exiting so the UI can animate it, removes it on
// confirmed success and restores it untouched on failure.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	i := s.indexLocked(id)
	if i < 0 {
		s.mu.Unlock()
		return fmt.Errorf("task %s: %w", id, model.ErrNotFound)
	}
	snapshot := s.tasks[i]
	op := pendingOp{kind: opDelete, taskID: id, snapshot: &snapshot}
	s.tasks[i].IsExiting = true
	s.notifyLocked()
	s.mu.Unlock()

	err := s.gateway.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.rollbackLocked(op)
		s.lastError = errorMessage(err)
		s.notifyLocked()
		return fmt.Errorf("could not delete task %s: %w", id, err)
	}

	s.removeLocked(id)
	s.lastError = ""
	s.notifyLocked()

	return nil
}
