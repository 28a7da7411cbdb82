package application

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"zwallpaper/internal/domain"
)

// Request slots. Starting a request in a slot supersedes the previous one.
const (
	SlotCatalog  = "catalog"
	SlotPreview  = "preview"
	SlotApply    = "apply"
	SlotDownload = "download"
	SlotOpen     = "open"
)

// ThumbnailSlot returns the slot of one item's thumbnail, so thumbnails for
// different items never supersede each other
func ThumbnailSlot(path string) string {
	return "thumbnail:" + path
}

// Task is one background request
type Task struct {
	ID        uuid.UUID
	Slot      string
	Label     string
	Status    domain.TaskStatus
	Err       error
	StartedAt time.Time
	EndedAt   time.Time
}

// RequestTracker remembers the current request per slot so that results
// of superseded requests can be discarded on arrival
type RequestTracker struct {
	mu      sync.Mutex
	current map[string]uuid.UUID
	tasks   map[uuid.UUID]*Task
}

// NewRequestTracker creates an empty tracker
func NewRequestTracker() *RequestTracker {
	return &RequestTracker{
		current: make(map[string]uuid.UUID),
		tasks:   make(map[uuid.UUID]*Task),
	}
}

// Begin registers a new request in slot and returns its ID.
// A request still running in the same slot is marked discarded.
func (t *RequestTracker) Begin(slot, label string) uuid.UUID {
	id := newRequestID()

	t.mu.Lock()
	defer t.mu.Unlock()

	if prev, ok := t.current[slot]; ok {
		if task := t.tasks[prev]; task != nil && task.Status == domain.TaskRunning {
			task.Status = domain.TaskDiscarded
		}
	}
	t.current[slot] = id
	t.tasks[id] = &Task{
		ID:        id,
		Slot:      slot,
		Label:     label,
		Status:    domain.TaskRunning,
		StartedAt: time.Now(),
	}
	return id
}

// Finish records the outcome of a request and reports whether its result
// should be used. Superseded or unknown requests return false.
func (t *RequestTracker) Finish(id uuid.UUID, err error) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return false
	}
	task.EndedAt = time.Now()
	task.Err = err

	current := t.current[task.Slot] == id
	switch {
	case !current:
		task.Status = domain.TaskDiscarded
	case err != nil:
		task.Status = domain.TaskFailed
	default:
		task.Status = domain.TaskCompleted
	}

	if current {
		delete(t.current, task.Slot)
	}
	// Finished tasks are only kept until the next prune
	t.prune()
	return current
}

// IsCurrent reports whether id is still the latest request of its slot
func (t *RequestTracker) IsCurrent(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	return ok && t.current[task.Slot] == id
}

// Status returns the status of a request
func (t *RequestTracker) Status(id uuid.UUID) (domain.TaskStatus, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	task, ok := t.tasks[id]
	if !ok {
		return 0, false
	}
	return task.Status, true
}

// Running returns the labels of requests still in flight
func (t *RequestTracker) Running() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	var labels []string
	for _, task := range t.tasks {
		if task.Status == domain.TaskRunning {
			labels = append(labels, task.Label)
		}
	}
	return labels
}

// prune drops finished tasks older than a minute. Caller holds mu.
func (t *RequestTracker) prune() {
	cutoff := time.Now().Add(-time.Minute)
	for id, task := range t.tasks {
		if task.Status != domain.TaskRunning && !task.EndedAt.IsZero() && task.EndedAt.Before(cutoff) {
			delete(t.tasks, id)
		}
	}
}

// TaskResult is the outcome of a background task. Current is false when a
// newer request in the same slot superseded it and the value should be ignored.
type TaskResult[T any] struct {
	ID      uuid.UUID
	Slot    string
	Value   T
	Err     error
	Current bool
}

// Run starts fn in the background as the current request of slot and
// delivers its result on the returned channel. The channel receives exactly
// one value and is then closed. fn is never cancelled when superseded.
func Run[T any](ctx context.Context, t *RequestTracker, slot, label string, fn func(context.Context) (T, error)) <-chan TaskResult[T] {
	id := t.Begin(slot, label)
	ch := make(chan TaskResult[T], 1)

	go func() {
		defer close(ch)
		value, err := fn(ctx)
		ch <- TaskResult[T]{
			ID:      id,
			Slot:    slot,
			Value:   value,
			Err:     err,
			Current: t.Finish(id, err),
		}
	}()
	return ch
}

// newRequestID returns a time-ordered UUID, falling back to v4
func newRequestID() uuid.UUID {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.New()
	}
	return id
}
