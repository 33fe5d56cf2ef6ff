package services

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"task-board/internal/clock"
	"task-board/internal/domain"
	"task-board/internal/errors"
	"task-board/internal/logging"
	"task-board/internal/repository"
)

// DefaultLatency is the simulated delay applied to create and update
const DefaultLatency = 500 * time.Millisecond

// TaskServiceOptions configures a TaskService
type TaskServiceOptions struct {
	// Latency is the simulated delay before create and update take effect.
	// Zero disables the delay.
	Latency time.Duration
	Clock   clock.Clock
	// NewID generates task identifiers. Defaults to random UUIDs.
	NewID func() string
}

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	mu    sync.Mutex
	tasks []domain.Task

	slot     *repository.TaskSlot
	mapper   *domain.TaskMapper
	clock    clock.Clock
	latency  time.Duration
	newID    func() string
	inFlight atomic.Bool
}

// NewTaskService creates a TaskService backed by slot and loads whatever the
// slot already holds. A failed or corrupt load is logged and the service
// starts empty.
func NewTaskService(ctx context.Context, slot *repository.TaskSlot, opts TaskServiceOptions) TaskService {
	if opts.Clock == nil {
		opts.Clock = clock.New()
	}
	if opts.NewID == nil {
		opts.NewID = func() string { return uuid.NewString() }
	}

	s := &taskServiceImpl{
		slot:    slot,
		mapper:  domain.NewTaskMapper(),
		clock:   opts.Clock,
		latency: opts.Latency,
		newID:   opts.NewID,
		tasks:   []domain.Task{},
	}
	s.load(ctx)
	return s
}

// load replaces the in-memory collection with the slot contents
func (s *taskServiceImpl) load(ctx context.Context) {
	records, err := s.slot.Load(ctx)
	if err != nil {
		logging.Warnf("could not load tasks from slot %q: %v", s.slot.Key(), err)
		return
	}

	tasks, err := s.mapper.FromRecords(records)
	if err != nil {
		logging.Warnf("ignoring unreadable tasks in slot %q: %v", s.slot.Key(), err)
		return
	}

	s.tasks = tasks
	logging.Debugf("loaded %d tasks from slot %q", len(tasks), s.slot.Key())
}

// Create appends a new incomplete task built from draft after the latency window.
// Only one create or update may be in flight; an overlapping call fails as busy.
func (s *taskServiceImpl) Create(ctx context.Context, draft domain.Draft) (*domain.Task, error) {
	if !s.inFlight.CompareAndSwap(false, true) {
		return nil, errors.NewBusyError("create task")
	}
	defer s.inFlight.Store(false)

	if err := s.wait(ctx, "create task"); err != nil {
		return nil, err
	}

	task := domain.Task{
		ID:        s.newID(),
		Completed: false,
		CreatedAt: s.clock.Now(),
	}.Apply(draft)

	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = append(s.tasks, task)
	s.persistLocked(ctx)

	created := task
	return &created, nil
}

// Update merges draft into the task with id after the latency window.
// Unknown ids are ignored.
func (s *taskServiceImpl) Update(ctx context.Context, id string, draft domain.Draft) error {
	if !s.inFlight.CompareAndSwap(false, true) {
		return errors.NewBusyError("update task")
	}
	defer s.inFlight.Store(false)

	if err := s.wait(ctx, "update task"); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		logging.Debugf("update ignored: task %s not found", id)
		return nil
	}
	s.tasks[i] = s.tasks[i].Apply(draft)
	s.persistLocked(ctx)
	return nil
}

// Delete removes the task with id. Unknown ids are ignored.
func (s *taskServiceImpl) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		logging.Debugf("delete ignored: task %s not found", id)
		return nil
	}
	s.tasks = append(s.tasks[:i:i], s.tasks[i+1:]...)
	s.persistLocked(ctx)
	return nil
}

// ToggleComplete flips the completion flag of the task with id.
// Unknown ids are ignored.
func (s *taskServiceImpl) ToggleComplete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		logging.Debugf("toggle ignored: task %s not found", id)
		return nil
	}
	s.tasks[i].Completed = !s.tasks[i].Completed
	s.persistLocked(ctx)
	return nil
}

// Clear drops every task and removes the slot
func (s *taskServiceImpl) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.tasks = []domain.Task{}
	if err := s.slot.Clear(context.WithoutCancel(ctx)); err != nil {
		logging.Warnf("could not clear slot %q: %v", s.slot.Key(), err)
	}
	return nil
}

// Get returns a copy of the task with id
func (s *taskServiceImpl) Get(ctx context.Context, id string) (*domain.Task, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexLocked(id)
	if i < 0 {
		return nil, false
	}
	task := s.tasks[i]
	return &task, true
}

// List returns a sorted copy of the collection
func (s *taskServiceImpl) List(ctx context.Context) []domain.Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	return domain.SortTasks(s.tasks)
}

// IsLoading reports whether a create or update is inside its latency window
func (s *taskServiceImpl) IsLoading() bool {
	return s.inFlight.Load()
}

// wait blocks for the configured latency or until ctx is done
func (s *taskServiceImpl) wait(ctx context.Context, operation string) error {
	if s.latency <= 0 {
		if err := ctx.Err(); err != nil {
			return errors.WrapError(err, errors.ErrorTypeTimeout, operation+" cancelled")
		}
		return nil
	}

	select {
	case <-s.clock.After(s.latency):
		return nil
	case <-ctx.Done():
		return errors.WrapError(ctx.Err(), errors.ErrorTypeTimeout, operation+" cancelled")
	}
}

func (s *taskServiceImpl) indexLocked(id string) int {
	for i := range s.tasks {
		if s.tasks[i].ID == id {
			return i
		}
	}
	return -1
}

// persistLocked writes the whole collection. Failures are logged and the
// in-memory state is kept. The save is not cancelled with the caller.
func (s *taskServiceImpl) persistLocked(ctx context.Context) {
	records := s.mapper.ToRecords(s.tasks)
	if err := s.slot.Save(context.WithoutCancel(ctx), records); err != nil {
		logging.Warnf("could not save tasks to slot %q: %v", s.slot.Key(), err)
	}
}
