package memstore

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/idilsaglam/mytodo/internal/model"
)

// In-memory task storage. Nothing survives the process.
// No locking: the store is owned by a single REPL goroutine.

// Store keeps tasks in insertion order and indexed by id.
// order and byID are updated together on every mutation.
type Store struct {
	order  []int
	byID   map[int]*model.Task
	nextID int

	now    func() time.Time
	logger *log.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithStartID sets the first id handed out by Add. Values below 1 are clamped.
func WithStartID(id int) Option {
	return func(s *Store) {
		if id < 1 {
			id = 1
		}
		s.nextID = id
	}
}

// WithClock sets the clock Seed uses to compute due dates.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets the logger mutations are reported to at debug level.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns an empty store whose first id is 1 unless WithStartID says otherwise.
func New(opts ...Option) *Store {
	s := &Store{
		byID:   make(map[int]*model.Task),
		nextID: 1,
		now:    time.Now,
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Add creates a task with the next id. The title is stored as given;
// callers trim and reject empty titles before getting here.
func (s *Store) Add(title string, due *model.Date) model.Task {
	t := &model.Task{ID: s.nextID, Title: title}
	if due != nil {
		d := *due
		t.Due = &d
	}
	s.nextID++

	s.order = append(s.order, t.ID)
	s.byID[t.ID] = t
	s.logger.Debug("task added", "id", t.ID, "title", t.Title)
	return clone(t)
}

// List returns a snapshot of all tasks in insertion order.
func (s *Store) List() []model.Task {
	out := make([]model.Task, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, clone(s.byID[id]))
	}
	return out
}

// TryGet returns a copy of the task with the given id, if present.
func (s *Store) TryGet(id int) (model.Task, bool) {
	t, ok := s.byID[id]
	if !ok {
		return model.Task{}, false
	}
	return clone(t), true
}

// Complete marks the task done. Completing a done task is a no-op that
// still reports true.
func (s *Store) Complete(id int) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	t.Done = true
	s.logger.Debug("task completed", "id", id)
	return true
}

// Toggle flips the task between done and pending.
func (s *Store) Toggle(id int) bool {
	t, ok := s.byID[id]
	if !ok {
		return false
	}
	t.Done = !t.Done
	s.logger.Debug("task toggled", "id", id, "done", t.Done)
	return true
}

// Delete removes the task. Its id is never handed out again.
func (s *Store) Delete(id int) bool {
	if _, ok := s.byID[id]; !ok {
		return false
	}
	delete(s.byID, id)
	s.order = slices.DeleteFunc(s.order, func(v int) bool { return v == id })
	s.logger.Debug("task deleted", "id", id)
	return true
}

// Seed adds the sample tasks used for demos.
func (s *Store) Seed() {
	today := model.DateOf(s.now())
	s.Add("Buy milk", today.AddDays(1).Ptr())
	s.Add("Finish Module 1 notes", today.AddDays(2).Ptr())
	s.Add("Call the mechanic", nil)
}

// Len is the number of tasks currently held.
func (s *Store) Len() int { return len(s.order) }

// Stats counts done and pending tasks.
func (s *Store) Stats() (done, pending int) {
	for _, t := range s.byID {
		if t.Done {
			done++
		} else {
			pending++
		}
	}
	return
}

func clone(t *model.Task) model.Task {
	c := *t
	if t.Due != nil {
		d := *t.Due
		c.Due = &d
	}
	return c
}
