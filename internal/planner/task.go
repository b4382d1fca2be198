package planner

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"studyplanner/internal/logging"
	"studyplanner/internal/storage"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Task is a study obligation with a deadline.
type Task struct {
	ID             string `json:"id"`
	Subject        string `json:"subject"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Notes          string `json:"notes,omitempty"`
	Completed      bool   `json:"completed"`
	ReminderOffset *int   `json:"reminderOffset,omitempty"`
}

// TaskInput is what the creation flow submits.
type TaskInput struct {
	Subject        string
	Date           string
	Time           string
	Notes          string
	ReminderOffset *int
}

// HasReminder reports whether a reminder offset was chosen.
func (t Task) HasReminder() bool {
	return t.ReminderOffset != nil
}

// Offset returns the reminder offset, or 0 when none was chosen.
func (t Task) Offset() int {
	if t.ReminderOffset == nil {
		return 0
	}
	return *t.ReminderOffset
}

// IntPtr is a helper for building optional offsets.
func IntPtr(v int) *int {
	return &v
}

// TaskStore keeps the ordered task list and mirrors it into storage after
// every mutation.
type TaskStore struct {
	kv    storage.KV
	log   logging.Logger
	tasks []Task
	newID func() string
}

// LoadTaskStore rehydrates the list from kv. A missing or unparsable value
// yields an empty list.
func LoadTaskStore(ctx context.Context, kv storage.KV, log logging.Logger) *TaskStore {
	s := &TaskStore{
		kv:    kv,
		log:   log.With("component", "tasks"),
		newID: uuid.NewString,
	}
	raw, found, err := kv.Get(ctx, keyTasks)
	switch {
	case err != nil:
		s.log.Warn(ctx, "task list unreadable, starting empty", "err", err)
	case !found:
	default:
		tasks, err := decodeTasks(raw)
		if err != nil {
			s.log.Warn(ctx, "task list malformed, starting empty", "err", err)
			break
		}
		s.tasks = tasks
	}
	s.log.Debug(ctx, "task store loaded", "count", len(s.tasks))
	return s
}

// Tasks returns a copy of the current ordered snapshot.
func (s *TaskStore) Tasks() []Task {
	out := make([]Task, len(s.tasks))
	copy(out, s.tasks)
	return out
}

func (s *TaskStore) Len() int {
	return len(s.tasks)
}

// Create appends a new incomplete task. An empty subject, date or time
// rejects the call without touching the list. A persistence failure keeps
// the in-memory task and is returned wrapped.
func (s *TaskStore) Create(ctx context.Context, in TaskInput) (Task, error) {
	subject := strings.TrimSpace(in.Subject)
	date := strings.TrimSpace(in.Date)
	clock := strings.TrimSpace(in.Time)
	if subject == "" || date == "" || clock == "" {
		return Task{}, ErrMissingField
	}
	if in.ReminderOffset != nil && *in.ReminderOffset < 0 {
		return Task{}, fmt.Errorf("reminder offset %d: must not be negative", *in.ReminderOffset)
	}

	t := Task{
		ID:        s.newID(),
		Subject:   subject,
		Date:      date,
		Time:      clock,
		Notes:     strings.TrimSpace(in.Notes),
		Completed: false,
	}
	if in.ReminderOffset != nil {
		t.ReminderOffset = IntPtr(*in.ReminderOffset)
	}
	s.tasks = append(s.tasks, t)
	s.log.Info(ctx, "task created", "id", t.ID, "subject", t.Subject, "due", t.Date+" "+t.Time)
	return t, s.persist(ctx)
}

// Toggle flips completion for id. Unknown ids are ignored.
func (s *TaskStore) Toggle(ctx context.Context, id string) error {
	for i := range s.tasks {
		if s.tasks[i].ID != id {
			continue
		}
		s.tasks[i].Completed = !s.tasks[i].Completed
		s.log.Info(ctx, "task toggled", "id", id, "completed", s.tasks[i].Completed)
		return s.persist(ctx)
	}
	s.log.Debug(ctx, "toggle ignored, unknown task", "id", id)
	return nil
}

func (s *TaskStore) persist(ctx context.Context) error {
	raw, err := encodeTasks(s.tasks)
	if err != nil {
		return fmt.Errorf("encode tasks: %w", err)
	}
	if err := s.kv.Set(ctx, keyTasks, raw); err != nil {
		s.log.Error(ctx, "persist tasks failed", "err", err)
		return fmt.Errorf("persist tasks: %w", err)
	}
	return nil
}

func encodeTasks(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func decodeTasks(raw string) ([]Task, error) {
	var tasks []Task
	if err := json.Unmarshal([]byte(raw), &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}
