package planner

import (
	"context"
	"errors"
	"fmt"

	"studyplanner/internal/logging"
	"studyplanner/internal/storage"
)

var errDiskFull = errors.New("disk full")

// failingKV reads from an inner store but refuses writes when failSet is on.
type failingKV struct {
	*storage.Memory
	failSet bool
	failGet bool
}

func (f *failingKV) Get(ctx context.Context, key string) (string, bool, error) {
	if f.failGet {
		return "", false, errDiskFull
	}
	return f.Memory.Get(ctx, key)
}

func (f *failingKV) Set(ctx context.Context, key, value string) error {
	if f.failSet {
		return errDiskFull
	}
	return f.Memory.Set(ctx, key, value)
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("task-%d", n)
	}
}

func newTaskStore(kv storage.KV) *TaskStore {
	s := LoadTaskStore(context.Background(), kv, logging.Nop())
	s.newID = sequentialIDs()
	return s
}
