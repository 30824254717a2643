package task

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
)

const lockRetryDelay = 10 * time.Millisecond

// Options tunes a FileStore.
type Options struct {
	// DisableLocking turns off the exclusive lock held around each
	// load-mutate-persist sequence. Concurrent writers then race and the
	// last write wins.
	DisableLocking bool
}

// FileStore is a task store backed by a single JSON file holding an array of
// tasks. Every call reads the file fresh; mutations rewrite the whole file.
// The file must already exist.
type FileStore struct {
	path string
	opts Options

	// sem is a one-slot semaphore serialising mutations within the process;
	// flk does the same across processes.
	sem chan struct{}
	flk *flock.Flock
}

var _ Store = (*FileStore)(nil)

// NewFileStore creates a FileStore for the collection at path.
func NewFileStore(path string, opts Options) *FileStore {
	s := &FileStore{path: path, opts: opts}
	if !opts.DisableLocking {
		s.sem = make(chan struct{}, 1)
		s.flk = flock.New(path + ".lock")
	}
	return s
}

// List returns every task in stored order.
func (s *FileStore) List(ctx context.Context) ([]Task, error) {
	return s.load()
}

// Get returns the task whose ID equals id exactly.
func (s *FileStore) Get(ctx context.Context, id string) (*Task, error) {
	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	i := indexOf(tasks, id)
	if i < 0 {
		return nil, fmt.Errorf("get task %s: %w", id, ErrNotFound)
	}
	t := tasks[i]
	return &t, nil
}

// Create validates f, assigns a new ID and appends the task.
func (s *FileStore) Create(ctx context.Context, f Fields) (*Task, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(tasks []Task) ([]Task, *Task, error) {
		id := newID()
		for indexOf(tasks, id) >= 0 {
			id = newID()
		}
		t := f.withID(id)
		return append(tasks, t), &t, nil
	})
}

// Update validates f and replaces every field of task id in place.
func (s *FileStore) Update(ctx context.Context, id string, f Fields) (*Task, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, func(tasks []Task) ([]Task, *Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("update task %s: %w", id, ErrNotFound)
		}
		t := f.withID(tasks[i].ID)
		tasks[i] = t
		return tasks, &t, nil
	})
}

// Delete removes task id and returns it as it was before removal.
func (s *FileStore) Delete(ctx context.Context, id string) (*Task, error) {
	return s.mutate(ctx, func(tasks []Task) ([]Task, *Task, error) {
		i := indexOf(tasks, id)
		if i < 0 {
			return nil, nil, fmt.Errorf("delete task %s: %w", id, ErrNotFound)
		}
		t := tasks[i]
		return slices.Delete(tasks, i, i+1), &t, nil
	})
}

// mutate runs fn against a fresh copy of the collection and persists the
// result. The whole sequence holds the store lock unless locking is disabled.
// A missing collection file fails before the lock sidecar is created.
func (s *FileStore) mutate(ctx context.Context, fn func([]Task) ([]Task, *Task, error)) (*Task, error) {
	if _, err := os.Stat(s.path); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrStorageRead, s.path, err)
	}
	unlock, err := s.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	tasks, err := s.load()
	if err != nil {
		return nil, err
	}
	next, result, err := fn(tasks)
	if err != nil {
		return nil, err
	}
	if err := s.save(next); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrStorageWrite, s.path, err)
	}
	return result, nil
}

func (s *FileStore) lock(ctx context.Context) (func(), error) {
	if s.opts.DisableLocking {
		return func() {}, nil
	}
	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return nil, fmt.Errorf("%w %s: lock: %w", ErrStorageWrite, s.path, ctx.Err())
	}
	locked, err := s.flk.TryLockContext(ctx, lockRetryDelay)
	if err == nil && !locked {
		err = errors.New("lock not acquired")
	}
	if err != nil {
		<-s.sem
		return nil, fmt.Errorf("%w %s: lock: %w", ErrStorageWrite, s.path, err)
	}
	return func() {
		_ = s.flk.Unlock()
		<-s.sem
	}, nil
}

func (s *FileStore) load() ([]Task, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrStorageRead, s.path, err)
	}
	if err := checkShape(data); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrStorageRead, s.path, err)
	}
	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrStorageRead, s.path, err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

func (s *FileStore) save(tasks []Task) error {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal tasks: %w", err)
	}
	data = append(data, '\n')

	perm := fs.FileMode(0o644)
	if info, err := os.Stat(s.path); err == nil {
		perm = info.Mode().Perm()
	}
	return writeFileAtomic(s.path, data, perm)
}

// writeFileAtomic replaces path with data so readers see either the old or
// the new document, never a partial one.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		_ = tmp.Close()
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}
	committed = true
	return nil
}

// InitFile writes an empty collection to path unless a file is already there.
func InitFile(path string) (created bool, err error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("create data dir: %w", err)
	}
	if err := writeFileAtomic(path, []byte("[]\n"), 0o644); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}
	return true, nil
}

func newID() string {
	return uuid.Must(uuid.NewV7()).String()
}

func indexOf(tasks []Task, id string) int {
	return slices.IndexFunc(tasks, func(t Task) bool { return t.ID == id })
}
