package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	calerrors "github.com/alexisbeaulieu97/calgrid/pkg/errors"
)

const fileFormatVersion = "1.0"

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Version   string           `json:"version"`
	Calendars map[string]State `json:"calendars"`
}

// FileStore keeps every calendar in one JSON document. Other processes may
// write the same file, so every operation rereads it when it changed on disk
// and every write starts from that fresh copy.
type FileStore struct {
	path      string
	mu        sync.Mutex
	version   string
	calendars map[string]State
	loaded    os.FileInfo
	now       func() time.Time
}

// NewFileStore creates a FileStore and loads it from disk.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path:      path,
		version:   fileFormatVersion,
		calendars: make(map[string]State),
		now:       time.Now,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, calerrors.NewStoreError("", "create store directory", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.refreshLocked(); err != nil {
		return nil, calerrors.NewStoreError("", "load", err)
	}

	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string {
	return s.path
}

// refreshLocked rereads the document when the file at path was replaced or
// changed since it was last read.
// A missing file is an empty store. The caller holds the lock.
func (s *FileStore) refreshLocked() error {
	info, err := os.Stat(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.calendars = make(map[string]State)
		s.loaded = nil
		return nil
	}
	if err != nil {
		return err
	}
	if s.loaded != nil && os.SameFile(s.loaded, info) &&
		info.ModTime().Equal(s.loaded.ModTime()) && info.Size() == s.loaded.Size() {
		return nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return err
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to parse %s: %w", s.path, err)
	}

	if doc.Version != "" {
		s.version = doc.Version
	}
	s.calendars = doc.Calendars
	if s.calendars == nil {
		s.calendars = make(map[string]State)
	}
	s.loaded = info

	return nil
}

// saveLocked writes the document atomically. The caller holds the lock.
func (s *FileStore) saveLocked() error {
	doc := fileDocument{
		Version:   s.version,
		Calendars: s.calendars,
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal store: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to write temporary file: %w", err)
	}

	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temporary file: %w", err)
	}

	if info, err := os.Stat(s.path); err == nil {
		s.loaded = info
	}
	return nil
}

// Get returns the state stored under name.
func (s *FileStore) Get(_ context.Context, name string) (State, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return State{}, false, calerrors.NewStoreError(name, "load", err)
	}
	state, ok := s.calendars[name]
	return state, ok, nil
}

// Put stores state and flushes the document to disk.
func (s *FileStore) Put(_ context.Context, state State) error {
	state, err := prepare(state, s.now())
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return calerrors.NewStoreError(state.Calendar, "load", err)
	}
	return s.putLocked(state)
}

// Update runs fn on the current state of name and stores its result under the lock.
func (s *FileStore) Update(_ context.Context, name string, fn UpdateFunc) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return State{}, calerrors.NewStoreError(name, "load", err)
	}

	current, ok := s.calendars[name]
	next, err := fn(current, ok)
	if err != nil {
		return State{}, err
	}
	next.Calendar = name
	if next, err = prepare(next, s.now()); err != nil {
		return State{}, err
	}
	if err := s.putLocked(next); err != nil {
		return State{}, err
	}
	return next, nil
}

func (s *FileStore) putLocked(state State) error {
	previous, existed := s.calendars[state.Calendar]
	s.calendars[state.Calendar] = state
	if err := s.saveLocked(); err != nil {
		if existed {
			s.calendars[state.Calendar] = previous
		} else {
			delete(s.calendars, state.Calendar)
		}
		return calerrors.NewStoreError(state.Calendar, "put", err)
	}
	return nil
}

// Delete removes name. Deleting an unknown calendar is not an error.
func (s *FileStore) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return calerrors.NewStoreError(name, "load", err)
	}

	previous, ok := s.calendars[name]
	if !ok {
		return nil
	}

	delete(s.calendars, name)
	if err := s.saveLocked(); err != nil {
		s.calendars[name] = previous
		return calerrors.NewStoreError(name, "delete", err)
	}
	return nil
}

// List returns every stored calendar ordered by name.
func (s *FileStore) List(_ context.Context) ([]State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.refreshLocked(); err != nil {
		return nil, calerrors.NewStoreError("", "load", err)
	}

	out := make([]State, 0, len(s.calendars))
	for _, state := range s.calendars {
		out = append(out, state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Calendar < out[j].Calendar })
	return out, nil
}

// Close is a no-op; every write is already on disk.
func (s *FileStore) Close() error {
	return nil
}
