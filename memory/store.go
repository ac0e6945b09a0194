// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package memory provides an in-process, in-memory implementation of
// the notebook Store.  There is no persistence, nor is there any
// sharing between processes.  The entire store is behind a single
// global semaphore to protect against concurrent updates; in some
// cases this can limit performance in the name of correctness.
//
// This is mostly intended as a simple reference implementation that
// can be used for testing, including in-process testing of
// higher-level components.  It is generally tuned for correctness,
// not performance or scalability.
package memory

import (
	"sync"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-notebook/notebook"
)

// New creates a new notebook.Store that operates purely in memory.
func New() notebook.Store {
	return NewWithClock(clock.New())
}

// NewWithClock creates a new in-memory notebook.Store using an
// explicit time source.  Most application code should call New(), and
// use the default (real) time source; this entry point is intended
// for tests that need to inject a mock time source.
func NewWithClock(clk clock.Clock) notebook.Store {
	return &memStore{
		dirs:  make(map[string]*directory),
		clock: clk,
	}
}

type memStore struct {
	dirs  map[string]*directory
	clock clock.Clock
	sem   sync.Mutex
}

// directory holds the notebooks directly inside one logical path.
type directory struct {
	notebooks map[string]*memNotebook
}

type memNotebook struct {
	name         string
	path         string
	content      map[string]interface{}
	lastModified time.Time
	checkpoints  []*memCheckpoint
}

type memCheckpoint struct {
	id           string
	content      map[string]interface{}
	lastModified time.Time
}

// do runs f with the global store lock held.
func (s *memStore) do(f func() error) error {
	s.sem.Lock()
	defer s.sem.Unlock()
	return f()
}

// dir returns the directory at path, creating it if needed.  Assumes
// the global lock.
func (s *memStore) dir(path string) *directory {
	d := s.dirs[path]
	if d == nil {
		d = &directory{notebooks: make(map[string]*memNotebook)}
		s.dirs[path] = d
	}
	return d
}

// find looks up a live notebook.  Assumes the global lock.
func (s *memStore) find(name, path string) (*memNotebook, error) {
	if d := s.dirs[path]; d != nil {
		if nb := d.notebooks[name]; nb != nil {
			return nb, nil
		}
	}
	return nil, notebook.ErrNoSuchNotebook{Name: name, Path: path}
}

// deepCopyDict clones a content dictionary so that callers and the
// store never alias each other's maps.
func deepCopyDict(dict map[string]interface{}) map[string]interface{} {
	if dict == nil {
		return nil
	}
	out := make(map[string]interface{}, len(dict))
	for k, v := range dict {
		out[k] = deepCopyValue(v)
	}
	return out
}

func deepCopyValue(v interface{}) interface{} {
	switch vv := v.(type) {
	case map[string]interface{}:
		return deepCopyDict(vv)
	case []interface{}:
		out := make([]interface{}, len(vv))
		for i, item := range vv {
			out[i] = deepCopyValue(item)
		}
		return out
	default:
		return v
	}
}
