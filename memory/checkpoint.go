// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"github.com/diffeo/go-notebook/notebook"
	"github.com/satori/go.uuid"
)

func (cp *memCheckpoint) model() notebook.Checkpoint {
	return notebook.Checkpoint{
		ID:           cp.id,
		LastModified: cp.lastModified,
	}
}

func (s *memStore) Checkpoints(name, path string) (checkpoints []notebook.Checkpoint, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		checkpoints = []notebook.Checkpoint{}
		for _, cp := range nb.checkpoints {
			checkpoints = append(checkpoints, cp.model())
		}
		return nil
	})
	return
}

func (s *memStore) CreateCheckpoint(name, path string) (checkpoint notebook.Checkpoint, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		cp := &memCheckpoint{
			id:           uuid.NewV4().String(),
			content:      deepCopyDict(nb.content),
			lastModified: s.clock.Now(),
		}
		nb.checkpoints = append(nb.checkpoints, cp)
		checkpoint = cp.model()
		return nil
	})
	return
}

func (s *memStore) RestoreCheckpoint(checkpointID, name, path string) error {
	path = notebook.NormalizePath(path)
	return s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		for _, cp := range nb.checkpoints {
			if cp.id == checkpointID {
				nb.content = deepCopyDict(cp.content)
				nb.lastModified = s.clock.Now()
				return nil
			}
		}
		return notebook.ErrNoSuchCheckpoint{ID: checkpointID}
	})
}

func (s *memStore) DeleteCheckpoint(checkpointID, name, path string) error {
	path = notebook.NormalizePath(path)
	return s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		for i, cp := range nb.checkpoints {
			if cp.id == checkpointID {
				nb.checkpoints = append(nb.checkpoints[:i], nb.checkpoints[i+1:]...)
				return nil
			}
		}
		return notebook.ErrNoSuchCheckpoint{ID: checkpointID}
	})
}
