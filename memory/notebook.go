// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package memory

import (
	"sort"

	"github.com/diffeo/go-notebook/notebook"
)

// model renders a stored notebook as an API model.  withContent
// controls whether the content dictionary is included; directory
// listings leave it out.  Assumes the global lock.
func (nb *memNotebook) model(withContent bool) notebook.Model {
	m := notebook.Model{
		Name:         nb.name,
		Path:         nb.path,
		LastModified: nb.lastModified,
	}
	if withContent {
		m.Content = deepCopyDict(nb.content)
	}
	return m
}

func (s *memStore) ListNotebooks(path string) (models []notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		models = []notebook.Model{}
		d := s.dirs[path]
		if d == nil {
			return nil
		}
		names := make([]string, 0, len(d.notebooks))
		for name := range d.notebooks {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			models = append(models, d.notebooks[name].model(false))
		}
		return nil
	})
	return
}

func (s *memStore) GetNotebook(name, path string) (model notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		model = nb.model(true)
		return nil
	})
	return
}

func (s *memStore) NotebookExists(name, path string) (exists bool, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		_, err := s.find(name, path)
		exists = err == nil
		return nil
	})
	return
}

func (s *memStore) CreateNotebook(model notebook.Model, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		d := s.dir(path)
		name := model.Name
		if name == "" {
			name = d.nextName(notebook.UntitledBase)
		} else if !notebook.ValidName(name) {
			return notebook.ErrBadNotebookName
		}
		nb := &memNotebook{
			name:         name,
			path:         path,
			content:      deepCopyDict(model.Content),
			lastModified: s.clock.Now(),
		}
		// An explicit name lands even if taken, replacing the
		// previous notebook and its checkpoints.
		d.notebooks[name] = nb
		out = nb.model(true)
		return nil
	})
	return
}

func (s *memStore) SaveNotebook(model notebook.Model, name, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		nb.content = deepCopyDict(model.Content)
		nb.lastModified = s.clock.Now()
		out = nb.model(true)
		return nil
	})
	return
}

func (s *memStore) UpdateNotebook(model notebook.Model, name, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	newName := model.Name
	newPath := notebook.NormalizePath(model.Path)
	err = s.do(func() error {
		nb, err := s.find(name, path)
		if err != nil {
			return err
		}
		if newName == "" {
			newName = name
		} else if !notebook.ValidName(newName) {
			return notebook.ErrBadNotebookName
		}
		if model.Path == "" {
			newPath = path
		}
		if newName == name && newPath == path {
			out = nb.model(true)
			return nil
		}
		dest := s.dir(newPath)
		if _, taken := dest.notebooks[newName]; taken {
			return notebook.ErrNotebookExists{Name: newName, Path: newPath}
		}
		delete(s.dirs[path].notebooks, name)
		nb.name = newName
		nb.path = newPath
		dest.notebooks[newName] = nb
		out = nb.model(true)
		return nil
	})
	return
}

func (s *memStore) CopyNotebook(fromName, toName, path string) (out notebook.Model, err error) {
	path = notebook.NormalizePath(path)
	err = s.do(func() error {
		src, err := s.find(fromName, path)
		if err != nil {
			return err
		}
		d := s.dir(path)
		name := toName
		if name == "" {
			name = d.nextName(notebook.CopyBase(fromName))
		} else if !notebook.ValidName(name) {
			return notebook.ErrBadNotebookName
		}
		d.notebooks[name] = &memNotebook{
			name:         name,
			path:         path,
			content:      deepCopyDict(src.content),
			lastModified: s.clock.Now(),
		}
		out = d.notebooks[name].model(true)
		return nil
	})
	return
}

func (s *memStore) DeleteNotebook(name, path string) error {
	path = notebook.NormalizePath(path)
	return s.do(func() error {
		if _, err := s.find(name, path); err != nil {
			return err
		}
		d := s.dirs[path]
		delete(d.notebooks, name)
		if len(d.notebooks) == 0 {
			delete(s.dirs, path)
		}
		return nil
	})
}

// nextName picks the first unused name in a base's sequence.  Assumes
// the global lock.
func (d *directory) nextName(base string) string {
	for n := 0; ; n++ {
		name := notebook.IncrementName(base, n)
		if _, taken := d.notebooks[name]; !taken {
			return name
		}
	}
}
