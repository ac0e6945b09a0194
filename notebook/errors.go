// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package notebook

import (
	"errors"
	"fmt"
)

// ErrNoNotebookName is returned as an error from functions that
// build a notebook from a model, but find no usable name in it.
var ErrNoNotebookName = errors.New("No notebook name given")

// ErrBadNotebookName is returned as an error from functions handed a
// notebook name that does not end in Extension.
var ErrBadNotebookName = errors.New("Notebook name must end in " + Extension)

// ErrNoSuchNotebook is returned by Store.GetNotebook() and similar
// functions that want to look up a notebook, but cannot find it.
type ErrNoSuchNotebook struct {
	Name string
	Path string
}

func (err ErrNoSuchNotebook) Error() string {
	return fmt.Sprintf("No such notebook %v", JoinPath(err.Path, err.Name))
}

// ErrNotebookExists is returned by Store.UpdateNotebook() when a
// rename would land on a name that is already taken.
type ErrNotebookExists struct {
	Name string
	Path string
}

func (err ErrNotebookExists) Error() string {
	return fmt.Sprintf("Notebook %v already exists", JoinPath(err.Path, err.Name))
}

// ErrNoSuchCheckpoint is returned by checkpoint operations given an
// id that does not belong to the named notebook.
type ErrNoSuchCheckpoint struct {
	ID string
}

func (err ErrNoSuchCheckpoint) Error() string {
	return fmt.Sprintf("No such checkpoint %v", err.ID)
}
