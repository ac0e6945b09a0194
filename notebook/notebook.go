// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package notebook defines an abstract API to a notebook document
// store.
//
// In most cases, applications will know of specific implementations
// of this API and will get an implementation of Store from that
// implementation; the memory and postgres packages in this repository
// provide two, and restclient provides one that talks to a remote
// server.
//
// A notebook is a named JSON document living in a slash-separated
// logical directory.  The store owns the document content format and
// this API passes it through opaquely.  Every notebook also has a set
// of checkpoints, point-in-time immutable snapshots of its content,
// identified by store-assigned opaque ids.
package notebook

import "time"

// Extension is the filename suffix every notebook name carries.
// Names that do not end in this suffix are rejected with
// ErrBadNotebookName.
const Extension = ".ipynb"

// Model is the representation of a single notebook.
type Model struct {
	// Name is the base filename of the notebook, ending in
	// Extension, such as "Untitled0.ipynb".  It is unique within
	// its directory.
	Name string

	// Path is the slash-separated logical directory holding the
	// notebook.  The empty string is the root directory.  It
	// never begins or ends with a slash.
	Path string

	// Content is the document body.  The store treats this as an
	// opaque JSON-compatible structure; it may be nil for list
	// entries and for freshly created empty notebooks.
	Content map[string]interface{}

	// LastModified is set by the store on every create and save.
	LastModified time.Time
}

// Checkpoint identifies one snapshot of one notebook's content.
type Checkpoint struct {
	// ID is an opaque store-assigned token, unique within the
	// parent notebook's checkpoint set.
	ID string

	// LastModified is the time the checkpoint was taken.
	LastModified time.Time
}

// Store is the principal interface to a notebook store.
// Implementations of this interface provide a specific database
// backend, RPC system, or other way to keep notebooks.
//
// Every operation is atomic from the caller's perspective: either it
// happened completely or an error is returned and nothing changed.
// Implementations must make the NotebookExists check and a subsequent
// create or save behave sensibly under concurrent writers, surfacing
// any lost race as an error rather than corrupting data.
type Store interface {
	// ListNotebooks returns the notebooks directly inside path.
	// The returned models have no Content.  An empty directory
	// (or one that does not exist) yields an empty slice.
	ListNotebooks(path string) ([]Model, error)

	// GetNotebook retrieves a single notebook with its content.
	// If no notebook (name, path) exists, returns an instance of
	// ErrNoSuchNotebook as an error.
	GetNotebook(name, path string) (Model, error)

	// NotebookExists reports whether a notebook (name, path)
	// currently exists.
	NotebookExists(name, path string) (bool, error)

	// CreateNotebook creates a new notebook in path from model.
	// If model.Name is empty the store picks an unused name.  If
	// model.Name is set and a notebook already exists at that
	// name, the existing notebook is replaced.  Returns the
	// stored model, including the assigned name and timestamp.
	CreateNotebook(model Model, path string) (Model, error)

	// SaveNotebook replaces the content of the existing notebook
	// (name, path) with model.Content.  The store may rename or
	// move the notebook as a side effect of saving (for instance,
	// normalizing a title embedded in the content); callers must
	// treat the returned model's identity as authoritative.
	SaveNotebook(model Model, name, path string) (Model, error)

	// UpdateNotebook renames and/or moves the existing notebook
	// (name, path) to model.Name/model.Path without touching its
	// content.  Empty fields in model keep their current values.
	// Renaming onto a name that is already taken returns an
	// instance of ErrNotebookExists.
	UpdateNotebook(model Model, name, path string) (Model, error)

	// CopyNotebook duplicates the notebook fromName within path.
	// If toName is empty the store picks a name derived from the
	// source.  Copying across directories is not supported by
	// this API.
	CopyNotebook(fromName, toName, path string) (Model, error)

	// DeleteNotebook removes a notebook and all of its
	// checkpoints.  If no notebook (name, path) exists, returns
	// an instance of ErrNoSuchNotebook.
	DeleteNotebook(name, path string) error

	// Checkpoints lists the checkpoints of a notebook, oldest
	// first.
	Checkpoints(name, path string) ([]Checkpoint, error)

	// CreateCheckpoint snapshots the current content of the
	// notebook (name, path) and returns the new checkpoint.
	CreateCheckpoint(name, path string) (Checkpoint, error)

	// RestoreCheckpoint replaces the notebook's current content
	// with the checkpointed content.  This discards the current
	// content; it is irreversible unless another checkpoint holds
	// it.  Returns ErrNoSuchNotebook or ErrNoSuchCheckpoint if
	// either half of the reference is unknown.
	RestoreCheckpoint(checkpointID, name, path string) error

	// DeleteCheckpoint removes a single checkpoint.  Returns
	// ErrNoSuchCheckpoint if the id is unknown.
	DeleteCheckpoint(checkpointID, name, path string) error
}
