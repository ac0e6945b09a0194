// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restdata defines common data structures shared between the
// restserver and restclient packages.  Generally JSON encodings of
// these are passed across the wire as the
// application/vnd.diffeo.notebook.v1+json MIME type.
//
// API Usage
//
// Notebooks live under /api/notebooks.  A directory is addressed by
// its slash-separated path, and a notebook by its directory plus its
// filename; the filename always ends in ".ipynb".  So
//
//     GET /api/notebooks/work            lists the "work" directory
//     GET /api/notebooks/work/a.ipynb    fetches one notebook
//
// Checkpoints hang off a notebook URL:
//
//     GET  /api/notebooks/work/a.ipynb/checkpoints
//     POST /api/notebooks/work/a.ipynb/checkpoints
//     POST /api/notebooks/work/a.ipynb/checkpoints/{checkpoint_id}
//
// HTTP Considerations
//
// Successful responses that carry a notebook or checkpoint model also
// carry a Last-Modified header.  Responses that create a resource, or
// whose result lives at a different URL than was requested, carry a
// Location header with the canonical resource path.  Deletes and
// checkpoint restores return 204 No Content with an empty body.
//
// Errors are returned as encodings of the ErrorResponse type with a
// failing HTTP status: 400 for requests whose verb, query parameters,
// and body cannot be combined into a valid operation; 404 for unknown
// notebooks and checkpoints; 409 for renames onto occupied names.
//
// Timestamps are represented in JSON as RFC 3339 strings,
// "2012-03-04T05:06:07.890Z".
package restdata

import "time"

// V1JSONMediaType is the preferred, most specific MIME type for the
// JSON representation of this content.
const V1JSONMediaType = "application/vnd.diffeo.notebook.v1+json"

// JSONMediaType requests the most recent version of the JSON
// representation of this content.
const JSONMediaType = "application/vnd.diffeo.notebook+json"

// Notebook is the wire representation of a single notebook.
type Notebook struct {
	// Name is the notebook filename, ending in ".ipynb".
	Name string `json:"name"`

	// Path is the slash-separated directory holding the notebook;
	// empty string is the root.
	Path string `json:"path"`

	// Content is the notebook document body.  It is omitted in
	// directory listings, and may be omitted in requests that do
	// not carry content (an empty create, a rename).
	Content map[string]interface{} `json:"content,omitempty"`

	// LastModified is the store's modification stamp.  It is
	// ignored in requests.
	LastModified time.Time `json:"last_modified"`
}

// NotebookList is a directory listing.  It serializes as a bare JSON
// array whose entries have no content.
type NotebookList []Notebook

// Checkpoint is the wire representation of one notebook checkpoint.
type Checkpoint struct {
	// ID is the opaque store-assigned checkpoint token.
	ID string `json:"id"`

	// LastModified is the time the checkpoint was taken.
	LastModified time.Time `json:"last_modified"`
}

// CheckpointList is a notebook's checkpoint set, oldest first.
type CheckpointList []Checkpoint

// ErrorResponse can be a response to any method, generally
// accompanied by a failing HTTP status code.
type ErrorResponse struct {
	// Error is a short description of the failure.  This may be
	// the name of a notebook API error, the string "panic", or
	// the string "error" for some other kind of error.
	Error string `json:"error"`

	// Message is a human-readable description of the failure.
	Message string `json:"message"`

	// Name and Path identify the notebook involved in the error,
	// if applicable.
	Name string `json:"name,omitempty"`
	Path string `json:"path,omitempty"`

	// Value is an extra parameter to the error if applicable,
	// such as a checkpoint id.
	Value string `json:"value,omitempty"`

	// Stack holds a formatted backtrace, if the method failed
	// due to a panic.
	Stack string `json:"stack,omitempty"`
}
