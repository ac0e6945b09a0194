// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
)

// intentOp enumerates the store operations the REST interface can
// perform.  Every request resolves to exactly one of these before
// anything touches the store.
type intentOp int

const (
	opListNotebooks intentOp = iota
	opGetNotebook
	opCreateEmpty
	opUpload
	opCopy
	opRename
	opSave
	opDeleteNotebook
	opListCheckpoints
	opCreateCheckpoint
	opRestoreCheckpoint
	opDeleteCheckpoint
)

// intent is a fully resolved request: one operation tag plus the
// operands that operation needs.  Fields that an operation does not
// use are left at their zero values.
type intent struct {
	// Op says which operation to perform.
	Op intentOp

	// Path is the normalized logical directory.
	Path string

	// Name is the target notebook filename; "" means the store
	// picks one (only opCreateEmpty, opUpload, and opCopy allow
	// this).
	Name string

	// CopyFrom is the source filename for opCopy.
	CopyFrom string

	// Model carries body-derived fields for opUpload, opSave, and
	// opRename.
	Model notebook.Model

	// Checkpoint is the checkpoint id for the checkpoint
	// operations that address one.
	Checkpoint string
}

// existsFunc probes whether a notebook is present; resolveNotebook
// takes it as a parameter so the resolution rules stay a pure function
// of their inputs.
type existsFunc func(name, path string) (bool, error)

// Resolution errors.  The messages deliberately tell the caller which
// verb they should have used.
func errNameForbidden() error {
	return restdata.ErrBadRequest{Err: stringError("Only POST to directories. Use PUT for full names")}
}
func errNameRequired() error {
	return restdata.ErrBadRequest{Err: stringError("Only PUT to full names. Use POST for directories.")}
}
func errNameMissing() error {
	return restdata.ErrBadRequest{Err: stringError("Notebook name missing")}
}
func errBodyMissing() error {
	return restdata.ErrBadRequest{Err: stringError("JSON body missing")}
}
func errCopyWithBody() error {
	return restdata.ErrBadRequest{Err: stringError("Cannot copy and upload in the same request")}
}

type stringError string

func (e stringError) Error() string { return string(e) }

// resolveNotebook maps an HTTP request onto a single intent, or
// returns an error (always carrying a 400 status) if the combination
// of verb, URL shape, copy parameter, and body is not meaningful.
//
// The rules, per verb:
//
//	GET     no name lists the directory; a name fetches that notebook.
//	PATCH   requires a name and a JSON body; renames the notebook.
//	POST    forbids a name.  A copy parameter copies; otherwise a
//	        non-empty body uploads; otherwise creates an empty
//	        notebook.  The server picks the target name.
//	PUT     requires a name.  A copy parameter copies (and rejects any
//	        body); otherwise a body saves if the target exists and
//	        uploads if not; otherwise creates an empty notebook.
//	DELETE  requires a name; deletes the notebook.
//
// A nil body means the request had none; an empty dictionary body
// counts as no content for the upload rules, but does satisfy PATCH's
// body requirement and does collide with PUT's copy parameter.
func resolveNotebook(method string, ctx *context, body map[string]interface{}, exists existsFunc) (intent, error) {
	in := intent{Path: ctx.Path, Name: ctx.Name}
	copyFrom := ctx.CopyParam()
	switch method {
	case "GET", "HEAD":
		if ctx.Name == "" {
			in.Op = opListNotebooks
		} else {
			in.Op = opGetNotebook
		}

	case "PATCH":
		if ctx.Name == "" {
			return intent{}, errNameMissing()
		}
		if body == nil {
			return intent{}, errBodyMissing()
		}
		model, err := notebook.ExtractModel(body)
		if err != nil {
			return intent{}, restdata.ErrBadRequest{Err: err}
		}
		in.Op = opRename
		in.Model = model

	case "POST":
		if ctx.Name != "" {
			return intent{}, errNameForbidden()
		}
		switch {
		case copyFrom != "":
			in.Op = opCopy
			in.CopyFrom = copyFrom
		case len(body) > 0:
			model, err := notebook.ExtractModel(body)
			if err != nil {
				return intent{}, restdata.ErrBadRequest{Err: err}
			}
			in.Op = opUpload
			in.Model = model
		default:
			in.Op = opCreateEmpty
		}

	case "PUT":
		if ctx.Name == "" {
			return intent{}, errNameRequired()
		}
		switch {
		case copyFrom != "":
			if body != nil {
				return intent{}, errCopyWithBody()
			}
			in.Op = opCopy
			in.CopyFrom = copyFrom
		case len(body) > 0:
			model, err := notebook.ExtractModel(body)
			if err != nil {
				return intent{}, restdata.ErrBadRequest{Err: err}
			}
			present, err := exists(ctx.Name, ctx.Path)
			if err != nil {
				return intent{}, err
			}
			if present {
				in.Op = opSave
			} else {
				in.Op = opUpload
			}
			in.Model = model
		default:
			in.Op = opCreateEmpty
		}

	case "DELETE":
		if ctx.Name == "" {
			return intent{}, errNameRequired()
		}
		in.Op = opDeleteNotebook

	default:
		return intent{}, errMethodNotAllowed{Method: method}
	}
	return in, nil
}

// resolveCheckpoint maps a request against a checkpoint URL onto an
// intent.  The URL shape leaves much less to decide than for
// notebooks; the verb and the presence of a checkpoint id settle it.
func resolveCheckpoint(method string, ctx *context) (intent, error) {
	in := intent{Path: ctx.Path, Name: ctx.Name, Checkpoint: ctx.Checkpoint}
	switch {
	case method == "GET" || method == "HEAD":
		if ctx.Checkpoint != "" {
			return intent{}, errMethodNotAllowed{Method: method}
		}
		in.Op = opListCheckpoints
	case method == "POST" && ctx.Checkpoint == "":
		in.Op = opCreateCheckpoint
	case method == "POST":
		in.Op = opRestoreCheckpoint
	case method == "DELETE" && ctx.Checkpoint != "":
		in.Op = opDeleteCheckpoint
	default:
		return intent{}, errMethodNotAllowed{Method: method}
	}
	return in, nil
}
