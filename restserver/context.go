// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"net/url"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/gorilla/mux"
)

// context holds all of the information that can be extracted from URL
// parameters.  Unlike the store objects themselves these are plain
// strings; whether the named notebook actually exists is a question
// for the individual operation.
type context struct {
	// Path is the normalized logical directory from the URL; ""
	// is the root.
	Path string

	// Name is the notebook filename, if the URL named one.
	Name string

	// Checkpoint is the checkpoint id, if the URL named one.
	Checkpoint string

	// QueryParams holds the parsed query string.
	QueryParams url.Values
}

func (api *restAPI) Context(req *http.Request) (*context, error) {
	ctx := &context{QueryParams: req.URL.Query()}
	vars := mux.Vars(req)
	ctx.Path = notebook.NormalizePath(vars["path"])
	ctx.Name = vars["name"]
	ctx.Checkpoint = vars["checkpoint"]
	return ctx, nil
}

// CopyParam returns the "copy" query parameter, the name of a source
// notebook for copy operations, or "" if absent.
func (ctx *context) CopyParam() string {
	return ctx.QueryParams.Get("copy")
}
