// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
)

// nameRegexp matches a notebook filename: no slashes, ending in the
// notebook extension.
const nameRegexp = `[^/]+\.ipynb`

// checkpointRegexp matches a checkpoint id.
const checkpointRegexp = `[\w-]+`

// NewRouter creates a new HTTP handler that processes all notebook
// requests.  All notebook resources are under the URL path root,
// e.g. /api/notebooks/work/a.ipynb.  For more control over this
// setup, create a mux.Router and call PopulateRouter instead.
func NewRouter(store notebook.Store) http.Handler {
	r := mux.NewRouter()
	PopulateRouter(r, store)
	return r
}

// PopulateRouter adds notebook routes to an existing
// github.com/gorilla/mux router object.  This can be used, for
// instance, to add other services next to the notebook API:
//
//     import "github.com/diffeo/go-notebook/memory"
//     import "github.com/gorilla/mux"
//     r := mux.NewRouter()
//     restserver.PopulateRouter(r, memory.New())
//     r.Handle("/metrics", promhttp.Handler())
func PopulateRouter(r *mux.Router, store notebook.Store) {
	api := &restAPI{Store: store, Router: r, Log: logrus.StandardLogger()}
	api.PopulateRouter(r)
}

// restAPI holds the persistent state for the notebook REST API.
type restAPI struct {
	Store  notebook.Store
	Router *mux.Router
	Log    logrus.FieldLogger
}

// PopulateRouter adds all notebook URL paths to a router.  Routes
// that name a notebook must be registered ahead of the catch-all
// directory route, and each named route has a root-directory variant
// so that top-level notebooks resolve without an empty path segment.
func (api *restAPI) PopulateRouter(r *mux.Router) {
	checkpoint := &resourceHandler{
		Context: api.Context,
		Post:    api.CheckpointPost,
		Delete:  api.CheckpointDelete,
	}
	checkpoints := &resourceHandler{
		Context: api.Context,
		Get:     api.CheckpointsGet,
		Post:    api.CheckpointsPost,
	}
	// One handler serves both notebook and directory URLs.  The
	// resolver keys off whether the URL named a notebook, which is
	// what lets "POST to a name" and "PUT to a directory" come back
	// as 400s with a useful message rather than bare 405s.
	nb := &resourceHandler{
		Context: api.Context,
		Get:     api.NotebookGet,
		Put:     api.NotebookPut,
		Post:    api.NotebookPost,
		Patch:   api.NotebookPatch,
		Delete:  api.NotebookDelete,
	}

	root := "/api/notebooks"
	nbPath := "{path:.*}/{name:" + nameRegexp + "}"
	nbRoot := "{name:" + nameRegexp + "}"
	cpID := "{checkpoint:" + checkpointRegexp + "}"

	r.Path(restdata.URLPathJoin(root, nbPath, "checkpoints", cpID)).
		Name("checkpoint").Handler(checkpoint)
	r.Path(restdata.URLPathJoin(root, nbRoot, "checkpoints", cpID)).
		Name("rootCheckpoint").Handler(checkpoint)
	r.Path(restdata.URLPathJoin(root, nbPath, "checkpoints")).
		Name("checkpoints").Handler(checkpoints)
	r.Path(restdata.URLPathJoin(root, nbRoot, "checkpoints")).
		Name("rootCheckpoints").Handler(checkpoints)
	r.Path(restdata.URLPathJoin(root, nbPath)).Name("notebook").Handler(nb)
	r.Path(restdata.URLPathJoin(root, nbRoot)).Name("rootNotebook").Handler(nb)
	r.Path(restdata.URLPathJoin(root, "{path:.*}")).Name("directory").Handler(nb)
	r.Path(root).Name("notebooks").Handler(nb)
}
