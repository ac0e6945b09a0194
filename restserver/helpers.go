// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"fmt"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
)

// routeURL builds a URL path from one of the named routes registered
// in PopulateRouter.  Using the router, rather than pasting strings,
// keeps Location headers correct even when the router is mounted
// somewhere unusual.
func (api *restAPI) routeURL(name string, pairs ...string) (string, error) {
	route := api.Router.Get(name)
	if route == nil {
		return "", fmt.Errorf("no route named %q", name)
	}
	u, err := route.URL(pairs...)
	if err != nil {
		return "", err
	}
	return u.String(), nil
}

// notebookURL returns the canonical URL path for a notebook.
// Notebooks in the root directory have no path segment at all, so they
// come from a different route.
func (api *restAPI) notebookURL(name, path string) (string, error) {
	if path == "" {
		return api.routeURL("rootNotebook", "name", name)
	}
	return api.routeURL("notebook", "path", path, "name", name)
}

// checkpointURL returns the canonical URL path for a checkpoint of a
// notebook.
func (api *restAPI) checkpointURL(checkpoint, name, path string) (string, error) {
	if path == "" {
		return api.routeURL("rootCheckpoint",
			"name", name, "checkpoint", checkpoint)
	}
	return api.routeURL("checkpoint",
		"path", path, "name", name, "checkpoint", checkpoint)
}

// notebookRepr converts a store model to its wire format.
func notebookRepr(model notebook.Model) restdata.Notebook {
	return restdata.Notebook{
		Name:         model.Name,
		Path:         model.Path,
		Content:      model.Content,
		LastModified: model.LastModified,
	}
}

// checkpointRepr converts a store checkpoint to its wire format.
func checkpointRepr(cp notebook.Checkpoint) restdata.Checkpoint {
	return restdata.Checkpoint{
		ID:           cp.ID,
		LastModified: cp.LastModified,
	}
}
