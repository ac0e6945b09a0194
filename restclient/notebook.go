// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restclient provides a notebook store that talks to the
// matching HTTP REST server in the "restserver" package.
//
// The server in github.com/diffeo/go-notebook/cmd/notebookd can run a
// compatible REST server.  Call New() with the base URL of that
// service; for instance,
//
//	store, err := restclient.New("http://localhost:5980/")
package restclient

import (
	"errors"
	"net/url"
	"strings"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/restdata"
)

// URI templates for the server's URL layout, relative to the base URL.
const (
	directoryTemplate     = "api/notebooks{/path*}"
	directoryCopyTemplate = "api/notebooks{/path*}{?copy}"
	notebookTemplate      = "api/notebooks{/path*}{/name}"
	notebookCopyTemplate  = "api/notebooks{/path*}{/name}{?copy}"
	checkpointsTemplate   = "api/notebooks{/path*}{/name}/checkpoints"
	checkpointTemplate    = "api/notebooks{/path*}{/name}/checkpoints{/checkpoint}"
)

// New creates a notebook store that speaks to an external REST server.
func New(baseURL string) (notebook.Store, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, errors.New("notebook server URL must be absolute")
	}
	return &restStore{resource{URL: u}}, nil
}

type restStore struct {
	resource
}

// dirVars builds template variables addressing a directory.  The path
// goes in as its individual segments so that the URI template library
// can escape each one but keep the slashes between them.
func dirVars(path string) map[string]interface{} {
	segments := []string{}
	for _, segment := range strings.Split(notebook.NormalizePath(path), "/") {
		if segment != "" {
			segments = append(segments, segment)
		}
	}
	return map[string]interface{}{"path": segments}
}

// nbVars builds template variables addressing a notebook.
func nbVars(name, path string) map[string]interface{} {
	vars := dirVars(path)
	vars["name"] = name
	return vars
}

// toModel converts a wire notebook back to a store model.
func toModel(nb restdata.Notebook) notebook.Model {
	return notebook.Model{
		Name:         nb.Name,
		Path:         nb.Path,
		Content:      nb.Content,
		LastModified: nb.LastModified,
	}
}

func (s *restStore) ListNotebooks(path string) ([]notebook.Model, error) {
	var resp restdata.NotebookList
	err := s.GetFrom(directoryTemplate, dirVars(path), &resp)
	if err != nil {
		return nil, err
	}
	models := make([]notebook.Model, 0, len(resp))
	for _, nb := range resp {
		models = append(models, toModel(nb))
	}
	return models, nil
}

func (s *restStore) GetNotebook(name, path string) (notebook.Model, error) {
	var resp restdata.Notebook
	err := s.GetFrom(notebookTemplate, nbVars(name, path), &resp)
	if err != nil {
		return notebook.Model{}, err
	}
	return toModel(resp), nil
}

func (s *restStore) NotebookExists(name, path string) (bool, error) {
	_, err := s.GetNotebook(name, path)
	if err == nil {
		return true, nil
	}
	if _, missing := err.(notebook.ErrNoSuchNotebook); missing {
		return false, nil
	}
	return false, err
}

func (s *restStore) CreateNotebook(model notebook.Model, path string) (notebook.Model, error) {
	var resp restdata.Notebook
	if model.Name == "" {
		// POST to the directory and let the server pick a name
		var body interface{}
		if len(model.Content) > 0 {
			body = restdata.Notebook{Content: model.Content}
		}
		err := s.PostTo(directoryTemplate, dirVars(path), body, &resp)
		if err != nil {
			return notebook.Model{}, err
		}
		return toModel(resp), nil
	}

	// Creating at an explicit name replaces whatever was there,
	// checkpoints included; a plain PUT would save in place and
	// keep them, so clear the slot first.
	err := s.DeleteAt(notebookTemplate, nbVars(model.Name, path))
	if err != nil {
		if _, missing := err.(notebook.ErrNoSuchNotebook); !missing {
			return notebook.Model{}, err
		}
	}
	err = s.PutTo(notebookTemplate, nbVars(model.Name, path),
		restdata.Notebook{Content: model.Content}, &resp)
	if err != nil {
		return notebook.Model{}, err
	}
	return toModel(resp), nil
}

func (s *restStore) SaveNotebook(model notebook.Model, name, path string) (notebook.Model, error) {
	// PUT quietly creates absent notebooks, but Save must not
	exists, err := s.NotebookExists(name, path)
	if err != nil {
		return notebook.Model{}, err
	}
	if !exists {
		return notebook.Model{}, notebook.ErrNoSuchNotebook{
			Name: name, Path: notebook.NormalizePath(path)}
	}
	var resp restdata.Notebook
	err = s.PutTo(notebookTemplate, nbVars(name, path),
		restdata.Notebook{Content: model.Content}, &resp)
	if err != nil {
		return notebook.Model{}, err
	}
	return toModel(resp), nil
}

func (s *restStore) UpdateNotebook(model notebook.Model, name, path string) (notebook.Model, error) {
	var resp restdata.Notebook
	err := s.PatchTo(notebookTemplate, nbVars(name, path),
		restdata.Notebook{Name: model.Name, Path: model.Path}, &resp)
	if err != nil {
		return notebook.Model{}, err
	}
	return toModel(resp), nil
}

func (s *restStore) CopyNotebook(fromName, toName, path string) (notebook.Model, error) {
	var resp restdata.Notebook
	var err error
	if toName == "" {
		vars := dirVars(path)
		vars["copy"] = fromName
		err = s.PostTo(directoryCopyTemplate, vars, nil, &resp)
	} else {
		vars := nbVars(toName, path)
		vars["copy"] = fromName
		err = s.PutTo(notebookCopyTemplate, vars, nil, &resp)
	}
	if err != nil {
		return notebook.Model{}, err
	}
	return toModel(resp), nil
}

func (s *restStore) DeleteNotebook(name, path string) error {
	return s.DeleteAt(notebookTemplate, nbVars(name, path))
}

func (s *restStore) Checkpoints(name, path string) ([]notebook.Checkpoint, error) {
	var resp restdata.CheckpointList
	err := s.GetFrom(checkpointsTemplate, nbVars(name, path), &resp)
	if err != nil {
		return nil, err
	}
	checkpoints := make([]notebook.Checkpoint, 0, len(resp))
	for _, cp := range resp {
		checkpoints = append(checkpoints, notebook.Checkpoint{
			ID:           cp.ID,
			LastModified: cp.LastModified,
		})
	}
	return checkpoints, nil
}

func (s *restStore) CreateCheckpoint(name, path string) (notebook.Checkpoint, error) {
	var resp restdata.Checkpoint
	err := s.PostTo(checkpointsTemplate, nbVars(name, path), nil, &resp)
	if err != nil {
		return notebook.Checkpoint{}, err
	}
	return notebook.Checkpoint{ID: resp.ID, LastModified: resp.LastModified}, nil
}

func (s *restStore) RestoreCheckpoint(checkpointID, name, path string) error {
	vars := nbVars(name, path)
	vars["checkpoint"] = checkpointID
	return s.PostTo(checkpointTemplate, vars, nil, nil)
}

func (s *restStore) DeleteCheckpoint(checkpointID, name, path string) error {
	vars := nbVars(name, path)
	vars["checkpoint"] = checkpointID
	return s.DeleteAt(checkpointTemplate, vars)
}
