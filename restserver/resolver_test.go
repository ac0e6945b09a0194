// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/diffeo/go-notebook/restdata"
)

// resolverContext builds a request context the way the router would.
func resolverContext(path, name, copyFrom string) *context {
	params := url.Values{}
	if copyFrom != "" {
		params.Set("copy", copyFrom)
	}
	return &context{Path: path, Name: name, QueryParams: params}
}

// never is an existence probe for cases that must not consult it.
func never(name, path string) (bool, error) {
	panic("unexpected existence check")
}

func fixedExists(result bool) existsFunc {
	return func(name, path string) (bool, error) {
		return result, nil
	}
}

func assertBadRequest(t *testing.T, err error) {
	if assert.Error(t, err) {
		errS, ok := err.(restdata.ErrorStatus)
		if assert.True(t, ok, "error %v has no HTTP status", err) {
			assert.Equal(t, http.StatusBadRequest, errS.HTTPStatus())
		}
	}
}

func TestResolveGet(t *testing.T) {
	in, err := resolveNotebook("GET", resolverContext("work", "", ""), nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opListNotebooks, in.Op)
		assert.Equal(t, "work", in.Path)
	}

	in, err = resolveNotebook("GET", resolverContext("work", "a.ipynb", ""), nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opGetNotebook, in.Op)
		assert.Equal(t, "a.ipynb", in.Name)
	}
}

func TestResolvePatch(t *testing.T) {
	ctx := resolverContext("work", "a.ipynb", "")

	_, err := resolveNotebook("PATCH", ctx, nil, never)
	assertBadRequest(t, err)

	in, err := resolveNotebook("PATCH", ctx,
		map[string]interface{}{"name": "b.ipynb"}, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opRename, in.Op)
		assert.Equal(t, "a.ipynb", in.Name)
		assert.Equal(t, "b.ipynb", in.Model.Name)
	}

	_, err = resolveNotebook("PATCH", resolverContext("work", "", ""),
		map[string]interface{}{"name": "b.ipynb"}, never)
	assertBadRequest(t, err)
}

func TestResolvePost(t *testing.T) {
	ctx := resolverContext("work", "", "")

	in, err := resolveNotebook("POST", ctx, nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCreateEmpty, in.Op)
		assert.Equal(t, "", in.Name)
	}

	// An empty dictionary has no content worth uploading
	in, err = resolveNotebook("POST", ctx, map[string]interface{}{}, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCreateEmpty, in.Op)
	}

	in, err = resolveNotebook("POST", ctx,
		map[string]interface{}{"content": map[string]interface{}{"cells": []interface{}{}}},
		never)
	if assert.NoError(t, err) {
		assert.Equal(t, opUpload, in.Op)
		assert.NotNil(t, in.Model.Content)
	}

	in, err = resolveNotebook("POST", resolverContext("work", "", "a.ipynb"), nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCopy, in.Op)
		assert.Equal(t, "a.ipynb", in.CopyFrom)
		assert.Equal(t, "", in.Name)
	}

	// The copy parameter wins over a body
	in, err = resolveNotebook("POST", resolverContext("work", "", "a.ipynb"),
		map[string]interface{}{"content": map[string]interface{}{}}, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCopy, in.Op)
	}

	_, err = resolveNotebook("POST", resolverContext("work", "a.ipynb", ""), nil, never)
	assertBadRequest(t, err)
}

func TestResolvePut(t *testing.T) {
	ctx := resolverContext("work", "a.ipynb", "")
	body := map[string]interface{}{"content": map[string]interface{}{"cells": []interface{}{}}}

	_, err := resolveNotebook("PUT", resolverContext("work", "", ""), nil, never)
	assertBadRequest(t, err)

	in, err := resolveNotebook("PUT", ctx, nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCreateEmpty, in.Op)
		assert.Equal(t, "a.ipynb", in.Name)
	}

	in, err = resolveNotebook("PUT", ctx, body, fixedExists(true))
	if assert.NoError(t, err) {
		assert.Equal(t, opSave, in.Op)
	}

	in, err = resolveNotebook("PUT", ctx, body, fixedExists(false))
	if assert.NoError(t, err) {
		assert.Equal(t, opUpload, in.Op)
	}

	in, err = resolveNotebook("PUT", resolverContext("work", "b.ipynb", "a.ipynb"),
		nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opCopy, in.Op)
		assert.Equal(t, "a.ipynb", in.CopyFrom)
		assert.Equal(t, "b.ipynb", in.Name)
	}

	// Even an empty dictionary body conflicts with a copy request
	_, err = resolveNotebook("PUT", resolverContext("work", "b.ipynb", "a.ipynb"),
		map[string]interface{}{}, never)
	assertBadRequest(t, err)
}

func TestResolveDelete(t *testing.T) {
	in, err := resolveNotebook("DELETE", resolverContext("work", "a.ipynb", ""), nil, never)
	if assert.NoError(t, err) {
		assert.Equal(t, opDeleteNotebook, in.Op)
	}

	_, err = resolveNotebook("DELETE", resolverContext("work", "", ""), nil, never)
	assertBadRequest(t, err)
}

func TestResolveCheckpoints(t *testing.T) {
	nb := &context{Path: "work", Name: "a.ipynb"}
	cp := &context{Path: "work", Name: "a.ipynb", Checkpoint: "cp0"}

	in, err := resolveCheckpoint("GET", nb)
	if assert.NoError(t, err) {
		assert.Equal(t, opListCheckpoints, in.Op)
	}

	in, err = resolveCheckpoint("POST", nb)
	if assert.NoError(t, err) {
		assert.Equal(t, opCreateCheckpoint, in.Op)
	}

	in, err = resolveCheckpoint("POST", cp)
	if assert.NoError(t, err) {
		assert.Equal(t, opRestoreCheckpoint, in.Op)
		assert.Equal(t, "cp0", in.Checkpoint)
	}

	in, err = resolveCheckpoint("DELETE", cp)
	if assert.NoError(t, err) {
		assert.Equal(t, opDeleteCheckpoint, in.Op)
	}

	_, err = resolveCheckpoint("DELETE", nb)
	if assert.Error(t, err) {
		errS, ok := err.(restdata.ErrorStatus)
		if assert.True(t, ok) {
			assert.Equal(t, http.StatusMethodNotAllowed, errS.HTTPStatus())
		}
	}
}
