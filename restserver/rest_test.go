// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restserver

import (
	"encoding/json"
	"errors"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diffeo/go-notebook/memory"
	"github.com/diffeo/go-notebook/restdata"
)

// do runs one HTTP request against a test server.  A non-empty body is
// sent as generic JSON.
func do(t *testing.T, srv *httptest.Server, method, path, body string) *http.Response {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, srv.URL+path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out interface{}) {
	defer resp.Body.Close()
	data, err := ioutil.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, out), "body %q", string(data))
}

func discardBody(resp *http.Response) {
	_, _ = io.Copy(ioutil.Discard, resp.Body)
	resp.Body.Close()
}

func testServer() *httptest.Server {
	return httptest.NewServer(NewRouter(memory.New()))
}

func TestRestEmptyList(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	for _, path := range []string{"/api/notebooks", "/api/notebooks/nosuch"} {
		resp := do(t, srv, "GET", path, "")
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var nbs restdata.NotebookList
		decodeBody(t, resp, &nbs)
		assert.Len(t, nbs, 0)
	}
}

func TestRestCreateEmpty(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "POST", "/api/notebooks", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/Untitled0.ipynb",
		resp.Header.Get("Location"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, "Untitled0.ipynb", nb.Name)
	assert.Equal(t, "", nb.Path)

	// The server keeps picking fresh names
	resp = do(t, srv, "POST", "/api/notebooks/work", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/Untitled0.ipynb",
		resp.Header.Get("Location"))
	discardBody(resp)

	resp = do(t, srv, "POST", "/api/notebooks/work", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/Untitled1.ipynb",
		resp.Header.Get("Location"))
	discardBody(resp)
}

func TestRestUploadFetch(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	body := `{"content": {"cells": ["first"]}}`
	resp := do(t, srv, "PUT", "/api/notebooks/work/a.ipynb", body)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/a.ipynb", resp.Header.Get("Location"))
	discardBody(resp)

	resp = do(t, srv, "GET", "/api/notebooks/work/a.ipynb", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, "a.ipynb", nb.Name)
	assert.Equal(t, "work", nb.Path)
	if assert.Contains(t, nb.Content, "cells") {
		assert.Equal(t, []interface{}{"first"}, nb.Content["cells"])
	}

	// Directory listings carry no content
	resp = do(t, srv, "GET", "/api/notebooks/work", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var listing []map[string]interface{}
	decodeBody(t, resp, &listing)
	if assert.Len(t, listing, 1) {
		assert.Equal(t, "a.ipynb", listing[0]["name"])
		assert.NotContains(t, listing[0], "content")
	}
}

func TestRestSave(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/a.ipynb",
		`{"content": {"cells": []}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	// A second PUT to an existing notebook saves in place
	resp = do(t, srv, "PUT", "/api/notebooks/a.ipynb",
		`{"content": {"cells": ["more"]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Location"))
	assert.NotEmpty(t, resp.Header.Get("Last-Modified"))
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, []interface{}{"more"}, nb.Content["cells"])
}

func TestRestRename(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/work/a.ipynb", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "PATCH", "/api/notebooks/work/a.ipynb",
		`{"name": "b.ipynb"}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/b.ipynb", resp.Header.Get("Location"))
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, "b.ipynb", nb.Name)

	resp = do(t, srv, "GET", "/api/notebooks/work/a.ipynb", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "GET", "/api/notebooks/work/b.ipynb", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	discardBody(resp)
}

func TestRestRenameConflict(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	for _, name := range []string{"a.ipynb", "b.ipynb"} {
		resp := do(t, srv, "PUT", "/api/notebooks/"+name, "")
		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		discardBody(resp)
	}

	resp := do(t, srv, "PATCH", "/api/notebooks/a.ipynb",
		`{"name": "b.ipynb"}`)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	var errResp restdata.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "ErrNotebookExists", errResp.Error)
	assert.Equal(t, "b.ipynb", errResp.Name)
}

func TestRestVerbShapes(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	// Verbs aimed at the wrong shape of URL come back as 400s
	cases := []struct {
		method, path, body string
	}{
		{"POST", "/api/notebooks/work/a.ipynb", ""},
		{"PUT", "/api/notebooks/work", ""},
		{"PUT", "/api/notebooks", ""},
		{"PATCH", "/api/notebooks/work", `{"name": "b.ipynb"}`},
		{"PATCH", "/api/notebooks/work/a.ipynb", ""},
		{"DELETE", "/api/notebooks/work", ""},
	}
	for _, c := range cases {
		resp := do(t, srv, c.method, c.path, c.body)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode,
			"%v %v", c.method, c.path)
		discardBody(resp)
	}
}

func TestRestCopy(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/work/a.ipynb",
		`{"content": {"cells": ["original"]}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	// POST copy lets the server pick the name
	resp = do(t, srv, "POST", "/api/notebooks/work?copy=a.ipynb", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/a-Copy0.ipynb",
		resp.Header.Get("Location"))
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, "a-Copy0.ipynb", nb.Name)
	assert.Equal(t, []interface{}{"original"}, nb.Content["cells"])

	// PUT copy names the target
	resp = do(t, srv, "PUT", "/api/notebooks/work/b.ipynb?copy=a.ipynb", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "/api/notebooks/work/b.ipynb", resp.Header.Get("Location"))
	discardBody(resp)

	// Copying and uploading at once is meaningless
	resp = do(t, srv, "PUT", "/api/notebooks/work/c.ipynb?copy=a.ipynb", `{}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "POST", "/api/notebooks/work?copy=nosuch.ipynb", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	discardBody(resp)
}

func TestRestDelete(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/a.ipynb", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "DELETE", "/api/notebooks/a.ipynb", "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "GET", "/api/notebooks/a.ipynb", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp restdata.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "ErrNoSuchNotebook", errResp.Error)
	assert.Equal(t, "a.ipynb", errResp.Name)

	resp = do(t, srv, "DELETE", "/api/notebooks/a.ipynb", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	discardBody(resp)
}

func TestRestCheckpoints(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/work/a.ipynb",
		`{"content": {"cells": ["first"]}}`)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "POST", "/api/notebooks/work/a.ipynb/checkpoints", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cp restdata.Checkpoint
	decodeBody(t, resp, &cp)
	assert.NotEmpty(t, cp.ID)
	assert.Equal(t,
		"/api/notebooks/work/a.ipynb/checkpoints/"+cp.ID,
		resp.Header.Get("Location"))

	resp = do(t, srv, "GET", "/api/notebooks/work/a.ipynb/checkpoints", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var cps restdata.CheckpointList
	decodeBody(t, resp, &cps)
	if assert.Len(t, cps, 1) {
		assert.Equal(t, cp.ID, cps[0].ID)
	}

	// Change the notebook, then restore the checkpoint
	resp = do(t, srv, "PUT", "/api/notebooks/work/a.ipynb",
		`{"content": {"cells": ["second"]}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "POST",
		"/api/notebooks/work/a.ipynb/checkpoints/"+cp.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "GET", "/api/notebooks/work/a.ipynb", "")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var nb restdata.Notebook
	decodeBody(t, resp, &nb)
	assert.Equal(t, []interface{}{"first"}, nb.Content["cells"])

	resp = do(t, srv, "DELETE",
		"/api/notebooks/work/a.ipynb/checkpoints/"+cp.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "DELETE",
		"/api/notebooks/work/a.ipynb/checkpoints/"+cp.ID, "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	var errResp restdata.ErrorResponse
	decodeBody(t, resp, &errResp)
	assert.Equal(t, "ErrNoSuchCheckpoint", errResp.Error)
}

func TestRestRootCheckpoints(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	resp := do(t, srv, "PUT", "/api/notebooks/a.ipynb", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	discardBody(resp)

	resp = do(t, srv, "POST", "/api/notebooks/a.ipynb/checkpoints", "")
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var cp restdata.Checkpoint
	decodeBody(t, resp, &cp)
	assert.Equal(t,
		"/api/notebooks/a.ipynb/checkpoints/"+cp.ID,
		resp.Header.Get("Location"))
}

func TestRestMediaTypes(t *testing.T) {
	srv := testServer()
	defer srv.Close()

	req, err := http.NewRequest("PUT", srv.URL+"/api/notebooks/a.ipynb",
		strings.NewReader(`{"content": {}}`))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "text/plain")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
	discardBody(resp)

	req, err = http.NewRequest("GET", srv.URL+"/api/notebooks", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", restdata.V1JSONMediaType)
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, restdata.V1JSONMediaType, resp.Header.Get("Content-Type"))
	discardBody(resp)

	req, err = http.NewRequest("GET", srv.URL+"/api/notebooks", nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "image/png")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotAcceptable, resp.StatusCode)
	discardBody(resp)
}

// failResponseWriter always fails writes.  If an encode error happens
// while sending a response, the handler has nothing better to do than
// drop it; what matters is that it does not fall over.
type failResponseWriter struct {
	header     http.Header
	StatusCode int
}

func (w *failResponseWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *failResponseWriter) Write(buf []byte) (int, error) {
	return 0, errors.New("broken pipe")
}

func (w *failResponseWriter) WriteHeader(code int) {
	if w.StatusCode == 0 {
		w.StatusCode = code
	}
}

func TestRestDoubleFault(t *testing.T) {
	router := NewRouter(memory.New())
	w := &failResponseWriter{}
	req, err := http.NewRequest("GET", "/api/notebooks", nil)
	require.NoError(t, err)
	assert.NotPanics(t, func() {
		router.ServeHTTP(w, req)
	})
	assert.Equal(t, http.StatusOK, w.StatusCode)
}
