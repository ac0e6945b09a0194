// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"testing"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/stretchr/testify/assert"
)

// ---------------------------------------------------------------------------
// Support functions for common tests

// ModelMatches checks that a model has an expected identity.
func ModelMatches(t *testing.T, name, path string, model notebook.Model) bool {
	return assert.Equal(t, name, model.Name) &&
		assert.Equal(t, path, model.Path)
}

// ContentMatches checks that a notebook's stored content matches an
// expected dictionary, by fetching it fresh from the store.
func ContentMatches(t *testing.T, name, path string, expected map[string]interface{}) {
	model, err := Store.GetNotebook(name, path)
	if assert.NoError(t, err) {
		for key, value := range expected {
			if assert.Contains(t, model.Content, key,
				"missing content[%q]", key) {
				assert.EqualValues(t, value, model.Content[key],
					"content[%q]", key)
			}
		}
		for key := range model.Content {
			assert.Contains(t, expected, key,
				"extra content[%q]", key)
		}
	}
}

// NotebookMissing checks that fetching (name, path) fails with
// ErrNoSuchNotebook.
func NotebookMissing(t *testing.T, name, path string) {
	_, err := Store.GetNotebook(name, path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: name, Path: path}, err)
}

// ---------------------------------------------------------------------------
// SimpleTestSetup

// SimpleTestSetup defines parameters for common tests that use a
// single notebook in a single directory.
type SimpleTestSetup struct {
	// Path gives the directory to work in.  It is frequently the
	// name of the test, which keeps tests sharing one backend out
	// of each other's way.
	Path string

	// Name, if non-empty, requests a notebook be created with
	// this name.
	Name string

	// Content, if non-nil, provides the initial content for the
	// created notebook.
	Content map[string]interface{}

	// Model is set on output.
	Model notebook.Model
}

// SetUp populates the output fields of the test setup, or fails using
// t.FailNow().
func (sts *SimpleTestSetup) SetUp(t *testing.T) {
	if sts.Name == "" {
		return
	}
	var err error
	sts.Model, err = Store.CreateNotebook(notebook.Model{
		Name:    sts.Name,
		Content: sts.Content,
	}, sts.Path)
	if !(assert.NoError(t, err) &&
		assert.Equal(t, sts.Name, sts.Model.Name) &&
		assert.Equal(t, notebook.NormalizePath(sts.Path), sts.Model.Path)) {
		t.FailNow()
	}
}

// TearDown removes everything left in the setup's directory.
func (sts *SimpleTestSetup) TearDown(t *testing.T) {
	models, err := Store.ListNotebooks(sts.Path)
	if !assert.NoError(t, err) {
		return
	}
	for _, model := range models {
		err = Store.DeleteNotebook(model.Name, model.Path)
		assert.NoError(t, err)
	}
}
