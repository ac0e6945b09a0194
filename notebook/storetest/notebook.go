// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"testing"
	"time"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/stretchr/testify/assert"
)

// TestNotebookTrivial creates, fetches, and deletes a single named
// notebook.
func TestNotebookTrivial(t *testing.T) {
	sts := SimpleTestSetup{
		Path: "TestNotebookTrivial",
		Name: "a.ipynb",
		Content: map[string]interface{}{
			"cells": []interface{}{"one"},
		},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	model, err := Store.GetNotebook("a.ipynb", sts.Path)
	if assert.NoError(t, err) {
		ModelMatches(t, "a.ipynb", sts.Path, model)
		assert.Equal(t, sts.Model.LastModified, model.LastModified)
	}
	ContentMatches(t, "a.ipynb", sts.Path, sts.Content)

	err = Store.DeleteNotebook("a.ipynb", sts.Path)
	assert.NoError(t, err)
	NotebookMissing(t, "a.ipynb", sts.Path)
}

// TestNotebookMissing checks lookups and deletes of absent notebooks.
func TestNotebookMissing(t *testing.T) {
	path := "TestNotebookMissing"
	NotebookMissing(t, "none.ipynb", path)

	err := Store.DeleteNotebook("none.ipynb", path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "none.ipynb", Path: path}, err)

	exists, err := Store.NotebookExists("none.ipynb", path)
	if assert.NoError(t, err) {
		assert.False(t, exists)
	}
}

// TestUntitledSequence checks that unnamed creates pick successive
// untitled names, reusing holes left by deletes.
func TestUntitledSequence(t *testing.T) {
	sts := SimpleTestSetup{Path: "TestUntitledSequence"}
	defer sts.TearDown(t)

	first, err := Store.CreateNotebook(notebook.Model{}, sts.Path)
	if assert.NoError(t, err) {
		assert.Equal(t, "Untitled0.ipynb", first.Name)
	}
	second, err := Store.CreateNotebook(notebook.Model{}, sts.Path)
	if assert.NoError(t, err) {
		assert.Equal(t, "Untitled1.ipynb", second.Name)
	}

	err = Store.DeleteNotebook("Untitled0.ipynb", sts.Path)
	assert.NoError(t, err)
	third, err := Store.CreateNotebook(notebook.Model{}, sts.Path)
	if assert.NoError(t, err) {
		assert.Equal(t, "Untitled0.ipynb", third.Name)
	}
}

// TestCreateReplaces checks that creating at an explicit name that is
// already taken replaces the previous notebook.
func TestCreateReplaces(t *testing.T) {
	sts := SimpleTestSetup{
		Path:    "TestCreateReplaces",
		Name:    "a.ipynb",
		Content: map[string]interface{}{"v": "old"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	_, err := Store.CreateNotebook(notebook.Model{
		Name:    "a.ipynb",
		Content: map[string]interface{}{"v": "new"},
	}, sts.Path)
	assert.NoError(t, err)
	ContentMatches(t, "a.ipynb", sts.Path, map[string]interface{}{"v": "new"})

	models, err := Store.ListNotebooks(sts.Path)
	if assert.NoError(t, err) {
		assert.Len(t, models, 1)
	}
}

// TestListNotebooks checks directory listings: name-sorted, content
// omitted, scoped to one directory.
func TestListNotebooks(t *testing.T) {
	path := "TestListNotebooks"
	sts := SimpleTestSetup{Path: path}
	defer sts.TearDown(t)
	other := SimpleTestSetup{Path: path + "/sub"}
	defer other.TearDown(t)

	for _, name := range []string{"b.ipynb", "a.ipynb"} {
		_, err := Store.CreateNotebook(notebook.Model{
			Name:    name,
			Content: map[string]interface{}{"k": "v"},
		}, path)
		assert.NoError(t, err)
	}
	_, err := Store.CreateNotebook(notebook.Model{Name: "c.ipynb"}, path+"/sub")
	assert.NoError(t, err)

	models, err := Store.ListNotebooks(path)
	if assert.NoError(t, err) && assert.Len(t, models, 2) {
		assert.Equal(t, "a.ipynb", models[0].Name)
		assert.Equal(t, "b.ipynb", models[1].Name)
		for _, model := range models {
			assert.Equal(t, path, model.Path)
			assert.Nil(t, model.Content)
			assert.False(t, model.LastModified.IsZero())
		}
	}

	models, err = Store.ListNotebooks("TestListNotebooks/empty")
	if assert.NoError(t, err) {
		assert.Empty(t, models)
	}
}

// TestSaveNotebook checks that saving replaces content and advances
// the last-modified stamp.
func TestSaveNotebook(t *testing.T) {
	sts := SimpleTestSetup{
		Path:    "TestSaveNotebook",
		Name:    "a.ipynb",
		Content: map[string]interface{}{"v": "old"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	Clock.Add(time.Minute)
	model, err := Store.SaveNotebook(notebook.Model{
		Content: map[string]interface{}{"v": "new"},
	}, "a.ipynb", sts.Path)
	if assert.NoError(t, err) {
		ModelMatches(t, "a.ipynb", sts.Path, model)
		assert.True(t, model.LastModified.After(sts.Model.LastModified))
	}
	ContentMatches(t, "a.ipynb", sts.Path, map[string]interface{}{"v": "new"})
}

// TestSaveMissing checks that saving an absent notebook fails.
func TestSaveMissing(t *testing.T) {
	path := "TestSaveMissing"
	_, err := Store.SaveNotebook(notebook.Model{
		Content: map[string]interface{}{"v": "x"},
	}, "none.ipynb", path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "none.ipynb", Path: path}, err)
}

// TestRenameNotebook renames within a directory and checks the old
// name is gone.
func TestRenameNotebook(t *testing.T) {
	sts := SimpleTestSetup{
		Path:    "TestRenameNotebook",
		Name:    "a.ipynb",
		Content: map[string]interface{}{"k": "v"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	model, err := Store.UpdateNotebook(notebook.Model{Name: "b.ipynb"},
		"a.ipynb", sts.Path)
	if assert.NoError(t, err) {
		ModelMatches(t, "b.ipynb", sts.Path, model)
	}
	NotebookMissing(t, "a.ipynb", sts.Path)
	ContentMatches(t, "b.ipynb", sts.Path, map[string]interface{}{"k": "v"})
}

// TestMoveNotebook moves a notebook to a different directory,
// carrying its checkpoints along.
func TestMoveNotebook(t *testing.T) {
	path := "TestMoveNotebook"
	sts := SimpleTestSetup{
		Path:    path,
		Name:    "a.ipynb",
		Content: map[string]interface{}{"k": "v"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)
	dest := SimpleTestSetup{Path: path + "/sub"}
	defer dest.TearDown(t)

	cp, err := Store.CreateCheckpoint("a.ipynb", path)
	assert.NoError(t, err)

	model, err := Store.UpdateNotebook(notebook.Model{Path: path + "/sub"},
		"a.ipynb", path)
	if assert.NoError(t, err) {
		ModelMatches(t, "a.ipynb", path+"/sub", model)
	}
	NotebookMissing(t, "a.ipynb", path)

	checkpoints, err := Store.Checkpoints("a.ipynb", path+"/sub")
	if assert.NoError(t, err) && assert.Len(t, checkpoints, 1) {
		assert.Equal(t, cp.ID, checkpoints[0].ID)
	}
}

// TestRenameCollision checks that renaming onto a taken name fails
// and changes nothing.
func TestRenameCollision(t *testing.T) {
	path := "TestRenameCollision"
	sts := SimpleTestSetup{Path: path}
	defer sts.TearDown(t)
	for _, name := range []string{"a.ipynb", "b.ipynb"} {
		_, err := Store.CreateNotebook(notebook.Model{Name: name}, path)
		assert.NoError(t, err)
	}

	_, err := Store.UpdateNotebook(notebook.Model{Name: "b.ipynb"},
		"a.ipynb", path)
	assert.Equal(t, notebook.ErrNotebookExists{Name: "b.ipynb", Path: path}, err)

	exists, err := Store.NotebookExists("a.ipynb", path)
	if assert.NoError(t, err) {
		assert.True(t, exists)
	}
}

// TestCopyNotebook copies with both explicit and store-chosen names.
func TestCopyNotebook(t *testing.T) {
	sts := SimpleTestSetup{
		Path:    "TestCopyNotebook",
		Name:    "a.ipynb",
		Content: map[string]interface{}{"k": "v"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	model, err := Store.CopyNotebook("a.ipynb", "b.ipynb", sts.Path)
	if assert.NoError(t, err) {
		ModelMatches(t, "b.ipynb", sts.Path, model)
	}
	ContentMatches(t, "b.ipynb", sts.Path, map[string]interface{}{"k": "v"})

	model, err = Store.CopyNotebook("a.ipynb", "", sts.Path)
	if assert.NoError(t, err) {
		assert.Equal(t, "a-Copy0.ipynb", model.Name)
	}
	ContentMatches(t, "a-Copy0.ipynb", sts.Path, map[string]interface{}{"k": "v"})

	// The copy is a snapshot, not an alias.
	_, err = Store.SaveNotebook(notebook.Model{
		Content: map[string]interface{}{"k": "changed"},
	}, "a.ipynb", sts.Path)
	assert.NoError(t, err)
	ContentMatches(t, "b.ipynb", sts.Path, map[string]interface{}{"k": "v"})
}

// TestCopyMissing checks that copying an absent source fails.
func TestCopyMissing(t *testing.T) {
	path := "TestCopyMissing"
	_, err := Store.CopyNotebook("none.ipynb", "b.ipynb", path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "none.ipynb", Path: path}, err)
}
