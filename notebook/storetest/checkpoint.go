// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package storetest

import (
	"testing"
	"time"

	"github.com/diffeo/go-notebook/notebook"
	"github.com/stretchr/testify/assert"
)

// TestCheckpointLifetime validates a basic checkpoint lifetime:
// create, list, restore over a later save, delete.
func TestCheckpointLifetime(t *testing.T) {
	sts := SimpleTestSetup{
		Path:    "TestCheckpointLifetime",
		Name:    "a.ipynb",
		Content: map[string]interface{}{"v": "checkpointed"},
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	cp, err := Store.CreateCheckpoint("a.ipynb", sts.Path)
	if !assert.NoError(t, err) {
		t.FailNow()
	}
	assert.NotEmpty(t, cp.ID)

	checkpoints, err := Store.Checkpoints("a.ipynb", sts.Path)
	if assert.NoError(t, err) && assert.Len(t, checkpoints, 1) {
		assert.Equal(t, cp.ID, checkpoints[0].ID)
		assert.Equal(t, cp.LastModified, checkpoints[0].LastModified)
	}

	// A save after the checkpoint must not leak into the restore.
	Clock.Add(time.Minute)
	_, err = Store.SaveNotebook(notebook.Model{
		Content: map[string]interface{}{"v": "later"},
	}, "a.ipynb", sts.Path)
	assert.NoError(t, err)

	err = Store.RestoreCheckpoint(cp.ID, "a.ipynb", sts.Path)
	assert.NoError(t, err)
	ContentMatches(t, "a.ipynb", sts.Path, map[string]interface{}{"v": "checkpointed"})

	err = Store.DeleteCheckpoint(cp.ID, "a.ipynb", sts.Path)
	assert.NoError(t, err)
	checkpoints, err = Store.Checkpoints("a.ipynb", sts.Path)
	if assert.NoError(t, err) {
		assert.Empty(t, checkpoints)
	}
}

// TestCheckpointOrder checks that checkpoints list oldest first.
func TestCheckpointOrder(t *testing.T) {
	sts := SimpleTestSetup{
		Path: "TestCheckpointOrder",
		Name: "a.ipynb",
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	first, err := Store.CreateCheckpoint("a.ipynb", sts.Path)
	assert.NoError(t, err)
	Clock.Add(time.Minute)
	second, err := Store.CreateCheckpoint("a.ipynb", sts.Path)
	assert.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	checkpoints, err := Store.Checkpoints("a.ipynb", sts.Path)
	if assert.NoError(t, err) && assert.Len(t, checkpoints, 2) {
		assert.Equal(t, first.ID, checkpoints[0].ID)
		assert.Equal(t, second.ID, checkpoints[1].ID)
		assert.False(t, checkpoints[1].LastModified.Before(checkpoints[0].LastModified))
	}
}

// TestCheckpointMissing checks the error paths for unknown ids and
// unknown notebooks.
func TestCheckpointMissing(t *testing.T) {
	sts := SimpleTestSetup{
		Path: "TestCheckpointMissing",
		Name: "a.ipynb",
	}
	sts.SetUp(t)
	defer sts.TearDown(t)

	err := Store.RestoreCheckpoint("bogus", "a.ipynb", sts.Path)
	assert.Equal(t, notebook.ErrNoSuchCheckpoint{ID: "bogus"}, err)

	err = Store.DeleteCheckpoint("bogus", "a.ipynb", sts.Path)
	assert.Equal(t, notebook.ErrNoSuchCheckpoint{ID: "bogus"}, err)

	_, err = Store.Checkpoints("none.ipynb", sts.Path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "none.ipynb", Path: sts.Path}, err)

	_, err = Store.CreateCheckpoint("none.ipynb", sts.Path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "none.ipynb", Path: sts.Path}, err)
}

// TestCheckpointsDieWithNotebook checks that deleting a notebook
// destroys its checkpoint set.
func TestCheckpointsDieWithNotebook(t *testing.T) {
	sts := SimpleTestSetup{
		Path: "TestCheckpointsDieWithNotebook",
		Name: "a.ipynb",
	}
	sts.SetUp(t)

	_, err := Store.CreateCheckpoint("a.ipynb", sts.Path)
	assert.NoError(t, err)
	err = Store.DeleteNotebook("a.ipynb", sts.Path)
	assert.NoError(t, err)

	_, err = Store.Checkpoints("a.ipynb", sts.Path)
	assert.Equal(t, notebook.ErrNoSuchNotebook{Name: "a.ipynb", Path: sts.Path}, err)

	// Recreating the name starts with a clean checkpoint set.
	sts.SetUp(t)
	defer sts.TearDown(t)
	checkpoints, err := Store.Checkpoints("a.ipynb", sts.Path)
	if assert.NoError(t, err) {
		assert.Empty(t, checkpoints)
	}
}
