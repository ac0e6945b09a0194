// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restclient_test

import (
	"net/http/httptest"
	"testing"

	"github.com/diffeo/go-notebook/memory"
	"github.com/diffeo/go-notebook/notebook/storetest"
	"github.com/diffeo/go-notebook/restclient"
	"github.com/diffeo/go-notebook/restserver"
)

func init() {
	// This sets up an object stack where the REST client code talks
	// to the REST server code, which points at an in-memory backend.
	memBackend := memory.NewWithClock(storetest.Clock)
	router := restserver.NewRouter(memBackend)
	server := httptest.NewServer(router)
	store, err := restclient.New(server.URL)
	if err != nil {
		panic(err)
	}
	storetest.Store = store
}

func TestEmptyURL(t *testing.T) {
	_, err := restclient.New("")
	if err == nil {
		t.Fatal("Expected error when given empty URL.")
	}
}

func TestNotebookTrivial(t *testing.T) {
	storetest.TestNotebookTrivial(t)
}
func TestNotebookMissing(t *testing.T) {
	storetest.TestNotebookMissing(t)
}
func TestUntitledSequence(t *testing.T) {
	storetest.TestUntitledSequence(t)
}
func TestCreateReplaces(t *testing.T) {
	storetest.TestCreateReplaces(t)
}
func TestListNotebooks(t *testing.T) {
	storetest.TestListNotebooks(t)
}
func TestSaveNotebook(t *testing.T) {
	storetest.TestSaveNotebook(t)
}
func TestSaveMissing(t *testing.T) {
	storetest.TestSaveMissing(t)
}
func TestRenameNotebook(t *testing.T) {
	storetest.TestRenameNotebook(t)
}
func TestMoveNotebook(t *testing.T) {
	storetest.TestMoveNotebook(t)
}
func TestRenameCollision(t *testing.T) {
	storetest.TestRenameCollision(t)
}
func TestCopyNotebook(t *testing.T) {
	storetest.TestCopyNotebook(t)
}
func TestCopyMissing(t *testing.T) {
	storetest.TestCopyMissing(t)
}
func TestCheckpointLifetime(t *testing.T) {
	storetest.TestCheckpointLifetime(t)
}
func TestCheckpointOrder(t *testing.T) {
	storetest.TestCheckpointOrder(t)
}
func TestCheckpointMissing(t *testing.T) {
	storetest.TestCheckpointMissing(t)
}
func TestCheckpointsDieWithNotebook(t *testing.T) {
	storetest.TestCheckpointsDieWithNotebook(t)
}
