// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package postgres_test

import (
	"fmt"
	"os"
	"testing"

	"github.com/diffeo/go-notebook/notebook/storetest"
	"github.com/diffeo/go-notebook/postgres"
)

// TestMain points the standard store tests at a real PostgreSQL
// database.  Set NOTEBOOK_TEST_POSTGRES to a connection string to run
// them (an empty value works too, picking up the standard libpq
// environment variables, see
// http://www.postgresql.org/docs/current/static/libpq-envars.html);
// leave it unset to skip this package.
func TestMain(m *testing.M) {
	conn, run := os.LookupEnv("NOTEBOOK_TEST_POSTGRES")
	if !run {
		fmt.Println("skipping PostgreSQL tests; set NOTEBOOK_TEST_POSTGRES to run them")
		os.Exit(0)
	}
	store, err := postgres.NewWithClock(conn, storetest.Clock)
	if err != nil {
		panic(err)
	}
	storetest.Store = store
	os.Exit(m.Run())
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
