// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package storetest provides generic functional tests for the
// notebook.Store interface.  A typical backend test module sets the
// package-level Store variable from an init function, then forwards
// the individual tests:
//
//     package mybackend_test
//
//     import (
//             "testing"
//             "github.com/diffeo/go-notebook/notebook/storetest"
//     )
//
//     func init() {
//             storetest.Store = NewWithClock(storetest.Clock)
//     }
//
//     func TestNotebookTrivial(t *testing.T) {
//             storetest.TestNotebookTrivial(t)
//     }
//
// Each test works in its own directory named after the test, so a
// single shared backend can run all of them.
package storetest

import (
	"github.com/benbjohnson/clock"
	"github.com/diffeo/go-notebook/notebook"
)

// Clock is the alternate time source to be used in tests.  Backends
// should be constructed with their NewWithClock entry points pointing
// at this mock, so that tests can observe last-modified changes
// without real sleeps.
var Clock = clock.NewMock()

// Store contains the backend under test.  It is set by importing
// packages.
var Store notebook.Store
