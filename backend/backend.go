// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package backend provides a standard way to construct a notebook
// store based on command-line flags.
package backend

import (
	"errors"
	"strings"

	"github.com/diffeo/go-notebook/memory"
	"github.com/diffeo/go-notebook/notebook"
	"github.com/diffeo/go-notebook/postgres"
	"github.com/diffeo/go-notebook/restclient"
)

// Backend describes user-visible parameters to store notebook data.
// This implements the flag.Value interface, and so a typical use is
//
//	func main() {
//	    backend := backend.Backend{Implementation: "memory"}
//	    flag.Var(&backend, "backend", "impl:address of notebook storage")
//	    flag.Parse()
//	    store, err := backend.Store()
//	}
type Backend struct {
	// Implementation holds the name of the implementation; one of
	// "memory", "postgres", or "http".
	Implementation string

	// Address holds some backend-specific address, such as a
	// database connect string or a server URL.
	Address string
}

// Store creates a new notebook store.  This generally should be only
// called once.  If the backend has in-process state, such as a
// database connection pool or an in-memory store, calling this
// multiple times will create multiple copies of that state.  In
// particular, if b.Implementation is "memory", multiple calls to this
// will create multiple independent notebook "worlds".
func (b *Backend) Store() (notebook.Store, error) {
	switch b.Implementation {
	case "memory":
		return memory.New(), nil
	case "postgres":
		return postgres.New(b.Address)
	case "http":
		// "http://host/" parses as implementation "http" with
		// address "//host/"; put the scheme back
		address := b.Address
		if strings.HasPrefix(address, "//") {
			address = "http:" + address
		}
		return restclient.New(address)
	default:
		return nil, errors.New("unknown notebook backend " + b.Implementation)
	}
}

// String renders a backend description as a string.
func (b *Backend) String() string {
	if b.Address == "" {
		return b.Implementation
	}
	return b.Implementation + ":" + b.Address
}

// Set parses a string into an existing backend description.  The
// string should be of the form "implementation:address", where
// address can be any string.  Set checks to see if the provided
// implementation is any of the known implementations, and returns an
// appropriate error if not.
//
// This is part of the flag.Value interface.  If Set returns a nil
// error then Store() will return successfully, barring trouble with
// the address itself.  Note that Set does not attempt to validate the
// b.Address part of the string or attempt to actually make a
// connection.
func (b *Backend) Set(param string) error {
	parts := strings.SplitN(param, ":", 2)
	b.Implementation = parts[0]
	if len(parts) > 1 {
		b.Address = parts[1]
	} else {
		b.Address = ""
	}
	switch b.Implementation {
	case "memory", "postgres", "http":
		return nil
	}
	return errors.New("unknown notebook backend " + b.Implementation)
}
