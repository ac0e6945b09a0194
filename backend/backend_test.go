// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendSet(t *testing.T) {
	b := Backend{}

	if assert.NoError(t, b.Set("memory")) {
		assert.Equal(t, "memory", b.Implementation)
		assert.Equal(t, "", b.Address)
		assert.Equal(t, "memory", b.String())
	}

	if assert.NoError(t, b.Set("postgres:host=localhost dbname=nb")) {
		assert.Equal(t, "postgres", b.Implementation)
		assert.Equal(t, "host=localhost dbname=nb", b.Address)
	}

	if assert.NoError(t, b.Set("http://localhost:5980/")) {
		assert.Equal(t, "http", b.Implementation)
		assert.Equal(t, "//localhost:5980/", b.Address)
	}

	assert.Error(t, b.Set("mongodb:localhost"))
}

func TestBackendMemoryStore(t *testing.T) {
	b := Backend{Implementation: "memory"}
	store, err := b.Store()
	if assert.NoError(t, err) {
		assert.NotNil(t, store)
	}
}
