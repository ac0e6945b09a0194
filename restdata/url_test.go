// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLPathJoin(t *testing.T) {
	assert.Equal(t, "/api/notebooks/work/a.ipynb",
		URLPathJoin("/api", "notebooks", "work", "a.ipynb"))
	assert.Equal(t, "/api/notebooks/a.ipynb",
		URLPathJoin("/api", "notebooks", "", "a.ipynb"))
	assert.Equal(t, "/api/notebooks/work/sub/a.ipynb",
		URLPathJoin("/api/notebooks/", "/work/sub/", "a.ipynb"))
	assert.Equal(t, "api/notebooks", URLPathJoin("api", "notebooks"))
	assert.Equal(t, "/", URLPathJoin("/"))
}
