// Copyright 2016-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package notebook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractModel(t *testing.T) {
	model, err := ExtractModel(map[string]interface{}{
		"name": "a.ipynb",
		"path": "/work/",
		"content": map[string]interface{}{
			"cells": []interface{}{},
		},
	})
	if assert.NoError(t, err) {
		assert.Equal(t, "a.ipynb", model.Name)
		assert.Equal(t, "work", model.Path)
		assert.Contains(t, model.Content, "cells")
	}
}

func TestExtractModelEmpty(t *testing.T) {
	model, err := ExtractModel(map[string]interface{}{})
	if assert.NoError(t, err) {
		assert.Equal(t, "", model.Name)
		assert.Equal(t, "", model.Path)
		assert.Nil(t, model.Content)
	}
}

func TestExtractModelExtraKeys(t *testing.T) {
	// Unknown keys are content-owner territory and must not fail
	// the decode.
	_, err := ExtractModel(map[string]interface{}{
		"name":    "a.ipynb",
		"format":  "json",
		"message": nil,
	})
	assert.NoError(t, err)
}

func TestValidName(t *testing.T) {
	assert.True(t, ValidName("a.ipynb"))
	assert.True(t, ValidName("Untitled0.ipynb"))
	assert.False(t, ValidName(".ipynb"))
	assert.False(t, ValidName("a.txt"))
	assert.False(t, ValidName(""))
	assert.False(t, ValidName("dir/a.ipynb"))
}

func TestNormalizePath(t *testing.T) {
	assert.Equal(t, "", NormalizePath(""))
	assert.Equal(t, "", NormalizePath("/"))
	assert.Equal(t, "work", NormalizePath("/work/"))
	assert.Equal(t, "work/sub", NormalizePath("work/sub"))
}

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "a.ipynb", JoinPath("", "a.ipynb"))
	assert.Equal(t, "work/a.ipynb", JoinPath("work", "a.ipynb"))
	assert.Equal(t, "work/a.ipynb", JoinPath("/work/", "a.ipynb"))
}

func TestIncrementName(t *testing.T) {
	assert.Equal(t, "Untitled0.ipynb", IncrementName(UntitledBase, 0))
	assert.Equal(t, "a-Copy2.ipynb", IncrementName(CopyBase("a.ipynb"), 2))
}
