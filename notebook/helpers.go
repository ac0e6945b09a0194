// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package notebook

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
)

// modelData mirrors the loosely typed model dictionaries that arrive
// over the wire.  Only the identity fields are lifted out; everything
// else belongs to Content and passes through untouched.
type modelData struct {
	Name    string
	Path    string
	Content map[string]interface{}
}

// ExtractModel fills in a Model from a loosely typed dictionary, such
// as a decoded JSON request body.  Identity fields that are absent
// are left as empty strings.
func ExtractModel(dict map[string]interface{}) (Model, error) {
	data := modelData{}
	config := mapstructure.DecoderConfig{Result: &data}
	decoder, err := mapstructure.NewDecoder(&config)
	if err == nil {
		err = decoder.Decode(dict)
	}
	if err != nil {
		return Model{}, err
	}
	return Model{
		Name:    data.Name,
		Path:    NormalizePath(data.Path),
		Content: data.Content,
	}, nil
}

// ValidName reports whether name is a usable notebook name: non-empty
// beyond the extension, carrying the extension, with no slash.
func ValidName(name string) bool {
	return strings.HasSuffix(name, Extension) &&
		len(name) > len(Extension) &&
		!strings.Contains(name, "/")
}

// NormalizePath reduces a logical directory path to canonical form,
// with no leading or trailing slashes and "" meaning the root.
func NormalizePath(path string) string {
	return strings.Trim(path, "/")
}

// JoinPath combines a directory path and a notebook name for display
// or URL purposes, eliding the directory when it is the root.
func JoinPath(path, name string) string {
	path = NormalizePath(path)
	if path == "" {
		return name
	}
	return path + "/" + name
}

// IncrementName produces the n'th name in a sequence derived from a
// base, "Untitled0.ipynb" style.  Stores use this to pick names for
// unnamed creates and copies, counting n up from zero until a free
// name is found.
func IncrementName(base string, n int) string {
	return fmt.Sprintf("%s%d%s", base, n, Extension)
}

// CopyBase derives the base for naming copies of a notebook: the
// source name with its extension removed and "-Copy" appended.
func CopyBase(name string) string {
	return strings.TrimSuffix(name, Extension) + "-Copy"
}

// UntitledBase is the base for naming notebooks created without a
// name.
const UntitledBase = "Untitled"
