// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

// Package restserver publishes a notebook store as a REST service.
// The restclient package is a matching client.
//
// The complete REST API is defined in the restdata package.
//
// HTTP Considerations
//
// Clients should use the standard HTTP Accept: header to request a
// specific response format; JSON is the only format currently
// supported, and the default.
//
// This interface does not (currently) support HTTP caching or
// authentication headers.
//
// MIME Types
//
// This interface understands MIME types as follows:
//
//     application/vnd.diffeo.notebook.v1+json
//
// JSON representation of version 1 of this interface.
//
//     application/vnd.diffeo.notebook+json
//     application/json
//     text/json
//
// JSON representation of latest version of this interface.
//
// URL Scheme
//
// Notebooks are addressed by their logical directory path plus their
// filename; the filename always ends in ".ipynb", which is also how
// the router tells a notebook URL from a directory URL.  Checkpoints
// hang off their notebook's URL.  The following URLs are defined:
//
//     /api/notebooks
//     /api/notebooks/{path}
//     /api/notebooks/{path}/{name}
//     /api/notebooks/{path}/{name}/checkpoints
//     /api/notebooks/{path}/{name}/checkpoints/{checkpoint}
//
// {path} may contain slashes, and may be absent entirely for
// notebooks in the root directory.
//
// Each HTTP verb maps to exactly one store operation, resolved ahead
// of execution by a pure function over (verb, path, name, "copy"
// query parameter, body); see intent.go for the complete mapping and
// its disambiguation rules.
package restserver
