// Copyright 2015-2017 Diffeo, Inc.
// This software is released under an MIT/X11 open source license.

package restdata

import "strings"

// URLPathJoin joins URL path segments with single slashes, dropping
// empty segments.  The result keeps a leading slash if the first
// segment has one.
func URLPathJoin(segments ...string) string {
	absolute := len(segments) > 0 && strings.HasPrefix(segments[0], "/")
	parts := []string{}
	for _, segment := range segments {
		segment = strings.Trim(segment, "/")
		if segment != "" {
			parts = append(parts, segment)
		}
	}
	joined := strings.Join(parts, "/")
	if absolute {
		return "/" + joined
	}
	return joined
}
