package core

import "regexp"

var markerPattern = regexp.MustCompile(` [0-9a-f]{32}`)

// Marker is the content-hash suffix the exporter appends to entry names.
type Marker struct {
	// Text is the matched marker including its leading space.
	Text string
	// Start is the byte offset of Text within the name.
	Start int
}

// End returns the byte offset just past the marker.
func (m Marker) End() int {
	return m.Start + len(m.Text)
}

// Detect reports the hash marker of name, if any.
//
// The marker is the last " " + 32 lowercase hex digits that ends the name or
// is followed by a "." starting the extension, so "Page <hash>.md" and
// "Folder <hash>" both match while "Page <hash>x.md" and 33-digit runs do not.
// Files and directories use the same rule.
func Detect(name string) (Marker, bool) {
	locs := markerPattern.FindAllStringIndex(name, -1)
	for i := len(locs) - 1; i >= 0; i-- {
		start, end := locs[i][0], locs[i][1]
		if end == len(name) || name[end] == '.' {
			return Marker{Text: name[start:end], Start: start}, true
		}
	}
	return Marker{}, false
}

// HasMarker reports whether name carries a hash marker.
func HasMarker(name string) bool {
	_, ok := Detect(name)
	return ok
}
