// Package videoid extracts canonical YouTube video identifiers from the URL
// shapes users paste into the app.
package videoid

import (
	"errors"
	"regexp"
	"strings"
)

// ErrNoVideoID is returned when a URL does not carry a recognizable video id.
var ErrNoVideoID = errors.New("no video id found in url")

// idLength is the fixed length of a YouTube video id. The length check is a
// structural sanity test on the captured group, not id validation.
const idLength = 11

// urlPattern matches the supported sharing URL shapes: watch?v=, youtu.be/,
// embed/, /v/ and /u/<user>/ paths. The first capture group is the candidate id.
var urlPattern = regexp.MustCompile(`(?:youtube\.com/(?:[^/\s]+/\S+/|(?:v|e(?:mbed)?)/|\S*?[?&]v=)|youtu\.be/)([^#&?/\s]*)`)

// Extract returns the 11-character video id embedded in url, or ErrNoVideoID
// if nothing matching a known URL shape is present.
func Extract(url string) (string, error) {
	m := urlPattern.FindStringSubmatch(strings.TrimSpace(url))
	if m == nil || len(m[1]) != idLength {
		return "", ErrNoVideoID
	}
	return m[1], nil
}
