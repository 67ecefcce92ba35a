package youtubeapi

import "regexp"

// Video ids are 11 characters from the YouTube id alphabet, reachable via
// watch?v=, youtu.be/ short links, or /live/ paths.
var videoIDPattern = regexp.MustCompile(`(?:v=|/live/|\.be/)([A-Za-z0-9_-]{11})`)

// ExtractVideoID pulls the canonical video id out of a broadcast URL.
// Returns false when the input doesn't contain one.
func ExtractVideoID(url string) (string, bool) {
	if url == "" {
		return "", false
	}
	m := videoIDPattern.FindStringSubmatch(url)
	if m == nil {
		return "", false
	}
	return m[1], true
}
