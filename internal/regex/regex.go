package regex

import "regexp"

var (
	// Contributor patterns
	UserMention = regexp.MustCompile(`@([\w-]+)`)

	// Output file naming
	NonAlphanumeric = regexp.MustCompile(`[^0-9A-Za-z]+`)
	ReleaseFile     = regexp.MustCompile(`^release_.*\.md$`)
)
