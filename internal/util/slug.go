package util

import "strings"

// Slugify derives a URL-safe identifier from a human-readable name:
// lowercase, every run of non-alphanumeric characters becomes a single
// hyphen, leading and trailing hyphens are trimmed. The mapping is
// deterministic so the same name always yields the same slug.
func Slugify(name string) string {
	var b strings.Builder
	b.Grow(len(name))

	lastHyphen := true // suppress a leading hyphen
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}

	return strings.TrimSuffix(b.String(), "-")
}
