package store

import (
	"strconv"
	"strings"

	"github.com/beantownbytes/menuentry/internal/desktop"
)

// defaultSlug is used when a name has no usable characters.
const defaultSlug = "entry"

// slug turns a display name into a file-name base: lower case ASCII
// letters and digits, with every other run of characters collapsed to '-'.
func slug(name string) string {
	var sb strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.', r == '_':
			if dash && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			dash = false
			sb.WriteRune(r)
		default:
			dash = true
		}
	}

	s := strings.Trim(sb.String(), "._")
	if s == "" {
		return defaultSlug
	}
	return s
}

// uniqueID returns base.desktop if it is free, else the first free
// base-N.desktop. With firstSuffix > 0 the bare name is never used.
func uniqueID(base string, firstSuffix int, taken func(id string) bool) string {
	if firstSuffix == 0 {
		if id := base + desktop.FileExtension; !taken(id) {
			return id
		}
		firstSuffix = 1
	}
	for n := firstSuffix; ; n++ {
		id := base + "-" + strconv.Itoa(n) + desktop.FileExtension
		if !taken(id) {
			return id
		}
	}
}
