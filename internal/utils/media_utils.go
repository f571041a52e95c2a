package utils

import (
	"path"
	"strings"
)

// PublicIDFromURL derives a media asset's storage identifier from its public
// URL: the basename without extension. The media store keys objects by bare
// public id, so for URLs it produced this is the exact key; for legacy URLs
// with extensions the derivation still matches the upload-time id.
func PublicIDFromURL(rawURL string) string {
	base := path.Base(strings.TrimSuffix(rawURL, "/"))
	if base == "." || base == "/" {
		return ""
	}
	if idx := strings.LastIndex(base, "."); idx > 0 {
		base = base[:idx]
	}
	return base
}
