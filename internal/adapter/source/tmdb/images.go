package tmdb

import "strings"

// DefaultImageBaseURL is the TMDB image CDN root
const DefaultImageBaseURL = "https://image.tmdb.org/t/p"

// Image sizes accepted by the CDN
const (
	SizeW200     = "w200"
	SizeW300     = "w300"
	SizeW500     = "w500"
	SizeW780     = "w780"
	SizeOriginal = "original"
)

// DefaultImageSize is used when no or an unknown size is requested
const DefaultImageSize = SizeW500

// ValidImageSize reports whether size is one the CDN serves
func ValidImageSize(size string) bool {
	switch size {
	case SizeW200, SizeW300, SizeW500, SizeW780, SizeOriginal:
		return true
	}
	return false
}

// ImageURL builds the CDN URL for an image path. An empty path yields ""
// so callers can render a placeholder.
func ImageURL(base, path, size string) string {
	if path == "" {
		return ""
	}
	if base == "" {
		base = DefaultImageBaseURL
	}
	if !ValidImageSize(size) {
		size = DefaultImageSize
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return strings.TrimRight(base, "/") + "/" + size + path
}
