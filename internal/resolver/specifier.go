package resolver

import (
	"path/filepath"
	"strings"
)

// Scheme classifies an import specifier per spec.md §6.
type Scheme int

const (
	SchemeRelative Scheme = iota
	SchemeAbsolute
	SchemeURL
	SchemePackage
)

// Classify determines how specifier should be resolved.
func Classify(specifier string) Scheme {
	switch {
	case strings.HasPrefix(specifier, "./"), strings.HasPrefix(specifier, "../"):
		return SchemeRelative
	case strings.HasPrefix(specifier, "https://"), strings.HasPrefix(specifier, "http://"):
		return SchemeURL
	case filepath.IsAbs(specifier):
		return SchemeAbsolute
	default:
		return SchemePackage
	}
}

// IsRemote reports whether specifier must be fetched over the network
// rather than read from the local filesystem.
func IsRemote(specifier string) bool {
	s := Classify(specifier)
	return s == SchemeURL || s == SchemePackage
}

// ResolvePath computes the resolved path/URL for specifier relative to
// fromFile's directory. Package-prefixed and URL specifiers are
// returned unchanged: the former are handed to the host's package
// resolver, the latter are already absolute.
func ResolvePath(fromFile, specifier string) string {
	switch Classify(specifier) {
	case SchemeRelative:
		return filepath.Clean(filepath.Join(filepath.Dir(fromFile), specifier))
	case SchemeAbsolute, SchemeURL, SchemePackage:
		return specifier
	default:
		return specifier
	}
}
