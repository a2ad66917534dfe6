// Package doi derives Digital Object Identifiers from the link column of a listing.
package doi

import (
	"regexp"
	"strings"
)

// ResolverPrefix is the canonical DOI resolver URL prefix.
const ResolverPrefix = "https://doi.org/"

// DOI pattern: 10.XXXX/... where XXXX is 4-9 digits. The suffix may hold any
// printable character; SICI suffixes contain <, > and ;.
var doiPattern = regexp.MustCompile(`^10\.\d{4,9}/\S+$`)

// FromLink derives a DOI from a link value.
//
// Resolver URLs lose their prefix. Any other value containing "10." is cut to
// start at the first "10." and keeps at most two "/"-separated segments, so
// "foo10.1234/abcd/extra" becomes "10.1234/abcd". Values that are empty or
// contain no "10." are returned unchanged.
func FromLink(link string) string {
	if link == "" {
		return link
	}
	if strings.HasPrefix(link, ResolverPrefix) {
		return strings.TrimPrefix(link, ResolverPrefix)
	}

	idx := strings.Index(link, "10.")
	if idx == -1 {
		return link
	}

	segments := strings.Split(link[idx+len("10."):], "/")
	if len(segments) > 2 {
		segments = segments[:2]
	}
	return strings.TrimSpace("10." + strings.Join(segments, "/"))
}

// IsDOI reports whether s looks like a bare DOI ("10.<registrant>/<suffix>").
func IsDOI(s string) bool {
	return doiPattern.MatchString(s)
}

// URL returns the resolver URL for a DOI.
func URL(doi string) string {
	return ResolverPrefix + doi
}
