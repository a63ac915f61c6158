package domain

import (
	"regexp"
	"strings"
)

// BucketKeyPrefix is the storage folder holding distributor standard imagery.
const BucketKeyPrefix = "rsr/standard/"

// referencePattern matches a final path segment of the form <STOCK>_<INDEX>.<ext>,
// optionally followed by a query or fragment.
var referencePattern = regexp.MustCompile(`(?i)(?:^|/)([A-Za-z0-9-]+)_(\d+)\.(jpe?g|png|webp)(?:[?#].*)?$`)

// BucketKey identifies an object in the image bucket.
type BucketKey string

func (k BucketKey) String() string { return string(k) }

// ImageReference is a parsed legacy image reference.
type ImageReference struct {
	Stock     string
	Index     string
	Extension string
}

// ParseReference extracts the stock, index, and extension from ref.
func ParseReference(ref string) (ImageReference, bool) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(ref))
	if m == nil {
		return ImageReference{}, false
	}
	return ImageReference{Stock: m[1], Index: m[2], Extension: strings.ToLower(m[3])}, true
}

// Key returns rsr/standard/<STOCK>_<INDEX>.<ext> with the extension lowercased.
func (r ImageReference) Key() BucketKey {
	return BucketKey(BucketKeyPrefix + r.Stock + "_" + r.Index + "." + strings.ToLower(r.Extension))
}

// KeyFor parses ref and returns its bucket key.
func KeyFor(ref string) (BucketKey, bool) {
	parsed, ok := ParseReference(ref)
	if !ok {
		return "", false
	}
	return parsed.Key(), true
}
