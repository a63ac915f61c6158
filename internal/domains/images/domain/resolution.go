package domain

// Status tags the outcome of an image resolution.
type Status string

const (
	StatusResolved    Status = "resolved"
	StatusDisabled    Status = "disabled"
	StatusUnmatched   Status = "unmatched"
	StatusNotFound    Status = "not_found"
	StatusProbeFailed Status = "probe_failed"
)

// Resolution is the tagged result of resolving one reference. Only
// StatusResolved carries a URL; every other status means the bucket copy is
// unavailable and callers choose their own fallback.
type Resolution struct {
	Status Status
	URL    string
	Key    BucketKey
	Err    error
}

// Resolved reports whether a bucket URL is available.
func (r Resolution) Resolved() bool {
	return r.Status == StatusResolved && r.URL != ""
}

// URLOr returns the bucket URL when resolved and fallback otherwise.
func (r Resolution) URLOr(fallback string) string {
	if r.Resolved() {
		return r.URL
	}
	return fallback
}
