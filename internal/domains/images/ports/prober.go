package ports

import "context"

// ObjectProber performs metadata-only existence checks against object storage.
// A false result with nil error means the object is definitively absent.
type ObjectProber interface {
	ObjectExists(ctx context.Context, key string) (bool, error)
}
