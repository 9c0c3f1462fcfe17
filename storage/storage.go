package storage

import "io"

// Provider is the behavior any upload backend implements: store the object
// under key and return the URL the stored file is reachable at.
type Provider interface {
	Put(key string, body io.ReadSeeker, contentType string) (string, error)
}
