// Package storage defines the object store port used for avatar images.
package storage

import (
	"context"
	"errors"
	"strings"
)

// ObjectStore writes objects with overwrite semantics: a Put to an existing
// key replaces its content. Put returns the object path, "<bucket>/<key>",
// which is appended to the public base URL to address the object.
type ObjectStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) (string, error)
}

var ErrInvalidKey = errors.New("storage: invalid object key")

// ObjectPath joins bucket and key the way every adapter reports paths.
func ObjectPath(bucket, key string) string {
	return bucket + "/" + key
}

// CheckKey rejects keys that cannot address a single object.
func CheckKey(key string) error {
	if key == "" || strings.HasPrefix(key, "/") || strings.Contains(key, "..") {
		return ErrInvalidKey
	}
	return nil
}
