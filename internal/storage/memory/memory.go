// Package memory is an in-process ObjectStore for development and tests.
package memory

import (
	"context"
	"sync"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/storage"
)

type Object struct {
	Data        []byte
	ContentType string
}

type Store struct {
	bucket  string
	mu      sync.RWMutex
	objects map[string]Object
}

func New(bucket string) *Store {
	return &Store{bucket: bucket, objects: map[string]Object{}}
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) (string, error) {
	if err := storage.CheckKey(key); err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	_, replaced := s.objects[key]
	s.objects[key] = Object{Data: buf, ContentType: contentType}
	s.mu.Unlock()

	logger.FromContext(ctx).WithPrefix("memory_store").Debug("stored %s/%s (%d bytes, replaced=%t)", s.bucket, key, len(data), replaced)
	return storage.ObjectPath(s.bucket, key), nil
}

// Get returns a copy of the object stored under key.
func (s *Store) Get(key string) (Object, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return Object{}, false
	}
	data := make([]byte, len(obj.Data))
	copy(data, obj.Data)
	return Object{Data: data, ContentType: obj.ContentType}, true
}

// Keys lists stored keys in no particular order.
func (s *Store) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.objects))
	for k := range s.objects {
		keys = append(keys, k)
	}
	return keys
}

var _ storage.ObjectStore = (*Store)(nil)
