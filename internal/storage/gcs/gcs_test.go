package gcs_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vytor/roster/internal/storage"
	"github.com/vytor/roster/internal/storage/gcs"
)

type fakeWriter struct {
	buf      bytes.Buffer
	writeErr error
	closeErr error
	closed   bool
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	if w.writeErr != nil {
		return 0, w.writeErr
	}
	return w.buf.Write(p)
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return w.closeErr
}

type opened struct {
	bucket, key, contentType string
}

func writerFor(w *fakeWriter, got *opened) gcs.WriterFunc {
	return func(_ context.Context, bucket, key, contentType string) io.WriteCloser {
		*got = opened{bucket: bucket, key: key, contentType: contentType}
		return w
	}
}

func TestStore_Put(t *testing.T) {
	w := &fakeWriter{}
	var got opened
	store := gcs.NewWithWriter(writerFor(w, &got), "avatars")

	path, err := store.Put(context.Background(), "a1.png", []byte("png-bytes"), "image/png")

	require.NoError(t, err)
	assert.Equal(t, "avatars/a1.png", path)
	assert.Equal(t, opened{bucket: "avatars", key: "a1.png", contentType: "image/png"}, got)
	assert.Equal(t, "png-bytes", w.buf.String())
	assert.True(t, w.closed)
	assert.NoError(t, store.Close())
}

func TestStore_PutErrors(t *testing.T) {
	tests := []struct {
		name   string
		writer *fakeWriter
		want   string
	}{
		{name: "write fails", writer: &fakeWriter{writeErr: errors.New("connection reset")}, want: "connection reset"},
		{name: "finalize fails", writer: &fakeWriter{closeErr: errors.New("precondition failed")}, want: "precondition failed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got opened
			store := gcs.NewWithWriter(writerFor(tt.writer, &got), "avatars")

			_, err := store.Put(context.Background(), "a1.png", []byte("x"), "image/png")

			assert.EqualError(t, err, tt.want)
			assert.True(t, tt.writer.closed)
		})
	}
}

func TestStore_PutRejectsBadKey(t *testing.T) {
	called := false
	store := gcs.NewWithWriter(func(context.Context, string, string, string) io.WriteCloser {
		called = true
		return &fakeWriter{}
	}, "avatars")

	_, err := store.Put(context.Background(), "../a1.png", []byte("x"), "image/png")

	assert.ErrorIs(t, err, storage.ErrInvalidKey)
	assert.False(t, called)
}
