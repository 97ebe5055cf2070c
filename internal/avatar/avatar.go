// Package avatar uploads athlete profile images to the object store and
// resolves the public URL they are served from.
//
// Objects are keyed "<athleteID>.<extension>", so uploading again with the
// same extension replaces the previous image. An upload with a different
// extension leaves the older object in place.
package avatar

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/storage"
)

var (
	ErrMissingAthlete   = errors.New("avatar: athlete id is required")
	ErrEmptyImage       = errors.New("avatar: image is empty")
	ErrUnknownExtension = errors.New("avatar: cannot determine file extension")
)

// UploadError reports a failed avatar upload.
type UploadError struct {
	AthleteID string
	Key       string
	Err       error
}

func (e *UploadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("upload avatar for %s: %v", e.AthleteID, e.Err)
	}
	return fmt.Sprintf("upload avatar %s: %v", e.Key, e.Err)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Uploader is implemented by Pipeline.
type Uploader interface {
	Upload(ctx context.Context, athleteID string, data []byte, extension string) (string, error)
}

type Pipeline struct {
	store   storage.ObjectStore
	baseURL string
}

// NewPipeline returns a pipeline writing to store. publicBaseURL is the
// prefix under which object paths are publicly readable.
func NewPipeline(store storage.ObjectStore, publicBaseURL string) *Pipeline {
	return &Pipeline{store: store, baseURL: publicBaseURL}
}

// Upload writes data under the athlete's avatar key and returns its public
// URL. When extension is empty it is derived from the content.
func (p *Pipeline) Upload(ctx context.Context, athleteID string, data []byte, extension string) (string, error) {
	log := logger.FromContext(ctx).WithPrefix("avatar").WithField("athlete_id", athleteID)

	if athleteID == "" {
		return "", &UploadError{Err: ErrMissingAthlete}
	}
	if len(data) == 0 {
		return "", &UploadError{AthleteID: athleteID, Err: ErrEmptyImage}
	}

	detected := mimetype.Detect(data)
	ext := strings.TrimPrefix(extension, ".")
	if ext == "" {
		ext = strings.TrimPrefix(detected.Extension(), ".")
	}
	if ext == "" {
		return "", &UploadError{AthleteID: athleteID, Err: ErrUnknownExtension}
	}

	key := ObjectKey(athleteID, ext)
	log.Debug("uploading %d bytes as %s (%s)", len(data), key, detected.String())

	path, err := p.store.Put(ctx, key, data, detected.String())
	if err != nil {
		log.Warn("upload failed: %v", err)
		return "", &UploadError{AthleteID: athleteID, Key: key, Err: err}
	}

	url := PublicURL(p.baseURL, path)
	log.Info("avatar stored at %s", url)
	return url, nil
}

// ObjectKey is the storage key of an athlete's avatar for extension.
func ObjectKey(athleteID, extension string) string {
	return athleteID + "." + strings.TrimPrefix(extension, ".")
}

// ExtensionOf returns the text after the last dot of filename, or "" when
// there is none.
func ExtensionOf(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return filename[idx+1:]
}

// PublicURL joins the public base URL and an object path with one slash.
func PublicURL(baseURL, objectPath string) string {
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(objectPath, "/")
}

// IsImage reports whether data sniffs as an image type.
func IsImage(data []byte) bool {
	for m := mimetype.Detect(data); m != nil; m = m.Parent() {
		if strings.HasPrefix(m.String(), "image/") {
			return true
		}
	}
	return false
}

var _ Uploader = (*Pipeline)(nil)
