package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/vytor/roster/internal/avatar"
	"github.com/vytor/roster/internal/errors"
	"github.com/vytor/roster/internal/logger"
	"github.com/vytor/roster/internal/models"
	"github.com/vytor/roster/internal/validation"
)

// Room for the text fields of a multipart edit on top of the image itself.
const formFieldsAllowance = 1 << 20

type editResponse struct {
	Athlete  *models.AthleteView `json:"athlete,omitempty"`
	Redirect string              `json:"redirect"`
}

func (s *Server) handleListAthletes(w http.ResponseWriter, r *http.Request) {
	athletes, err := s.AthleteService.ListAthletes(r.Context())
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, athletes)
}

func (s *Server) handleGetAthlete(w http.ResponseWriter, r *http.Request) {
	athlete, err := s.AthleteService.GetAthlete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		handleError(w, r, err)
		return
	}
	writeJSON(w, r, http.StatusOK, athlete)
}

func (s *Server) handleEditAthlete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	draft, avatarProblem, err := s.readEditDraft(w, r)
	if err != nil {
		handleError(w, r, err)
		return
	}
	if avatarProblem != "" {
		// Report the field errors alongside the avatar one.
		fields := map[string]string{validation.FieldAvatar: avatarProblem}
		for field, msg := range validation.Validate(draft).Errors {
			fields[field] = msg
		}
		handleError(w, r, errors.NewFieldErrors(fields))
		return
	}

	out := s.EditService.SubmitEdit(r.Context(), id, draft)
	switch out.Status {
	case models.EditOK:
		resp := editResponse{Redirect: out.Redirect}
		if out.Athlete != nil {
			view := models.NewAthleteView(*out.Athlete, time.Now())
			resp.Athlete = &view
		}
		writeJSON(w, r, http.StatusOK, resp)
	case models.EditRejected:
		handleError(w, r, errors.NewFieldErrors(out.Errors))
	default:
		writeError(w, r, out.Err, out.Redirect)
	}
}

// readEditDraft accepts a multipart form, which may carry an "avatar"
// file, or a JSON body without an image. A rejected avatar is returned as
// avatarProblem with the rest of the draft still filled in.
func (s *Server) readEditDraft(w http.ResponseWriter, r *http.Request) (draft models.EditDraft, avatarProblem string, err error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "multipart/form-data":
		r.Body = http.MaxBytesReader(w, r.Body, s.MaxAvatarBytes+formFieldsAllowance)
		if err := r.ParseMultipartForm(s.MaxAvatarBytes); err != nil {
			var tooLarge *http.MaxBytesError
			if stderrors.As(err, &tooLarge) {
				return draft, "", errors.NewValidationError(validation.FieldAvatar, validation.MsgImageTooLarge)
			}
			return draft, "", errors.NewBadRequestError("invalid multipart form")
		}
		// r is a copy made by the middleware, so the server will not clean
		// up parts spilled to disk for us.
		defer func() {
			if r.MultipartForm != nil {
				if rmErr := r.MultipartForm.RemoveAll(); rmErr != nil {
					logger.FromContext(r.Context()).Warn("failed to remove multipart files: %v", rmErr)
				}
			}
		}()

		draft.FirstName = r.FormValue(validation.FieldFirstName)
		draft.LastName = r.FormValue(validation.FieldLastName)
		draft.Birthdate = r.FormValue(validation.FieldBirthdate)
		draft.Location = r.FormValue(validation.FieldLocation)

		draft.Image, avatarProblem, err = s.readImage(r)
		if err != nil {
			return draft, "", err
		}
	case "application/json", "":
		r.Body = http.MaxBytesReader(w, r.Body, formFieldsAllowance)
		if err := json.NewDecoder(r.Body).Decode(&draft); err != nil {
			return draft, "", errors.NewBadRequestError("invalid JSON body")
		}
	default:
		return draft, "", errors.NewBadRequestError("unsupported content type " + mediaType)
	}
	return draft, avatarProblem, nil
}

// readImage returns a nil image when the form has no avatar or an empty
// one. An avatar that is too large or not an image gives a problem message.
func (s *Server) readImage(r *http.Request) (*models.ImageSelection, string, error) {
	file, header, err := r.FormFile(validation.FieldAvatar)
	if stderrors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", errors.NewBadRequestError("invalid avatar part")
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, s.MaxAvatarBytes+1))
	if err != nil {
		return nil, "", errors.NewBadRequestError("failed to read avatar")
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	if int64(len(data)) > s.MaxAvatarBytes {
		return nil, validation.MsgImageTooLarge, nil
	}
	if !avatar.IsImage(data) {
		logger.FromContext(r.Context()).Debug("rejected avatar %q: not an image", header.Filename)
		return nil, validation.MsgInvalidImage, nil
	}

	return &models.ImageSelection{
		Filename:  header.Filename,
		Extension: avatar.ExtensionOf(header.Filename),
		Data:      data,
	}, "", nil
}
