package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/MKhiriev/sheet-viz/internal/logger"
	"github.com/MKhiriev/sheet-viz/internal/utils"
	"github.com/MKhiriev/sheet-viz/internal/validators"
)

// hashHeader carries hex(HMAC-SHA256(hashKey, file bytes)) on uploads.
const hashHeader = "HashSHA256"

// uploadIntegrity verifies the HashSHA256 header of an upload against the
// bytes of its "file" part. It is a no-op when no hash key is configured or
// the client sends no header.
//
// The multipart form is parsed here and left on the request, so the upload
// handler reads the already-buffered part.
func (h *Handler) uploadIntegrity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		expected := r.Header.Get(hashHeader)
		if h.hashKey == "" || expected == "" {
			next.ServeHTTP(w, r)
			return
		}

		log := logger.FromRequest(r)

		content, _, err := h.readUploadedFile(w, r)
		if err != nil {
			writeError(w, r, err, "Upload failed")
			return
		}

		if !utils.EqualHex(expected, utils.HashBytes(content, h.hashKey)) {
			log.Error().Str("func", "*Handler.uploadIntegrity").
				Str("hash from request", expected).
				Msg("hashes are not equal")
			writeError(w, r, ErrIntegrityCheckFailed, "Integrity check failed")
			return
		}

		log.Debug().Str("func", "*Handler.uploadIntegrity").Msg("hashes are equal")
		next.ServeHTTP(w, r)
	})
}

// readUploadedFile returns the bytes and header of the "file" multipart
// field, enforcing the configured size limit on the request body.
func (h *Handler) readUploadedFile(w http.ResponseWriter, r *http.Request) ([]byte, *uploadedFile, error) {
	if r.MultipartForm == nil {
		if h.maxUploadSize > 0 {
			// leave room for multipart framing around the file part
			r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize+multipartOverhead)
		}

		if err := r.ParseMultipartForm(multipartMemory); err != nil {
			var maxBytesErr *http.MaxBytesError
			if errors.As(err, &maxBytesErr) {
				return nil, nil, validators.ErrSizeLimitExceeded
			}
			if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
				return nil, nil, validators.ErrNoFileProvided
			}
			return nil, nil, errors.Join(ErrInvalidMultipart, err)
		}
	}

	file, header, err := r.FormFile(uploadField)
	if err != nil {
		return nil, nil, validators.ErrNoFileProvided
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return nil, nil, errors.Join(ErrInvalidMultipart, err)
	}

	return content, &uploadedFile{
		name:        header.Filename,
		contentType: header.Header.Get("Content-Type"),
		size:        header.Size,
	}, nil
}

type uploadedFile struct {
	name        string
	contentType string
	size        int64
}

const (
	uploadField       = "file"
	multipartMemory   = 32 << 20
	multipartOverhead = 1 << 20
)
