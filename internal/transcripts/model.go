package transcripts

import (
	"errors"

	"transcript-backend/internal/shared/util"
)

// ErrNoFile is returned when the request carries no "file" part.
var ErrNoFile = errors.New("no file uploaded")

// UploadedDocument is the in-memory upload owned by a single request.
type UploadedDocument struct {
	Data     []byte
	FileName string
	MimeType string
}

// SHA256 fingerprints the upload for logs.
func (d UploadedDocument) SHA256() string {
	return util.HashBytes(d.Data)
}

// DisplayName is the file name with path separators removed, safe for logs.
func (d UploadedDocument) DisplayName() string {
	name, err := util.SanitizeFileName(d.FileName)
	if err != nil {
		return "upload.pdf"
	}
	return name
}
