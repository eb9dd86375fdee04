package common

import (
	"github.com/google/uuid"
)

// NewUploadID generates a unique identifier for one upload request.
// It names the transient file on disk and correlates log lines for the request.
func NewUploadID() string {
	return uuid.New().String()
}
