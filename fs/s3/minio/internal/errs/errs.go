// Package errs provides error handling utilities for the minio client.
package errs

import (
	"fmt"
	"io/fs"
	"net/http"

	"github.com/minio/minio-go/v7"
)

// Translate converts MinIO errors to stdlib fs errors. The original error
// stays reachable through errors.Is and errors.As.
func Translate(err error) error {
	if err == nil {
		return nil
	}

	// Check MinIO error responses
	errResp := minio.ToErrorResponse(err)

	switch errResp.Code {
	case "NoSuchKey", "NoSuchBucket", "NotFound":
		return fmt.Errorf("minio: %w: %w", fs.ErrNotExist, err)
	case "AccessDenied":
		return fmt.Errorf("minio: %w: %w", fs.ErrPermission, err)
	}

	switch errResp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("minio: %w: %w", fs.ErrNotExist, err)
	case http.StatusForbidden:
		return fmt.Errorf("minio: %w: %w", fs.ErrPermission, err)
	}

	// Return wrapped error with context for other errors
	return fmt.Errorf("minio: %w", err)
}
