package storage

import "errors"

var (
	// Configuration errors
	ErrNoConfig            = errors.New("no storage configuration found")
	ErrInvalidConfig       = errors.New("invalid storage configuration")
	ErrFailedToLoadConfig  = errors.New("failed to initialize storage client")
	ErrUnsupportedProvider = errors.New("unsupported storage provider")

	// Input validation errors
	ErrInvalidKey         = errors.New("invalid object key")
	ErrInvalidPath        = errors.New("invalid folder path")
	ErrInvalidURL         = errors.New("invalid storage URL")
	ErrMIMETypeRequired   = errors.New("MIME type is required")
	ErrInvalidBase64      = errors.New("invalid base64 data")
	ErrUnsupportedHash    = errors.New("unsupported hash algorithm")
	ErrUnsupportedPresign = errors.New("unsupported presign operation")
	ErrSamePath           = errors.New("source and destination are the same")

	// Object errors
	ErrFileNotFound    = errors.New("file not found")
	ErrFolderNotFound  = errors.New("folder not found")
	ErrFailedToRead    = errors.New("failed to read object body")
	ErrDownloadFailed  = errors.New("download failed")
	ErrPartialDelete   = errors.New("some objects could not be deleted")
	ErrMoveIncomplete  = errors.New("object copied but source could not be deleted")
	ErrNotImplemented  = errors.New("operation not implemented")
	ErrPresignDisabled = errors.New("presigning is not available for this client")

	// S3 error classification
	ErrBucketNotFound     = errors.New("bucket not found")
	ErrAccessDenied       = errors.New("access denied")
	ErrRequestTimeout     = errors.New("request timed out")
	ErrServiceUnavailable = errors.New("service temporarily unavailable")
	ErrInvalidObjectState = errors.New("invalid object state")

	// Context errors
	ErrOperationTimeout  = errors.New("operation timed out")
	ErrOperationCanceled = errors.New("operation canceled")
)
