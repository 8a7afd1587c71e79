package storage

import (
	"fmt"
	"slices"
	"strings"
	"unicode"

	"github.com/minio/minio-go/v7/pkg/s3utils"
)

// ValidationResult is returned by the Validate* helpers. They never fail
// with a Go error.
type ValidationResult struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

func valid() ValidationResult { return ValidationResult{Valid: true} }

func invalid(format string, args ...any) ValidationResult {
	return ValidationResult{Error: fmt.Sprintf(format, args...)}
}

// ValidateKey checks object key syntax: non-empty UTF-8 up to 1024 bytes,
// no leading or trailing slash, no empty, "." or ".." segments and no
// control characters.
func ValidateKey(key string) ValidationResult {
	if err := s3utils.CheckValidObjectName(key); err != nil {
		return invalid("invalid key: %v", err)
	}
	switch {
	case strings.HasPrefix(key, "/"):
		return invalid("key cannot start with a forward slash")
	case strings.HasSuffix(key, "/"):
		return invalid("key cannot end with a forward slash")
	case strings.Contains(key, "//"):
		return invalid("key cannot contain consecutive forward slashes")
	}
	for _, segment := range strings.Split(key, "/") {
		if segment == "." || segment == ".." {
			return invalid("key cannot contain %q segments", segment)
		}
	}
	if strings.IndexFunc(key, unicode.IsControl) >= 0 {
		return invalid("key cannot contain control characters")
	}
	return valid()
}

// ValidateBucketName applies the S3 bucket naming rules: 3-63 characters,
// lowercase letters, digits, dots and hyphens, not formatted as an IP address.
func ValidateBucketName(name string) ValidationResult {
	if err := s3utils.CheckValidBucketNameStrict(name); err != nil {
		return invalid("invalid bucket name %q: %v", name, err)
	}
	return valid()
}

// ValidateFileSize rejects sizes above maxSize bytes.
func ValidateFileSize(size, maxSize int64) ValidationResult {
	if size < 0 {
		return invalid("file size cannot be negative")
	}
	if size > maxSize {
		return invalid("file size %s exceeds maximum allowed size of %s", FormatFileSize(size), FormatFileSize(maxSize))
	}
	return valid()
}

// ValidateFileType checks a filename against allowed entries. Entries may be
// exact MIME types ("application/pdf"), wildcards ("image/*") or extensions
// (".pdf"). An empty list allows everything.
func ValidateFileType(filename string, allowed []string) ValidationResult {
	if len(allowed) == 0 {
		return valid()
	}
	mimeType := GetMimeType(filename)
	ext := FileExtension(filename)
	for _, a := range allowed {
		a = strings.ToLower(strings.TrimSpace(a))
		switch {
		case strings.HasPrefix(a, "."):
			if a == ext {
				return valid()
			}
		case strings.HasSuffix(a, "/*"):
			if strings.HasPrefix(mimeType, strings.TrimSuffix(a, "*")) {
				return valid()
			}
		case a == mimeType:
			return valid()
		}
	}
	return invalid("file type %s is not allowed (allowed: %s)", mimeType, strings.Join(allowed, ", "))
}

// FileDescriptor describes a file for batch validation.
type FileDescriptor struct {
	Name string
	Size int64
}

type BatchValidationOptions struct {
	MaxSize      int64    // bytes, 0 disables the check
	AllowedTypes []string // see ValidateFileType
	MaxFiles     int      // 0 disables the check
}

type BatchValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateBatchFiles validates every file and the batch size, collecting all
// problems instead of stopping at the first.
func ValidateBatchFiles(files []FileDescriptor, opts BatchValidationOptions) BatchValidationResult {
	var errs []string
	if opts.MaxFiles > 0 && len(files) > opts.MaxFiles {
		errs = append(errs, fmt.Sprintf("too many files: %d (maximum %d)", len(files), opts.MaxFiles))
	}
	for _, f := range files {
		checks := []ValidationResult{ValidateFileType(f.Name, opts.AllowedTypes)}
		if opts.MaxSize > 0 {
			checks = append(checks, ValidateFileSize(f.Size, opts.MaxSize))
		}
		for _, c := range checks {
			if !c.Valid {
				errs = append(errs, f.Name+": "+c.Error)
			}
		}
	}
	return BatchValidationResult{Valid: len(errs) == 0, Errors: slices.Clip(errs)}
}
