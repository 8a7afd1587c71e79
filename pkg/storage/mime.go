package storage

import (
	"bytes"
	_ "embed"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/gabriel-vasile/mimetype"
	"gopkg.in/yaml.v3"
)

// DefaultContentType is used when a type cannot be determined.
const DefaultContentType = "application/octet-stream"

//go:embed mimetypes.yaml
var mimeTypesYAML []byte

type mimeTable struct {
	Types     map[string]string `yaml:"types"`
	Documents []string          `yaml:"documents"`
}

var loadMimeTable = sync.OnceValue(func() mimeTable {
	var t mimeTable
	if err := yaml.Unmarshal(mimeTypesYAML, &t); err != nil {
		panic(fmt.Sprintf("storage: invalid embedded MIME table: %v", err))
	}
	return t
})

// GetMimeType looks the MIME type up by extension, case-insensitively.
// Unknown extensions yield DefaultContentType.
func GetMimeType(filename string) string {
	ext := strings.TrimPrefix(FileExtension(filename), ".")
	if ext == "" {
		return DefaultContentType
	}
	if t, ok := loadMimeTable().Types[ext]; ok {
		return t
	}
	return DefaultContentType
}

var (
	pdfMagic  = []byte("%PDF-")
	jpegMagic = []byte{0xFF, 0xD8, 0xFF}
	pngMagic  = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1A, '\n'}
)

// DetectMimeFromContent inspects the leading bytes of data. PDF, JPEG and
// PNG signatures are matched directly; other content is sniffed with
// mimetype. Empty input yields DefaultContentType.
func DetectMimeFromContent(data []byte) string {
	switch {
	case len(data) == 0:
		return DefaultContentType
	case bytes.HasPrefix(data, pdfMagic):
		return "application/pdf"
	case bytes.HasPrefix(data, jpegMagic):
		return "image/jpeg"
	case bytes.HasPrefix(data, pngMagic):
		return "image/png"
	}
	detected, _, _ := strings.Cut(mimetype.Detect(data).String(), ";")
	if detected == "" {
		return DefaultContentType
	}
	return detected
}

// IsImageFile reports whether filename has an image extension.
func IsImageFile(filename string) bool {
	return strings.HasPrefix(GetMimeType(filename), "image/")
}

func IsVideoFile(filename string) bool {
	return strings.HasPrefix(GetMimeType(filename), "video/")
}

func IsAudioFile(filename string) bool {
	return strings.HasPrefix(GetMimeType(filename), "audio/")
}

// IsDocumentFile reports whether filename is an office, PDF or text document.
func IsDocumentFile(filename string) bool {
	return slices.Contains(loadMimeTable().Documents, GetMimeType(filename))
}
