package storage

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"hash"
	"math"
	"regexp"
	"strings"
	"time"

	"golang.org/x/crypto/blake2b"
)

var sizeUnits = []string{"Bytes", "KB", "MB", "GB", "TB", "PB"}

// FormatFileSize renders bytes with 1024-based units and a fixed number of
// decimals (2 by default): 1024 -> "1.00 KB", 1536 with 0 decimals -> "2 KB".
// Zero is always "0 Bytes".
func FormatFileSize(bytes int64, decimals ...int) string {
	if bytes == 0 {
		return "0 Bytes"
	}
	d := 2
	if len(decimals) > 0 && decimals[0] >= 0 {
		d = decimals[0]
	}

	value := float64(bytes)
	i := 0
	for math.Abs(value) >= 1024 && i < len(sizeUnits)-1 {
		value /= 1024
		i++
	}
	if i == 0 {
		return fmt.Sprintf("%d Bytes", bytes)
	}
	scale := math.Pow10(d)
	return fmt.Sprintf("%.*f %s", d, math.Round(value*scale)/scale, sizeUnits[i])
}

var (
	unsafeFileChars = regexp.MustCompile(`[^a-z0-9._-]`)
	repeatedUnders  = regexp.MustCompile(`_+`)
)

// SanitizeFileName lower-cases a file name and replaces everything except
// letters, digits, dots, hyphens and underscores with a single underscore.
// Directory components are dropped.
func SanitizeFileName(name string) string {
	name = strings.ToLower(FileName(name))
	name = unsafeFileChars.ReplaceAllString(name, "_")
	return repeatedUnders.ReplaceAllString(name, "_")
}

// DefaultCacheControl caches public assets for one year.
const DefaultCacheControl = "public, max-age=31536000"

// CacheControl builds a Cache-Control header value.
func CacheControl(maxAge time.Duration, public bool) string {
	visibility := "private"
	if public {
		visibility = "public"
	}
	return fmt.Sprintf("%s, max-age=%d", visibility, int64(maxAge.Seconds()))
}

// ContentDisposition builds a Content-Disposition header value. Quotes and
// backslashes are removed from the file name. Any disposition other than
// "inline" is treated as "attachment".
func ContentDisposition(filename, disposition string) string {
	if disposition != "inline" {
		disposition = "attachment"
	}
	filename = strings.NewReplacer(`"`, "", `\`, "").Replace(FileName(filename))
	return fmt.Sprintf(`%s; filename="%s"`, disposition, filename)
}

// HashAlgorithm names a FileHash algorithm.
type HashAlgorithm string

const (
	HashMD5     HashAlgorithm = "md5"
	HashSHA1    HashAlgorithm = "sha1"
	HashSHA256  HashAlgorithm = "sha256"
	HashSHA512  HashAlgorithm = "sha512"
	HashBLAKE2b HashAlgorithm = "blake2b"
)

// FileHash returns the hex digest of data.
func FileHash(data []byte, algorithm HashAlgorithm) (string, error) {
	var h hash.Hash
	switch algorithm {
	case HashMD5:
		h = md5.New()
	case HashSHA1:
		h = sha1.New()
	case HashSHA256, "":
		h = sha256.New()
	case HashSHA512:
		h = sha512.New()
	case HashBLAKE2b:
		var err error
		if h, err = blake2b.New256(nil); err != nil {
			return "", err
		}
	default:
		return "", fmt.Errorf("%w: %s", ErrUnsupportedHash, algorithm)
	}
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil)), nil
}

// ToBase64 encodes data with standard base64.
func ToBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// ToDataURL encodes data as a data URL. The MIME type is required.
func ToDataURL(data []byte, mimeType string) (string, error) {
	if strings.TrimSpace(mimeType) == "" {
		return "", ErrMIMETypeRequired
	}
	return "data:" + mimeType + ";base64," + ToBase64(data), nil
}

// FromBase64 decodes plain base64 or a base64 data URL. The MIME type is
// returned for data URLs and empty otherwise.
func FromBase64(s string) (data []byte, mimeType string, err error) {
	payload := s
	if rest, ok := strings.CutPrefix(s, "data:"); ok {
		header, body, found := strings.Cut(rest, ",")
		if !found || !strings.HasSuffix(header, ";base64") {
			return nil, "", fmt.Errorf("%w: malformed data URL", ErrInvalidBase64)
		}
		mimeType = strings.TrimSuffix(header, ";base64")
		payload = body
	}
	data, err = base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
	}
	return data, mimeType, nil
}
