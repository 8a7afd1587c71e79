package storage

import (
	"crypto/rand"
	"fmt"
	"io"
	"path"
	"strings"
	"time"
)

// NormalizePath converts backslashes to forward slashes, collapses repeated
// separators and strips leading and trailing slashes.
func NormalizePath(p string) string {
	p = strings.ReplaceAll(p, `\`, "/")
	parts := strings.Split(p, "/")
	out := parts[:0]
	for _, part := range parts {
		if part != "" {
			out = append(out, part)
		}
	}
	return strings.Join(out, "/")
}

// JoinPath joins path segments with single slashes, skipping empty ones.
func JoinPath(parts ...string) string {
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if p := NormalizePath(part); p != "" {
			segments = append(segments, p)
		}
	}
	return strings.Join(segments, "/")
}

// ParentPath returns the directory part of p, or "" for top-level names.
func ParentPath(p string) string {
	p = NormalizePath(p)
	i := strings.LastIndex(p, "/")
	if i < 0 {
		return ""
	}
	return p[:i]
}

// FileName returns the last segment of p.
func FileName(p string) string {
	p = NormalizePath(p)
	return p[strings.LastIndex(p, "/")+1:]
}

// FileExtension returns the lower-cased extension including the dot.
func FileExtension(filename string) string {
	return strings.ToLower(path.Ext(FileName(filename)))
}

// folderPrefix turns a folder path into its key prefix ("a/b" -> "a/b/").
func folderPrefix(p string) string {
	p = NormalizePath(p)
	if p == "" {
		return ""
	}
	return p + "/"
}

const keyAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

func randomSuffix(n int) string {
	// crypto/rand.Reader does not fail on supported platforms since Go 1.24.
	s, _ := sampleAlphabet(rand.Reader, keyAlphabet, n)
	return s
}

// sampleAlphabet draws n uniformly distributed symbols from alphabet. Bytes
// at or above the largest multiple of len(alphabet) are discarded.
func sampleAlphabet(r io.Reader, alphabet string, n int) (string, error) {
	limit := 256 - 256%len(alphabet)
	out := make([]byte, 0, n)
	buf := make([]byte, n)
	for len(out) < n {
		if _, err := io.ReadFull(r, buf); err != nil {
			return string(out), err
		}
		for _, c := range buf {
			if int(c) < limit && len(out) < n {
				out = append(out, alphabet[int(c)%len(alphabet)])
			}
		}
	}
	return string(out), nil
}

// GenerateKey builds a collision-resistant object key:
// prefix/stem-<unix millis>-<6 random chars>.ext
//
// The stem is sanitized and the extension lower-cased.
func GenerateKey(filename, prefix string) string {
	return GenerateUniqueKey(filename, prefix, true)
}

// GenerateUniqueKey works like GenerateKey; without timestamp it returns
// prefix/sanitized-filename.
func GenerateUniqueKey(filename, prefix string, withTimestamp bool) string {
	name := FileName(filename)
	ext := FileExtension(name)
	stem := SanitizeFileName(strings.TrimSuffix(name, path.Ext(name)))
	if stem == "" {
		stem = "file"
	}

	if !withTimestamp {
		return JoinPath(prefix, stem+ext)
	}
	return JoinPath(prefix, fmt.Sprintf("%s-%d-%s%s", stem, time.Now().UnixMilli(), randomSuffix(6), ext))
}

// GenerateBatchKeys calls GenerateKey for every filename.
func GenerateBatchKeys(filenames []string, prefix string) []string {
	keys := make([]string, len(filenames))
	for i, name := range filenames {
		keys[i] = GenerateKey(name, prefix)
	}
	return keys
}
