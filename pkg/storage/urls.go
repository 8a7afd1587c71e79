package storage

import (
	"fmt"
	"net/url"
	"strings"
)

// URLInfo is the location encoded in a storage URL.
type URLInfo struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
	Region string `json:"region,omitempty"`
}

// ParseStorageURL extracts bucket, key and region from a storage URL.
// Supported shapes:
//
//	https://bucket.s3.region.amazonaws.com/key   (virtual-hosted)
//	https://s3.region.amazonaws.com/bucket/key   (path-style)
//	https://endpoint.example.com/bucket/key      (custom endpoint)
//	s3://bucket/key
func ParseStorageURL(raw string) (URLInfo, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Host == "" {
		return URLInfo{}, fmt.Errorf("%w: %q", ErrInvalidURL, raw)
	}

	host := strings.ToLower(u.Hostname())
	p := NormalizePath(u.Path)

	if u.Scheme == "s3" {
		return URLInfo{Bucket: host, Key: p}, nil
	}

	if bucket, region, ok := virtualHostedBucket(host); ok {
		return URLInfo{Bucket: bucket, Key: p, Region: region}, nil
	}

	bucket, key, _ := strings.Cut(p, "/")
	if bucket == "" {
		return URLInfo{}, fmt.Errorf("%w: no bucket in %q", ErrInvalidURL, raw)
	}
	return URLInfo{Bucket: bucket, Key: key, Region: pathStyleRegion(host)}, nil
}

func virtualHostedBucket(host string) (bucket, region string, ok bool) {
	for _, marker := range []string{".s3.", ".s3-"} {
		if i := strings.Index(host, marker); i > 0 {
			return host[:i], regionLabel(host[i+len(marker):]), true
		}
	}
	return "", "", false
}

func pathStyleRegion(host string) string {
	if strings.HasPrefix(host, "s3.") || strings.HasPrefix(host, "s3-") {
		return regionLabel(host[3:])
	}
	return ""
}

// regionLabel returns the region label of rest, the host after "s3." or
// "s3-". Dualstack and website labels are skipped; the provider domain
// means no region.
func regionLabel(rest string) string {
	rest = strings.TrimPrefix(rest, "dualstack.")
	rest = strings.TrimPrefix(rest, "website.")
	rest = strings.TrimPrefix(rest, "website-")
	label, _, _ := strings.Cut(rest, ".")
	if label == "amazonaws" {
		return ""
	}
	return label
}

// BuildPublicURL joins a base URL, bucket and key with single slashes.
func BuildPublicURL(base, bucket, key string) string {
	parts := []string{strings.TrimRight(base, "/")}
	if b := strings.Trim(bucket, "/"); b != "" {
		parts = append(parts, b)
	}
	if k := strings.Trim(key, "/"); k != "" {
		parts = append(parts, k)
	}
	return strings.Join(parts, "/")
}

// s3PublicURL applies the public URL precedence: explicit public base,
// then custom endpoint, then the AWS virtual-hosted pattern.
func s3PublicURL(cfg S3Config, key string) string {
	switch {
	case cfg.PublicURL != "":
		return BuildPublicURL(cfg.PublicURL, cfg.Bucket, key)
	case cfg.Endpoint != "":
		return BuildPublicURL(cfg.Endpoint, cfg.Bucket, key)
	default:
		return BuildPublicURL(fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region), "", key)
	}
}

// copySource encodes bucket/key for CopyObject.
func copySource(bucket, key string) string {
	return url.PathEscape(bucket + "/" + key)
}
