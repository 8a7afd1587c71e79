package utils

import (
	"slices"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// SlugOption configures Slugify.
type SlugOption func(*slugConfig)

type slugConfig struct {
	maxLength int
	separator string
	suffixLen int
}

// SlugMaxLength caps the slug at n runes, suffix included.
func SlugMaxLength(n int) SlugOption {
	return func(c *slugConfig) { c.maxLength = n }
}

// SlugSeparator replaces the default "-" separator.
func SlugSeparator(sep string) SlugOption {
	return func(c *slugConfig) { c.separator = sep }
}

// SlugSuffix appends n random lowercase alphanumeric characters.
func SlugSuffix(n int) SlugOption {
	return func(c *slugConfig) { c.suffixLen = n }
}

// Letters that do not decompose under NFKD.
var slugFolds = map[rune]string{
	'ß': "ss", 'æ': "ae", 'œ': "oe", 'ø': "o", 'ł': "l", 'đ': "d", 'þ': "th",
}

const slugSuffixAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Slugify turns s into a lowercase URL-safe slug: "Crème Brûlée!" becomes
// "creme-brulee". Runs of other characters collapse into one separator.
func Slugify(s string, opts ...SlugOption) string {
	cfg := slugConfig{separator: "-"}
	for _, opt := range opts {
		opt(&cfg)
	}

	var b strings.Builder
	pendingSep := false
	for _, r := range norm.NFKD.String(strings.ToLower(s)) {
		switch {
		case unicode.Is(unicode.Mn, r):
			continue
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			if pendingSep && b.Len() > 0 {
				b.WriteString(cfg.separator)
			}
			pendingSep = false
			b.WriteRune(r)
		default:
			if fold, ok := slugFolds[r]; ok {
				if pendingSep && b.Len() > 0 {
					b.WriteString(cfg.separator)
				}
				pendingSep = false
				b.WriteString(fold)
				continue
			}
			pendingSep = true
		}
	}
	slug := b.String()

	suffix := ""
	if cfg.suffixLen > 0 {
		suffix = randomString(slugSuffixAlphabet, cfg.suffixLen)
	}
	if cfg.maxLength > 0 {
		room := cfg.maxLength
		if suffix != "" {
			room -= len(suffix) + len(cfg.separator)
		}
		if room <= 0 {
			slug = ""
		} else if len(slug) > room {
			slug = strings.TrimRight(slug[:room], cfg.separator)
		}
	}

	switch {
	case suffix == "":
		return slug
	case slug == "":
		return suffix
	}
	return slug + cfg.separator + suffix
}

// IsReservedSlug reports whether slug is one of ReservedSlugs.
func IsReservedSlug(slug string) bool {
	return slices.Contains(ReservedSlugs, strings.ToLower(strings.TrimSpace(slug)))
}
