package utils

import (
	"math"
	"net/url"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

const ellipsis = "..."

// Casers carry state and must not be shared between goroutines.
func title(s string) string { return cases.Title(language.English).String(s) }
func lower(s string) string { return cases.Lower(language.English).String(s) }

// Capitalize upper-cases the first letter of every word.
func Capitalize(s string) string {
	if s == "" {
		return s
	}
	return title(s)
}

// Truncate shortens s to at most n runes, ending with "..." when cut.
func Truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	if n <= len(ellipsis) {
		return string(r[:max(n, 0)])
	}
	return string(r[:n-len(ellipsis)]) + ellipsis
}

// SmartTruncate shortens a URL-like string to n runes while keeping it
// recognizable. A short host keeps its full name and the path is cut in the
// middle. A long host with a short path keeps the TLD and the whole path.
// Anything else is cut in the middle.
func SmartTruncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	host, path, ok := strings.Cut(s, "/")
	if !ok {
		return middleTruncate(s, n)
	}
	path = "/" + path
	hostLen, pathLen := utf8.RuneCountInString(host), utf8.RuneCountInString(path)

	switch {
	case hostLen <= n/2:
		budget := n - hostLen - len(ellipsis)
		return host + middleTruncate(path, budget+len(ellipsis))
	case pathLen < n/2:
		tld := host
		if i := strings.LastIndex(host, "."); i >= 0 {
			tld = host[i+1:]
		}
		budget := n - len(ellipsis) - utf8.RuneCountInString(tld) - pathLen
		if budget > 0 {
			return string([]rune(host)[:budget]) + ellipsis + tld + path
		}
	}
	return middleTruncate(s, n)
}

func middleTruncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	keep := n - len(ellipsis)
	if keep <= 0 {
		return string(r[:max(n, 0)])
	}
	front := (keep + 1) / 2
	back := keep / 2
	return string(r[:front]) + ellipsis + string(r[len(r)-back:])
}

// CurrencyOptions control CurrencyFormatter. The zero value formats whole
// US dollars.
type CurrencyOptions struct {
	Currency              string
	MinimumFractionDigits int
	MaximumFractionDigits int
}

var currencySymbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"IDR": "Rp",
	"AUD": "A$",
	"CAD": "CA$",
}

// CurrencyFormatter formats amount with a currency symbol and thousands
// separators, e.g. 1000 -> "$1,000".
func CurrencyFormatter(amount float64, opts ...CurrencyOptions) string {
	var o CurrencyOptions
	if len(opts) > 0 {
		o = opts[0]
	}
	code := strings.ToUpper(o.Currency)
	if code == "" {
		code = "USD"
	}
	maxDigits := max(o.MaximumFractionDigits, o.MinimumFractionDigits)

	sign := ""
	if amount < 0 {
		sign = "-"
		amount = -amount
	}
	scale := math.Pow10(maxDigits)
	num := humanize.CommafWithDigits(math.Round(amount*scale)/scale, maxDigits)
	if o.MinimumFractionDigits > 0 {
		whole, frac, _ := strings.Cut(num, ".")
		if pad := o.MinimumFractionDigits - len(frac); pad > 0 {
			frac += strings.Repeat("0", pad)
		}
		num = whole + "." + frac
	}

	symbol, ok := currencySymbols[code]
	if !ok {
		symbol = code + " "
	}
	return sign + symbol + num
}

// NFormatterOptions control NFormatter.
type NFormatterOptions struct {
	// Digits is the number of fraction digits kept. Defaults to 1.
	Digits int
	// Full disables compaction and only groups thousands.
	Full bool
}

var compactUnits = []struct {
	value  float64
	symbol string
}{
	{1e18, "E"},
	{1e15, "P"},
	{1e12, "T"},
	{1e9, "G"},
	{1e6, "M"},
	{1e3, "K"},
}

// NFormatter compacts large numbers: 1500 -> "1.5K".
func NFormatter(n float64, opts ...NFormatterOptions) string {
	o := NFormatterOptions{Digits: 1}
	if len(opts) > 0 {
		o = opts[0]
		if o.Digits <= 0 {
			o.Digits = 1
		}
	}
	if o.Full {
		return humanize.CommafWithDigits(n, o.Digits)
	}
	abs := math.Abs(n)
	for _, u := range compactUnits {
		if abs >= u.value {
			return humanize.FtoaWithDigits(n/u.value, o.Digits) + u.symbol
		}
	}
	return humanize.FtoaWithDigits(n, o.Digits)
}

// GetInitials returns the upper-cased first letters of the words in name,
// at most limit of them. limit defaults to 2.
func GetInitials(name string, limit ...int) string {
	n := 2
	if len(limit) > 0 && limit[0] > 0 {
		n = limit[0]
	}
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		if n == 0 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		n--
	}
	return b.String()
}

// ToCamelCase converts snake_case, kebab-case and space separated words to
// camelCase. Input that is already camelCase is kept.
func ToCamelCase(s string) string {
	words := strings.FieldsFunc(s, func(r rune) bool {
		return r == '_' || r == '-' || unicode.IsSpace(r)
	})
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			r, size := utf8.DecodeRuneInString(w)
			b.WriteRune(unicode.ToLower(r))
			b.WriteString(w[size:])
			continue
		}
		b.WriteString(title(w))
	}
	return b.String()
}

// CombineWords joins words in prose form: "a, b and c".
func CombineWords(words []string) string {
	switch len(words) {
	case 0:
		return ""
	case 1:
		return words[0]
	}
	return strings.Join(words[:len(words)-1], ", ") + " and " + words[len(words)-1]
}

// NormalizeString applies NFKC normalization, drops invisible format
// characters such as the byte order mark, collapses whitespace and lower-cases.
func NormalizeString(s string) string {
	s = norm.NFKC.String(s)
	s = strings.Map(func(r rune) rune {
		if unicode.Is(unicode.Cf, r) {
			return -1
		}
		return r
	}, s)
	return lower(strings.Join(strings.Fields(s), " "))
}

// Pluralize returns word for a count of one, otherwise plural or word+"s".
func Pluralize(word string, count int, plural ...string) string {
	if count == 1 {
		return word
	}
	if len(plural) > 0 && plural[0] != "" {
		return plural[0]
	}
	return word + "s"
}

// RegexEscape quotes every regular expression metacharacter in s.
func RegexEscape(s string) string {
	return regexp.QuoteMeta(s)
}

// AssetsURL resolves path against base. Absolute URLs pass through and an
// empty path yields base.
func AssetsURL(path, base string) string {
	if path == "" {
		return base
	}
	if u, err := url.Parse(path); err == nil && u.IsAbs() {
		return path
	}
	return strings.TrimRight(base, "/") + "/" + strings.TrimLeft(path, "/")
}

// FlagBaseURL hosts the circular country flags used by FlagURL.
const FlagBaseURL = "https://hatscripts.github.io/circle-flags/flags"

// FlagURL returns the SVG flag for an ISO 3166-1 alpha-2 country code.
func FlagURL(countryCode string) string {
	return FlagBaseURL + "/" + strings.ToLower(strings.TrimSpace(countryCode)) + ".svg"
}
