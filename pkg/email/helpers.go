package email

import (
	"context"
	"errors"
	"net/url"
	"regexp"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"

	"github.com/pelatform/kit/pkg/storage"
)

// RenderTemplate renders a templ component to an HTML string.
func RenderTemplate(ctx context.Context, tpl templ.Component) (string, error) {
	if tpl == nil {
		return "", errors.New("nil template")
	}
	var sb strings.Builder
	if err := tpl.Render(ctx, &sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}

// HTMLToText strips markup from an HTML document. Every tag becomes a word
// break and entities are decoded. Script, style and title contents are
// dropped up to the opening body tag, so a document with unclosed head
// elements still yields its body text. Whitespace is collapsed.
func HTMLToText(s string) string {
	var sb strings.Builder
	z := html.NewTokenizer(strings.NewReader(s))
	skip := 0
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(sb.String()), " ")
		case html.TextToken:
			if skip == 0 {
				sb.Write(z.Text())
			}
		case html.StartTagToken:
			switch name, _ := z.TagName(); {
			case isRawTextTag(name):
				skip++
			case string(name) == "body":
				skip = 0
			}
			sb.WriteByte(' ')
		case html.EndTagToken:
			if name, _ := z.TagName(); isRawTextTag(name) && skip > 0 {
				skip--
			}
			sb.WriteByte(' ')
		case html.SelfClosingTagToken:
			sb.WriteByte(' ')
		}
	}
}

func isRawTextTag(name []byte) bool {
	n := string(name)
	return n == "script" || n == "style" || n == "title"
}

var emailPattern = regexp.MustCompile(
	`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9\-]*[a-zA-Z0-9])?)*\.[a-zA-Z]{2,}$`,
)

// IsValidEmail checks address syntax. Surrounding whitespace makes the
// address invalid.
func IsValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// ValidateEmails reports whether every address is valid after trimming.
// An empty list is not valid.
func ValidateEmails(emails ...string) bool {
	if len(emails) == 0 {
		return false
	}
	for _, e := range emails {
		if !IsValidEmail(strings.TrimSpace(e)) {
			return false
		}
	}
	return true
}

// FilterValidEmails keeps the valid addresses, trimmed, in input order.
func FilterValidEmails(emails []string) []string {
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		if e = strings.TrimSpace(e); IsValidEmail(e) {
			out = append(out, e)
		}
	}
	return out
}

// FormatAddress renders "Name <email>", or the bare email without a name.
func FormatAddress(name, email string) string {
	if name == "" {
		return email
	}
	return name + " <" + email + ">"
}

var (
	angleAddr   = regexp.MustCompile(`<([^>]+)>`)
	displayName = regexp.MustCompile(`^\s*"?([^"<]*?)"?\s*<`)
)

// ExtractEmail returns the address part of "Name <email>", or the trimmed
// input when there are no angle brackets.
func ExtractEmail(addr string) string {
	if m := angleAddr.FindStringSubmatch(addr); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(addr)
}

// ExtractDisplayName returns the name part of "Name <email>" without quotes.
func ExtractDisplayName(addr string) string {
	if m := displayName.FindStringSubmatch(addr); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

var htmlPolicy = bluemonday.UGCPolicy()

// SanitizeHTML removes scripts, event handlers and javascript: URLs while
// keeping ordinary formatting markup.
func SanitizeHTML(s string) string {
	return htmlPolicy.Sanitize(s)
}

// TruncateText shortens text to at most maxLen runes including the ellipsis
// ("..." by default).
func TruncateText(text string, maxLen int, ellipsis ...string) string {
	suffix := "..."
	if len(ellipsis) > 0 {
		suffix = ellipsis[0]
	}
	r := []rune(text)
	if len(r) <= maxLen {
		return text
	}
	keep := maxLen - len([]rune(suffix))
	if keep < 0 {
		keep = 0
	}
	return string(r[:keep]) + suffix
}

// PreviewText derives inbox preview text from an HTML body.
func PreviewText(htmlBody string, maxLen int) string {
	return TruncateText(HTMLToText(htmlBody), maxLen)
}

// UnsubscribeLink appends the recipient and an optional token to baseURL.
func UnsubscribeLink(baseURL, email string, token ...string) string {
	params := url.Values{"email": {email}}
	if len(token) > 0 && token[0] != "" {
		params.Set("token", token[0])
	}
	return withQuery(baseURL, params)
}

// TrackingPixelURL builds an open-tracking pixel URL. The t parameter is a
// cache-busting millisecond timestamp.
func TrackingPixelURL(baseURL, emailID, recipientID string) string {
	params := url.Values{
		"email_id":     {emailID},
		"recipient_id": {recipientID},
		"t":            {strconv.FormatInt(time.Now().UnixMilli(), 10)},
	}
	return withQuery(baseURL, params)
}

// UTMParams are the campaign parameters added by AddUTMParams. Empty fields
// are skipped.
type UTMParams struct {
	Source   string
	Medium   string
	Campaign string
	Term     string
	Content  string
}

// AddUTMParams adds utm_* parameters to rawURL, keeping existing ones.
func AddUTMParams(rawURL string, p UTMParams) string {
	params := url.Values{}
	for name, v := range map[string]string{
		"utm_source":   p.Source,
		"utm_medium":   p.Medium,
		"utm_campaign": p.Campaign,
		"utm_term":     p.Term,
		"utm_content":  p.Content,
	} {
		if v != "" {
			params.Set(name, v)
		}
	}
	return withQuery(rawURL, params)
}

func withQuery(rawURL string, params url.Values) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		sep := "?"
		if strings.Contains(rawURL, "?") {
			sep = "&"
		}
		return rawURL + sep + params.Encode()
	}
	q := u.Query()
	for name, vs := range params {
		q[name] = vs
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseEmailList splits on commas and semicolons, trimming entries and
// dropping empty ones.
func ParseEmailList(s string) []string {
	fields := strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' })
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// DeduplicateEmails removes case-insensitive duplicates, keeping the first
// spelling.
func DeduplicateEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	out := make([]string, 0, len(emails))
	for _, e := range emails {
		key := strings.ToLower(strings.TrimSpace(e))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, e)
	}
	return out
}

// DefaultChunkSize is the batch size used by ChunkEmails.
const DefaultChunkSize = 100

// ChunkEmails splits emails into batches of size (DefaultChunkSize when
// omitted or not positive). The last batch may be shorter. Batches share the
// input's backing array but are capped, so appending to one never overwrites
// the next.
func ChunkEmails(emails []string, size ...int) [][]string {
	n := DefaultChunkSize
	if len(size) > 0 && size[0] > 0 {
		n = size[0]
	}
	chunks := make([][]string, 0, (len(emails)+n-1)/n)
	for c := range slices.Chunk(emails, n) {
		chunks = append(chunks, c)
	}
	return chunks
}

// GetMimeType looks an attachment's MIME type up by extension.
func GetMimeType(filename string) string {
	return storage.GetMimeType(filename)
}

// FormatFileSize renders a byte count with fixed decimals ("1.00 KB").
func FormatFileSize(bytes int64, decimals ...int) string {
	return storage.FormatFileSize(bytes, decimals...)
}
