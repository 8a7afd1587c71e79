package utils

import (
	"context"
	"net/http"
	"net/url"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var emailValidator = sync.OnceValue(func() *validator.Validate { return validator.New() })

// EmailDetails describes the parts of a validated address.
type EmailDetails struct {
	Local        string
	Domain       string
	IsDisposable bool
	IsBusiness   bool
}

// EmailValidation is the result of ValidateEmail.
type EmailValidation struct {
	IsValid    bool
	Normalized string
	Error      string
	Details    *EmailDetails
}

// ValidateEmail checks the address format and reports its normalized form
// and domain details.
func ValidateEmail(email string) EmailValidation {
	email = strings.TrimSpace(email)
	if email == "" {
		return EmailValidation{Error: "email is required"}
	}
	if err := emailValidator().Var(email, "email"); err != nil {
		return EmailValidation{Error: "invalid email format"}
	}
	normalized := NormalizeEmail(email)
	local, domain, _ := strings.Cut(normalized, "@")
	disposable := slices.Contains(disposableDomains, domain)
	return EmailValidation{
		IsValid:    true,
		Normalized: normalized,
		Details: &EmailDetails{
			Local:        local,
			Domain:       domain,
			IsDisposable: disposable,
			IsBusiness:   !disposable && !slices.Contains(freeEmailDomains, domain),
		},
	}
}

// NormalizeEmail trims and lower-cases email. Gmail addresses also lose the
// dots and "+tag" suffix of the local part.
func NormalizeEmail(email string) string {
	email = strings.ToLower(strings.TrimSpace(email))
	local, domain, ok := strings.Cut(email, "@")
	if !ok {
		return email
	}
	if domain == "gmail.com" || domain == "googlemail.com" {
		local, _, _ = strings.Cut(local, "+")
		local = strings.ReplaceAll(local, ".", "")
	}
	return local + "@" + domain
}

// EmailDomain returns the lower-cased domain of email, or "".
func EmailDomain(email string) string {
	i := strings.LastIndex(email, "@")
	if i < 0 {
		return ""
	}
	return strings.ToLower(strings.TrimSpace(email[i+1:]))
}

// IsDisposableEmail reports whether email belongs to a throwaway mailbox
// provider.
func IsDisposableEmail(email string) bool {
	return slices.Contains(disposableDomains, EmailDomain(email))
}

// IsBusinessEmail reports whether email is a valid address outside the free
// and disposable providers.
func IsBusinessEmail(email string) bool {
	v := ValidateEmail(email)
	return v.IsValid && v.Details.IsBusiness
}

var freeEmailDomains = []string{
	"aol.com",
	"gmail.com",
	"gmx.com",
	"googlemail.com",
	"hotmail.com",
	"icloud.com",
	"live.com",
	"mail.com",
	"me.com",
	"msn.com",
	"outlook.com",
	"proton.me",
	"protonmail.com",
	"yahoo.com",
	"yandex.com",
	"zoho.com",
}

var disposableDomains = []string{
	"10minutemail.com",
	"dispostable.com",
	"emailondeck.com",
	"fakeinbox.com",
	"getnada.com",
	"guerrillamail.com",
	"maildrop.cc",
	"mailinator.com",
	"mintemail.com",
	"sharklasers.com",
	"temp-mail.org",
	"tempmail.com",
	"throwawaymail.com",
	"trashmail.com",
	"yopmail.com",
}

// DeepEqual reports whether a and b are deeply equal, including nested maps
// and slices.
func DeepEqual(a, b any) bool {
	return reflect.DeepEqual(a, b)
}

// IframeCheck describes an IsIframeable request.
type IframeCheck struct {
	// URL is the page to embed.
	URL string
	// RequestDomain is the origin that wants to embed it.
	RequestDomain string
	// HTTPClient defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// IsIframeable fetches c.URL and reports whether its X-Frame-Options and
// Content-Security-Policy headers allow embedding from c.RequestDomain.
// Network errors count as not embeddable.
func IsIframeable(ctx context.Context, c IframeCheck) bool {
	if !IsValidURL(c.URL) {
		return false
	}
	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL, nil)
	if err != nil {
		return false
	}
	resp, err := client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()

	if csp := resp.Header.Get("Content-Security-Policy"); csp != "" {
		if ancestors, ok := frameAncestors(csp); ok {
			return ancestorsAllow(ancestors, c.RequestDomain)
		}
	}
	switch strings.ToUpper(strings.TrimSpace(resp.Header.Get("X-Frame-Options"))) {
	case "DENY", "SAMEORIGIN":
		return false
	}
	return true
}

func frameAncestors(csp string) ([]string, bool) {
	for _, directive := range strings.Split(csp, ";") {
		fields := strings.Fields(directive)
		if len(fields) > 0 && strings.EqualFold(fields[0], "frame-ancestors") {
			return fields[1:], true
		}
	}
	return nil, false
}

func ancestorsAllow(sources []string, origin string) bool {
	host := origin
	if u, ok := parseAbsolute(origin); ok {
		host = u.Host
	}
	for _, src := range sources {
		switch {
		case src == "*":
			return true
		case src == "'none'" || src == "'self'":
			continue
		}
		srcHost := src
		if u, err := url.Parse(src); err == nil && u.Host != "" {
			srcHost = u.Host
		}
		if strings.EqualFold(srcHost, host) {
			return true
		}
		if wildcard, ok := strings.CutPrefix(srcHost, "*."); ok && strings.HasSuffix(strings.ToLower(host), "."+strings.ToLower(wildcard)) {
			return true
		}
	}
	return false
}
