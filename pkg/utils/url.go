package utils

import (
	"net/url"
	"strings"
)

// UTMKeys are the query parameters treated as UTM tracking parameters.
var UTMKeys = []string{
	"utm_source",
	"utm_medium",
	"utm_campaign",
	"utm_term",
	"utm_content",
	"ref",
}

// parseAbsolute accepts only URLs with a scheme and a host.
func parseAbsolute(raw string) (*url.URL, bool) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, false
	}
	return u, true
}

// IsValidURL reports whether raw is an absolute URL with a host.
func IsValidURL(raw string) bool {
	_, ok := parseAbsolute(raw)
	return ok
}

// SearchParams returns the query parameters of raw. Repeated keys keep the
// last value. Invalid URLs yield an empty map.
func SearchParams(raw string) map[string]string {
	out := map[string]string{}
	u, ok := parseAbsolute(raw)
	if !ok {
		return out
	}
	for k, v := range u.Query() {
		out[k] = v[len(v)-1]
	}
	return out
}

// SearchParamsWithArray returns every value of every query parameter.
func SearchParamsWithArray(raw string) map[string][]string {
	out := map[string][]string{}
	u, ok := parseAbsolute(raw)
	if !ok {
		return out
	}
	for k, v := range u.Query() {
		out[k] = v
	}
	return out
}

// ParamsFromURL is SearchParams without empty values.
func ParamsFromURL(raw string) map[string]string {
	out := SearchParams(raw)
	for k, v := range out {
		if v == "" {
			delete(out, k)
		}
	}
	return out
}

// ConstructURLFromUTMParams sets each parameter of params on raw. Empty
// values remove the parameter and "+" in a value reads as a space. Invalid
// URLs yield "".
func ConstructURLFromUTMParams(raw string, params map[string]string) string {
	u, ok := parseAbsolute(raw)
	if !ok {
		return ""
	}
	q := u.Query()
	for k, v := range params {
		v = strings.TrimSpace(strings.ReplaceAll(v, "+", " "))
		if v == "" {
			q.Del(k)
			continue
		}
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// URLWithoutUTMParams strips the UTMKeys from raw. Invalid input is returned
// unchanged.
func URLWithoutUTMParams(raw string) string {
	u, ok := parseAbsolute(raw)
	if !ok {
		return raw
	}
	q := u.Query()
	for _, k := range UTMKeys {
		q.Del(k)
	}
	u.RawQuery = q.Encode()
	if u.Path == "" {
		u.Path = "/"
	}
	return u.String()
}

// CreateHref joins domain and href and applies utm when given.
func CreateHref(href, domain string, utm ...map[string]string) string {
	target := strings.TrimRight(domain, "/") + "/" + strings.TrimLeft(href, "/")
	if len(utm) == 0 || len(utm[0]) == 0 {
		return target
	}
	return ConstructURLFromUTMParams(target, utm[0])
}
