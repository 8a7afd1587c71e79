package utils_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/utils"
)

func TestValidateEmail(t *testing.T) {
	t.Parallel()

	ok := utils.ValidateEmail("user@example.com")
	assert.True(t, ok.IsValid)
	assert.Equal(t, "user@example.com", ok.Normalized)
	require.NotNil(t, ok.Details)
	assert.Equal(t, "example.com", ok.Details.Domain)
	assert.Equal(t, "user", ok.Details.Local)
	assert.True(t, ok.Details.IsBusiness)

	for _, in := range []string{"", "invalid", "@example.com", "user@"} {
		res := utils.ValidateEmail(in)
		assert.False(t, res.IsValid, "input %q", in)
		assert.NotEmpty(t, res.Error)
		assert.Nil(t, res.Details)
	}
}

func TestNormalizeEmail(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "user@example.com", utils.NormalizeEmail("  USER@EXAMPLE.COM  "))
	assert.Equal(t, "username@gmail.com", utils.NormalizeEmail("user.name+tag@gmail.com"))
	assert.Equal(t, "user.name+tag@example.com", utils.NormalizeEmail("user.name+tag@example.com"))
}

func TestEmailClassification(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.IsDisposableEmail("a@10minutemail.com"))
	assert.False(t, utils.IsDisposableEmail("a@example.com"))

	assert.True(t, utils.IsBusinessEmail("john@company.com"))
	assert.False(t, utils.IsBusinessEmail("john@gmail.com"))
	assert.False(t, utils.IsBusinessEmail("john@mailinator.com"))
	assert.False(t, utils.IsBusinessEmail("not-an-email"))

	assert.Equal(t, "example.com", utils.EmailDomain("user@Example.com"))
	assert.Empty(t, utils.EmailDomain("nobody"))
}

func TestDeepEqual(t *testing.T) {
	t.Parallel()

	assert.True(t, utils.DeepEqual(map[string]any{"a": 1}, map[string]any{"a": 1}))
	assert.False(t, utils.DeepEqual(map[string]any{"a": 1, "b": 2}, map[string]any{"a": 1, "b": 3}))
	assert.True(t, utils.DeepEqual(
		map[string]any{"a": map[string]any{"b": 2}},
		map[string]any{"a": map[string]any{"b": 2}},
	))
	assert.False(t, utils.DeepEqual(
		map[string]any{"a": map[string]any{"b": 2}},
		map[string]any{"a": map[string]any{"b": 3}},
	))
	assert.False(t, utils.DeepEqual(map[string]any{"a": 1}, 1))
	assert.False(t, utils.DeepEqual(map[string]any{"a": 1}, map[string]any{"b": 1}))
}

func TestIsIframeable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		headers map[string]string
		origin  string
		want    bool
	}{
		{"no headers", nil, "https://myapp.com", true},
		{"csp allows origin", map[string]string{"Content-Security-Policy": "frame-ancestors https://myapp.com"}, "https://myapp.com", true},
		{"csp wildcard", map[string]string{"Content-Security-Policy": "default-src 'self'; frame-ancestors *"}, "https://other.com", true},
		{"csp subdomain wildcard", map[string]string{"Content-Security-Policy": "frame-ancestors *.myapp.com"}, "https://app.myapp.com", true},
		{"csp other origin", map[string]string{"Content-Security-Policy": "frame-ancestors https://partner.com"}, "https://myapp.com", false},
		{"csp none", map[string]string{"Content-Security-Policy": "frame-ancestors 'none'"}, "https://myapp.com", false},
		{"x-frame-options deny", map[string]string{"X-Frame-Options": "DENY"}, "https://myapp.com", false},
		{"x-frame-options sameorigin", map[string]string{"X-Frame-Options": "SAMEORIGIN"}, "https://myapp.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				for k, v := range tt.headers {
					w.Header().Set(k, v)
				}
				w.WriteHeader(http.StatusOK)
			}))
			defer srv.Close()

			got := utils.IsIframeable(context.Background(), utils.IframeCheck{
				URL:           srv.URL,
				RequestDomain: tt.origin,
				HTTPClient:    srv.Client(),
			})
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("unreachable", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.NotFoundHandler())
		target := srv.URL
		srv.Close()

		assert.False(t, utils.IsIframeable(context.Background(), utils.IframeCheck{URL: target, RequestDomain: "https://myapp.com"}))
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()
		assert.False(t, utils.IsIframeable(context.Background(), utils.IframeCheck{URL: "not-a-url"}))
	})
}
