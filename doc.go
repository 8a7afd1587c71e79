// Package kit is the Pelatform toolkit for Go services: provider-agnostic
// object storage and transactional email, plus the shared helpers they are
// built on.
//
// Packages:
//
//   - pkg/storage: S3-compatible object storage and Cloudinary behind one
//     Provider interface, with key, URL and MIME helpers
//   - pkg/email: Resend, Postmark, SMTP and a development sink behind one
//     Sender interface, with templ templates
//   - pkg/utils: slices, identifiers, dates, strings, URLs, address checks,
//     Slack notifications and call timing
//   - pkg/config: environment loading and struct validation
//   - pkg/logger: slog construction and shared attributes
//   - pkg/environment: application environment detection
//
// Both services can be built from explicit configuration or from the
// environment:
//
//	store, err := storage.New(ctx, nil) // PELATFORM_S3_* or PELATFORM_CLOUDINARY_*
//	mail, err := email.New(nil)         // PELATFORM_EMAIL_*
package kit
