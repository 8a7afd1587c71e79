// Package config loads application configuration from environment variables.
//
// It wraps `github.com/joho/godotenv`, `github.com/caarlos0/env/v11` and
// `github.com/go-playground/validator/v10`:
//
//   - the default `.env` file is loaded once per process;
//   - the environment is parsed into any struct using `env` tags;
//   - the struct is validated using `validate` tags, with field names taken
//     from the `env` tag so errors name the variable to set.
//
// Nothing is cached. Each Load call re-reads the environment.
//
// # Usage
//
//	type ResendConfig struct {
//	    APIKey string `env:"EMAIL_RESEND_API_KEY" validate:"required"`
//	    Port   int    `env:"EMAIL_SMTP_PORT" validate:"omitempty,port"`
//	}
//
//	var cfg ResendConfig
//	if err := config.Load(&cfg); err != nil {
//	    log.Fatal(err) // missing required environment variable: EMAIL_RESEND_API_KEY
//	}
//
// # Error Handling
//
//   - `ErrParsingConfig` – the environment could not be parsed at all.
//   - `ErrNilPointer`    – nil pointer passed to `Load`/`LoadFrom`.
//   - `*ValidationError` – every missing (`Missing`) and malformed (`Invalid`)
//     field, collected in one pass.
//
// # Helpers
//
// `Lookup` reports whether a variable is set to a non-empty value and
// `MaskSecret` renders secrets for display (`abcd***`).
package config
