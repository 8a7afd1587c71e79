package storage

import (
	"errors"
	"fmt"
	"slices"

	"github.com/pelatform/kit/pkg/config"
)

const (
	EnvS3Provider        = "PELATFORM_S3_PROVIDER"
	EnvS3Region          = "PELATFORM_S3_REGION"
	EnvS3Bucket          = "PELATFORM_S3_BUCKET"
	EnvS3AccessKeyID     = "PELATFORM_S3_ACCESS_KEY_ID"
	EnvS3SecretAccessKey = "PELATFORM_S3_SECRET_ACCESS_KEY"
	EnvS3Endpoint        = "PELATFORM_S3_ENDPOINT"
	EnvS3ForcePathStyle  = "PELATFORM_S3_FORCE_PATH_STYLE"
	EnvS3PublicURL       = "PELATFORM_S3_PUBLIC_URL"

	EnvCloudinaryCloudName = "PELATFORM_CLOUDINARY_CLOUD_NAME"
	EnvCloudinaryAPIKey    = "PELATFORM_CLOUDINARY_API_KEY"
	EnvCloudinaryAPISecret = "PELATFORM_CLOUDINARY_API_SECRET"
	EnvCloudinarySecure    = "PELATFORM_CLOUDINARY_SECURE"
	EnvCloudinaryFolder    = "PELATFORM_CLOUDINARY_FOLDER"
)

var (
	s3EnvVars = []string{
		EnvS3Provider, EnvS3Region, EnvS3Bucket, EnvS3AccessKeyID,
		EnvS3SecretAccessKey, EnvS3Endpoint, EnvS3ForcePathStyle, EnvS3PublicURL,
	}
	cloudinaryEnvVars = []string{
		EnvCloudinaryCloudName, EnvCloudinaryAPIKey, EnvCloudinaryAPISecret,
		EnvCloudinarySecure, EnvCloudinaryFolder,
	}
	secretEnvVars = []string{
		EnvS3AccessKeyID, EnvS3SecretAccessKey, EnvCloudinaryAPIKey, EnvCloudinaryAPISecret,
	}
)

// DetectProvider picks the provider configured in the environment.
// An explicit PELATFORM_S3_PROVIDER wins; otherwise a bucket selects AWS
// and a cloud name selects Cloudinary, in that order.
func DetectProvider() (Provider, bool) {
	if p, ok := config.Lookup(EnvS3Provider); ok {
		return Provider(p), true
	}
	if _, ok := config.Lookup(EnvS3Bucket); ok {
		return ProviderAWS, true
	}
	if _, ok := config.Lookup(EnvCloudinaryCloudName); ok {
		return ProviderCloudinary, true
	}
	return "", false
}

// LoadConfig resolves the storage configuration from the environment.
// Returns ErrNoConfig when no provider is configured and ErrInvalidConfig
// (wrapping *config.ValidationError) when the chosen provider is incomplete.
func LoadConfig() (Config, error) {
	p, ok := DetectProvider()
	if !ok {
		return nil, ErrNoConfig
	}
	if p == ProviderCloudinary {
		cfg, err := LoadCloudinaryConfig()
		if err != nil {
			return nil, err
		}
		return cfg, nil
	}
	cfg, err := LoadS3Config()
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadS3Config reads the PELATFORM_S3_* variables.
func LoadS3Config() (S3Config, error) {
	var cfg S3Config
	if err := config.Load(&cfg); err != nil {
		return S3Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// LoadCloudinaryConfig reads the PELATFORM_CLOUDINARY_* variables.
func LoadCloudinaryConfig() (CloudinaryConfig, error) {
	var cfg CloudinaryConfig
	if err := config.Load(&cfg); err != nil {
		return CloudinaryConfig{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// HasConfig reports whether a complete storage configuration is available.
func HasConfig() bool {
	_, err := LoadConfig()
	return err == nil
}

// IsConfigured is an alias of HasConfig.
func IsConfigured() bool { return HasConfig() }

// EnvVars returns the storage variables that are set, with secrets masked.
func EnvVars() map[string]string {
	out := make(map[string]string)
	for _, name := range slices.Concat(s3EnvVars, cloudinaryEnvVars) {
		v, ok := config.Lookup(name)
		if !ok {
			continue
		}
		if slices.Contains(secretEnvVars, name) {
			v = config.MaskSecret(v)
		}
		out[name] = v
	}
	return out
}

func anySet(names []string) bool {
	for _, name := range names {
		if _, ok := config.Lookup(name); ok {
			return true
		}
	}
	return false
}

// ConfigValidation is the outcome of ValidateS3Config.
type ConfigValidation struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// ValidateS3Config checks an explicit S3 configuration without contacting
// the service.
func ValidateS3Config(cfg S3Config) ConfigValidation {
	err := config.Validate(cfg.withDefaults())
	if err == nil {
		if v := ValidateBucketName(cfg.Bucket); !v.Valid {
			return ConfigValidation{Errors: []string{v.Error}}
		}
		return ConfigValidation{Valid: true}
	}
	var verr *config.ValidationError
	if errors.As(err, &verr) {
		return ConfigValidation{Errors: verr.Problems()}
	}
	return ConfigValidation{Errors: []string{err.Error()}}
}
