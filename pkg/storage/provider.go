package storage

// Provider identifies a storage backend.
type Provider string

const (
	ProviderAWS          Provider = "aws"
	ProviderCloudflareR2 Provider = "cloudflare-r2"
	ProviderMinIO        Provider = "minio"
	ProviderDigitalOcean Provider = "digitalocean"
	ProviderSupabase     Provider = "supabase"
	ProviderCustom       Provider = "custom"
	ProviderCloudinary   Provider = "cloudinary"
)

// IsS3 reports whether the provider speaks the S3 API.
func (p Provider) IsS3() bool {
	switch p {
	case ProviderAWS, ProviderCloudflareR2, ProviderMinIO, ProviderDigitalOcean, ProviderSupabase, ProviderCustom:
		return true
	default:
		return false
	}
}

func (p Provider) String() string { return string(p) }

// Config is a resolved provider configuration: either S3Config or
// CloudinaryConfig.
type Config interface {
	ProviderName() Provider
}

// S3Config configures AWS S3 and S3-compatible services.
type S3Config struct {
	Provider        Provider `json:"provider" env:"PELATFORM_S3_PROVIDER" envDefault:"aws" validate:"required,oneof=aws cloudflare-r2 minio digitalocean supabase custom"`
	Region          string   `json:"region" env:"PELATFORM_S3_REGION" validate:"required"`
	Bucket          string   `json:"bucket" env:"PELATFORM_S3_BUCKET" validate:"required"`
	AccessKeyID     string   `json:"accessKeyId" env:"PELATFORM_S3_ACCESS_KEY_ID" validate:"required"`
	SecretAccessKey string   `json:"-" env:"PELATFORM_S3_SECRET_ACCESS_KEY" validate:"required"`
	Endpoint        string   `json:"endpoint,omitempty" env:"PELATFORM_S3_ENDPOINT" validate:"omitempty,url"`
	ForcePathStyle  bool     `json:"forcePathStyle" env:"PELATFORM_S3_FORCE_PATH_STYLE"`
	PublicURL       string   `json:"publicUrl,omitempty" env:"PELATFORM_S3_PUBLIC_URL" validate:"omitempty,url"`
}

func (c S3Config) ProviderName() Provider {
	if c.Provider == "" {
		return ProviderAWS
	}
	return c.Provider
}

func (c S3Config) withDefaults() S3Config {
	c.Provider = c.ProviderName()
	return c
}

// CloudinaryConfig configures the Cloudinary media CDN.
// Secure defaults to true when loaded from the environment; explicit
// configs must set it.
type CloudinaryConfig struct {
	CloudName string `json:"cloudName" env:"PELATFORM_CLOUDINARY_CLOUD_NAME" validate:"required"`
	APIKey    string `json:"apiKey" env:"PELATFORM_CLOUDINARY_API_KEY" validate:"required"`
	APISecret string `json:"-" env:"PELATFORM_CLOUDINARY_API_SECRET" validate:"required"`
	Secure    bool   `json:"secure" env:"PELATFORM_CLOUDINARY_SECURE" envDefault:"true"`
	Folder    string `json:"folder,omitempty" env:"PELATFORM_CLOUDINARY_FOLDER"`
}

func (CloudinaryConfig) ProviderName() Provider { return ProviderCloudinary }
