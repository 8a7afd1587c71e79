package storage

import (
	"log/slog"
	"net/http"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pelatform/kit/pkg/logger"
)

// Option configures providers and services. Options that do not apply to a
// provider are ignored by it.
type Option func(*options)

type options struct {
	logger           *slog.Logger
	httpClient       *http.Client
	s3Client         S3Client
	awsConfigOptions []func(*awsconfig.LoadOptions) error
	s3ClientOptions  []func(*s3.Options)
	cloudinaryClient CloudinaryClient
}

func newOptions(opts []Option) *options {
	o := &options{logger: logger.Discard()}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger used by services.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP client used for S3 requests and Cloudinary
// downloads. Without it the SDK builds its own client and downloads use
// http.DefaultClient.
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) {
		if c != nil {
			o.httpClient = c
		}
	}
}

// WithS3Client injects a pre-configured S3 client. Useful for testing with mocks.
func WithS3Client(c S3Client) Option {
	return func(o *options) { o.s3Client = c }
}

// WithAWSConfigOption adds an option for config.LoadDefaultConfig.
func WithAWSConfigOption(opt func(*awsconfig.LoadOptions) error) Option {
	return func(o *options) {
		o.awsConfigOptions = append(o.awsConfigOptions, opt)
	}
}

// WithS3ClientOption adds an option applied when the S3 client is built.
func WithS3ClientOption(opt func(*s3.Options)) Option {
	return func(o *options) {
		o.s3ClientOptions = append(o.s3ClientOptions, opt)
	}
}

// WithCloudinaryClient injects a Cloudinary client. Useful for testing with mocks.
func WithCloudinaryClient(c CloudinaryClient) Option {
	return func(o *options) { o.cloudinaryClient = c }
}
