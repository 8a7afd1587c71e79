package storage

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/pelatform/kit/pkg/config"
)

// S3Provider implements Storage for AWS S3 and S3-compatible services
// (Cloudflare R2, MinIO, DigitalOcean Spaces, Supabase). It is safe for
// concurrent use.
type S3Provider struct {
	*FileOperations
	*FolderOperations
	cfg S3Config
}

// NewS3Provider validates cfg and builds an S3 client from static
// credentials, unless one is injected with WithS3Client.
func NewS3Provider(ctx context.Context, cfg S3Config, opts ...Option) (*S3Provider, error) {
	cfg = cfg.withDefaults()
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := newOptions(opts)
	client := o.s3Client
	if client == nil {
		c, err := newS3Client(ctx, cfg, o)
		if err != nil {
			return nil, err
		}
		client = c
	}

	return &S3Provider{
		FileOperations:   NewFileOperations(client, cfg),
		FolderOperations: NewFolderOperations(client, cfg),
		cfg:              cfg,
	}, nil
}

func newS3Client(ctx context.Context, cfg S3Config, o *options) (*s3.Client, error) {
	awsOptions := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKeyID,
			cfg.SecretAccessKey,
			"",
		)),
	}
	if o.httpClient != nil {
		awsOptions = append(awsOptions, awsconfig.WithHTTPClient(o.httpClient))
	}
	awsOptions = append(awsOptions, o.awsConfigOptions...)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsOptions...)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
	}

	return s3.NewFromConfig(awsCfg, func(so *s3.Options) {
		if cfg.Endpoint != "" {
			so.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		so.UsePathStyle = cfg.ForcePathStyle
		for _, opt := range o.s3ClientOptions {
			opt(so)
		}
	}), nil
}

func (p *S3Provider) Provider() Provider { return p.cfg.Provider }

func (p *S3Provider) Config() S3Config { return p.cfg }
