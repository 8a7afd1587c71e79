package storage

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pelatform/kit/pkg/logger"
)

// Service is the high-level storage facade. It forwards to a provider and
// logs failed operations.
type Service struct {
	storage Storage
	logger  *slog.Logger
}

// NewService wraps any Storage implementation.
func NewService(s Storage, opts ...Option) *Service {
	o := newOptions(opts)
	return &Service{
		storage: s,
		logger:  o.logger.With(logger.Component("storage"), logger.Provider(s.Provider())),
	}
}

func (s *Service) Provider() Provider { return s.storage.Provider() }

// Storage returns the underlying provider.
func (s *Service) Storage() Storage { return s.storage }

func (s *Service) UploadFile(ctx context.Context, params UploadParams) UploadResult {
	res := s.storage.Upload(ctx, params)
	s.logFailure(ctx, "upload", params.Key, res.Result)
	return res
}

func (s *Service) DownloadFile(ctx context.Context, key string) DownloadResult {
	res := s.storage.Download(ctx, key)
	s.logFailure(ctx, "download", key, res.Result)
	return res
}

func (s *Service) DeleteFile(ctx context.Context, key string) Result {
	res := s.storage.Delete(ctx, key)
	s.logFailure(ctx, "delete", key, res)
	return res
}

func (s *Service) DeleteFiles(ctx context.Context, keys []string) BatchDeleteResult {
	res := s.storage.BatchDelete(ctx, keys)
	if !res.Success {
		s.logger.LogAttrs(ctx, slog.LevelError, "storage operation failed",
			logger.Operation("batch_delete"),
			logger.Count(len(keys)),
			slog.Int("deleted", len(res.Deleted)),
			logger.Error(res.Err),
		)
	}
	return res
}

func (s *Service) ListFiles(ctx context.Context, params ListParams) ListResult {
	res := s.storage.List(ctx, params)
	s.logFailure(ctx, "list", params.Prefix, res.Result)
	return res
}

// FileExists reports whether key exists. Failed lookups report false.
func (s *Service) FileExists(ctx context.Context, key string) bool {
	res := s.storage.Exists(ctx, key)
	s.logFailure(ctx, "exists", key, Result{Success: res.Err == nil, Error: res.Error, Err: res.Err})
	return res.Exists
}

func (s *Service) CopyFile(ctx context.Context, sourceKey, destinationKey string) CopyResult {
	res := s.storage.Copy(ctx, CopyParams{SourceKey: sourceKey, DestinationKey: destinationKey})
	s.logFailure(ctx, "copy", sourceKey, res.Result)
	return res
}

func (s *Service) MoveFile(ctx context.Context, sourceKey, destinationKey string) CopyResult {
	res := s.storage.Move(ctx, sourceKey, destinationKey)
	s.logFailure(ctx, "move", sourceKey, res.Result)
	return res
}

// DuplicateFile copies sourceKey next to itself under a generated key when
// destinationKey is empty.
func (s *Service) DuplicateFile(ctx context.Context, sourceKey, destinationKey string) CopyResult {
	res := s.storage.Duplicate(ctx, sourceKey, destinationKey)
	s.logFailure(ctx, "duplicate", sourceKey, res.Result)
	return res
}

// GetDownloadURL returns a presigned GET URL. A zero expiresIn uses
// DefaultPresignExpiry.
func (s *Service) GetDownloadURL(ctx context.Context, key string, expiresIn time.Duration) PresignResult {
	res := s.storage.PresignedURL(ctx, PresignParams{Key: key, Operation: PresignGet, ExpiresIn: expiresIn})
	s.logFailure(ctx, "presign_get", key, res.Result)
	return res
}

// GetUploadURL returns a presigned PUT URL bound to contentType.
func (s *Service) GetUploadURL(ctx context.Context, key, contentType string, expiresIn time.Duration) PresignResult {
	res := s.storage.PresignedURL(ctx, PresignParams{
		Key:         key,
		Operation:   PresignPut,
		ContentType: contentType,
		ExpiresIn:   expiresIn,
	})
	s.logFailure(ctx, "presign_put", key, res.Result)
	return res
}

func (s *Service) PublicURL(key string) string { return s.storage.PublicURL(key) }

func (s *Service) CreateFolderPath(ctx context.Context, path string) FolderResult {
	res := s.storage.CreateFolder(ctx, path)
	s.logFailure(ctx, "create_folder", path, res.Result)
	return res
}

func (s *Service) DeleteFolderPath(ctx context.Context, path string, recursive bool) DeleteFolderResult {
	res := s.storage.DeleteFolder(ctx, path, recursive)
	s.logFailure(ctx, "delete_folder", path, res.Result)
	return res
}

func (s *Service) ListFolderPaths(ctx context.Context, prefix, continuationToken string) ListFoldersResult {
	res := s.storage.ListFolders(ctx, prefix, continuationToken)
	s.logFailure(ctx, "list_folders", prefix, res.Result)
	return res
}

func (s *Service) FolderPathExists(ctx context.Context, path string) bool {
	res := s.storage.FolderExists(ctx, path)
	s.logFailure(ctx, "folder_exists", path, Result{Success: res.Err == nil, Error: res.Error, Err: res.Err})
	return res.Exists
}

func (s *Service) RenameFolderPath(ctx context.Context, oldPath, newPath string) RenameFolderResult {
	res := s.storage.RenameFolder(ctx, oldPath, newPath)
	s.logFailure(ctx, "rename_folder", oldPath, res.Result)
	return res
}

func (s *Service) CopyFolderPath(ctx context.Context, sourcePath, destinationPath string) CopyFolderResult {
	res := s.storage.CopyFolder(ctx, sourcePath, destinationPath)
	s.logFailure(ctx, "copy_folder", sourcePath, res.Result)
	return res
}

func (s *Service) logFailure(ctx context.Context, op, key string, res Result) {
	if res.Success {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelError, "storage operation failed",
		logger.Operation(op),
		logger.Key(key),
		logger.ErrorMessage(res.Error),
	)
}

// S3Service is a Service bound to an S3Provider.
type S3Service struct {
	*Service
	provider *S3Provider
}

func (s *S3Service) Bucket() string   { return s.provider.cfg.Bucket }
func (s *S3Service) Region() string   { return s.provider.cfg.Region }
func (s *S3Service) Config() S3Config { return s.provider.cfg }

// CloudinaryService is a Service bound to a CloudinaryProvider.
type CloudinaryService struct {
	*Service
	provider *CloudinaryProvider
}

func (s *CloudinaryService) CloudName() string        { return s.provider.cfg.CloudName }
func (s *CloudinaryService) Config() CloudinaryConfig { return s.provider.cfg }

// NewS3Service builds an S3Service. A nil cfg is loaded from the
// PELATFORM_S3_* variables; ErrNoConfig is returned when none are set.
func NewS3Service(ctx context.Context, cfg *S3Config, opts ...Option) (*S3Service, error) {
	if cfg == nil {
		if !anySet(s3EnvVars) {
			return nil, ErrNoConfig
		}
		loaded, err := LoadS3Config()
		if err != nil {
			return nil, err
		}
		cfg = &loaded
	}

	p, err := NewS3Provider(ctx, *cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &S3Service{Service: NewService(p, opts...), provider: p}, nil
}

// NewCloudinaryService builds a CloudinaryService. A nil cfg is loaded from
// the PELATFORM_CLOUDINARY_* variables; ErrNoConfig is returned when none
// are set.
func NewCloudinaryService(cfg *CloudinaryConfig, opts ...Option) (*CloudinaryService, error) {
	if cfg == nil {
		if !anySet(cloudinaryEnvVars) {
			return nil, ErrNoConfig
		}
		loaded, err := LoadCloudinaryConfig()
		if err != nil {
			return nil, err
		}
		cfg = &loaded
	}

	p, err := NewCloudinaryProvider(*cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &CloudinaryService{Service: NewService(p, opts...), provider: p}, nil
}

// New builds a Service for cfg, or for the environment configuration when
// cfg is nil.
func New(ctx context.Context, cfg Config, opts ...Option) (*Service, error) {
	if cfg == nil {
		loaded, err := LoadConfig()
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	switch c := cfg.(type) {
	case S3Config:
		svc, err := NewS3Service(ctx, &c, opts...)
		if err != nil {
			return nil, err
		}
		return svc.Service, nil
	case *S3Config:
		svc, err := NewS3Service(ctx, c, opts...)
		if err != nil {
			return nil, err
		}
		return svc.Service, nil
	case CloudinaryConfig:
		svc, err := NewCloudinaryService(&c, opts...)
		if err != nil {
			return nil, err
		}
		return svc.Service, nil
	case *CloudinaryConfig:
		svc, err := NewCloudinaryService(c, opts...)
		if err != nil {
			return nil, err
		}
		return svc.Service, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProvider, cfg.ProviderName())
	}
}
