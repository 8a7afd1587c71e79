package storage

import "context"

// FileStorage covers single-object operations.
type FileStorage interface {
	Upload(ctx context.Context, params UploadParams) UploadResult
	Download(ctx context.Context, key string) DownloadResult
	Delete(ctx context.Context, key string) Result
	BatchDelete(ctx context.Context, keys []string) BatchDeleteResult
	List(ctx context.Context, params ListParams) ListResult
	Exists(ctx context.Context, key string) ExistsResult
	Copy(ctx context.Context, params CopyParams) CopyResult
	Move(ctx context.Context, sourceKey, destinationKey string) CopyResult
	Duplicate(ctx context.Context, sourceKey, destinationKey string) CopyResult
	PresignedURL(ctx context.Context, params PresignParams) PresignResult
	PublicURL(key string) string
}

// FolderStorage covers prefix-based folder operations.
type FolderStorage interface {
	CreateFolder(ctx context.Context, path string) FolderResult
	DeleteFolder(ctx context.Context, path string, recursive bool) DeleteFolderResult
	ListFolders(ctx context.Context, prefix, continuationToken string) ListFoldersResult
	FolderExists(ctx context.Context, path string) FolderExistsResult
	RenameFolder(ctx context.Context, oldPath, newPath string) RenameFolderResult
	CopyFolder(ctx context.Context, sourcePath, destinationPath string) CopyFolderResult
}

// Storage is implemented by every provider.
type Storage interface {
	FileStorage
	FolderStorage
	Provider() Provider
}

var (
	_ Storage = (*S3Provider)(nil)
	_ Storage = (*CloudinaryProvider)(nil)
)
