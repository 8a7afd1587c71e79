// Package storage provides object storage for AWS S3, S3-compatible services
// (Cloudflare R2, MinIO, DigitalOcean Spaces, Supabase) and the Cloudinary
// media CDN behind one Storage interface.
//
// Operations never return Go errors. Every result embeds Result, whose
// Success flag and Error text describe the outcome; Err keeps the classified
// error so callers can match sentinels such as ErrFileNotFound with
// errors.Is. Construction functions return errors as usual.
//
// # Architecture
//
// Providers implement Storage:
//   - S3Provider delegates to FileOperations and FolderOperations, two
//     adapters over an injected S3Client.
//   - CloudinaryProvider talks to Cloudinary through a CloudinaryClient.
//     Copy, move, duplicate, presigning and folder rename/copy are not
//     supported and fail with ErrNotImplemented.
//
// Service wraps any provider with the facade methods (UploadFile,
// GetDownloadURL, RenameFolderPath, ...) and logs failed operations.
//
// # Usage
//
// Explicit configuration:
//
//	svc, err := storage.NewS3Service(ctx, &storage.S3Config{
//		Provider:        storage.ProviderMinIO,
//		Region:          "us-east-1",
//		Bucket:          "assets",
//		AccessKeyID:     "minio",
//		SecretAccessKey: "minio123",
//		Endpoint:        "http://localhost:9000",
//		ForcePathStyle:  true,
//	}, storage.WithLogger(log))
//	if err != nil {
//		return err
//	}
//
//	key := storage.GenerateKey("avatar.png", "users/42")
//	res := svc.UploadFile(ctx, storage.UploadParams{Key: key, Body: data})
//	if !res.Success {
//		return res.Err
//	}
//
// Configuration from the environment:
//
//	svc, err := storage.New(ctx, nil) // reads PELATFORM_S3_* or PELATFORM_CLOUDINARY_*
//	if errors.Is(err, storage.ErrNoConfig) {
//		// storage is not configured
//	}
//
// # Folders
//
// Folders are key prefixes ending in "/". CreateFolder writes a zero-byte
// placeholder. RenameFolder and CopyFolder copy keys one by one and stop at
// the first failed copy; RenameFolder deletes the originals only after every
// copy succeeded. None of these operations is atomic.
//
// # Testing
//
// Inject test doubles with WithS3Client (a client that also implements
// S3Presigner enables presigned URLs) and WithCloudinaryClient.
package storage
