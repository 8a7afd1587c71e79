package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const folderContentType = "application/x-directory"

// FolderOperations layers folder semantics over the flat key space: a folder
// is a key prefix ending in "/", optionally marked by a zero-byte placeholder.
//
// Rename, copy and recursive delete run their steps sequentially and are not
// atomic. A failed copy stops the sequence; nothing is rolled back.
type FolderOperations struct {
	client S3Client
	cfg    S3Config
}

func NewFolderOperations(client S3Client, cfg S3Config) *FolderOperations {
	return &FolderOperations{client: client, cfg: cfg.withDefaults()}
}

// CreateFolder writes the placeholder object "path/".
func (f *FolderOperations) CreateFolder(ctx context.Context, path string) FolderResult {
	prefix := folderPrefix(path)
	if prefix == "" {
		return FolderResult{Result: failed(fmt.Errorf("%w: folder path is required", ErrInvalidPath))}
	}

	_, err := f.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(f.cfg.Bucket),
		Key:           aws.String(prefix),
		Body:          bytes.NewReader(nil),
		ContentLength: aws.Int64(0),
		ContentType:   aws.String(folderContentType),
	})
	if err != nil {
		return FolderResult{Result: failed(classifyS3Error(err, "create folder"))}
	}
	return FolderResult{Result: succeeded(), Path: prefix}
}

// DeleteFolder removes the placeholder, or with recursive every key under
// the prefix.
func (f *FolderOperations) DeleteFolder(ctx context.Context, path string, recursive bool) DeleteFolderResult {
	prefix := folderPrefix(path)
	if prefix == "" {
		return DeleteFolderResult{Result: failed(fmt.Errorf("%w: folder path is required", ErrInvalidPath))}
	}

	if !recursive {
		_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
			Bucket: aws.String(f.cfg.Bucket),
			Key:    aws.String(prefix),
		})
		if err != nil {
			return DeleteFolderResult{Result: failed(classifyS3Error(err, "delete folder"))}
		}
		return DeleteFolderResult{Result: succeeded(), DeletedFiles: []string{prefix}}
	}

	keys, err := f.listKeys(ctx, prefix)
	if err != nil {
		return DeleteFolderResult{Result: failed(err)}
	}
	if len(keys) == 0 {
		return DeleteFolderResult{Result: succeeded(), DeletedFiles: []string{}}
	}

	deleted, err := deleteObjects(ctx, f.client, f.cfg.Bucket, keys)
	if err != nil {
		return DeleteFolderResult{Result: failed(err), DeletedFiles: deleted}
	}
	return DeleteFolderResult{Result: succeeded(), DeletedFiles: deleted}
}

// ListFolders lists one level under prefix: sub-prefixes become folders and
// direct keys become files. The folder's own placeholder is skipped.
func (f *FolderOperations) ListFolders(ctx context.Context, prefix, continuationToken string) ListFoldersResult {
	prefix = folderPrefix(prefix)

	input := &s3.ListObjectsV2Input{
		Bucket:    aws.String(f.cfg.Bucket),
		Delimiter: aws.String("/"),
	}
	if prefix != "" {
		input.Prefix = aws.String(prefix)
	}
	if continuationToken != "" {
		input.ContinuationToken = aws.String(continuationToken)
	}

	out, err := f.client.ListObjectsV2(ctx, input)
	if err != nil {
		return ListFoldersResult{Result: failed(classifyS3Error(err, "list folders"))}
	}

	res := ListFoldersResult{
		Result:                succeeded(),
		Folders:               make([]string, 0, len(out.CommonPrefixes)),
		Files:                 make([]FileInfo, 0, len(out.Contents)),
		IsTruncated:           aws.ToBool(out.IsTruncated),
		NextContinuationToken: aws.ToString(out.NextContinuationToken),
	}
	for _, cp := range out.CommonPrefixes {
		res.Folders = append(res.Folders, aws.ToString(cp.Prefix))
	}
	for _, obj := range out.Contents {
		if aws.ToString(obj.Key) == prefix {
			continue
		}
		res.Files = append(res.Files, objectInfo(obj))
	}
	return res
}

// FolderExists reports whether any key or sub-prefix lives under path.
func (f *FolderOperations) FolderExists(ctx context.Context, path string) FolderExistsResult {
	prefix := folderPrefix(path)
	if prefix == "" {
		err := fmt.Errorf("%w: folder path is required", ErrInvalidPath)
		return FolderExistsResult{Error: err.Error(), Err: err}
	}

	out, err := f.client.ListObjectsV2(ctx, &s3.ListObjectsV2Input{
		Bucket:  aws.String(f.cfg.Bucket),
		Prefix:  aws.String(prefix),
		MaxKeys: aws.Int32(1),
	})
	if err != nil {
		classified := classifyS3Error(err, "folder exists")
		return FolderExistsResult{Error: classified.Error(), Err: classified}
	}

	if len(out.Contents) == 0 && len(out.CommonPrefixes) == 0 {
		return FolderExistsResult{}
	}
	return FolderExistsResult{Exists: true, FolderInfo: &FolderInfo{Path: prefix}}
}

// RenameFolder copies every key under oldPath to newPath and then deletes
// the originals. The result's success reflects the final delete.
func (f *FolderOperations) RenameFolder(ctx context.Context, oldPath, newPath string) RenameFolderResult {
	src, dst, err := folderPair(oldPath, newPath)
	if err != nil {
		return RenameFolderResult{Result: failed(err), MovedFiles: []string{}}
	}

	keys, err := f.listKeys(ctx, src)
	if err != nil {
		return RenameFolderResult{Result: failed(err), MovedFiles: []string{}}
	}
	if len(keys) == 0 {
		return RenameFolderResult{Result: failed(fmt.Errorf("%w: %s", ErrFolderNotFound, src)), MovedFiles: []string{}}
	}

	moved, err := f.copyKeys(ctx, keys, src, dst)
	if err != nil {
		return RenameFolderResult{Result: failed(err), MovedFiles: moved}
	}

	if _, err := deleteObjects(ctx, f.client, f.cfg.Bucket, keys); err != nil {
		return RenameFolderResult{Result: failed(err), MovedFiles: moved}
	}
	return RenameFolderResult{Result: succeeded(), MovedFiles: moved}
}

// CopyFolder copies every key under sourcePath to destinationPath.
func (f *FolderOperations) CopyFolder(ctx context.Context, sourcePath, destinationPath string) CopyFolderResult {
	src, dst, err := folderPair(sourcePath, destinationPath)
	if err != nil {
		return CopyFolderResult{Result: failed(err), CopiedFiles: []string{}}
	}

	keys, err := f.listKeys(ctx, src)
	if err != nil {
		return CopyFolderResult{Result: failed(err), CopiedFiles: []string{}}
	}
	if len(keys) == 0 {
		return CopyFolderResult{Result: failed(fmt.Errorf("%w: %s", ErrFolderNotFound, src)), CopiedFiles: []string{}}
	}

	copied, err := f.copyKeys(ctx, keys, src, dst)
	if err != nil {
		return CopyFolderResult{Result: failed(err), CopiedFiles: copied}
	}
	return CopyFolderResult{Result: succeeded(), CopiedFiles: copied}
}

// listKeys drains every page under prefix.
func (f *FolderOperations) listKeys(ctx context.Context, prefix string) ([]string, error) {
	paginator := s3.NewListObjectsV2Paginator(f.client, &s3.ListObjectsV2Input{
		Bucket: aws.String(f.cfg.Bucket),
		Prefix: aws.String(prefix),
	})

	var keys []string
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, classifyS3Error(err, "list folder")
		}
		for _, obj := range page.Contents {
			keys = append(keys, aws.ToString(obj.Key))
		}
	}
	return keys, nil
}

// copyKeys copies keys one at a time, replacing the src prefix with dst.
// It stops at the first failure and returns the destinations written so far.
func (f *FolderOperations) copyKeys(ctx context.Context, keys []string, src, dst string) ([]string, error) {
	copied := make([]string, 0, len(keys))
	for _, key := range keys {
		target := dst + strings.TrimPrefix(key, src)
		_, err := f.client.CopyObject(ctx, &s3.CopyObjectInput{
			Bucket:     aws.String(f.cfg.Bucket),
			Key:        aws.String(target),
			CopySource: aws.String(copySource(f.cfg.Bucket, key)),
		})
		if err != nil {
			return copied, fmt.Errorf("copy %s: %w", key, classifyS3Error(err, "copy"))
		}
		copied = append(copied, target)
	}
	return copied, nil
}

func folderPair(source, destination string) (string, string, error) {
	src, dst := folderPrefix(source), folderPrefix(destination)
	if src == "" || dst == "" {
		return "", "", fmt.Errorf("%w: source and destination are required", ErrInvalidPath)
	}
	if src == dst {
		return "", "", fmt.Errorf("%w: %s", ErrSamePath, src)
	}
	return src, dst, nil
}
