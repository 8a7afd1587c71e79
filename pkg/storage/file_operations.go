package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
)

// FileOperations implements single-object operations on top of an injected
// S3 client. It never constructs a transport of its own and is safe for
// concurrent use.
type FileOperations struct {
	client    S3Client
	presigner S3Presigner
	cfg       S3Config
}

// NewFileOperations binds the operations to a client and configuration.
// Presigning is available when client is an *s3.Client or implements
// S3Presigner.
func NewFileOperations(client S3Client, cfg S3Config) *FileOperations {
	return &FileOperations{
		client:    client,
		presigner: presignerFor(client),
		cfg:       cfg.withDefaults(),
	}
}

// Upload stores Body under Key. The content type is derived from the key when
// not given, and Size is the payload length.
func (f *FileOperations) Upload(ctx context.Context, params UploadParams) UploadResult {
	if v := ValidateKey(params.Key); !v.Valid {
		return UploadResult{Result: failed(fmt.Errorf("%w: %s", ErrInvalidKey, v.Error))}
	}

	contentType := params.ContentType
	if contentType == "" {
		contentType = GetMimeType(params.Key)
	}

	input := &s3.PutObjectInput{
		Bucket:        aws.String(f.cfg.Bucket),
		Key:           aws.String(params.Key),
		Body:          bytes.NewReader(params.Body),
		ContentLength: aws.Int64(int64(len(params.Body))),
		ContentType:   aws.String(contentType),
		Metadata:      params.Metadata,
	}
	if params.CacheControl != "" {
		input.CacheControl = aws.String(params.CacheControl)
	}

	out, err := f.client.PutObject(ctx, input)
	if err != nil {
		return UploadResult{Result: failed(classifyS3Error(err, "upload"))}
	}

	publicURL := f.PublicURL(params.Key)
	return UploadResult{
		Result:    succeeded(),
		Key:       params.Key,
		URL:       publicURL,
		PublicURL: publicURL,
		ETag:      trimETag(out.ETag),
		Size:      int64(len(params.Body)),
	}
}

// Download reads the whole object into memory.
func (f *FileOperations) Download(ctx context.Context, key string) DownloadResult {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return DownloadResult{Result: failed(classifyS3Error(err, "download"))}
	}
	defer func() { _ = out.Body.Close() }()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return DownloadResult{Result: failed(fmt.Errorf("%w: %v", ErrFailedToRead, err))}
	}

	return DownloadResult{
		Result:       succeeded(),
		Content:      content,
		ContentType:  aws.ToString(out.ContentType),
		ETag:         trimETag(out.ETag),
		Metadata:     out.Metadata,
		LastModified: aws.ToTime(out.LastModified),
	}
}

func (f *FileOperations) Delete(ctx context.Context, key string) Result {
	_, err := f.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(f.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return failed(classifyS3Error(err, "delete"))
	}
	return succeeded()
}

// BatchDelete removes keys in requests of up to 1000 keys. Deleted lists the
// keys the service confirmed, also on failure.
func (f *FileOperations) BatchDelete(ctx context.Context, keys []string) BatchDeleteResult {
	if len(keys) == 0 {
		return BatchDeleteResult{Result: succeeded(), Deleted: []string{}}
	}
	deleted, err := deleteObjects(ctx, f.client, f.cfg.Bucket, keys)
	if err != nil {
		return BatchDeleteResult{Result: failed(err), Deleted: deleted}
	}
	return BatchDeleteResult{Result: succeeded(), Deleted: deleted}
}

// List returns one page of objects. Pagination is driven by the caller via
// ContinuationToken.
func (f *FileOperations) List(ctx context.Context, params ListParams) ListResult {
	input := &s3.ListObjectsV2Input{Bucket: aws.String(f.cfg.Bucket)}
	if params.Prefix != "" {
		input.Prefix = aws.String(params.Prefix)
	}
	if !params.Recursive {
		input.Delimiter = aws.String("/")
	}
	if params.ContinuationToken != "" {
		input.ContinuationToken = aws.String(params.ContinuationToken)
	}
	if params.MaxKeys > 0 {
		input.MaxKeys = aws.Int32(params.MaxKeys)
	}

	out, err := f.client.ListObjectsV2(ctx, input)
	if err != nil {
		return ListResult{Result: failed(classifyS3Error(err, "list"))}
	}

	files := make([]FileInfo, 0, len(out.Contents))
	for _, obj := range out.Contents {
		files = append(files, objectInfo(obj))
	}
	prefixes := make([]string, 0, len(out.CommonPrefixes))
	for _, cp := range out.CommonPrefixes {
		prefixes = append(prefixes, aws.ToString(cp.Prefix))
	}

	return ListResult{
		Result:                succeeded(),
		Files:                 files,
		CommonPrefixes:        prefixes,
		IsTruncated:           aws.ToBool(out.IsTruncated),
		NextContinuationToken: aws.ToString(out.NextContinuationToken),
	}
}

// Exists checks the object with HeadObject. A missing object is not an error.
func (f *FileOperations) Exists(ctx context.Context, key string) ExistsResult {
	out, err := f.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(f.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		classified := classifyS3Error(err, "exists")
		if errors.Is(classified, ErrFileNotFound) {
			return ExistsResult{}
		}
		return ExistsResult{Error: classified.Error(), Err: classified}
	}

	return ExistsResult{
		Exists: true,
		FileInfo: &FileInfo{
			Key:          key,
			Size:         aws.ToInt64(out.ContentLength),
			LastModified: aws.ToTime(out.LastModified),
			ETag:         trimETag(out.ETag),
			ContentType:  aws.ToString(out.ContentType),
			Metadata:     out.Metadata,
		},
	}
}

func (f *FileOperations) Copy(ctx context.Context, params CopyParams) CopyResult {
	sourceBucket := params.SourceBucket
	if sourceBucket == "" {
		sourceBucket = f.cfg.Bucket
	}

	input := &s3.CopyObjectInput{
		Bucket:     aws.String(f.cfg.Bucket),
		Key:        aws.String(params.DestinationKey),
		CopySource: aws.String(copySource(sourceBucket, params.SourceKey)),
	}
	if params.Metadata != nil {
		input.Metadata = params.Metadata
		input.MetadataDirective = types.MetadataDirectiveReplace
	}

	out, err := f.client.CopyObject(ctx, input)
	if err != nil {
		return CopyResult{Result: failed(classifyS3Error(err, "copy"))}
	}

	res := CopyResult{Result: succeeded(), Key: params.DestinationKey}
	if out.CopyObjectResult != nil {
		res.ETag = trimETag(out.CopyObjectResult.ETag)
	}
	return res
}

// Move copies the object and deletes the source once the copy succeeded.
func (f *FileOperations) Move(ctx context.Context, sourceKey, destinationKey string) CopyResult {
	res := f.Copy(ctx, CopyParams{SourceKey: sourceKey, DestinationKey: destinationKey})
	if !res.Success {
		return res
	}
	if del := f.Delete(ctx, sourceKey); !del.Success {
		res.Result = failed(fmt.Errorf("%w: %s", ErrMoveIncomplete, del.Error))
	}
	return res
}

// Duplicate copies the object next to the source under a generated key when
// destinationKey is empty.
func (f *FileOperations) Duplicate(ctx context.Context, sourceKey, destinationKey string) CopyResult {
	if destinationKey == "" {
		destinationKey = GenerateKey(FileName(sourceKey), ParentPath(sourceKey))
	}
	return f.Copy(ctx, CopyParams{SourceKey: sourceKey, DestinationKey: destinationKey})
}

// PresignedURL signs a GET or PUT request for the key. Expiry defaults to
// DefaultPresignExpiry.
func (f *FileOperations) PresignedURL(ctx context.Context, params PresignParams) PresignResult {
	if f.presigner == nil {
		return PresignResult{Result: failed(ErrPresignDisabled)}
	}

	expires := params.ExpiresIn
	if expires <= 0 {
		expires = DefaultPresignExpiry
	}
	withExpiry := s3.WithPresignExpires(expires)

	var (
		signed *v4.PresignedHTTPRequest
		err    error
	)
	switch params.Operation {
	case PresignGet, "":
		signed, err = f.presigner.PresignGetObject(ctx, &s3.GetObjectInput{
			Bucket: aws.String(f.cfg.Bucket),
			Key:    aws.String(params.Key),
		}, withExpiry)
	case PresignPut:
		input := &s3.PutObjectInput{
			Bucket: aws.String(f.cfg.Bucket),
			Key:    aws.String(params.Key),
		}
		if params.ContentType != "" {
			input.ContentType = aws.String(params.ContentType)
		}
		signed, err = f.presigner.PresignPutObject(ctx, input, withExpiry)
	default:
		return PresignResult{Result: failed(fmt.Errorf("%w: %q", ErrUnsupportedPresign, params.Operation))}
	}
	if err != nil {
		return PresignResult{Result: failed(classifyS3Error(err, "presign"))}
	}

	return PresignResult{
		Result:    succeeded(),
		URL:       signed.URL,
		Method:    signed.Method,
		ExpiresAt: time.Now().Add(expires),
	}
}

// PublicURL returns the unsigned URL of the key. No request is made.
func (f *FileOperations) PublicURL(key string) string {
	return s3PublicURL(f.cfg, key)
}

func objectInfo(obj types.Object) FileInfo {
	return FileInfo{
		Key:          aws.ToString(obj.Key),
		Size:         aws.ToInt64(obj.Size),
		LastModified: aws.ToTime(obj.LastModified),
		ETag:         trimETag(obj.ETag),
	}
}
