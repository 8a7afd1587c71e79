package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"

	"github.com/pelatform/kit/pkg/config"
)

// CloudinaryClient is the subset of the Cloudinary SDK used by
// CloudinaryProvider.
type CloudinaryClient interface {
	Upload(ctx context.Context, file any, params uploader.UploadParams) (*uploader.UploadResult, error)
	Destroy(ctx context.Context, params uploader.DestroyParams) (*uploader.DestroyResult, error)
	Assets(ctx context.Context, params admin.AssetsParams) (*admin.AssetsResult, error)
	DeleteAssets(ctx context.Context, params admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error)
	CreateFolder(ctx context.Context, params admin.CreateFolderParams) (*admin.CreateFolderResult, error)
	DeleteFolder(ctx context.Context, params admin.DeleteFolderParams) (*admin.DeleteFolderResult, error)
	RootFolders(ctx context.Context, params admin.RootFoldersParams) (*admin.FoldersResult, error)
	SubFolders(ctx context.Context, params admin.SubFoldersParams) (*admin.FoldersResult, error)
}

// cloudinarySDK adapts *cloudinary.Cloudinary to CloudinaryClient.
type cloudinarySDK struct {
	cld *cloudinary.Cloudinary
}

func (s cloudinarySDK) Upload(ctx context.Context, file any, p uploader.UploadParams) (*uploader.UploadResult, error) {
	return s.cld.Upload.Upload(ctx, file, p)
}

func (s cloudinarySDK) Destroy(ctx context.Context, p uploader.DestroyParams) (*uploader.DestroyResult, error) {
	return s.cld.Upload.Destroy(ctx, p)
}

func (s cloudinarySDK) Assets(ctx context.Context, p admin.AssetsParams) (*admin.AssetsResult, error) {
	return s.cld.Admin.Assets(ctx, p)
}

func (s cloudinarySDK) DeleteAssets(ctx context.Context, p admin.DeleteAssetsParams) (*admin.DeleteAssetsResult, error) {
	return s.cld.Admin.DeleteAssets(ctx, p)
}

func (s cloudinarySDK) CreateFolder(ctx context.Context, p admin.CreateFolderParams) (*admin.CreateFolderResult, error) {
	return s.cld.Admin.CreateFolder(ctx, p)
}

func (s cloudinarySDK) DeleteFolder(ctx context.Context, p admin.DeleteFolderParams) (*admin.DeleteFolderResult, error) {
	return s.cld.Admin.DeleteFolder(ctx, p)
}

func (s cloudinarySDK) RootFolders(ctx context.Context, p admin.RootFoldersParams) (*admin.FoldersResult, error) {
	return s.cld.Admin.RootFolders(ctx, p)
}

func (s cloudinarySDK) SubFolders(ctx context.Context, p admin.SubFoldersParams) (*admin.FoldersResult, error) {
	return s.cld.Admin.SubFolders(ctx, p)
}

const cloudinaryDeliveryHost = "res.cloudinary.com"

// CloudinaryProvider implements Storage on the Cloudinary media CDN.
// Keys map to public ids: the configured folder is prepended and, for image
// and video assets, the final extension is dropped. Raw assets keep it. Keys
// returned by Upload and List are the public id plus the delivered format, so
// they can be passed back to Delete and Download unchanged. Exists, Copy, Move, Duplicate, PresignedURL, RenameFolder and
// CopyFolder are not supported and fail with ErrNotImplemented.
type CloudinaryProvider struct {
	client     CloudinaryClient
	httpClient *http.Client
	cfg        CloudinaryConfig
}

func NewCloudinaryProvider(cfg CloudinaryConfig, opts ...Option) (*CloudinaryProvider, error) {
	if err := config.Validate(cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	o := newOptions(opts)
	client := o.cloudinaryClient
	if client == nil {
		cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrFailedToLoadConfig, err)
		}
		cld.Config.URL.Secure = cfg.Secure
		client = cloudinarySDK{cld: cld}
	}

	httpClient := o.httpClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	cfg.Folder = NormalizePath(cfg.Folder)
	return &CloudinaryProvider{client: client, httpClient: httpClient, cfg: cfg}, nil
}

func (p *CloudinaryProvider) Provider() Provider { return ProviderCloudinary }

func (p *CloudinaryProvider) Config() CloudinaryConfig { return p.cfg }

// inFolder prefixes p with the configured folder unless it already is.
func (p *CloudinaryProvider) inFolder(key string) string {
	key = NormalizePath(key)
	if p.cfg.Folder == "" || key == p.cfg.Folder || strings.HasPrefix(key, p.cfg.Folder+"/") {
		return key
	}
	return JoinPath(p.cfg.Folder, key)
}

// publicID maps an object key to its Cloudinary public id.
func (p *CloudinaryProvider) publicID(key string) string {
	key = p.inFolder(key)
	if resourceType(key) == api.File {
		return key
	}
	return strings.TrimSuffix(key, path.Ext(key))
}

// resourceType is the Cloudinary resource type a key is stored under.
// PDFs are image resources on Cloudinary.
func resourceType(key string) api.AssetType {
	switch {
	case IsImageFile(key) || FileExtension(key) == ".pdf":
		return api.Image
	case IsVideoFile(key) || IsAudioFile(key):
		return api.Video
	default:
		return api.File
	}
}

// assetKey rebuilds the object key of a stored asset.
func assetKey(publicID, format, assetType string) string {
	if format == "" || assetType == string(api.File) {
		return publicID
	}
	return publicID + "." + format
}

func (p *CloudinaryProvider) Upload(ctx context.Context, params UploadParams) UploadResult {
	if v := ValidateKey(params.Key); !v.Valid {
		return UploadResult{Result: failed(fmt.Errorf("%w: %s", ErrInvalidKey, v.Error))}
	}

	up := uploader.UploadParams{
		PublicID:     p.publicID(params.Key),
		ResourceType: string(resourceType(params.Key)),
	}
	if len(params.Metadata) > 0 {
		up.Context = api.CldAPIMap(params.Metadata)
	}

	res, err := p.client.Upload(ctx, bytes.NewReader(params.Body), up)
	if err == nil {
		err = apiError(res.Error)
	}
	if err != nil {
		return UploadResult{Result: failed(fmt.Errorf("upload operation failed: %w", err))}
	}

	deliveryURL := res.SecureURL
	if !p.cfg.Secure || deliveryURL == "" {
		deliveryURL = res.URL
	}
	key := assetKey(res.PublicID, res.Format, res.ResourceType)

	size := int64(res.Bytes)
	if size == 0 {
		size = int64(len(params.Body))
	}
	return UploadResult{
		Result:    succeeded(),
		Key:       key,
		URL:       deliveryURL,
		PublicURL: p.PublicURL(key),
		ETag:      res.Etag,
		Size:      size,
	}
}

// Download fetches the delivery URL of the key, resolved inside the
// configured folder, over HTTP.
func (p *CloudinaryProvider) Download(ctx context.Context, key string) DownloadResult {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.PublicURL(p.inFolder(key)), nil)
	if err != nil {
		return DownloadResult{Result: failed(fmt.Errorf("%w: %v", ErrDownloadFailed, err))}
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return DownloadResult{Result: failed(fmt.Errorf("%w: %v", ErrDownloadFailed, err))}
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return DownloadResult{Result: failed(fmt.Errorf("%w: %s", ErrFileNotFound, key))}
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return DownloadResult{Result: failed(fmt.Errorf("%w: HTTP %d", ErrDownloadFailed, resp.StatusCode))}
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return DownloadResult{Result: failed(fmt.Errorf("%w: %v", ErrFailedToRead, err))}
	}

	res := DownloadResult{
		Result:      succeeded(),
		Content:     content,
		ContentType: resp.Header.Get("Content-Type"),
		ETag:        strings.Trim(resp.Header.Get("ETag"), `"`),
	}
	if lm, err := http.ParseTime(resp.Header.Get("Last-Modified")); err == nil {
		res.LastModified = lm
	}
	return res
}

func (p *CloudinaryProvider) Delete(ctx context.Context, key string) Result {
	res, err := p.client.Destroy(ctx, uploader.DestroyParams{
		PublicID:     p.publicID(key),
		ResourceType: string(resourceType(key)),
	})
	if err == nil {
		err = apiError(res.Error)
	}
	if err != nil {
		return failed(fmt.Errorf("delete operation failed: %w", err))
	}
	if res.Result != "ok" {
		return failed(fmt.Errorf("%w: %s (%s)", ErrFileNotFound, key, res.Result))
	}
	return succeeded()
}

func (p *CloudinaryProvider) BatchDelete(ctx context.Context, keys []string) BatchDeleteResult {
	if len(keys) == 0 {
		return BatchDeleteResult{Result: succeeded(), Deleted: []string{}}
	}

	// Cloudinary deletes one resource type per call.
	ids := make([]string, len(keys))
	byType := map[api.AssetType][]string{}
	var types []api.AssetType
	for i, k := range keys {
		ids[i] = p.publicID(k)
		t := resourceType(k)
		if _, ok := byType[t]; !ok {
			types = append(types, t)
		}
		byType[t] = append(byType[t], ids[i])
	}

	status := make(map[string]string, len(keys))
	for _, t := range types {
		res, err := p.client.DeleteAssets(ctx, admin.DeleteAssetsParams{AssetType: t, PublicIDs: byType[t]})
		if err == nil {
			err = apiError(res.Error)
		}
		if err != nil {
			return BatchDeleteResult{Result: failed(fmt.Errorf("batch delete operation failed: %w", err)), Deleted: []string{}}
		}
		for id, s := range res.Deleted {
			status[id] = s
		}
	}

	deleted := make([]string, 0, len(keys))
	var refused []string
	for i, id := range ids {
		if status[id] == "deleted" {
			deleted = append(deleted, keys[i])
		} else {
			refused = append(refused, keys[i])
		}
	}
	if len(refused) > 0 {
		return BatchDeleteResult{
			Result:  failed(fmt.Errorf("%w: %s", ErrPartialDelete, strings.Join(refused, ", "))),
			Deleted: deleted,
		}
	}
	return BatchDeleteResult{Result: succeeded(), Deleted: deleted}
}

// List returns one page of image assets under the prefix. Cloudinary lists
// one resource type per call and has no delimiter listing, so CommonPrefixes
// is always empty.
func (p *CloudinaryProvider) List(ctx context.Context, params ListParams) ListResult {
	ap := admin.AssetsParams{
		Prefix:     p.inFolder(params.Prefix),
		NextCursor: params.ContinuationToken,
	}
	if params.MaxKeys > 0 {
		ap.MaxResults = int(params.MaxKeys)
	}

	res, err := p.client.Assets(ctx, ap)
	if err == nil {
		err = apiError(res.Error)
	}
	if err != nil {
		return ListResult{Result: failed(fmt.Errorf("list operation failed: %w", err))}
	}

	files := make([]FileInfo, 0, len(res.Assets))
	for _, a := range res.Assets {
		files = append(files, assetInfo(a))
	}
	return ListResult{
		Result:                succeeded(),
		Files:                 files,
		CommonPrefixes:        []string{},
		IsTruncated:           res.NextCursor != "",
		NextContinuationToken: res.NextCursor,
	}
}

func (p *CloudinaryProvider) Exists(context.Context, string) ExistsResult {
	err := notImplemented("exists")
	return ExistsResult{Error: err.Error(), Err: err}
}

func (p *CloudinaryProvider) Copy(context.Context, CopyParams) CopyResult {
	return CopyResult{Result: failed(notImplemented("copy"))}
}

func (p *CloudinaryProvider) Move(context.Context, string, string) CopyResult {
	return CopyResult{Result: failed(notImplemented("move"))}
}

func (p *CloudinaryProvider) Duplicate(context.Context, string, string) CopyResult {
	return CopyResult{Result: failed(notImplemented("duplicate"))}
}

func (p *CloudinaryProvider) PresignedURL(context.Context, PresignParams) PresignResult {
	return PresignResult{Result: failed(notImplemented("presigned URL"))}
}

// PublicURL returns https://res.cloudinary.com/<cloud>/<type>/upload/<key>,
// where type is image, video or raw by the key's extension. Keys returned by
// Upload already carry the configured folder.
func (p *CloudinaryProvider) PublicURL(key string) string {
	scheme := "http"
	if p.cfg.Secure {
		scheme = "https"
	}
	return fmt.Sprintf("%s://%s/%s/%s/upload/%s", scheme, cloudinaryDeliveryHost, p.cfg.CloudName, resourceType(key), NormalizePath(key))
}

func (p *CloudinaryProvider) CreateFolder(ctx context.Context, folder string) FolderResult {
	name := p.inFolder(folder)
	if NormalizePath(folder) == "" {
		return FolderResult{Result: failed(fmt.Errorf("%w: folder path is required", ErrInvalidPath))}
	}

	res, err := p.client.CreateFolder(ctx, admin.CreateFolderParams{Folder: name})
	if err == nil {
		err = apiError(res.Error)
	}
	if err != nil {
		return FolderResult{Result: failed(fmt.Errorf("create folder operation failed: %w", err))}
	}
	return FolderResult{Result: succeeded(), Path: name + "/"}
}

// DeleteFolder removes the folder. Cloudinary only deletes empty folders, so
// with recursive every asset under it is deleted first.
func (p *CloudinaryProvider) DeleteFolder(ctx context.Context, folder string, recursive bool) DeleteFolderResult {
	if NormalizePath(folder) == "" {
		return DeleteFolderResult{Result: failed(fmt.Errorf("%w: folder path is required", ErrInvalidPath)), DeletedFiles: []string{}}
	}
	name := p.inFolder(folder)
	deletedFiles := []string{}

	if recursive {
		keys, err := p.assetKeys(ctx, name+"/")
		if err != nil {
			return DeleteFolderResult{Result: failed(err), DeletedFiles: deletedFiles}
		}
		if len(keys) > 0 {
			batch := p.BatchDelete(ctx, keys)
			deletedFiles = append(deletedFiles, batch.Deleted...)
			if !batch.Success {
				return DeleteFolderResult{Result: batch.Result, DeletedFiles: deletedFiles}
			}
		}
	}

	res, err := p.client.DeleteFolder(ctx, admin.DeleteFolderParams{Folder: name})
	if err == nil {
		err = apiError(res.Error)
	}
	if err != nil {
		return DeleteFolderResult{Result: failed(fmt.Errorf("delete folder operation failed: %w", err)), DeletedFiles: deletedFiles}
	}
	return DeleteFolderResult{Result: succeeded(), DeletedFiles: append(deletedFiles, name+"/")}
}

// ListFolders lists sub-folders of prefix (root folders when empty) and the
// first page of assets directly under it.
func (p *CloudinaryProvider) ListFolders(ctx context.Context, prefix, continuationToken string) ListFoldersResult {
	name := p.inFolder(prefix)

	var (
		folders *admin.FoldersResult
		err     error
	)
	if name == "" {
		folders, err = p.client.RootFolders(ctx, admin.RootFoldersParams{})
	} else {
		folders, err = p.client.SubFolders(ctx, admin.SubFoldersParams{Folder: name})
	}
	if err == nil {
		err = apiError(folders.Error)
	}
	if err != nil {
		return ListFoldersResult{Result: failed(fmt.Errorf("list folders operation failed: %w", err))}
	}

	assetPrefix := ""
	if name != "" {
		assetPrefix = name + "/"
	}
	assets := p.List(ctx, ListParams{Prefix: assetPrefix, ContinuationToken: continuationToken})
	if !assets.Success {
		return ListFoldersResult{Result: assets.Result}
	}

	res := ListFoldersResult{
		Result:                succeeded(),
		Folders:               make([]string, 0, len(folders.Folders)),
		Files:                 make([]FileInfo, 0, len(assets.Files)),
		IsTruncated:           assets.IsTruncated,
		NextContinuationToken: assets.NextContinuationToken,
	}
	for _, f := range folders.Folders {
		res.Folders = append(res.Folders, f.Path+"/")
	}
	for _, f := range assets.Files {
		if !strings.Contains(strings.TrimPrefix(f.Key, assetPrefix), "/") {
			res.Files = append(res.Files, f)
		}
	}
	return res
}

// FolderExists reports whether any asset of any resource type lives under
// the folder.
func (p *CloudinaryProvider) FolderExists(ctx context.Context, folder string) FolderExistsResult {
	name := p.inFolder(folder)
	for _, t := range cloudinaryAssetTypes {
		res, err := p.client.Assets(ctx, admin.AssetsParams{AssetType: t, Prefix: name + "/", MaxResults: 1})
		if err == nil {
			err = apiError(res.Error)
		}
		if err != nil {
			err = fmt.Errorf("folder exists operation failed: %w", err)
			return FolderExistsResult{Error: err.Error(), Err: err}
		}
		if len(res.Assets) > 0 {
			return FolderExistsResult{Exists: true, FolderInfo: &FolderInfo{Path: name + "/"}}
		}
	}
	return FolderExistsResult{}
}

func (p *CloudinaryProvider) RenameFolder(context.Context, string, string) RenameFolderResult {
	return RenameFolderResult{Result: failed(notImplemented("rename folder")), MovedFiles: []string{}}
}

func (p *CloudinaryProvider) CopyFolder(context.Context, string, string) CopyFolderResult {
	return CopyFolderResult{Result: failed(notImplemented("copy folder")), CopiedFiles: []string{}}
}

var cloudinaryAssetTypes = []api.AssetType{api.Image, api.Video, api.File}

// assetKeys drains every page of every resource type under prefix.
func (p *CloudinaryProvider) assetKeys(ctx context.Context, prefix string) ([]string, error) {
	var keys []string
	for _, t := range cloudinaryAssetTypes {
		cursor := ""
		for {
			res, err := p.client.Assets(ctx, admin.AssetsParams{AssetType: t, Prefix: prefix, NextCursor: cursor, MaxResults: 500})
			if err == nil {
				err = apiError(res.Error)
			}
			if err != nil {
				return nil, fmt.Errorf("list operation failed: %w", err)
			}
			for _, a := range res.Assets {
				keys = append(keys, assetKey(a.PublicID, a.Format, a.AssetType))
			}
			if res.NextCursor == "" {
				break
			}
			cursor = res.NextCursor
		}
	}
	return keys, nil
}

func assetInfo(a api.BriefAssetResult) FileInfo {
	key := assetKey(a.PublicID, a.Format, a.AssetType)
	return FileInfo{
		Key:          key,
		Size:         int64(a.Bytes),
		LastModified: a.CreatedAt,
		ContentType:  GetMimeType(key),
	}
}

func notImplemented(operation string) error {
	return fmt.Errorf("%w: %s is not supported by cloudinary", ErrNotImplemented, operation)
}

// apiError converts the error payload Cloudinary embeds in successful
// HTTP responses.
func apiError(resp api.ErrorResp) error {
	if resp.Message == "" {
		return nil
	}
	return errors.New(resp.Message)
}
