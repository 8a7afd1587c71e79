package storage

import "time"

// Result carries the outcome of an operation. Operations never return Go
// errors; Err keeps the classified error for errors.Is checks.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
	Err     error  `json:"-"`
}

func succeeded() Result { return Result{Success: true} }

func failed(err error) Result {
	return Result{Error: err.Error(), Err: err}
}

// FileInfo is a read projection of a stored object's attributes.
type FileInfo struct {
	Key          string            `json:"key"`
	Size         int64             `json:"size"`
	LastModified time.Time         `json:"lastModified"`
	ETag         string            `json:"etag,omitempty"`
	ContentType  string            `json:"contentType,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
}

type FolderInfo struct {
	Path string `json:"path"`
}

type UploadParams struct {
	Key          string
	Body         []byte
	ContentType  string // detected from the key when empty
	Metadata     map[string]string
	CacheControl string
}

type UploadResult struct {
	Result
	Key       string `json:"key,omitempty"`
	URL       string `json:"url,omitempty"`
	PublicURL string `json:"publicUrl,omitempty"`
	ETag      string `json:"etag,omitempty"`
	Size      int64  `json:"size,omitempty"`
}

type DownloadResult struct {
	Result
	Content      []byte            `json:"-"`
	ContentType  string            `json:"contentType,omitempty"`
	ETag         string            `json:"etag,omitempty"`
	Metadata     map[string]string `json:"metadata,omitempty"`
	LastModified time.Time         `json:"lastModified,omitzero"`
}

type BatchDeleteResult struct {
	Result
	Deleted []string `json:"deleted"`
}

type ListParams struct {
	Prefix            string
	ContinuationToken string
	MaxKeys           int32
	// Recursive lists every key under Prefix instead of one level.
	Recursive bool
}

type ListResult struct {
	Result
	Files                 []FileInfo `json:"files,omitempty"`
	CommonPrefixes        []string   `json:"commonPrefixes,omitempty"`
	IsTruncated           bool       `json:"isTruncated"`
	NextContinuationToken string     `json:"nextContinuationToken,omitempty"`
}

// ExistsResult reports object presence. A missing object and a failed
// request both yield Exists=false; only the latter sets Error.
type ExistsResult struct {
	Exists   bool      `json:"exists"`
	FileInfo *FileInfo `json:"fileInfo,omitempty"`
	Error    string    `json:"error,omitempty"`
	Err      error     `json:"-"`
}

type CopyParams struct {
	SourceKey      string
	DestinationKey string
	SourceBucket   string            // defaults to the configured bucket
	Metadata       map[string]string // replaces source metadata when set
}

type CopyResult struct {
	Result
	Key  string `json:"key,omitempty"`
	ETag string `json:"etag,omitempty"`
}

// PresignOperation selects the HTTP method a presigned URL grants.
type PresignOperation string

const (
	PresignGet PresignOperation = "get"
	PresignPut PresignOperation = "put"
)

// DefaultPresignExpiry applies when PresignParams.ExpiresIn is zero.
const DefaultPresignExpiry = time.Hour

type PresignParams struct {
	Key         string
	Operation   PresignOperation
	ContentType string
	ExpiresIn   time.Duration
}

type PresignResult struct {
	Result
	URL       string    `json:"url,omitempty"`
	Method    string    `json:"method,omitempty"`
	ExpiresAt time.Time `json:"expiresAt,omitzero"`
}

type FolderResult struct {
	Result
	Path string `json:"path,omitempty"`
}

type DeleteFolderResult struct {
	Result
	DeletedFiles []string `json:"deletedFiles"`
}

type ListFoldersResult struct {
	Result
	Folders               []string   `json:"folders"`
	Files                 []FileInfo `json:"files"`
	IsTruncated           bool       `json:"isTruncated"`
	NextContinuationToken string     `json:"nextContinuationToken,omitempty"`
}

type FolderExistsResult struct {
	Exists     bool        `json:"exists"`
	FolderInfo *FolderInfo `json:"folderInfo,omitempty"`
	Error      string      `json:"error,omitempty"`
	Err        error       `json:"-"`
}

type RenameFolderResult struct {
	Result
	MovedFiles []string `json:"movedFiles"`
}

type CopyFolderResult struct {
	Result
	CopiedFiles []string `json:"copiedFiles"`
}
