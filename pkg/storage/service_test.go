package storage_test

import (
	"bytes"
	"context"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/storage"
)

func TestNewS3Service(t *testing.T) {
	t.Parallel()

	t.Run("explicit config", func(t *testing.T) {
		t.Parallel()
		cfg := testS3Config()
		svc, err := storage.NewS3Service(context.Background(), &cfg)
		require.NoError(t, err)
		assert.Equal(t, storage.ProviderAWS, svc.Provider())
		assert.Equal(t, "test-bucket", svc.Bucket())
		assert.Equal(t, "us-east-1", svc.Region())
		assert.Equal(t, "test-bucket", svc.Config().Bucket)
	})

	t.Run("s3 compatible endpoint", func(t *testing.T) {
		t.Parallel()
		cfg := testS3Config()
		cfg.Provider = storage.ProviderMinIO
		cfg.Endpoint = "http://localhost:9000"
		cfg.ForcePathStyle = true

		svc, err := storage.NewS3Service(context.Background(), &cfg)
		require.NoError(t, err)
		assert.Equal(t, storage.ProviderMinIO, svc.Provider())
		assert.Equal(t, "http://localhost:9000/test-bucket/a.txt", svc.PublicURL("a.txt"))
	})

	t.Run("invalid config", func(t *testing.T) {
		t.Parallel()
		cfg := storage.S3Config{Bucket: "bucket"}
		svc, err := storage.NewS3Service(context.Background(), &cfg)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Nil(t, svc)
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Parallel()
		cfg := testS3Config()
		cfg.Provider = "gcs"
		_, err := storage.NewS3Service(context.Background(), &cfg)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
	})
}

// writeCABundle writes a self-signed CA certificate in PEM form and returns
// its path.
func writeCABundle(t *testing.T) string {
	t.Helper()
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	tmpl := &x509.Certificate{
		SerialNumber:          big.NewInt(1),
		Subject:               pkix.Name{CommonName: "test-ca"},
		NotBefore:             time.Now().Add(-time.Hour),
		NotAfter:              time.Now().Add(time.Hour),
		IsCA:                  true,
		BasicConstraintsValid: true,
		KeyUsage:              x509.KeyUsageCertSign,
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &key.PublicKey, key)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "ca.pem")
	require.NoError(t, os.WriteFile(path, pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: der}), 0o600))
	return path
}

func TestNewS3Provider_CABundle(t *testing.T) {
	t.Setenv("AWS_CA_BUNDLE", writeCABundle(t))

	p, err := storage.NewS3Provider(context.Background(), testS3Config())
	require.NoError(t, err)
	assert.Equal(t, "test-bucket", p.Config().Bucket)
}

func TestNew(t *testing.T) {
	t.Run("nil config without environment", func(t *testing.T) {
		clearStorageEnv(t)
		svc, err := storage.New(context.Background(), nil)
		assert.ErrorIs(t, err, storage.ErrNoConfig)
		assert.Nil(t, svc)

		_, err = storage.NewS3Service(context.Background(), nil)
		assert.ErrorIs(t, err, storage.ErrNoConfig)
		_, err = storage.NewCloudinaryService(nil)
		assert.ErrorIs(t, err, storage.ErrNoConfig)
	})

	t.Run("nil config from environment", func(t *testing.T) {
		clearStorageEnv(t)
		setS3Env(t)
		t.Setenv(storage.EnvS3PublicURL, "https://cdn.example.com")

		svc, err := storage.New(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, storage.ProviderAWS, svc.Provider())
		assert.Equal(t, "https://cdn.example.com/bucket/a.txt", svc.PublicURL("a.txt"))
	})

	t.Run("cloudinary from environment", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvS3Provider, "cloudinary")
		t.Setenv(storage.EnvCloudinaryCloudName, "cloud")
		t.Setenv(storage.EnvCloudinaryAPIKey, "key")
		t.Setenv(storage.EnvCloudinaryAPISecret, "secret")
		t.Setenv(storage.EnvCloudinarySecure, "true")
		t.Setenv(storage.EnvCloudinaryFolder, "uploads")

		svc, err := storage.NewCloudinaryService(nil)
		require.NoError(t, err)
		assert.Equal(t, storage.ProviderCloudinary, svc.Provider())
		assert.Equal(t, "cloud", svc.CloudName())
		assert.Equal(t, "https://res.cloudinary.com/cloud/image/upload/folder/photo.jpg", svc.PublicURL("folder/photo.jpg"))
	})

	t.Run("explicit config wins over environment", func(t *testing.T) {
		clearStorageEnv(t)
		setS3Env(t)

		svc, err := storage.New(context.Background(), testCloudinaryConfig())
		require.NoError(t, err)
		assert.Equal(t, storage.ProviderCloudinary, svc.Provider())

		cfg := testS3Config()
		svc, err = storage.New(context.Background(), &cfg)
		require.NoError(t, err)
		assert.Equal(t, "https://test-bucket.s3.us-east-1.amazonaws.com/k", svc.PublicURL("k"))
	})
}

func TestService_Delegation(t *testing.T) {
	t.Parallel()

	newService := func(t *testing.T) (*storage.S3Service, *MockPresignS3Client, *bytes.Buffer) {
		t.Helper()
		client := &MockPresignS3Client{}
		buf := &bytes.Buffer{}
		log := slog.New(slog.NewJSONHandler(buf, nil))
		cfg := testS3Config()
		svc, err := storage.NewS3Service(context.Background(), &cfg,
			storage.WithS3Client(client),
			storage.WithLogger(log),
		)
		require.NoError(t, err)
		return svc, client, buf
	}

	t.Run("upload and download", func(t *testing.T) {
		t.Parallel()
		svc, client, buf := newService(t)

		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)
		client.On("GetObject", mock.Anything, mock.Anything, mock.Anything).Return(nil, &types.NoSuchKey{})

		up := svc.UploadFile(context.Background(), storage.UploadParams{Key: "a.txt", Body: []byte("hi")})
		assert.True(t, up.Success)

		down := svc.DownloadFile(context.Background(), "missing.txt")
		assert.False(t, down.Success)
		assert.Contains(t, buf.String(), "storage operation failed")
		assert.Contains(t, buf.String(), `"operation":"download"`)
		assert.Contains(t, buf.String(), `"key":"missing.txt"`)
	})

	t.Run("exists helpers return booleans", func(t *testing.T) {
		t.Parallel()
		svc, client, _ := newService(t)

		client.On("HeadObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.HeadObjectOutput{}, nil)
		client.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{}, nil)

		assert.True(t, svc.FileExists(context.Background(), "a.txt"))
		assert.False(t, svc.FolderPathExists(context.Background(), "empty"))
	})

	t.Run("presigned urls", func(t *testing.T) {
		t.Parallel()
		svc, client, _ := newService(t)

		client.On("PresignGetObject", mock.Anything, mock.Anything, mock.Anything).
			Return(&v4.PresignedHTTPRequest{URL: "https://signed/get", Method: "GET"}, nil)
		client.On("PresignPutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
			return aws.ToString(in.ContentType) == "image/png"
		}), mock.Anything).Return(&v4.PresignedHTTPRequest{URL: "https://signed/put", Method: "PUT"}, nil)

		get := svc.GetDownloadURL(context.Background(), "a.png", 0)
		require.True(t, get.Success, get.Error)
		assert.Equal(t, "https://signed/get", get.URL)

		put := svc.GetUploadURL(context.Background(), "a.png", "image/png", 5*time.Minute)
		require.True(t, put.Success, put.Error)
		assert.Equal(t, "PUT", put.Method)
	})

	t.Run("file and folder mutations", func(t *testing.T) {
		t.Parallel()
		svc, client, _ := newService(t)
		ctx := context.Background()

		client.On("CopyObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.CopyObjectOutput{}, nil)
		client.On("DeleteObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.DeleteObjectOutput{}, nil)
		client.On("DeleteObjects", mock.Anything, mock.Anything, mock.Anything).Return(deleteAll(), nil)
		client.On("PutObject", mock.Anything, mock.Anything, mock.Anything).Return(&s3.PutObjectOutput{}, nil)
		client.On("ListObjectsV2", mock.Anything, mock.Anything, mock.Anything).Return(&s3.ListObjectsV2Output{
			Contents: objects("src/a.txt"),
		}, nil)

		assert.True(t, svc.CopyFile(ctx, "a.txt", "b.txt").Success)
		assert.True(t, svc.MoveFile(ctx, "a.txt", "b.txt").Success)
		assert.True(t, svc.DuplicateFile(ctx, "a.txt", "").Success)
		assert.True(t, svc.DeleteFile(ctx, "a.txt").Success)
		assert.Equal(t, []string{"x", "y"}, svc.DeleteFiles(ctx, []string{"x", "y"}).Deleted)
		assert.True(t, svc.ListFiles(ctx, storage.ListParams{Prefix: "src/"}).Success)
		assert.Equal(t, "dir/", svc.CreateFolderPath(ctx, "dir").Path)
		assert.True(t, svc.ListFolderPaths(ctx, "src", "").Success)
		assert.Equal(t, []string{"dst/a.txt"}, svc.CopyFolderPath(ctx, "src", "dst").CopiedFiles)
		assert.Equal(t, []string{"new/a.txt"}, svc.RenameFolderPath(ctx, "src", "new").MovedFiles)
		assert.Equal(t, []string{"src/a.txt"}, svc.DeleteFolderPath(ctx, "src", true).DeletedFiles)
	})
}
