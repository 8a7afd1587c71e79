package storage_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pelatform/kit/pkg/config"
	"github.com/pelatform/kit/pkg/storage"
)

var storageEnvVars = []string{
	storage.EnvS3Provider, storage.EnvS3Region, storage.EnvS3Bucket, storage.EnvS3AccessKeyID,
	storage.EnvS3SecretAccessKey, storage.EnvS3Endpoint, storage.EnvS3ForcePathStyle, storage.EnvS3PublicURL,
	storage.EnvCloudinaryCloudName, storage.EnvCloudinaryAPIKey, storage.EnvCloudinaryAPISecret,
	storage.EnvCloudinarySecure, storage.EnvCloudinaryFolder,
}

// clearStorageEnv blanks every storage variable for the duration of the test.
// Blank values are treated as unset.
func clearStorageEnv(t *testing.T) {
	t.Helper()
	for _, name := range storageEnvVars {
		t.Setenv(name, "")
	}
}

func setS3Env(t *testing.T) {
	t.Helper()
	t.Setenv(storage.EnvS3Region, "us-east-1")
	t.Setenv(storage.EnvS3Bucket, "bucket")
	t.Setenv(storage.EnvS3AccessKeyID, "AKIAEXAMPLE")
	t.Setenv(storage.EnvS3SecretAccessKey, "supersecret")
}

func TestDetectProvider(t *testing.T) {
	t.Run("nothing configured", func(t *testing.T) {
		clearStorageEnv(t)
		_, ok := storage.DetectProvider()
		assert.False(t, ok)
	})

	t.Run("bucket implies aws", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvS3Bucket, "bucket")
		p, ok := storage.DetectProvider()
		assert.True(t, ok)
		assert.Equal(t, storage.ProviderAWS, p)
	})

	t.Run("cloud name implies cloudinary", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvCloudinaryCloudName, "cloud")
		p, ok := storage.DetectProvider()
		assert.True(t, ok)
		assert.Equal(t, storage.ProviderCloudinary, p)
	})

	t.Run("explicit provider wins", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvS3Provider, "minio")
		t.Setenv(storage.EnvCloudinaryCloudName, "cloud")
		p, ok := storage.DetectProvider()
		assert.True(t, ok)
		assert.Equal(t, storage.ProviderMinIO, p)
	})
}

func TestLoadConfig(t *testing.T) {
	t.Run("no configuration", func(t *testing.T) {
		clearStorageEnv(t)
		cfg, err := storage.LoadConfig()
		assert.ErrorIs(t, err, storage.ErrNoConfig)
		assert.EqualError(t, err, "no storage configuration found")
		assert.Nil(t, cfg)
		assert.False(t, storage.HasConfig())
		assert.False(t, storage.IsConfigured())
	})

	t.Run("incomplete s3 lists missing variables", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvS3Bucket, "bucket")

		cfg, err := storage.LoadConfig()
		require.Error(t, err)
		assert.Nil(t, cfg)
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)

		var verr *config.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.ElementsMatch(t, []string{
			storage.EnvS3Region, storage.EnvS3AccessKeyID, storage.EnvS3SecretAccessKey,
		}, verr.Missing)
		assert.Contains(t, err.Error(), "PELATFORM_S3_REGION")
	})

	t.Run("complete s3", func(t *testing.T) {
		clearStorageEnv(t)
		setS3Env(t)

		cfg, err := storage.LoadConfig()
		require.NoError(t, err)
		s3cfg, ok := cfg.(storage.S3Config)
		require.True(t, ok)
		assert.Equal(t, storage.ProviderAWS, s3cfg.Provider)
		assert.Equal(t, "bucket", s3cfg.Bucket)
		assert.False(t, s3cfg.ForcePathStyle)
		assert.True(t, storage.HasConfig())
	})

	t.Run("invalid boolean", func(t *testing.T) {
		clearStorageEnv(t)
		setS3Env(t)
		t.Setenv(storage.EnvS3ForcePathStyle, "maybe")

		_, err := storage.LoadS3Config()
		assert.ErrorIs(t, err, storage.ErrInvalidConfig)
		assert.Contains(t, err.Error(), storage.EnvS3ForcePathStyle)
	})

	t.Run("cloudinary defaults to secure", func(t *testing.T) {
		clearStorageEnv(t)
		t.Setenv(storage.EnvCloudinaryCloudName, "cloud")
		t.Setenv(storage.EnvCloudinaryAPIKey, "key")
		t.Setenv(storage.EnvCloudinaryAPISecret, "secret")

		cfg, err := storage.LoadConfig()
		require.NoError(t, err)
		ccfg, ok := cfg.(storage.CloudinaryConfig)
		require.True(t, ok)
		assert.True(t, ccfg.Secure)
		assert.Equal(t, storage.ProviderCloudinary, ccfg.ProviderName())
	})
}

func TestEnvVars(t *testing.T) {
	clearStorageEnv(t)
	setS3Env(t)

	vars := storage.EnvVars()
	assert.Equal(t, "bucket", vars[storage.EnvS3Bucket])
	assert.Equal(t, "AKIA***", vars[storage.EnvS3AccessKeyID])
	assert.Equal(t, "supe***", vars[storage.EnvS3SecretAccessKey])
	assert.NotContains(t, vars, storage.EnvS3Endpoint)
}

func TestValidateS3Config(t *testing.T) {
	t.Parallel()

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		res := storage.ValidateS3Config(testS3Config())
		assert.True(t, res.Valid)
		assert.Empty(t, res.Errors)
	})

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		res := storage.ValidateS3Config(storage.S3Config{Bucket: "bucket"})
		assert.False(t, res.Valid)
		assert.Len(t, res.Errors, 3)
	})

	t.Run("bad endpoint and bucket", func(t *testing.T) {
		t.Parallel()
		cfg := testS3Config()
		cfg.Endpoint = "not a url"
		res := storage.ValidateS3Config(cfg)
		assert.False(t, res.Valid)
		assert.Contains(t, res.Errors[0], storage.EnvS3Endpoint)

		cfg = testS3Config()
		cfg.Bucket = "Bad_Bucket"
		res = storage.ValidateS3Config(cfg)
		assert.False(t, res.Valid)
	})
}
