package config

import (
	"errors"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
)

// ErrStorageNotConfigured is returned when no complete set of storage
// parameters is present in the environment.
var ErrStorageNotConfigured = errors.New("storage is not configured")

// Backend names a storage variant.
type Backend string

const (
	BackendS3    Backend = "s3"
	BackendBlob  Backend = "blob"
	BackendLocal Backend = "local"
)

// Key layouts accepted by CONTACT_KEY_LAYOUT.
const (
	LayoutDate = "date"
	LayoutFlat = "flat"
)

// S3Config is the "bucket + region + access key pair" parameter set.
type S3Config struct {
	Region          string `validate:"required"`
	AccessKeyID     string `validate:"required"`
	SecretAccessKey string `validate:"required"`
	Bucket          string `validate:"required"`
	SessionToken    string
	Endpoint        string
}

// BlobConfig is the "single write token" parameter set.
type BlobConfig struct {
	Token   string `validate:"required"`
	BaseURL string
}

// LocalConfig stores submissions on the local filesystem, for development.
type LocalConfig struct {
	Dir string `validate:"required"`
}

// StorageConfig is the resolved storage selection for one request.
type StorageConfig struct {
	Backend   Backend
	KeyLayout string
	S3        *S3Config
	Blob      *BlobConfig
	Local     *LocalConfig
}

// LookupFunc returns the value of an environment variable, or "".
type LookupFunc func(key string) string

var validate = validator.New()

// ResolveStorage picks the first fully configured backend, in the order S3,
// blob, local directory. Values are trimmed; a variable holding only
// whitespace counts as absent.
func ResolveStorage(lookup LookupFunc) (*StorageConfig, error) {
	get := envReader(lookup)

	layout := strings.ToLower(get("CONTACT_KEY_LAYOUT"))
	if layout != LayoutDate && layout != LayoutFlat {
		layout = ""
	}

	s3 := &S3Config{
		Region:          get("AWS_REGION"),
		AccessKeyID:     get("AWS_WRITER_ACCESS_KEY_ID", "AWS_ACCESS_KEY_ID"),
		SecretAccessKey: get("AWS_WRITER_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY", "AWS_SECRET_ACESS_KEY"),
		SessionToken:    get("AWS_WRITER_SESSION_TOKEN", "AWS_SESSION_TOKEN"),
		Bucket:          get("AWS_S3_BUCKET"),
		Endpoint:        get("AWS_S3_ENDPOINT"),
	}
	if validate.Struct(s3) == nil {
		return &StorageConfig{Backend: BackendS3, KeyLayout: orDefault(layout, LayoutDate), S3: s3}, nil
	}

	blob := &BlobConfig{
		Token:   get("BLOB_READ_WRITE_TOKEN"),
		BaseURL: get("BLOB_API_URL"),
	}
	if validate.Struct(blob) == nil {
		return &StorageConfig{Backend: BackendBlob, KeyLayout: orDefault(layout, LayoutFlat), Blob: blob}, nil
	}

	local := &LocalConfig{Dir: get("CONTACT_STORAGE_DIR")}
	if validate.Struct(local) == nil {
		return &StorageConfig{Backend: BackendLocal, KeyLayout: orDefault(layout, LayoutDate), Local: local}, nil
	}

	return nil, ErrStorageNotConfigured
}

// ResolveReader returns S3 parameters for read access, preferring the
// reader-scoped credentials. Region and bucket may be overridden by the caller.
// Only the bucket is required: keys are kept when both halves are present and
// otherwise left to the SDK default credential chain.
func ResolveReader(lookup LookupFunc, bucket, region string) (*S3Config, error) {
	get := envReader(lookup)

	cfg := &S3Config{
		Region:          orDefault(region, get("AWS_REGION")),
		AccessKeyID:     get("AWS_READER_ACCESS_KEY", "AWS_ACCESS_KEY_ID"),
		SecretAccessKey: get("AWS_READER_SECRET_ACCESS_KEY", "AWS_SECRET_ACCESS_KEY"),
		SessionToken:    get("AWS_READER_SESSION_TOKEN", "AWS_SESSION_TOKEN"),
		Bucket:          orDefault(bucket, get("AWS_S3_BUCKET")),
		Endpoint:        get("AWS_S3_ENDPOINT"),
	}
	if err := validate.StructPartial(cfg, "Bucket"); err != nil {
		return nil, errors.Join(ErrStorageNotConfigured, err)
	}
	if !cfg.HasStaticCredentials() {
		cfg.AccessKeyID, cfg.SecretAccessKey, cfg.SessionToken = "", "", ""
	}
	return cfg, nil
}

// HasStaticCredentials reports whether both key halves are set.
func (c *S3Config) HasStaticCredentials() bool {
	return c.AccessKeyID != "" && c.SecretAccessKey != ""
}

// envReader returns a getter yielding the first non-blank value among keys.
func envReader(lookup LookupFunc) func(keys ...string) string {
	if lookup == nil {
		lookup = os.Getenv
	}
	return func(keys ...string) string {
		for _, k := range keys {
			if v := strings.TrimSpace(lookup(k)); v != "" {
				return v
			}
		}
		return ""
	}
}

func orDefault(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
