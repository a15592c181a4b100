// Package storage persists submission records to whichever backend the
// environment configures. Callers only see Writer and Reader.
package storage

import (
	"context"
	"errors"
	"fmt"

	"contact-intake/pkg/clients/blob"
	"contact-intake/pkg/clients/s3"
	"contact-intake/pkg/config"
)

// ContentTypeJSON is the content type of every stored record.
const ContentTypeJSON = "application/json"

// ErrWrite wraps every failure that happens while persisting an object.
var ErrWrite = errors.New("storage write failed")

// Object is one thing to store.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
}

// Location reports where an object ended up. URL is only set by backends that
// expose a direct address.
type Location struct {
	Path string
	URL  string
}

// Writer stores objects.
type Writer interface {
	Put(ctx context.Context, obj Object) (Location, error)
	Backend() string
}

// Reader lists and loads stored objects.
type Reader interface {
	List(ctx context.Context, prefix string) ([]string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// Open builds the writer for cfg. It performs no I/O.
func Open(cfg *config.StorageConfig) (Writer, error) {
	if cfg == nil {
		return nil, config.ErrStorageNotConfigured
	}

	switch cfg.Backend {
	case config.BackendS3:
		return newS3Writer(cfg.S3), nil
	case config.BackendBlob:
		return NewBlobWriter(blob.NewClient(cfg.Blob.Token, cfg.Blob.BaseURL)), nil
	case config.BackendLocal:
		return NewLocal(cfg.Local.Dir), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q: %w", cfg.Backend, config.ErrStorageNotConfigured)
	}
}

// OpenReader builds a reader over the bucket described by cfg. Without static
// keys the AWS default credential chain is used.
func OpenReader(ctx context.Context, cfg *config.S3Config) (Reader, error) {
	if cfg == nil {
		return nil, config.ErrStorageNotConfigured
	}
	client, err := s3.NewDefaultClient(ctx, s3Options(cfg))
	if err != nil {
		return nil, err
	}
	return NewS3Writer(client), nil
}

func newS3Writer(cfg *config.S3Config) *S3Writer {
	return NewS3Writer(s3.NewClient(s3Options(cfg)))
}

func s3Options(cfg *config.S3Config) s3.Options {
	return s3.Options{
		Region:          cfg.Region,
		AccessKeyID:     cfg.AccessKeyID,
		SecretAccessKey: cfg.SecretAccessKey,
		SessionToken:    cfg.SessionToken,
		Bucket:          cfg.Bucket,
		Endpoint:        cfg.Endpoint,
	}
}

// S3Writer stores objects in an S3 bucket.
type S3Writer struct {
	client s3.Client
}

func NewS3Writer(client s3.Client) *S3Writer {
	return &S3Writer{client: client}
}

func (w *S3Writer) Backend() string { return string(config.BackendS3) }

func (w *S3Writer) Put(ctx context.Context, obj Object) (Location, error) {
	if err := w.client.PutObject(ctx, obj.Key, obj.Body, obj.ContentType); err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return Location{Path: obj.Key}, nil
}

func (w *S3Writer) List(ctx context.Context, prefix string) ([]string, error) {
	return w.client.ListKeys(ctx, prefix)
}

func (w *S3Writer) Get(ctx context.Context, key string) ([]byte, error) {
	return w.client.GetObject(ctx, key)
}

// BlobWriter stores objects through the blob API.
type BlobWriter struct {
	client blob.Client
}

func NewBlobWriter(client blob.Client) *BlobWriter {
	return &BlobWriter{client: client}
}

func (w *BlobWriter) Backend() string { return string(config.BackendBlob) }

func (w *BlobWriter) Put(ctx context.Context, obj Object) (Location, error) {
	res, err := w.client.Put(ctx, obj.Key, obj.Body, obj.ContentType)
	if err != nil {
		return Location{}, fmt.Errorf("%w: %w", ErrWrite, err)
	}
	return Location{Path: res.Pathname, URL: res.URL}, nil
}
