package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"contact-intake/pkg/config"
	"contact-intake/pkg/logger"
	"contact-intake/pkg/metrics"
	"contact-intake/pkg/models"
	"contact-intake/pkg/storage"
	"contact-intake/pkg/utils"
)

// ContactSubmissionService defines the interface for handling form submissions
type ContactSubmissionService interface {
	ProcessContactSubmission(ctx context.Context, input models.SubmissionInput, meta models.RequestMeta) (*models.SubmissionResult, error)
}

// StorageResolver returns the storage configuration for the current request.
type StorageResolver func() (*config.StorageConfig, error)

// WriterFactory turns a storage configuration into a Writer.
type WriterFactory func(cfg *config.StorageConfig) (storage.Writer, error)

// Option customizes the service, mostly for tests.
type Option func(*contactSubmissionServiceImpl)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *contactSubmissionServiceImpl) { s.now = now }
}

// WithSuffix overrides the random id suffix generator.
func WithSuffix(suffix func() string) Option {
	return func(s *contactSubmissionServiceImpl) { s.suffix = suffix }
}

// WithWriterFactory overrides storage.Open.
func WithWriterFactory(f WriterFactory) Option {
	return func(s *contactSubmissionServiceImpl) { s.openWriter = f }
}

type contactSubmissionServiceImpl struct {
	resolve    StorageResolver
	openWriter WriterFactory
	metrics    metrics.Collector
	now        func() time.Time
	suffix     func() string
}

// NewContactSubmissionService creates a new submission service
func NewContactSubmissionService(resolve StorageResolver, collector metrics.Collector, opts ...Option) ContactSubmissionService {
	if collector == nil {
		collector = metrics.Nop{}
	}
	s := &contactSubmissionServiceImpl{
		resolve:    resolve,
		openWriter: storage.Open,
		metrics:    collector,
		now:        time.Now,
		suffix:     utils.RandomSuffix,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ProcessContactSubmission checks that storage is configured, validates the
// input, builds the record and writes it. Nothing is written unless every
// check passes.
func (s *contactSubmissionServiceImpl) ProcessContactSubmission(ctx context.Context, input models.SubmissionInput, meta models.RequestMeta) (*models.SubmissionResult, error) {
	storageCfg, err := s.resolve()
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeNotConfigured)
		logger.Error(ctx, "contact storage is not configured", "error", err)
		return nil, err
	}

	clean, err := ValidateSubmission(input)
	if err != nil {
		s.metrics.RecordSubmission(rejectionOutcome(err))
		logger.Info(ctx, "contact submission rejected", "reason", err.Error())
		return nil, err
	}

	writer, err := s.openWriter(storageCfg)
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeNotConfigured)
		logger.Error(ctx, "contact storage could not be opened", "error", err)
		return nil, err
	}

	submittedAt := s.now().UTC().Truncate(time.Millisecond)
	timestamp := utils.FormatTimestamp(submittedAt)
	record := BuildRecord(clean, meta, utils.BuildSubmissionID(timestamp, s.suffix), timestamp)
	key := storage.ParseKeyLayout(storageCfg.KeyLayout).Key(submittedAt, record.SubmissionID)

	body, err := EncodeRecord(record)
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeStorageError)
		return nil, fmt.Errorf("%w: encode: %w", storage.ErrWrite, err)
	}

	start := time.Now()
	loc, err := writer.Put(ctx, storage.Object{Key: key, Body: body, ContentType: storage.ContentTypeJSON})
	s.metrics.ObserveStorageWrite(writer.Backend(), time.Since(start), err)
	if err != nil {
		s.metrics.RecordSubmission(metrics.OutcomeStorageError)
		logger.Error(ctx, "contact form storage error", "error", err, "object_key", key, "backend", writer.Backend())
		if !errors.Is(err, storage.ErrWrite) {
			err = fmt.Errorf("%w: %w", storage.ErrWrite, err)
		}
		return nil, err
	}

	s.metrics.RecordSubmission(metrics.OutcomeAccepted)
	logger.Info(ctx, "contact submission stored",
		"submission_id", record.SubmissionID,
		"object_key", key,
		"backend", writer.Backend(),
		"email_hash", utils.HashString(record.Email),
	)

	return &models.SubmissionResult{ID: record.SubmissionID, Path: loc.Path, URL: loc.URL}, nil
}

// BuildRecord assembles the persisted record from validated input.
func BuildRecord(in models.SubmissionInput, meta models.RequestMeta, id, submittedAt string) models.SubmissionRecord {
	return models.SubmissionRecord{
		SubmissionID: id,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		CareerStage:  in.CareerStage,
		Sport:        in.Sport,
		Message:      in.Message,
		Referral:     in.Referral,
		SubmittedAt:  submittedAt,
		Source:       meta.Source,
		UserAgent:    meta.UserAgent,
	}
}

// EncodeRecord renders the record as 2-space indented UTF-8 JSON.
func EncodeRecord(record models.SubmissionRecord) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(record); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

func rejectionOutcome(err error) string {
	switch {
	case errors.Is(err, ErrUnableToProcess):
		return metrics.OutcomeHoneypot
	case errors.Is(err, ErrMissingRequired):
		return metrics.OutcomeMissing
	default:
		return metrics.OutcomeInvalidEmail
	}
}
