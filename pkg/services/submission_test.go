package services

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact-intake/pkg/config"
	"contact-intake/pkg/metrics"
	"contact-intake/pkg/models"
	"contact-intake/pkg/storage"
)

type memoryWriter struct {
	objects []storage.Object
	err     error
	url     string
}

func (w *memoryWriter) Backend() string { return "memory" }

func (w *memoryWriter) Put(_ context.Context, obj storage.Object) (storage.Location, error) {
	if w.err != nil {
		return storage.Location{}, w.err
	}
	w.objects = append(w.objects, obj)
	return storage.Location{Path: obj.Key, URL: w.url}, nil
}

var fixedNow = time.Date(2024, 5, 1, 9, 30, 12, 345_678_000, time.UTC)

func newTestService(t *testing.T, layout string, w *memoryWriter, m *metrics.Metrics) ContactSubmissionService {
	t.Helper()
	resolve := func() (*config.StorageConfig, error) {
		return &config.StorageConfig{Backend: "memory", KeyLayout: layout}, nil
	}
	var collector metrics.Collector
	if m != nil {
		collector = m
	}
	return NewContactSubmissionService(resolve, collector,
		WithClock(func() time.Time { return fixedNow }),
		WithSuffix(func() string { return "k3x9q0ab" }),
		WithWriterFactory(func(*config.StorageConfig) (storage.Writer, error) { return w, nil }),
	)
}

func TestProcess_StoresRecord(t *testing.T) {
	w := &memoryWriter{}
	m := metrics.New()
	svc := newTestService(t, config.LayoutDate, w, m)

	in := models.SubmissionInput{FirstName: "Jo  ", LastName: "Doe", Email: "jo@example.com", Sport: " Track ", TurnstileToken: "tok"}
	res, err := svc.ProcessContactSubmission(context.Background(), in, models.RequestMeta{Source: "https://site.example", UserAgent: "UA/1"})
	require.NoError(t, err)

	assert.Equal(t, "2024-05-01T09-30-12-345Z-k3x9q0ab", res.ID)
	assert.Equal(t, "contact-submissions/2024/05/01/2024-05-01T09-30-12-345Z-k3x9q0ab.json", res.Path)
	require.Len(t, w.objects, 1)

	obj := w.objects[0]
	assert.Equal(t, res.Path, obj.Key)
	assert.Equal(t, "application/json", obj.ContentType)
	assert.True(t, strings.HasPrefix(string(obj.Body), "{\n  \"submissionId\""), string(obj.Body))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(obj.Body, &rec))
	assert.Equal(t, "Jo", rec["firstName"])
	assert.Equal(t, "Track", rec["sport"])
	assert.Equal(t, "", rec["phone"])
	assert.Equal(t, "2024-05-01T09:30:12.345Z", rec["submittedAt"])
	assert.Equal(t, "https://site.example", rec["source"])
	assert.Equal(t, "UA/1", rec["userAgent"])
	assert.NotContains(t, rec, "website")
	assert.NotContains(t, rec, "turnstileToken")

	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(metrics.OutcomeAccepted)))
}

func TestProcess_FlatLayoutAndURL(t *testing.T) {
	w := &memoryWriter{url: "https://blob.example/x.json"}
	svc := newTestService(t, config.LayoutFlat, w, nil)

	res, err := svc.ProcessContactSubmission(context.Background(),
		models.SubmissionInput{FirstName: "A", LastName: "B", Email: "a@b.co"}, models.RequestMeta{})
	require.NoError(t, err)

	assert.Equal(t, "contact-submissions/2024-05-01T09-30-12-345Z-k3x9q0ab.json", res.Path)
	assert.Equal(t, "https://blob.example/x.json", res.URL)
}

func TestProcess_HoneypotNeverWrites(t *testing.T) {
	w := &memoryWriter{}
	m := metrics.New()
	svc := newTestService(t, config.LayoutDate, w, m)

	_, err := svc.ProcessContactSubmission(context.Background(), models.SubmissionInput{
		FirstName: "Jo", LastName: "Doe", Email: "jo@example.com", Website: "http://spam.example",
	}, models.RequestMeta{})

	assert.ErrorIs(t, err, ErrUnableToProcess)
	assert.Empty(t, w.objects)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(metrics.OutcomeHoneypot)))
}

func TestProcess_NotConfiguredShortCircuits(t *testing.T) {
	opened := false
	svc := NewContactSubmissionService(
		func() (*config.StorageConfig, error) { return nil, config.ErrStorageNotConfigured },
		nil,
		WithWriterFactory(func(*config.StorageConfig) (storage.Writer, error) {
			opened = true
			return &memoryWriter{}, nil
		}),
	)

	// Even an invalid submission reports the configuration problem first.
	_, err := svc.ProcessContactSubmission(context.Background(), models.SubmissionInput{Website: "spam"}, models.RequestMeta{})
	assert.ErrorIs(t, err, config.ErrStorageNotConfigured)
	assert.False(t, opened)
}

func TestProcess_StorageFailure(t *testing.T) {
	cause := errors.New("network down")
	w := &memoryWriter{err: cause}
	m := metrics.New()
	svc := newTestService(t, config.LayoutDate, w, m)

	_, err := svc.ProcessContactSubmission(context.Background(),
		models.SubmissionInput{FirstName: "A", LastName: "B", Email: "a@b.co"}, models.RequestMeta{})

	assert.ErrorIs(t, err, storage.ErrWrite)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(metrics.OutcomeStorageError)))
}

func TestEncodeRecord_KeepsUnicodeAndHTML(t *testing.T) {
	body, err := EncodeRecord(models.SubmissionRecord{FirstName: "Zoë", Message: "<b>hi</b> & bye"})
	require.NoError(t, err)

	s := string(body)
	assert.Contains(t, s, `"firstName": "Zoë"`)
	assert.Contains(t, s, `"message": "<b>hi</b> & bye"`)
	assert.False(t, strings.HasSuffix(s, "\n"))
}
