package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordSubmission(t *testing.T) {
	m := New()
	m.RecordSubmission(OutcomeAccepted)
	m.RecordSubmission(OutcomeAccepted)
	m.RecordSubmission(OutcomeHoneypot)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(OutcomeAccepted)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SubmissionsTotal.WithLabelValues(OutcomeHoneypot)))
}

func TestObserveStorageWrite(t *testing.T) {
	m := New()
	m.ObserveStorageWrite("s3", 20*time.Millisecond, nil)
	m.ObserveStorageWrite("s3", 30*time.Millisecond, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(m.StorageWrite))
}

func TestHandler_ServesExposition(t *testing.T) {
	m := New()
	m.RecordHTTPRequest("POST", 200)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `contact_http_requests_total{method="POST",status="200"} 1`)
}

func TestNewTwice_NoRegistrationPanic(t *testing.T) {
	assert.NotPanics(t, func() {
		New()
		New()
	})
}
