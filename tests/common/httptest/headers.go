//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const requestIDHeader = "X-Request-ID"

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertRequestID checks the logging middleware echoed or generated a request id.
func AssertRequestID(t *testing.T, w *httptest.ResponseRecorder, sent string) {
	t.Helper()
	got := w.Header().Get(requestIDHeader)
	if sent != "" {
		assert.Equal(t, sent, got)
		return
	}
	assert.NotEmpty(t, got)
}
