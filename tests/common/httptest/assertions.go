//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type errorBody struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail struct {
		Blocking []string `json:"blocking"`
	} `json:"detail"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String()) {
		return
	}
	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		assert.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), targetStruct), "decode response: %s", w.Body.String())
	}
}

func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedErrorMsg string) {
	t.Helper()

	assert.Equalf(t, expectedStatus, w.Code, "unexpected status, body: %s", w.Body.String())
	body := decodeError(t, w)
	if expectedErrorMsg != "" {
		assert.Contains(t, body.Error.Message, expectedErrorMsg)
	}
}

// AssertBlockingReasons checks the reasons a blocked submission reports, in order.
func AssertBlockingReasons(t *testing.T, w *httptest.ResponseRecorder, expected ...string) {
	t.Helper()

	body := decodeError(t, w)
	assert.Equal(t, expected, body.Detail.Blocking)
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()

	var body errorBody
	require.NoErrorf(t, json.Unmarshal(w.Body.Bytes(), &body), "decode error response: %s", w.Body.String())
	return body
}
