//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

const ReplayedHeader = "Idempotent-Replayed"

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

// AssertReplayed checks whether the response was served from an earlier idempotent request.
func AssertReplayed(t *testing.T, w *httptest.ResponseRecorder, replayed bool) {
	t.Helper()
	if replayed {
		assert.Equal(t, "true", w.Header().Get(ReplayedHeader))
		return
	}
	assert.Empty(t, w.Header().Values(ReplayedHeader), "unexpected %s header", ReplayedHeader)
}
