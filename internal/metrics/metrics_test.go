package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordCatalogRequest(t *testing.T) {
	before := testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("test_op", "ok"))
	RecordCatalogRequest("test_op", 200, 10*time.Millisecond)
	assert.Equal(t, before+1, testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("test_op", "ok")))

	RecordCatalogRequest("test_op", 503, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("test_op", "503")))

	RecordCatalogRequest("test_op", 0, time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(CatalogRequestsTotal.WithLabelValues("test_op", "error")))
}

func TestRecordHTTPRequest(t *testing.T) {
	RecordHTTPRequest("POST", "/test-route", 400, 5*time.Millisecond)
	assert.Equal(t, float64(1), testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("POST", "/test-route", "400")))
}

func TestRecordLLMRequest(t *testing.T) {
	RecordLLMRequest("test_generate", nil, time.Millisecond)
	RecordLLMRequest("test_generate", errors.New("boom"), time.Millisecond)

	assert.Equal(t, float64(1), testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("test_generate", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(LLMRequestsTotal.WithLabelValues("test_generate", "error")))
}
