package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordSizeJob(t *testing.T) {
	before := testutil.ToFloat64(sizeJobsTotal.WithLabelValues(ResultEstimated))
	RecordSizeJob(ResultEstimated, 10*time.Millisecond)
	RecordSizeJob(ResultDropped, 0)
	assert.Equal(t, before+1, testutil.ToFloat64(sizeJobsTotal.WithLabelValues(ResultEstimated)))
}

func TestSizeJobsPending(t *testing.T) {
	before := testutil.ToFloat64(sizeJobsPending)
	SizeJobQueued()
	SizeJobQueued()
	SizeJobDone()
	assert.Equal(t, before+1, testutil.ToFloat64(sizeJobsPending))
	SizeJobDone()
}

func TestRecordListing(t *testing.T) {
	before := testutil.ToFloat64(listingsTotal.WithLabelValues("normal"))
	RecordListing("normal")
	assert.Equal(t, before+1, testutil.ToFloat64(listingsTotal.WithLabelValues("normal")))
}

func TestHandler(t *testing.T) {
	RecordListing("virtual")
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "foldertug_listings_total"))
}
