package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordXPAward(t *testing.T) {
	applied := testutil.ToFloat64(xpAwards.WithLabelValues("applied"))
	failed := testutil.ToFloat64(xpAwards.WithLabelValues("failed"))

	RecordXPAward(nil)
	RecordXPAward(errors.New("boom"))
	RecordXPAward(errors.New("boom"))

	assert.Equal(t, applied+1, testutil.ToFloat64(xpAwards.WithLabelValues("applied")))
	assert.Equal(t, failed+2, testutil.ToFloat64(xpAwards.WithLabelValues("failed")))
}

func TestInstrumentHandler_LabelsByRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Use(InstrumentHandler)
	r.Get("/moods/{user_id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	before := testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/moods/{user_id}", "418"))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/moods/abc", nil))

	assert.Equal(t, http.StatusTeapot, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/moods/{user_id}", "418")))
}

func TestHandler_ExposesCollectors(t *testing.T) {
	RecordDocumentCreated("mood")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `mentracare_store_documents_created_total{collection="mood"}`)
}
