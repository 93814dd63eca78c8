package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	r := chi.NewRouter()
	r.Use(Middleware)
	r.Get("/api/transactions/{id}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	before := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/transactions/{id}", "404"))

	req := httptest.NewRequest(http.MethodGet, "/api/transactions/abc", http.NoBody)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
	after := testutil.ToFloat64(httpRequestsTotal.WithLabelValues(http.MethodGet, "/api/transactions/{id}", "404"))
	assert.Equal(t, before+1, after)
}

func TestObserveTransfer(t *testing.T) {
	before := testutil.ToFloat64(transfersTotal.WithLabelValues("ok"))
	ObserveTransfer("ok")
	assert.Equal(t, before+1, testutil.ToFloat64(transfersTotal.WithLabelValues("ok")))
}

func TestObserveTransition(t *testing.T) {
	before := testutil.ToFloat64(transitionsTotal.WithLabelValues("pending", "complete"))
	ObserveTransition("pending", "complete")
	assert.Equal(t, before+1, testutil.ToFloat64(transitionsTotal.WithLabelValues("pending", "complete")))
}
