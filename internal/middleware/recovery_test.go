package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
)

func TestPanicRecoveryAnswersGeneric500(t *testing.T) {
	handler := PanicRecovery(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("kaboom: secret internal state")
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest("GET", "/jobs", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "terjadi kesalahan server")
	// The panic value belongs in the log, not the response.
	assert.NotContains(t, rec.Body.String(), "kaboom")
}

func TestRoutePatternUsesTemplate(t *testing.T) {
	var got string
	r := mux.NewRouter()
	r.HandleFunc("/jobs/{id}", func(w http.ResponseWriter, req *http.Request) {
		got = routePattern(req)
	}).Methods("GET")

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/jobs/42", nil))
	assert.Equal(t, "/jobs/{id}", got)
}

func TestRoutePatternFallsBackToRawPath(t *testing.T) {
	req := httptest.NewRequest("GET", "/unrouted/7", nil)
	assert.Equal(t, "/unrouted/7", routePattern(req))
}
