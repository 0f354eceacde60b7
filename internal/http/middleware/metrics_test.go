package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestMetrics_CountersUseRoutePatternAndUnmatchedLabel(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Metrics())
	r.GET("/days/:date", func(c *gin.Context) { c.String(http.StatusOK, "hello") })
	r.DELETE("/reservations/:date", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	baseDay := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/days/:date", "200"))
	baseDel := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/reservations/:date", "204"))
	base404 := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404"))

	for _, d := range []string{"2026-01-01", "2026-01-02"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/days/"+d, nil))
		if w.Code != http.StatusOK {
			t.Fatalf("GET /days/%s -> %d", d, w.Code)
		}
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/reservations/2026-01-01", nil))
	if w.Code != http.StatusNoContent {
		t.Fatalf("DELETE -> %d", w.Code)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/does-not-exist/04121234567", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("GET missing -> %d", w.Code)
	}

	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", "/days/:date", "200")); got != baseDay+2 {
		t.Fatalf("day counter = %v; want %v", got, baseDay+2)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("DELETE", "/reservations/:date", "204")); got != baseDel+1 {
		t.Fatalf("delete counter = %v; want %v", got, baseDel+1)
	}
	if got := testutil.ToFloat64(httpReqs.WithLabelValues("GET", unmatchedPath, "404")); got != base404+1 {
		t.Fatalf("unmatched counter = %v; want %v", got, base404+1)
	}
	if inFlight := testutil.ToFloat64(httpInflight); inFlight != 0 {
		t.Fatalf("httpInflight = %v; want 0", inFlight)
	}
}
