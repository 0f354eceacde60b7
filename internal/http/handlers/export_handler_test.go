package handlers

import (
	"net/http"
	"strings"
	"testing"
)

func TestExportICS_ReservedAndBlockedDays(t *testing.T) {
	r := newTestServer(t)
	do(r, http.MethodPut, "/reservations/2026-01-20", anaForm)
	do(r, http.MethodPost, "/days/2026-01-21/toggle", nil)
	do(r, http.MethodPut, "/reservations/2026-03-01", form(map[string]any{"first_name": "Luis", "phone": ""}))

	w := do(r, http.MethodGet, "/export.ics?from=2026-01-01&to=2026-01-31", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", w.Code, w.Body.String())
	}
	if ct := w.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
		t.Fatalf("Content-Type = %q", ct)
	}
	if cd := w.Header().Get("Content-Disposition"); !strings.Contains(cd, "kumbayah-2026-01-01-2026-01-31.ics") {
		t.Fatalf("Content-Disposition = %q", cd)
	}
	body := w.Body.String()
	if !strings.Contains(body, "SUMMARY:Ana Lopez") {
		t.Fatalf("reservation event missing:\n%s", body)
	}
	if strings.Contains(body, "No disponible") {
		t.Fatalf("blocked days are opt-in:\n%s", body)
	}
	if strings.Contains(body, "Luis") {
		t.Fatalf("out-of-range reservation exported:\n%s", body)
	}
	if !strings.Contains(body, "X-WR-CALNAME:Kumbayah") {
		t.Fatalf("default calendar name missing:\n%s", body)
	}

	body = do(r, http.MethodGet, "/export.ics?from=2026-01-01&to=2026-01-31&blocked=si&name=Casa", nil).Body.String()
	if !strings.Contains(body, "No disponible") || !strings.Contains(body, "X-WR-CALNAME:Casa") {
		t.Fatalf("blocked day or custom name missing:\n%s", body)
	}
}

func TestExportICS_DefaultsToShownMonth(t *testing.T) {
	r := newTestServer(t)
	do(r, http.MethodPut, "/reservations/2026-01-20", anaForm)
	do(r, http.MethodPut, "/reservations/2026-02-20", form(map[string]any{"first_name": "Luis", "phone": ""}))

	body := do(r, http.MethodGet, "/export.ics", nil).Body.String()
	if !strings.Contains(body, "Ana Lopez") || strings.Contains(body, "Luis") {
		t.Fatalf("default range should be January only:\n%s", body)
	}

	do(r, http.MethodPost, "/calendar/next", nil)
	body = do(r, http.MethodGet, "/export.ics", nil).Body.String()
	if strings.Contains(body, "Ana Lopez") || !strings.Contains(body, "Luis Lopez") {
		t.Fatalf("default range should follow the cursor:\n%s", body)
	}
}

func TestExportICS_BadRanges(t *testing.T) {
	r := newTestServer(t)
	expectError(t, do(r, http.MethodGet, "/export.ics?from=2026-02-01&to=2026-01-01", nil), http.StatusBadRequest, ErrCodeInvalidDate)
	expectError(t, do(r, http.MethodGet, "/export.ics?from=tomorrow", nil), http.StatusBadRequest, ErrCodeInvalidDate)
	expectError(t, do(r, http.MethodGet, "/export.ics?to=2026-99-01", nil), http.StatusBadRequest, ErrCodeInvalidDate)
	expectError(t, do(r, http.MethodGet, "/export.ics?from=2000-01-01&to=2026-01-01", nil), http.StatusBadRequest, ErrCodeInvalidDate)
}
