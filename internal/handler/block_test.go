package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/briochebrew/restaurant-reservation/internal/catalog"
	"github.com/briochebrew/restaurant-reservation/internal/repository"
)

// blockCreate runs the Create handler against a JSON payload.  The repo is
// backed by a nil database; every case here must be rejected by validation
// before any query runs.
func blockCreate(t *testing.T, payload string) *httptest.ResponseRecorder {
	t.Helper()
	h := NewBlockHandler(repository.NewBlockRepo(nil), catalog.Default())
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/admin/blocks", strings.NewReader(payload))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if err := h.Create(c); err != nil {
		t.Fatalf("Create handler: %v", err)
	}
	return rec
}

func TestBlockCreateValidation(t *testing.T) {
	cases := []struct {
		name    string
		payload string
	}{
		{"missing fields", `{"spaceType":"outdoor","tableId":"O3"}`},
		{"unknown space", `{"spaceType":"patio","tableId":"O3","blockDate":"2024-07-04","blockStartTime":"14:00","blockEndTime":"16:00"}`},
		{"unknown table", `{"spaceType":"outdoor","tableId":"I1","blockDate":"2024-07-04","blockStartTime":"14:00","blockEndTime":"16:00"}`},
		{"bad date", `{"spaceType":"outdoor","tableId":"O3","blockDate":"07/04/2024","blockStartTime":"14:00","blockEndTime":"16:00"}`},
		{"bad start time", `{"spaceType":"outdoor","tableId":"O3","blockDate":"2024-07-04","blockStartTime":"2pm","blockEndTime":"16:00"}`},
		{"start equals end", `{"spaceType":"outdoor","tableId":"O3","blockDate":"2024-07-04","blockStartTime":"16:00","blockEndTime":"16:00"}`},
		{"start after end", `{"spaceType":"outdoor","tableId":"O3","blockDate":"2024-07-04","blockStartTime":"18:00","blockEndTime":"16:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := blockCreate(t, tc.payload)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400, body %s", rec.Code, rec.Body.String())
			}
		})
	}
}

func TestBlockListRequiresValidDate(t *testing.T) {
	h := NewBlockHandler(repository.NewBlockRepo(nil), catalog.Default())
	e := echo.New()

	for _, query := range []string{"", "date=next-tuesday"} {
		req := httptest.NewRequest(http.MethodGet, "/v1/admin/blocks?"+query, nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		if err := h.List(c); err != nil {
			t.Fatalf("List handler: %v", err)
		}
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("query %q: status = %d, want 400", query, rec.Code)
		}
	}
}

func TestBlockDeleteRejectsBadID(t *testing.T) {
	h := NewBlockHandler(repository.NewBlockRepo(nil), catalog.Default())
	e := echo.New()
	req := httptest.NewRequest(http.MethodDelete, "/v1/admin/blocks/abc", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues("abc")
	if err := h.Delete(c); err != nil {
		t.Fatalf("Delete handler: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}
