package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/rohitdhavare/my-expenses-tracker/internal/errors"
	"github.com/rohitdhavare/my-expenses-tracker/internal/uuid"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to parse JSON response: %v\nbody: %s", err, rec.Body.String())
	}
	return body.Error.Code
}

func TestErrorHandler(t *testing.T) {
	t.Run("app_error", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(apperrors.ErrBudgetNotFound)
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "BUDGET_NOT_FOUND" {
			t.Errorf("expected BUDGET_NOT_FOUND, got %s", code)
		}
	})

	t.Run("unexpected_error_is_masked", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("connection refused"))
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d", rec.Code)
		}
		if code := errorCode(t, rec); code != "INTERNAL_ERROR" {
			t.Errorf("expected INTERNAL_ERROR, got %s", code)
		}
	})

	t.Run("written_response_is_kept", func(t *testing.T) {
		r := gin.New()
		r.Use(ErrorHandler())
		r.GET("/", func(c *gin.Context) {
			_ = c.Error(errors.New("late"))
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("expected 200, got %d", rec.Code)
		}
	})
}

func TestRequestLogging(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, RequestID(c))
	})

	t.Run("assigns_id", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		id := rec.Header().Get("X-Request-ID")
		if !uuid.IsValid(id) {
			t.Fatalf("expected a UUID request id, got %q", id)
		}
		if rec.Body.String() != id {
			t.Errorf("context id %q does not match header %q", rec.Body.String(), id)
		}
	})

	t.Run("reuses_valid_incoming_id", func(t *testing.T) {
		incoming := uuid.New()
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", incoming)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got != incoming {
			t.Errorf("expected %s, got %s", incoming, got)
		}
	})

	t.Run("replaces_invalid_incoming_id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("X-Request-ID", "not-a-uuid")
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)

		if got := rec.Header().Get("X-Request-ID"); got == "not-a-uuid" || !uuid.IsValid(got) {
			t.Errorf("expected a fresh UUID, got %q", got)
		}
	})
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS())
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/", nil))

	if rec.Code != http.StatusNoContent {
		t.Errorf("expected 204 on preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Error("expected wildcard origin")
	}
}
