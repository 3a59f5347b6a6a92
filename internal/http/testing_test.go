package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/bookapi/internal/audit"
	"github.com/mrlokans/bookapi/internal/database"
	auditrepo "github.com/mrlokans/bookapi/internal/database/audit"
	"github.com/mrlokans/bookapi/internal/schema"
)

const testYear = 2025

type testServer struct {
	router *gin.Engine
	db     *database.Database
	audit  *audit.Service
}

func newTestServer(t *testing.T, readOnly bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewDatabase(filepath.Join(t.TempDir(), "books.db"), nil)
	require.NoError(t, err)

	auditService := audit.NewService(auditrepo.NewRepository(db.DB), nil)
	t.Cleanup(func() {
		auditService.Wait()
		db.Close()
	})

	validator := schema.NewValidator(func() time.Time {
		return time.Date(testYear, time.June, 1, 12, 0, 0, 0, time.UTC)
	})

	router := NewRouter(RouterConfig{
		Database:     db,
		Validator:    validator,
		AuditService: auditService,
		ReadOnly:     readOnly,
		Version:      "1.0.0",
	})

	return &testServer{router: router, db: db, audit: auditService}
}

func (s *testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, _ := json.Marshal(b)
		reader = bytes.NewReader(raw)
	}

	req, _ := http.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

type errorBody struct {
	Error   string              `json:"error"`
	Code    string              `json:"code"`
	Details []schema.FieldError `json:"details"`
}
