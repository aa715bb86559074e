package autoapply

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"jobmatch-backend/internal/applications"
	"jobmatch-backend/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _, _ := newTestService(t, baseConfig())
	handler := NewHandler(svc)

	r := gin.New()
	r.Use(middleware.Auth("dev"))
	api := r.Group("/api/v1")
	handler.RegisterRoutes(api)
	handler.RegisterRunRoutes(api)
	return r
}

func doRequest(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("X-Guest-Id", "u1")
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, req)
	return resp
}

func TestRunEndpointCreatesApplications(t *testing.T) {
	r := newTestRouter(t)

	resp := doRequest(t, r, http.MethodPost, "/api/v1/auto-apply/run", `{"mode":"auto"}`)
	if resp.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", resp.Code, resp.Body.String())
	}

	var result RunResult
	if err := json.Unmarshal(resp.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if result.Mode != "auto" {
		t.Errorf("mode = %q", result.Mode)
	}
	if len(result.Created) != 2 {
		t.Fatalf("created %d applications", len(result.Created))
	}
	for _, app := range result.Created {
		if app.Status != applications.StatusSubmitted {
			t.Errorf("status = %q", app.Status)
		}
		if app.UserID != "guest:u1" {
			t.Errorf("user id = %q", app.UserID)
		}
	}
}

func TestMatchEndpoints(t *testing.T) {
	r := newTestRouter(t)

	resp := doRequest(t, r, http.MethodGet, "/api/v1/match/top?count=2", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("top status = %d", resp.Code)
	}
	var top struct {
		Matches []RoleMatch `json:"matches"`
	}
	if err := json.Unmarshal(resp.Body.Bytes(), &top); err != nil {
		t.Fatalf("decode top: %v", err)
	}
	if len(top.Matches) != 2 || top.Matches[0].Role.ID != "r-a" {
		t.Fatalf("top matches = %+v", top.Matches)
	}

	resp = doRequest(t, r, http.MethodGet, "/api/v1/match/roles/r-c", "")
	if resp.Code != http.StatusOK {
		t.Fatalf("single status = %d", resp.Code)
	}
	var single RoleMatch
	if err := json.Unmarshal(resp.Body.Bytes(), &single); err != nil {
		t.Fatalf("decode single: %v", err)
	}
	if single.Match.Score != 60 {
		t.Errorf("score = %d, want 60", single.Match.Score)
	}

	resp = doRequest(t, r, http.MethodGet, "/api/v1/match/roles/ghost", "")
	if resp.Code != http.StatusNotFound {
		t.Errorf("unknown role status = %d", resp.Code)
	}
}
