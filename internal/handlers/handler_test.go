package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"recipebox/internal/config"
	"recipebox/internal/repository"
	"recipebox/internal/services"
	"recipebox/internal/session"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func testConfig() config.Config {
	return config.Config{
		DatabaseURL:    "sqlite://:memory:",
		SessionBackend: config.SessionBackendCookie,
		SessionSecret:  "test-secret-12345678901234567890123456789012",
		SessionName:    "recipebox_session",
		SessionMaxAge:  3600,
		CookieSameSite: "lax",
	}
}

func setupTestHandler() (*Handler, *gorm.DB) {
	cfg := testConfig()
	db, err := repository.InitDB(cfg)
	if err != nil {
		panic("failed to connect database: " + err.Error())
	}
	if err := repository.AutoMigrate(db); err != nil {
		panic("failed to migrate database: " + err.Error())
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	users := services.NewUserService(db)
	recipes := services.NewRecipeService(db)
	audit := services.NewAuditService(db, logger)
	manager := session.NewManager(cfg, users)

	h := NewHandler(cfg, logger, db, nil, users, recipes, audit, manager)
	return h, db
}

func setupTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store, err := session.NewStore(h.cfg, nil)
	if err != nil {
		panic("failed to create session store: " + err.Error())
	}
	return h.SetupRouter(store)
}

// client carries cookies between requests the way a browser would.
type client struct {
	t       *testing.T
	r       http.Handler
	cookies map[string]*http.Cookie
}

func newClient(t *testing.T, r http.Handler) *client {
	return &client{t: t, r: r, cookies: map[string]*http.Cookie{}}
}

func (cl *client) do(method, path string, body interface{}) *httptest.ResponseRecorder {
	cl.t.Helper()
	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = bytes.NewBufferString(b)
	default:
		jsonBody, err := json.Marshal(b)
		if err != nil {
			cl.t.Fatal(err)
		}
		reader = bytes.NewBuffer(jsonBody)
	}

	req, _ := http.NewRequest(method, path, reader)
	if reader != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cl.cookies {
		req.AddCookie(c)
	}

	w := httptest.NewRecorder()
	cl.r.ServeHTTP(w, req)

	for _, c := range w.Result().Cookies() {
		if c.MaxAge < 0 {
			delete(cl.cookies, c.Name)
			continue
		}
		cl.cookies[c.Name] = c
	}
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json %q: %v", w.Body.String(), err)
	}
	return resp
}
