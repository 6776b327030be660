package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/internal/config"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/router"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/stretchr/testify/require"
)

// newTestServer wires the router against the in-memory store.
func newTestServer(t *testing.T) (*gin.Engine, *store.Memory, *session.Manager) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		HTTPAddr:       ":0",
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	}

	mem := store.NewMemory()
	sessions := session.NewManager(mem.Sessions(), cfg.SessionTTL)

	stores := router.Stores{
		Users: mem.Users(),
		Lists: mem.Lists(),
		Items: mem.Items(),
	}

	r := router.NewRouter(cfg, stores, sessions, logging.Default())

	return r, mem, sessions
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	if cookie != nil {
		req.AddCookie(cookie)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()

	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}

	t.Fatal("no session cookie in response")
	return nil
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}

// firstListID returns the id of the caller's most recent list.
func firstListID(t *testing.T, r *gin.Engine, cookie *http.Cookie) uint {
	t.Helper()

	w := doJSON(t, r, http.MethodGet, "/get-list", "", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	lists, ok := decode(t, w)["list"].([]any)
	require.True(t, ok)
	require.NotEmpty(t, lists)

	return uint(lists[0].(map[string]any)["id"].(float64))
}

// farFuture is late enough that DeleteExpired counts every stored session.
func farFuture() time.Time {
	return time.Now().Add(1000 * time.Hour)
}

// registerAndLogin creates an account and returns its session cookie.
func registerAndLogin(t *testing.T, r *gin.Engine, username, password string) *http.Cookie {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/register",
		`{"username":"`+username+`","password":"`+password+`","confirm":"`+password+`"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login",
		`{"username":"`+username+`","password":"`+password+`"}`, nil)
	require.Equal(t, http.StatusOK, w.Code)

	return sessionCookie(t, w)
}
