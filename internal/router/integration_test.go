//go:build integration
// +build integration

package router_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/listkeeper-dev/listkeeper/db"
	"github.com/listkeeper-dev/listkeeper/internal/config"
	"github.com/listkeeper-dev/listkeeper/internal/logging"
	"github.com/listkeeper-dev/listkeeper/internal/router"
	"github.com/listkeeper-dev/listkeeper/internal/session"
	"github.com/listkeeper-dev/listkeeper/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupTestDB starts a PostgreSQL container and connects the global handle.
func setupTestDB(t *testing.T) func() {
	t.Helper()
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:alpine",
		postgres.WithDatabase("listkeeper_test"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	require.NoError(t, db.ConnectDatabase(connStr))
	require.NoError(t, db.MigrateDatabase())

	return func() {
		if err := pgContainer.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}
}

// TestScenarioAgainstPostgres runs the register/login/list/item round trip
// against a real database, covering the SQL paths the in-memory store skips:
// the aggregate count join, ownership scoping in SQL, and the transactional
// cascade delete.
func TestScenarioAgainstPostgres(t *testing.T) {
	cleanup := setupTestDB(t)
	defer cleanup()

	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SessionTTL:     time.Hour,
		AllowedOrigins: []string{"http://localhost:5173"},
	}

	sessions := session.NewManager(store.NewGormSessionStore(db.DB), cfg.SessionTTL)

	r := router.NewRouter(cfg, router.Stores{
		Users: store.NewGormUserStore(db.DB),
		Lists: store.NewGormListStore(db.DB),
		Items: store.NewGormItemStore(db.DB),
	}, sessions, logging.Default())

	do := func(method, path, body string, cookie *http.Cookie) (*httptest.ResponseRecorder, map[string]any) {
		req := httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		if cookie != nil {
			req.AddCookie(cookie)
		}
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		var decoded map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &decoded))
		return w, decoded
	}

	login := func(username, password string) *http.Cookie {
		w, _ := do(http.MethodPost, "/login", `{"username":"`+username+`","password":"`+password+`"}`, nil)
		require.Equal(t, http.StatusOK, w.Code)
		for _, c := range w.Result().Cookies() {
			if c.Name == session.CookieName {
				return c
			}
		}
		t.Fatal("no session cookie")
		return nil
	}

	w, _ := do(http.MethodPost, "/register", `{"username":"alice","password":"pw1","confirm":"pw1"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	// Duplicate registration surfaces the unique constraint as a conflict.
	w, _ = do(http.MethodPost, "/register", `{"username":"alice","password":"pw1","confirm":"pw1"}`, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = do(http.MethodPost, "/register", `{"username":"bob","password":"pw2","confirm":"pw2"}`, nil)
	require.Equal(t, http.StatusCreated, w.Code)

	alice := login("alice", "pw1")
	bob := login("bob", "pw2")

	w, _ = do(http.MethodPost, "/add-list", `{"title":"Groceries"}`, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w, body := do(http.MethodGet, "/get-list", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	lists := body["list"].([]any)
	require.Len(t, lists, 1)
	assert.Equal(t, float64(0), lists[0].(map[string]any)["item_count"])

	listID := fmt.Sprintf("%.0f", lists[0].(map[string]any)["id"].(float64))

	for _, title := range []string{"Milk", "Eggs", "Bread"} {
		w, _ = do(http.MethodPost, "/add-item", `{"listId":`+listID+`,"title":"`+title+`"}`, alice)
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w, body = do(http.MethodGet, "/get-list", "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(3), body["list"].([]any)[0].(map[string]any)["item_count"])

	w, body = do(http.MethodGet, "/get-items/"+listID, "", alice)
	require.Equal(t, http.StatusOK, w.Code)
	items := body["items"].([]any)
	require.Len(t, items, 3)
	assert.Equal(t, "Milk", items[0].(map[string]any)["title"])
	assert.Equal(t, "Bread", items[2].(map[string]any)["title"])

	// Ownership scoping holds in SQL, not just in memory.
	w, _ = do(http.MethodGet, "/get-items/"+listID, "", bob)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, body = do(http.MethodGet, "/get-list", "", bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, body["list"].([]any))

	// Cascade delete leaves no orphan items behind.
	w, _ = do(http.MethodDelete, "/delete-list/"+listID, "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(http.MethodGet, "/get-items/"+listID, "", alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	var orphans int64
	require.NoError(t, db.DB.Table("items").Where("deleted_at IS NULL").Count(&orphans).Error)
	assert.Zero(t, orphans)

	// Logout kills the server-side session for good.
	w, _ = do(http.MethodPost, "/logout", "", alice)
	require.Equal(t, http.StatusOK, w.Code)

	w, _ = do(http.MethodGet, "/get-list", "", alice)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
