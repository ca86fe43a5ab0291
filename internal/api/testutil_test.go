package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"crypto_bank/internal/domain"
	"crypto_bank/internal/session"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	require.NoError(t, db.AutoMigrate(&domain.User{}, &domain.Customer{}, &domain.CryptoWallet{}), "migrate")
	return db
}

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

// testEnv bundles a fully wired router with its backing stores
type testEnv struct {
	db     *gorm.DB
	rdb    *redis.Client
	store  *session.Store
	router *gin.Engine
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)
	rdb := newTestRedis(t)
	store := session.NewStore(rdb)
	return &testEnv{
		db:     db,
		rdb:    rdb,
		store:  store,
		router: NewRouter(db, rdb, store, ""),
	}
}

// testClient drives the router like a browser, carrying cookies across requests
type testClient struct {
	t       *testing.T
	env     *testEnv
	cookies map[string]*http.Cookie
}

func newTestClient(t *testing.T, env *testEnv) *testClient {
	return &testClient{t: t, env: env, cookies: map[string]*http.Cookie{}}
}

func (tc *testClient) do(method, path string, body any) *httptest.ResponseRecorder {
	tc.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(tc.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, ck := range tc.cookies {
		req.AddCookie(ck)
	}
	w := httptest.NewRecorder()
	tc.env.router.ServeHTTP(w, req)
	// Fold Set-Cookie headers back into the jar
	for _, ck := range w.Result().Cookies() {
		if ck.MaxAge < 0 {
			delete(tc.cookies, ck.Name)
		} else {
			tc.cookies[ck.Name] = ck
		}
	}
	return w
}

func (tc *testClient) register(email, password, role string) *httptest.ResponseRecorder {
	tc.t.Helper()
	body := map[string]any{"email": email, "password": password}
	if role != "" {
		body["role"] = role
	}
	return tc.do(http.MethodPost, "/api/register", body)
}

func (tc *testClient) login(email, password string) *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, "/api/login", map[string]any{"email": email, "password": password})
}

func (tc *testClient) logout() *httptest.ResponseRecorder {
	tc.t.Helper()
	return tc.do(http.MethodPost, "/api/logout", nil)
}

// loginAs registers a fresh account with the given role and logs in with it
func (tc *testClient) loginAs(email, role string) {
	tc.t.Helper()
	require.Equal(tc.t, http.StatusCreated, tc.register(email, "pw123", role).Code)
	require.Equal(tc.t, http.StatusOK, tc.login(email, "pw123").Code)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}

func decodeList(t *testing.T, w *httptest.ResponseRecorder) []map[string]any {
	t.Helper()
	var out []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
