package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"github.com/Trend4Media/AffenMitWaffen/db"
	"github.com/Trend4Media/AffenMitWaffen/internal/auth"
	"github.com/Trend4Media/AffenMitWaffen/internal/models"
	"github.com/Trend4Media/AffenMitWaffen/internal/router"
	"github.com/Trend4Media/AffenMitWaffen/internal/store"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

type testEnv struct {
	router  *gin.Engine
	conn    *gorm.DB
	users   *store.UserStore
	tracker *store.TrackerStore
	tokens  *auth.TokenService
}

var testDBSeq atomic.Int64

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	// Each test gets its own named in-memory database so state never
	// leaks between tests. A single pooled connection keeps it alive.
	dsn := fmt.Sprintf("file:handlertest%d?mode=memory&cache=shared", testDBSeq.Add(1))

	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := conn.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.Migrate(conn))

	users := store.NewUserStore(conn)
	tracker := store.NewTrackerStore(conn)
	tokens := auth.NewTokenService("test-secret")

	return &testEnv{
		router:  router.New(users, tracker, tokens, ""),
		conn:    conn,
		users:   users,
		tracker: tracker,
		tokens:  tokens,
	}
}

func (e *testEnv) request(t *testing.T, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader

	if body != nil {
		encoded, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(encoded)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	return w
}

func (e *testEnv) register(t *testing.T, email, password, name string) {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/auth/register", "", gin.H{
		"email":    email,
		"password": password,
		"name":     name,
	})
	require.Equal(t, http.StatusCreated, w.Code)
}

func (e *testEnv) activate(t *testing.T, email string) *models.User {
	t.Helper()

	user, err := e.users.FindByEmail(email)
	require.NoError(t, err)

	activated, err := e.users.SetActive(user.ID, true)
	require.NoError(t, err)

	return activated
}

func (e *testEnv) login(t *testing.T, email, password string) string {
	t.Helper()

	w := e.request(t, http.MethodPost, "/api/auth/login", "", gin.H{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeObject(t, w)
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	return token
}

func decodeObject(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func decodeArray(t *testing.T, w *httptest.ResponseRecorder) []map[string]interface{} {
	t.Helper()

	var body []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}
