package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/feather-works/feather-backend/file_store"
	"github.com/feather-works/feather-backend/model"
	"github.com/feather-works/feather-backend/utils"
)

// newTestEnv spins up a router with a fresh in-memory database and a local
// file store.
func newTestEnv(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, cleanup := utils.CreateTempDB(t)
	t.Cleanup(cleanup)

	images, err := file_store.NewLocalFileStore(filepath.Join(t.TempDir(), "media"), "/media/posts/")
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router, db, images)
	return router, db
}

// createTestUser inserts a user plus an auth token and returns both.
func createTestUser(t *testing.T, db *gorm.DB, username string) (model.User, string) {
	t.Helper()
	user, err := model.NewUser(username, "pass-"+username)
	require.NoError(t, err)
	require.NoError(t, db.Create(user).Error)

	token := model.NewAuthToken(user.Id)
	require.NoError(t, db.Omit(clause.Associations).Create(token).Error)
	return *user, token.Key
}

// doRequest performs a JSON request against the router. An empty token means
// an anonymous call.
func doRequest(t *testing.T, router http.Handler, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), out))
}
