package controllers

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cppla/classboard/config"
	"github.com/cppla/classboard/middleware"
	"github.com/cppla/classboard/models"
	"github.com/cppla/classboard/repository"
	"github.com/cppla/classboard/utils"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// brokenStore fails every call the way an unreachable database would.
type brokenStore struct{}

var errBackend = errors.New("dial tcp: connection refused")

func (brokenStore) CreateFolder(context.Context, *models.Folder) error { return errBackend }
func (brokenStore) ListFolders(context.Context) ([]models.FolderSummary, error) {
	return nil, errBackend
}
func (brokenStore) GetFolder(context.Context, uint) (*models.Folder, error) { return nil, errBackend }
func (brokenStore) UpdateFolder(context.Context, uint, repository.FolderPatch) (*models.Folder, error) {
	return nil, errBackend
}
func (brokenStore) DeleteFolder(context.Context, uint) error { return errBackend }
func (brokenStore) CreatePost(context.Context, *models.Post) error { return errBackend }
func (brokenStore) GetPost(context.Context, uint) (*models.Post, error) { return nil, errBackend }
func (brokenStore) DeletePost(context.Context, uint) error { return errBackend }
func (brokenStore) CreateComment(context.Context, *models.Comment) error { return errBackend }
func (brokenStore) Stats(context.Context) (repository.Stats, error) { return repository.Stats{}, errBackend }
func (brokenStore) ListPosts(context.Context, repository.PostFilter) ([]models.Post, error) {
	return nil, errBackend
}

type fakeBlobs struct {
	filename    string
	contentType string
	body        string
	err         error
}

func (f *fakeBlobs) Put(_ context.Context, filename string, body io.Reader, _ int64, contentType string) (string, error) {
	b, _ := io.ReadAll(body)
	f.filename, f.contentType, f.body = filename, contentType, string(b)
	if f.err != nil {
		return "", f.err
	}
	return "https://cdn.example/uploads/1_" + filename, nil
}

func do(r http.Handler, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestBackendFailuresAreGeneric500(t *testing.T) {
	r := gin.New()
	posts := NewPostController(brokenStore{}, nil)
	folders := NewFolderController(brokenStore{}, nil)
	stats := NewStatsController(brokenStore{})
	r.GET("/api/posts", posts.ListPosts)
	r.POST("/api/posts", posts.CreatePost)
	r.GET("/api/posts/:id", posts.GetPost)
	r.POST("/api/posts/:id/comments", posts.CreateComment)
	r.GET("/api/folders", folders.ListFolders)
	r.PUT("/api/folders/:id", folders.UpdateFolder)
	r.DELETE("/api/folders/:id", folders.DeleteFolder)
	r.GET("/api/stats", stats.GetStats)

	tests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/posts", ""},
		{http.MethodPost, "/api/posts", `{"authorName":"김대수","uploadDate":"2024-03-01"}`},
		{http.MethodGet, "/api/posts/1", ""},
		{http.MethodPost, "/api/posts/1/comments", `{"authorName":"정군","content":"멋져요","commentDate":"2024-03-02"}`},
		{http.MethodGet, "/api/folders", ""},
		{http.MethodPut, "/api/folders/1", `{"name":"새 이름"}`},
		{http.MethodDelete, "/api/folders/1", ""},
		{http.MethodGet, "/api/stats", ""},
	}
	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			w := do(r, tt.method, tt.path, tt.body)
			assert.Equal(t, http.StatusInternalServerError, w.Code)
			assert.Contains(t, w.Body.String(), utils.MsgServerError)
			assert.NotContains(t, w.Body.String(), "connection refused")
		})
	}
}

func TestCreatePost_Validation(t *testing.T) {
	r := gin.New()
	r.POST("/api/posts", NewPostController(brokenStore{}, nil).CreatePost)

	tests := map[string]string{
		"not json":       `{`,
		"missing author": `{"uploadDate":"2024-03-01"}`,
		"blank author":   `{"authorName":"  ","uploadDate":"2024-03-01"}`,
		"missing date":   `{"authorName":"김대수"}`,
		"bad date":       `{"authorName":"김대수","uploadDate":"어제"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			w := do(r, http.MethodPost, "/api/posts", body)
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

func TestInvalidIDs(t *testing.T) {
	r := gin.New()
	posts := NewPostController(brokenStore{}, nil)
	folders := NewFolderController(brokenStore{}, nil)
	r.GET("/api/posts/:id", posts.GetPost)
	r.GET("/api/folders/:id", folders.GetFolder)
	r.GET("/api/posts", posts.ListPosts)

	for _, path := range []string{"/api/posts/abc", "/api/posts/0", "/api/posts/-1", "/api/folders/x", "/api/posts?folderId=x"} {
		w := do(r, http.MethodGet, path, "")
		assert.Equal(t, http.StatusBadRequest, w.Code, path)
	}
}

func TestLoginMeLogout(t *testing.T) {
	codec := utils.NewSessionCodec("controller-test-secret", time.Hour, false, utils.NewRevoker(nil))
	auth := NewAuthController(utils.NewDirectory(config.DefaultTeacher, config.DefaultStudents), codec, nil)

	r := gin.New()
	r.Use(middleware.LoadSession(codec))
	r.POST("/api/auth/login", auth.Login)
	r.GET("/api/auth/me", auth.Me)
	r.POST("/api/auth/logout", auth.Logout)

	w := do(r, http.MethodPost, "/api/auth/login", `{"name":"교사","code":"0000"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), utils.MsgLoginFailed)

	w = do(r, http.MethodPost, "/api/auth/login", `{"name":"교사"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/api/auth/login", `{"name":"교사","code":"5555"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"user":{"name":"교사","role":"teacher"}}`, w.Body.String())
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	session := cookies[0]

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user":{"name":"교사","role":"teacher"}}`, w.Body.String())

	req = httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	cleared := w.Result().Cookies()
	require.Len(t, cleared, 1)
	assert.Less(t, cleared[0].MaxAge, 0)

	// the old cookie no longer authenticates
	req = httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(session)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.JSONEq(t, `{"user":null}`, w.Body.String())
}

func multipartBody(t *testing.T, field, filename, contentType, content string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	h := make(map[string][]string)
	h["Content-Disposition"] = []string{`form-data; name="` + field + `"; filename="` + filename + `"`}
	h["Content-Type"] = []string{contentType}
	part, err := mw.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())
	return &buf, mw.FormDataContentType()
}

func TestUpload(t *testing.T) {
	blobs := &fakeBlobs{}
	r := gin.New()
	r.POST("/api/upload", NewUploadController(blobs).Upload)

	body, ct := multipartBody(t, "file", "소풍 사진.png", "image/png", "PNGDATA")
	req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
	req.Header.Set("Content-Type", ct)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"url":"https://cdn.example/uploads/1_소풍 사진.png"}`, w.Body.String())
	assert.Equal(t, "소풍 사진.png", blobs.filename)
	assert.Equal(t, "image/png", blobs.contentType)
	assert.Equal(t, "PNGDATA", blobs.body)
}

func TestUpload_Failures(t *testing.T) {
	tests := []struct {
		name   string
		blobs  *fakeBlobs
		field  string
		status int
	}{
		{"no file", &fakeBlobs{}, "other", http.StatusBadRequest},
		{"storage error", &fakeBlobs{err: errors.New("access denied")}, "file", http.StatusInternalServerError},
		{"storage missing", nil, "file", http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctrl *UploadController
			if tt.blobs == nil {
				ctrl = NewUploadController(nil)
			} else {
				ctrl = NewUploadController(tt.blobs)
			}
			r := gin.New()
			r.POST("/api/upload", ctrl.Upload)

			body, ct := multipartBody(t, tt.field, "a.txt", "text/plain", "x")
			req := httptest.NewRequest(http.MethodPost, "/api/upload", body)
			req.Header.Set("Content-Type", ct)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
