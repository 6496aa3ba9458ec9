package blog

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aki-lab/blog-core/internal/models"
	"github.com/aki-lab/blog-core/internal/modules/upload"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type envelope struct {
	Error   bool            `json:"error"`
	Message string          `json:"message"`
	ID      uint            `json:"id"`
	Data    json.RawMessage `json:"data"`
}

type testEnv struct {
	router    *gin.Engine
	db        *gorm.DB
	uploadDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps every query on the same in-memory DB
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&models.BlogPostModel{}))

	dir := t.TempDir()
	log := zap.NewNop()

	r := gin.New()
	api := r.Group("/api")
	NewHandler(NewService(db), upload.NewManager(dir, log), log).RegisterRoutes(api)

	return &testEnv{router: r, db: db, uploadDir: dir}
}

// multipartRequest builds a multipart form request; file is attached
// under the field name "image" when fileName is non-empty.
func multipartRequest(t *testing.T, method, url string, fields map[string]string, fileName string, fileContent []byte) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileName != "" {
		fw, err := w.CreateFormFile("image", fileName)
		require.NoError(t, err)
		_, err = fw.Write(fileContent)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), "body: %s", rec.Body.String())
	return rec, env
}

func (e *testEnv) mustGet(t *testing.T, id uint) models.BlogPostModel {
	t.Helper()
	var post models.BlogPostModel
	require.NoError(t, e.db.First(&post, "id = ?", id).Error)
	return post
}

func TestCreateWithoutFile(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":        "Hello, World!",
		"category_id": "3",
		"description": "first post",
		"publish":     "on",
	}, "", nil)
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Error)
	assert.Equal(t, "Successfully created", body.Message)
	require.NotZero(t, body.ID)

	post := env.mustGet(t, body.ID)
	assert.Equal(t, "hello-world", post.Slug)
	assert.Equal(t, "", post.Image)
	assert.Equal(t, 3, post.CategoryID)
	assert.True(t, post.Publish)
	assert.NotEmpty(t, post.CreatedAt)
}

func TestCreateWithFile(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":       "With Cover",
		"image_name": "cover",
	}, "photo.png", []byte("png-bytes"))
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotZero(t, body.ID)

	post := env.mustGet(t, body.ID)
	assert.Equal(t, "/uploads/cover.png", post.Image)

	data, err := os.ReadFile(filepath.Join(env.uploadDir, "cover.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestCreateWithFileDefaultName(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name": "No Custom Name",
	}, "photo.jpg", []byte("x"))
	_, body := env.do(t, req)

	post := env.mustGet(t, body.ID)
	assert.Equal(t, "/uploads/default.jpg", post.Image)
	assert.FileExists(t, filepath.Join(env.uploadDir, "default.jpg"))
}

func TestGetByID(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{"name": "A Post"}, "", nil)
	_, created := env.do(t, req)

	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Error)

	var post models.BlogPostModel
	require.NoError(t, json.Unmarshal(body.Data, &post))
	assert.Equal(t, created.ID, post.ID)
	assert.Equal(t, "A Post", post.Name)
}

func TestGetNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog/999", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, body.Error)
	assert.Equal(t, "Blog post not found", body.Message)
}

func TestListNewestFirst(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Create(&models.BlogPostModel{
		Name: "older", CreatedAt: "2024-01-01T00:00:00Z", UpdatedAt: "2024-01-01T00:00:00Z",
	}).Error)
	require.NoError(t, env.db.Create(&models.BlogPostModel{
		Name: "newer", CreatedAt: "2025-06-01T00:00:00Z", UpdatedAt: "2025-06-01T00:00:00Z",
	}).Error)

	rec, body := env.do(t, httptest.NewRequest(http.MethodGet, "/api/blog", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	var posts []models.BlogPostModel
	require.NoError(t, json.Unmarshal(body.Data, &posts))
	require.Len(t, posts, 2)
	assert.Equal(t, "newer", posts[0].Name)
	assert.Equal(t, "older", posts[1].Name)
}

func TestUpdateRenameWithoutFile(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":       "Renamable",
		"image_name": "cover",
	}, "pic.jpg", []byte("jpeg-bytes"))
	_, created := env.do(t, req)

	req = multipartRequest(t, http.MethodPut, "/api/blog/1", map[string]string{
		"name":       "Renamable",
		"image_name": "cover2",
	}, "", nil)
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Error)
	assert.Equal(t, "Successfully updated", body.Message)

	assert.NoFileExists(t, filepath.Join(env.uploadDir, "cover.jpg"))
	data, err := os.ReadFile(filepath.Join(env.uploadDir, "cover2.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), data)

	post := env.mustGet(t, created.ID)
	assert.Equal(t, "/uploads/cover2.jpg", post.Image)
}

func TestUpdateWithNewFile(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":       "Replaceable",
		"image_name": "cover",
	}, "pic.png", []byte("old"))
	_, created := env.do(t, req)

	req = multipartRequest(t, http.MethodPut, "/api/blog/1", map[string]string{
		"name":       "Replaceable",
		"image_name": "banner",
	}, "new.gif", []byte("new"))
	rec, _ := env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	assert.NoFileExists(t, filepath.Join(env.uploadDir, "cover.png"))
	data, err := os.ReadFile(filepath.Join(env.uploadDir, "banner.gif"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)

	post := env.mustGet(t, created.ID)
	assert.Equal(t, "/uploads/banner.gif", post.Image)
}

func TestUpdateWithFileSamePath(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":       "Same Path",
		"image_name": "cover",
	}, "pic.png", []byte("old"))
	env.do(t, req)

	// same base name, same extension: the freshly written file must
	// survive the old-file cleanup
	req = multipartRequest(t, http.MethodPut, "/api/blog/1", map[string]string{
		"name":       "Same Path",
		"image_name": "cover",
	}, "other.png", []byte("new"))
	rec, _ := env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	data, err := os.ReadFile(filepath.Join(env.uploadDir, "cover.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), data)
}

func TestUpdateWithoutImageChangesKeepsImage(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPost, "/api/blog", map[string]string{
		"name":       "Static Image",
		"image_name": "cover",
	}, "pic.png", []byte("x"))
	_, created := env.do(t, req)

	req = multipartRequest(t, http.MethodPut, "/api/blog/1", map[string]string{
		"name": "Static Image, Edited",
	}, "", nil)
	rec, _ := env.do(t, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	post := env.mustGet(t, created.ID)
	assert.Equal(t, "/uploads/cover.png", post.Image)
	assert.Equal(t, "static-image-edited", post.Slug)
	assert.FileExists(t, filepath.Join(env.uploadDir, "cover.png"))
}

func TestUpdateRenameMissingSourceStillUpdates(t *testing.T) {
	env := newTestEnv(t)

	require.NoError(t, env.db.Create(&models.BlogPostModel{
		Name:      "Ghost",
		Image:     "/uploads/ghost.jpg",
		CreatedAt: "2024-01-01T00:00:00Z",
		UpdatedAt: "2024-01-01T00:00:00Z",
	}).Error)

	req := multipartRequest(t, http.MethodPut, "/api/blog/1", map[string]string{
		"name":       "Ghost",
		"image_name": "cover2",
	}, "", nil)
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, body.Error)

	post := env.mustGet(t, 1)
	assert.Equal(t, "/uploads/ghost.jpg", post.Image)
	assert.NoFileExists(t, filepath.Join(env.uploadDir, "cover2.jpg"))
}

func TestUpdateNotFound(t *testing.T) {
	env := newTestEnv(t)

	req := multipartRequest(t, http.MethodPut, "/api/blog/42", map[string]string{
		"name": "nobody home",
	}, "", nil)
	rec, body := env.do(t, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.True(t, body.Error)
	assert.Equal(t, "Blog post not found", body.Message)
}
