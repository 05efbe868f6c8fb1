package upload

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// fakeStorage 记录上传路径，返回固定URL
type fakeStorage struct {
	paths []string
}

func (s *fakeStorage) UploadFile(file *multipart.FileHeader, path string) (string, error) {
	s.paths = append(s.paths, path)
	return "http://cdn.example.com/" + path, nil
}

func newUploadTestRouter(handler *UploadHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/upload/image", handler.UploadImage)
	router.POST("/upload/images", handler.UploadImages)
	router.POST("/upload/home", handler.UploadHomeImage)
	return router
}

func buildMultipart(t *testing.T, field, filename, contentType string, size int) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	assert.NoError(t, err)
	part.Write(bytes.Repeat([]byte("a"), size))
	writer.Close()
	return body, writer.FormDataContentType()
}

// TestUploadImage 测试单张图片上传
func TestUploadImage(t *testing.T) {
	store := &fakeStorage{}
	handler := NewUploadHandler(store)
	router := newUploadTestRouter(handler)

	body, contentType := buildMultipart(t, "image", "ring.jpg", "image/jpeg", 1024)
	req, _ := http.NewRequest("POST", "/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, store.paths, 1)
	assert.Regexp(t, `^products/\d+-[a-z0-9]{6}\.jpg$`, store.paths[0])
}

// TestUploadImageRejectsNonImage 测试非图片文件被拒绝
func TestUploadImageRejectsNonImage(t *testing.T) {
	store := &fakeStorage{}
	handler := NewUploadHandler(store)
	router := newUploadTestRouter(handler)

	body, contentType := buildMultipart(t, "image", "malware.sh", "application/x-sh", 1024)
	req, _ := http.NewRequest("POST", "/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.paths)
}

// TestUploadImageRejectsOversize 测试超过5MB的文件被拒绝
func TestUploadImageRejectsOversize(t *testing.T) {
	store := &fakeStorage{}
	handler := NewUploadHandler(store)
	router := newUploadTestRouter(handler)

	body, contentType := buildMultipart(t, "image", "big.jpg", "image/jpeg", maxFileSize+1)
	req, _ := http.NewRequest("POST", "/upload/image", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, store.paths)
}

// TestUploadHomeImage 测试首页图片只允许固定文件名
func TestUploadHomeImage(t *testing.T) {
	store := &fakeStorage{}
	handler := NewUploadHandler(store)
	router := newUploadTestRouter(handler)

	body, contentType := buildMultipart(t, "image", "hero.jpg", "image/jpeg", 1024)
	req, _ := http.NewRequest("POST", "/upload/home", body)
	req.Header.Set("Content-Type", contentType)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"home/hero.jpg"}, store.paths)

	// 不在允许列表中的文件名
	body, contentType = buildMultipart(t, "image", "banner.jpg", "image/jpeg", 1024)
	req, _ = http.NewRequest("POST", "/upload/home", body)
	req.Header.Set("Content-Type", contentType)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, store.paths, 1)
}
