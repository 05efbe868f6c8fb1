package upload

import (
	"fmt"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/storage"
	"github.com/gongye19/OnlineStore/internal/util"
)

const (
	maxFileSize   = 5 << 20 // 单个文件最大5MB
	maxBatchFiles = 10
)

// 首页图片只允许固定文件名，重复上传直接覆盖
var homeImageNames = map[string]bool{
	"hero.jpg":       true,
	"philosophy.jpg": true,
	"founder.jpg":    true,
}

// UploadHandler 处理图片上传请求
type UploadHandler struct {
	storage storage.Storage
}

func NewUploadHandler(storage storage.Storage) *UploadHandler {
	return &UploadHandler{storage}
}

func validateImage(file *multipart.FileHeader) error {
	if file.Size > maxFileSize {
		return errors.New(errors.ErrBadRequest, "文件大小不能超过5MB")
	}
	contentType := file.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return errors.New(errors.ErrBadRequest, "只允许上传图片文件")
	}
	return nil
}

// UploadImage 上传单张商品图片，字段名为 image
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请选择要上传的图片", err))
		return
	}

	if err := validateImage(file); err != nil {
		errors.HandleError(c, err)
		return
	}

	path := fmt.Sprintf("products/%s", util.GenerateUniqueFilename(file.Filename))
	url, err := h.storage.UploadFile(file, path)
	if err != nil {
		util.Logger.Error("图片上传失败", zap.Error(err), zap.String("filename", file.Filename))
		errors.HandleError(c, errors.Wrap(errors.ErrStorage, "图片上传失败", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}

// UploadImages 批量上传商品图片，字段名为 images，最多10张
func (h *UploadHandler) UploadImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "无效的表单数据", err))
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "请选择要上传的图片"))
		return
	}
	if len(files) > maxBatchFiles {
		errors.HandleError(c, errors.New(errors.ErrBadRequest, "一次最多上传10张图片"))
		return
	}

	// 先整体校验，避免部分文件已上传后才失败
	for _, file := range files {
		if err := validateImage(file); err != nil {
			errors.HandleError(c, err)
			return
		}
	}

	urls := make([]string, 0, len(files))
	for _, file := range files {
		path := fmt.Sprintf("products/%s", util.GenerateUniqueFilename(file.Filename))
		url, err := h.storage.UploadFile(file, path)
		if err != nil {
			util.Logger.Error("图片上传失败", zap.Error(err), zap.String("filename", file.Filename))
			errors.HandleError(c, errors.Wrap(errors.ErrStorage, "图片上传失败", err))
			return
		}
		urls = append(urls, url)
	}

	c.JSON(http.StatusOK, gin.H{"urls": urls})
}

// UploadHomeImage 上传首页图片。文件名必须是 hero.jpg、philosophy.jpg
// 或 founder.jpg 之一，同名文件直接覆盖。
func (h *UploadHandler) UploadHomeImage(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrBadRequest, "请选择要上传的图片", err))
		return
	}

	if !homeImageNames[file.Filename] {
		errors.HandleError(c, errors.New(errors.ErrBadRequest,
			"首页图片文件名必须是 hero.jpg、philosophy.jpg 或 founder.jpg"))
		return
	}

	if err := validateImage(file); err != nil {
		errors.HandleError(c, err)
		return
	}

	url, err := h.storage.UploadFile(file, fmt.Sprintf("home/%s", file.Filename))
	if err != nil {
		util.Logger.Error("首页图片上传失败", zap.Error(err), zap.String("filename", file.Filename))
		errors.HandleError(c, errors.Wrap(errors.ErrStorage, "图片上传失败", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"url": url})
}
