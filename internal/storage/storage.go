package storage

import "mime/multipart"

// Storage 对象存储接口。UploadFile 把上传文件写入指定路径，
// 返回可公开访问的 URL。
type Storage interface {
	UploadFile(file *multipart.FileHeader, path string) (string, error)
}
