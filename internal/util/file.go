package util

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

const filenameChars = "abcdefghijklmnopqrstuvwxyz0123456789"

// GenerateUniqueFilename 生成唯一的文件名，保留原扩展名
func GenerateUniqueFilename(originalFilename string) string {
	ext := filepath.Ext(originalFilename)

	suffix := make([]byte, 6)
	for i := range suffix {
		suffix[i] = filenameChars[rand.Intn(len(filenameChars))]
	}

	return fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), suffix, ext)
}
