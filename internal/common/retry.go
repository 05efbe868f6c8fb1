package common

import (
	"net"
	"time"
)

// IsTemporary 判断是否为临时性错误
func IsTemporary(err error) bool {
	if temp, ok := err.(interface{ Temporary() bool }); ok {
		return temp.Temporary()
	}
	if _, ok := err.(net.Error); ok {
		return true
	}
	return false
}

// WithRetry 通用重试机制，只用于异步任务（如邮件发送）。
// 数据库调用一律不重试，失败直接返回给调用方。
func WithRetry(operation func() error, maxRetries int) error {
	var err error
	for i := 0; i < maxRetries; i++ {
		if err = operation(); err == nil {
			return nil
		}
		if !IsTemporary(err) {
			return err
		}
		time.Sleep(time.Second * time.Duration(i+1))
	}
	return err
}
