package model

import "time"

// User 结构体表示用户模型
type User struct {
	ID           int       `json:"id"`
	Phone        string    `json:"phone"`
	Nickname     string    `json:"nickname"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // 密码哈希不应在JSON中暴露
	Address      string    `json:"address"`
	Gender       string    `json:"gender"` // male / female / other
	IsAdmin      bool      `json:"is_admin"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Session 登录会话信息
type Session struct {
	AccessToken string `json:"access_token"`
	ExpiresAt   int64  `json:"expires_at"`
}
