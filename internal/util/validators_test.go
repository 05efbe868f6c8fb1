package util

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

// TestValidateCNPhone 测试手机号格式校验
func TestValidateCNPhone(t *testing.T) {
	v := validator.New()
	v.RegisterValidation("cn_phone", ValidateCNPhone)

	valid := []string{"13812345678", "19900000000", "15012345678"}
	for _, phone := range valid {
		assert.NoError(t, v.Var(phone, "cn_phone"), phone)
	}

	invalid := []string{"12812345678", "1381234567", "138123456789", "23812345678", "abc", ""}
	for _, phone := range invalid {
		assert.Error(t, v.Var(phone, "cn_phone"), phone)
	}
}

// TestGenerateAndValidateToken 测试令牌签发与解析
func TestGenerateAndValidateToken(t *testing.T) {
	token, expiresAt, err := GenerateToken(42)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Greater(t, expiresAt, int64(0))

	userID, err := ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, 42, userID)
}

// TestValidateTokenInvalid 测试非法令牌
func TestValidateTokenInvalid(t *testing.T) {
	_, err := ValidateToken("not-a-jwt")
	assert.Error(t, err)
}

// TestGenerateUniqueFilename 测试唯一文件名保留扩展名
func TestGenerateUniqueFilename(t *testing.T) {
	name := GenerateUniqueFilename("photo.jpg")
	assert.Regexp(t, `^\d+-[a-z0-9]{6}\.jpg$`, name)

	other := GenerateUniqueFilename("photo.jpg")
	assert.NotEqual(t, name, other)
}
