package util

import (
	"errors"
	"time"

	"github.com/dgrijalva/jwt-go"

	"github.com/gongye19/OnlineStore/config"
)

// TokenTTL 访问令牌有效期
const TokenTTL = 24 * time.Hour

// GenerateToken 为用户生成访问令牌，返回令牌和过期时间戳
func GenerateToken(userID int) (string, int64, error) {
	expiresAt := time.Now().Add(TokenTTL).Unix()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"exp":     expiresAt,
	})

	signed, err := token.SignedString([]byte(config.AppConfig.JWTSecret))
	if err != nil {
		return "", 0, err
	}
	return signed, expiresAt, nil
}

// ValidateToken 验证令牌并返回其中的用户ID
func ValidateToken(tokenString string) (int, error) {
	if tokenString == "" {
		return 0, errors.New("令牌为空")
	}

	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		return []byte(config.AppConfig.JWTSecret), nil
	})

	if err != nil {
		return 0, err
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		userID, ok := claims["user_id"].(float64)
		if !ok {
			return 0, errors.New("无效的用户ID")
		}
		return int(userID), nil
	}

	return 0, errors.New("无效的令牌")
}
