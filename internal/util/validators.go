package util

import (
	"regexp"

	"github.com/go-playground/validator/v10"
)

var cnPhoneRegex = regexp.MustCompile(`^1[3-9]\d{9}$`)

// ValidateCNPhone 验证手机号格式（11位数字）
func ValidateCNPhone(fl validator.FieldLevel) bool {
	phone, ok := fl.Field().Interface().(string)
	if !ok {
		return false
	}
	return cnPhoneRegex.MatchString(phone)
}
