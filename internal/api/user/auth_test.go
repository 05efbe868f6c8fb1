package user

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/service"
	"github.com/gongye19/OnlineStore/internal/util"
)

func init() {
	gin.SetMode(gin.TestMode)
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterValidation("cn_phone", util.ValidateCNPhone)
	}
}

// MockUserService 是 UserServiceInterface 的模拟实现
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Register(user *model.User, password string) error {
	args := m.Called(user, password)
	return args.Error(0)
}

func (m *MockUserService) Login(account, password string) (*model.User, error) {
	args := m.Called(account, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) GetUserByID(id int) (*model.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) Logout(token string) {
	m.Called(token)
}

func (m *MockUserService) IsTokenBlacklisted(token string) bool {
	args := m.Called(token)
	return args.Bool(0)
}

func (m *MockUserService) SendEmailOTP(email string) error {
	args := m.Called(email)
	return args.Error(0)
}

func (m *MockUserService) VerifyEmailOTP(email, code string) error {
	args := m.Called(email, code)
	return args.Error(0)
}

func (m *MockUserService) ChangePassword(email, code, newPassword string) error {
	args := m.Called(email, code, newPassword)
	return args.Error(0)
}

// 确保 MockUserService 实现了 UserServiceInterface
var _ service.UserServiceInterface = (*MockUserService)(nil)

// TestRegister 测试注册处理器
func TestRegister(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/register", handler.Register)

	// 模拟成功注册
	mockService.On("Register", mock.AnythingOfType("*model.User"), "secret123").Return(nil).Once()

	body := []byte(`{"email": "test@example.com", "password": "secret123", "nickname": "小明", "phone": "13812345678"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	mockService.AssertExpectations(t)

	// 邮箱已被注册
	mockService.On("Register", mock.AnythingOfType("*model.User"), "secret123").
		Return(errors.New(errors.ErrUserExists, "该邮箱已被注册，请使用其他邮箱或直接登录"))

	req, _ = http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response, "error")
}

// TestRegisterInvalidPhone 测试手机号格式校验
func TestRegisterInvalidPhone(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/register", handler.Register)

	body := []byte(`{"email": "test@example.com", "password": "secret123", "nickname": "小明", "phone": "12345"}`)
	req, _ := http.NewRequest("POST", "/register", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	mockService.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
}

// TestLogin 测试登录处理器返回会话和用户信息
func TestLogin(t *testing.T) {
	mockService := new(MockUserService)
	handler := NewAuthHandler(mockService)

	router := gin.New()
	router.POST("/login", handler.Login)

	mockUser := &model.User{ID: 1, Phone: "13812345678", Email: "test@example.com"}
	mockService.On("Login", "13812345678", "secret123").Return(mockUser, nil)

	body := []byte(`{"phone": "13812345678", "password": "secret123"}`)
	req, _ := http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	var response map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &response)
	assert.Contains(t, response, "session")
	assert.Contains(t, response, "user")

	session := response["session"].(map[string]interface{})
	assert.NotEmpty(t, session["access_token"])
	mockService.AssertExpectations(t)

	// 密码错误
	mockService.On("Login", "13812345678", "wrongpass").
		Return(nil, errors.New(errors.ErrInvalidCredentials, "手机号或密码错误"))

	body = []byte(`{"phone": "13812345678", "password": "wrongpass"}`)
	req, _ = http.NewRequest("POST", "/login", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	mockService.AssertExpectations(t)
}
