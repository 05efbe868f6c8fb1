package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/gongye19/OnlineStore/internal/errors"
	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/repository/interfaces"
	"github.com/gongye19/OnlineStore/internal/util"
)

// otpTTL 邮箱验证码有效期
const otpTTL = 10 * time.Minute

type otpEntry struct {
	code      string
	expiresAt time.Time
}

// UserService 处理与用户相关的业务逻辑
type UserService struct {
	userRepo     interfaces.UserRepository
	emailService *EmailService

	// 验证码和令牌黑名单都是短生命周期状态，进程内保存即可
	otpCodes       map[string]otpEntry
	otpMutex       sync.Mutex
	tokenBlacklist map[string]time.Time
	blacklistMutex sync.RWMutex
}

// NewUserService 创建一个新的 UserService 实例
func NewUserService(userRepo interfaces.UserRepository, emailService *EmailService) *UserService {
	return &UserService{
		userRepo:       userRepo,
		emailService:   emailService,
		otpCodes:       make(map[string]otpEntry),
		tokenBlacklist: make(map[string]time.Time),
	}
}

// Register 注册新用户
func (s *UserService) Register(user *model.User, password string) error {
	// 检查邮箱和手机号是否已被注册
	existing, err := s.userRepo.FindByEmail(user.Email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "该邮箱已被注册，请使用其他邮箱或直接登录")
	}

	existing, err = s.userRepo.FindByPhone(user.Phone)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if existing != nil {
		return errors.New(errors.ErrUserExists, "该手机号已被注册")
	}

	// 生成密码哈希
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}
	user.PasswordHash = string(hashedPassword)

	if user.Gender == "" {
		user.Gender = "other"
	}
	user.IsAdmin = false

	if err := s.userRepo.Create(user); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建用户失败", err)
	}
	return nil
}

// Login 用户登录，account 可以是手机号或邮箱
func (s *UserService) Login(account, password string) (*model.User, error) {
	var user *model.User
	var err error

	// 不含 @ 的按手机号查找，否则按邮箱查找
	if strings.Contains(account, "@") {
		user, err = s.userRepo.FindByEmail(account)
	} else {
		user, err = s.userRepo.FindByPhone(account)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrInvalidCredentials, "手机号或密码错误")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		util.Logger.Warn("用户登录失败，密码不正确", zap.Int("user_id", user.ID))
		return nil, errors.New(errors.ErrInvalidCredentials, "手机号或密码错误")
	}

	util.Logger.Info("用户登录成功", zap.Int("user_id", user.ID))
	return user, nil
}

// GetUserByID 通过ID获取用户信息
func (s *UserService) GetUserByID(id int) (*model.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return nil, errors.New(errors.ErrUserNotFound, "用户不存在")
	}
	return user, nil
}

// Logout 登出并将令牌加入黑名单
func (s *UserService) Logout(token string) {
	s.blacklistMutex.Lock()
	defer s.blacklistMutex.Unlock()

	// 顺便清理已过期的黑名单条目
	now := time.Now()
	for t, expiry := range s.tokenBlacklist {
		if expiry.Before(now) {
			delete(s.tokenBlacklist, t)
		}
	}
	s.tokenBlacklist[token] = now.Add(util.TokenTTL)
}

// IsTokenBlacklisted 检查令牌是否已被撤销
func (s *UserService) IsTokenBlacklisted(token string) bool {
	s.blacklistMutex.RLock()
	defer s.blacklistMutex.RUnlock()

	expiry, ok := s.tokenBlacklist[token]
	return ok && expiry.After(time.Now())
}

// SendEmailOTP 生成并发送邮箱验证码。
// 邮箱不存在时不报错，防止邮箱枚举攻击。
func (s *UserService) SendEmailOTP(email string) error {
	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		util.Logger.Info("请求验证码的邮箱不存在", zap.String("email", email))
		return nil
	}

	code, err := generateOTPCode()
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成验证码失败", err)
	}

	s.otpMutex.Lock()
	s.otpCodes[email] = otpEntry{code: code, expiresAt: time.Now().Add(otpTTL)}
	s.otpMutex.Unlock()

	s.emailService.SendOTPEmail(email, user.Nickname, code)
	return nil
}

// VerifyEmailOTP 校验邮箱验证码，校验通过后验证码保留，
// 供随后的修改密码请求再次校验并消费。
func (s *UserService) VerifyEmailOTP(email, code string) error {
	s.otpMutex.Lock()
	defer s.otpMutex.Unlock()

	entry, ok := s.otpCodes[email]
	if !ok || entry.expiresAt.Before(time.Now()) {
		delete(s.otpCodes, email)
		return errors.New(errors.ErrInvalidOTP, "验证码无效或已过期")
	}
	if entry.code != code {
		return errors.New(errors.ErrInvalidOTP, "验证码错误")
	}
	return nil
}

// ChangePassword 修改密码，需要有效的邮箱验证码，成功后消费验证码
func (s *UserService) ChangePassword(email, code, newPassword string) error {
	if err := s.VerifyEmailOTP(email, code); err != nil {
		return err
	}

	user, err := s.userRepo.FindByEmail(email)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if user == nil {
		return errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(errors.ErrInternal, "生成密码哈希失败", err)
	}

	if err := s.userRepo.UpdatePassword(user.ID, string(hashedPassword)); err != nil {
		return errors.Wrap(errors.ErrDatabase, "更新密码失败", err)
	}

	s.otpMutex.Lock()
	delete(s.otpCodes, email)
	s.otpMutex.Unlock()

	util.Logger.Info("用户密码修改成功", zap.Int("user_id", user.ID))
	return nil
}

// generateOTPCode 生成6位数字验证码
func generateOTPCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// UserServiceInterface 定义了认证处理器依赖的用户服务方法
type UserServiceInterface interface {
	Register(user *model.User, password string) error
	Login(account, password string) (*model.User, error)
	GetUserByID(id int) (*model.User, error)
	Logout(token string)
	IsTokenBlacklisted(token string) bool
	SendEmailOTP(email string) error
	VerifyEmailOTP(email, code string) error
	ChangePassword(email, code, newPassword string) error
}

var _ UserServiceInterface = (*UserService)(nil)
