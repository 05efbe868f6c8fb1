package mysql

import (
	"database/sql"
	"time"

	"go.uber.org/zap"

	"github.com/gongye19/OnlineStore/internal/model"
	"github.com/gongye19/OnlineStore/internal/util"
)

// userRepository 实现了 UserRepository 接口
type userRepository struct {
	db *sql.DB
}

// NewUserRepository 创建一个新的 userRepository 实例
func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db}
}

// Create 创建一个新用户
func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users (phone, nickname, email, password_hash, address, gender, is_admin)
              VALUES (?, ?, ?, ?, ?, ?, ?)`
	result, err := r.db.Exec(query, user.Phone, user.Nickname, user.Email,
		user.PasswordHash, user.Address, user.Gender, user.IsAdmin)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err), zap.String("email", user.Email))
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	user.CreatedAt = time.Now()
	util.Logger.Info("用户创建成功", zap.Int("user_id", user.ID))
	return nil
}

// FindByID 通过ID查找用户，未找到返回 nil
func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT id, phone, nickname, email, password_hash, address, gender, is_admin, created_at, updated_at
              FROM users WHERE id = ?`
	return r.scanOne(r.db.QueryRow(query, id))
}

// FindByEmail 通过邮箱查找用户，未找到返回 nil
func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT id, phone, nickname, email, password_hash, address, gender, is_admin, created_at, updated_at
              FROM users WHERE email = ?`
	return r.scanOne(r.db.QueryRow(query, email))
}

// FindByPhone 通过手机号查找用户，未找到返回 nil
func (r *userRepository) FindByPhone(phone string) (*model.User, error) {
	query := `SELECT id, phone, nickname, email, password_hash, address, gender, is_admin, created_at, updated_at
              FROM users WHERE phone = ?`
	return r.scanOne(r.db.QueryRow(query, phone))
}

func (r *userRepository) scanOne(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Phone, &user.Nickname, &user.Email, &user.PasswordHash,
		&user.Address, &user.Gender, &user.IsAdmin, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePassword 更新用户密码哈希
func (r *userRepository) UpdatePassword(userID int, passwordHash string) error {
	_, err := r.db.Exec(`UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		passwordHash, time.Now(), userID)
	if err != nil {
		util.Logger.Error("更新用户密码失败", zap.Error(err), zap.Int("user_id", userID))
	}
	return err
}

// Count 返回用户总数
func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users").Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}
