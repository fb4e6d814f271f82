package domain

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
)

// 业务错误哨兵，handler 层用 errors.Is 映射到 HTTP 状态码
var (
	ErrDuplicateEmail     = errors.New("email already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrForbidden          = errors.New("forbidden")
)

type User struct {
	ID           string `gorm:"primaryKey;size:36"`
	Email        string `gorm:"uniqueIndex;size:191;not null"`
	PasswordHash string `gorm:"size:191;not null"`
	Fullname     string `gorm:"size:100;not null"`
	PhoneNumber  string `gorm:"size:32"`
	Position     string `gorm:"size:64"`
	PhotoURL     string `gorm:"size:255"`

	CreatedAt time.Time      `gorm:"autoCreateTime"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"index"`
}

func (User) TableName() string { return "users" }

// SanitizedUser 对外视图：永远不携带密码散列
type SanitizedUser struct {
	ID          string    `json:"id"`
	Email       string    `json:"email"`
	Fullname    string    `json:"fullname"`
	PhoneNumber string    `json:"phone_number"`
	Position    string    `json:"position"`
	PhotoURL    string    `json:"photo_url"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u *User) Sanitize() SanitizedUser {
	return SanitizedUser{
		ID:          u.ID,
		Email:       u.Email,
		Fullname:    u.Fullname,
		PhoneNumber: u.PhoneNumber,
		Position:    u.Position,
		PhotoURL:    u.PhotoURL,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

type Role int

const (
	RoleMember Role = iota
	RoleElevated
)

// ElevatedPosition 约定：position 等于该值（忽略大小写）即拥有跨账号删除权限
const ElevatedPosition = "HRD"

func RoleFromPosition(position string) Role {
	if strings.EqualFold(strings.TrimSpace(position), ElevatedPosition) {
		return RoleElevated
	}
	return RoleMember
}

func (u *User) Role() Role { return RoleFromPosition(u.Position) }

// CanUpdate 只允许本人修改自己的资料
func CanUpdate(actorID, targetID string) bool { return actorID == targetID }

// CanDelete 本人或 elevated 角色可删
func CanDelete(actorID string, actorRole Role, targetID string) bool {
	return actorID == targetID || actorRole == RoleElevated
}

// UserRepository 持久层接口；Any 后缀表示连同软删行一起查
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByEmailAny(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	FindByIDAny(ctx context.Context, id string) (*User, error)
	Update(ctx context.Context, id string, fields map[string]any) (*User, error)
	SoftDelete(ctx context.Context, id string) error
	List(ctx context.Context, page, limit int, search string) ([]User, int64, error)
}
