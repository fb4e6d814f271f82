package repo

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"go-user-service/internal/domain"
)

type UserRepo struct{ db *gorm.DB }

func NewUserRepo(db *gorm.DB) *UserRepo { return &UserRepo{db: db} }

var _ domain.UserRepository = (*UserRepo)(nil)

// Create 依赖 email 唯一索引兜底并发注册：check-then-insert 的竞态最终由数据库裁决
func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.WithContext(ctx).Create(u).Error
	if err != nil && (errors.Is(err, gorm.ErrDuplicatedKey) || isDupKey(err)) {
		return domain.ErrDuplicateEmail
	}
	return err
}

func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(r.db.WithContext(ctx), "email = ?", email)
}

// FindByEmailAny 不过滤软删行：注册查重对已注销邮箱同样生效
func (r *UserRepo) FindByEmailAny(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(r.db.WithContext(ctx).Unscoped(), "email = ?", email)
}

func (r *UserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(r.db.WithContext(ctx), "id = ?", id)
}

func (r *UserRepo) FindByIDAny(ctx context.Context, id string) (*domain.User, error) {
	return r.findOne(r.db.WithContext(ctx).Unscoped(), "id = ?", id)
}

func (r *UserRepo) findOne(tx *gorm.DB, query string, arg any) (*domain.User, error) {
	var u domain.User
	err := tx.First(&u, query, arg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Update 只合并调用方给出的列；目标不存在（或已软删）返回 ErrUserNotFound
func (r *UserRepo) Update(ctx context.Context, id string, fields map[string]any) (*domain.User, error) {
	var u domain.User
	err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return &u, nil
	}
	if err := r.db.WithContext(ctx).Model(&u).Updates(fields).Error; err != nil {
		return nil, err
	}
	// 重新读一次，拿到数据库生成的 updated_at
	if err := r.db.WithContext(ctx).First(&u, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// SoftDelete gorm 软删仅命中活跃行，重复删除落到 RowsAffected==0
func (r *UserRepo) SoftDelete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&domain.User{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// List 软删行永远排除；search 同时对 fullname/email 忽略大小写模糊匹配；
// total 统计的是过滤后的集合，供调用方算 last_page
func (r *UserRepo) List(ctx context.Context, page, limit int, search string) ([]domain.User, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}
	q := r.db.WithContext(ctx).Model(&domain.User{})
	if s := strings.TrimSpace(search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		q = q.Where("LOWER(fullname) LIKE ? OR LOWER(email) LIKE ?", like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var users []domain.User
	err := q.Order("created_at DESC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, 0, err
	}
	return users, total, nil
}

func isDupKey(err error) bool {
	// 不依赖驱动错误类型，按文案兜底，兼容 mysql/postgres/sqlite
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation")
}
