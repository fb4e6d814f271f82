package user

import (
	"context"
	"time"

	"go.uber.org/zap"

	"go-user-service/internal/core/cache"
	"go-user-service/internal/domain"
)

const (
	DefaultPage  = 1
	DefaultLimit = 10
)

// UpdateInput 部分更新：nil 字段不动
type UpdateInput struct {
	Fullname    *string
	PhoneNumber *string
	Position    *string
	PhotoURL    *string
}

type ListMeta struct {
	Total    int64 `json:"total"`
	Page     int   `json:"page"`
	LastPage int   `json:"last_page"`
}

type Service struct {
	users    domain.UserRepository
	cache    *cache.Cache // 可空：未配置 redis 时直连数据库
	cacheTTL time.Duration
	log      *zap.Logger
}

func NewService(users domain.UserRepository, c *cache.Cache, ttl time.Duration, log *zap.Logger) *Service {
	return &Service{users: users, cache: c, cacheTTL: ttl, log: log}
}

func (s *Service) Get(ctx context.Context, id string) (domain.SanitizedUser, error) {
	if s.cache != nil {
		v, err := cache.GetOrLoadJSON[domain.SanitizedUser](s.cache, ctx, userKey(id), s.cacheTTL, func(ctx context.Context) (*domain.SanitizedUser, error) {
			u, err := s.users.FindByID(ctx, id)
			if err != nil {
				return nil, err
			}
			if u == nil {
				return nil, domain.ErrUserNotFound
			}
			sa := u.Sanitize()
			return &sa, nil
		})
		if err != nil {
			return domain.SanitizedUser{}, err
		}
		if v == nil {
			return domain.SanitizedUser{}, domain.ErrUserNotFound
		}
		return *v, nil
	}

	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return domain.SanitizedUser{}, err
	}
	if u == nil {
		return domain.SanitizedUser{}, domain.ErrUserNotFound
	}
	return u.Sanitize(), nil
}

func (s *Service) List(ctx context.Context, page, limit int, search string) ([]domain.SanitizedUser, ListMeta, error) {
	if page <= 0 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	users, total, err := s.users.List(ctx, page, limit, search)
	if err != nil {
		return nil, ListMeta{}, err
	}

	items := make([]domain.SanitizedUser, 0, len(users))
	for i := range users {
		items = append(items, users[i].Sanitize())
	}
	meta := ListMeta{
		Total:    total,
		Page:     page,
		LastPage: int((total + int64(limit) - 1) / int64(limit)),
	}
	return items, meta, nil
}

// Update 只允许本人；更新后失效缓存
func (s *Service) Update(ctx context.Context, actorID, id string, in UpdateInput) (domain.SanitizedUser, error) {
	if !domain.CanUpdate(actorID, id) {
		return domain.SanitizedUser{}, domain.ErrForbidden
	}

	fields := map[string]any{}
	if in.Fullname != nil {
		fields["fullname"] = *in.Fullname
	}
	if in.PhoneNumber != nil {
		fields["phone_number"] = *in.PhoneNumber
	}
	if in.Position != nil {
		fields["position"] = *in.Position
	}
	if in.PhotoURL != nil {
		fields["photo_url"] = *in.PhotoURL
	}

	u, err := s.users.Update(ctx, id, fields)
	if err != nil {
		return domain.SanitizedUser{}, err
	}
	s.invalidate(ctx, id)
	s.log.Info("user updated", zap.String("user_id", id))
	return u.Sanitize(), nil
}

// Delete 本人或 elevated 角色；目标必须仍是活跃账号
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	actor, err := s.users.FindByIDAny(ctx, actorID)
	if err != nil {
		return err
	}
	if actor == nil {
		return domain.ErrForbidden
	}
	if !domain.CanDelete(actorID, actor.Role(), id) {
		return domain.ErrForbidden
	}

	if err := s.users.SoftDelete(ctx, id); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	s.log.Info("user soft-deleted", zap.String("user_id", id), zap.String("actor_id", actorID))
	return nil
}

func (s *Service) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Del(ctx, userKey(id))
	}
}

func userKey(id string) string { return "user:" + id }
