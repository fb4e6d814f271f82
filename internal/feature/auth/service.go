package auth

import (
	"context"
	"strings"

	"go.uber.org/zap"

	coreauth "go-user-service/internal/core/auth"
	"go-user-service/internal/domain"
	"go-user-service/pkg/utils"
)

type RegisterInput struct {
	Email       string
	Password    string
	Fullname    string
	PhoneNumber string
	Position    string
	PhotoURL    string
}

type LoginResult struct {
	AccessToken string
	User        domain.SanitizedUser
}

type Service struct {
	users domain.UserRepository
	jwter *coreauth.JWTer
	log   *zap.Logger
}

func NewService(users domain.UserRepository, jwter *coreauth.JWTer, log *zap.Logger) *Service {
	return &Service{users: users, jwter: jwter, log: log}
}

// Register 查重不排除软删行：已注销的邮箱同样不可复用
func (s *Service) Register(ctx context.Context, in RegisterInput) (domain.SanitizedUser, error) {
	email := strings.TrimSpace(in.Email)

	existing, err := s.users.FindByEmailAny(ctx, email)
	if err != nil {
		return domain.SanitizedUser{}, err
	}
	if existing != nil {
		return domain.SanitizedUser{}, domain.ErrDuplicateEmail
	}

	hash, err := utils.HashPassword(in.Password)
	if err != nil {
		return domain.SanitizedUser{}, err
	}

	u := &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: hash,
		Fullname:     in.Fullname,
		PhoneNumber:  in.PhoneNumber,
		Position:     in.Position,
		PhotoURL:     in.PhotoURL,
	}
	if err := s.users.Create(ctx, u); err != nil {
		// 并发注册被唯一索引拦下时同样回 DuplicateEmail
		return domain.SanitizedUser{}, err
	}
	s.log.Info("user registered", zap.String("user_id", u.ID))
	return u.Sanitize(), nil
}

// Login 仅匹配活跃账号；查无此人与密码不符返回同一错误，不泄露账号是否存在
func (s *Service) Login(ctx context.Context, email, password string) (LoginResult, error) {
	u, err := s.users.FindByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return LoginResult{}, err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return LoginResult{}, domain.ErrInvalidCredentials
	}

	sanitized := u.Sanitize()
	token, err := s.jwter.Issue(sanitized)
	if err != nil {
		return LoginResult{}, err
	}
	s.log.Info("user logged in", zap.String("user_id", u.ID))
	return LoginResult{AccessToken: token, User: sanitized}, nil
}

// CheckToken 签名/有效期已由中间件把关，这里只复核主体是否仍然存在
func (s *Service) CheckToken(ctx context.Context, userID string) (domain.SanitizedUser, error) {
	u, err := s.users.FindByIDAny(ctx, userID)
	if err != nil {
		return domain.SanitizedUser{}, err
	}
	if u == nil {
		return domain.SanitizedUser{}, domain.ErrUserNotFound
	}
	return u.Sanitize(), nil
}
