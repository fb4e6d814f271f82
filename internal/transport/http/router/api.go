package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	coreauth "go-user-service/internal/core/auth"
	"go-user-service/internal/core/cache"
	authfeature "go-user-service/internal/feature/auth"
	userfeature "go-user-service/internal/feature/user"
	"go-user-service/internal/repo"
	"go-user-service/internal/transport/http/handler"
	mdw "go-user-service/internal/transport/http/middleware"
)

type Deps struct {
	Log          *zap.Logger
	DB           *gorm.DB
	JWTer        *coreauth.JWTer
	Cache        *cache.Cache // 可空
	UserCacheTTL time.Duration
}

func NewAPIEngine(d Deps) *gin.Engine {
	r := gin.New()

	r.Use(
		mdw.RequestID(),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(1<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(d.Log, true),
		mdw.Metrics(),
		mdw.AccessLog(d.Log),
		cors.Default(),
	)

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(d.DB)
	authSvc := authfeature.NewService(users, d.JWTer, d.Log)
	userSvc := userfeature.NewService(users, d.Cache, d.UserCacheTTL, d.Log)
	authH := handler.NewAuthHandler(authSvc, d.Log)
	userH := handler.NewUserHandler(userSvc, d.Log)

	api := r.Group("/api/v1")

	// 公共接口
	api.POST("/auth/register", authH.Register)
	api.POST("/auth/login", authH.Login)

	// 鉴权分组
	authed := api.Group("")
	authed.Use(mdw.AuthJWT(d.JWTer))
	authed.GET("/auth/check-token", authH.CheckToken)
	authed.GET("/users", userH.List)
	authed.GET("/users/:id", userH.Get)
	authed.PUT("/users/:id", userH.Update)
	authed.DELETE("/users/:id", userH.Delete)

	return r
}
