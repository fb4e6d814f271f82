package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	authfeature "go-user-service/internal/feature/auth"
	"go-user-service/internal/transport/http/middleware"
	resp "go-user-service/internal/transport/http/response"
)

type AuthHandler struct {
	svc *authfeature.Service
	log *zap.Logger
}

func NewAuthHandler(svc *authfeature.Service, log *zap.Logger) *AuthHandler {
	return &AuthHandler{svc: svc, log: log}
}

type registerReq struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=6"`
	Fullname    string `json:"fullname" binding:"required,max=100"`
	PhoneNumber string `json:"phone_number" binding:"omitempty,max=32"`
	Position    string `json:"position" binding:"omitempty,max=64"`
	PhotoURL    string `json:"photo_url" binding:"omitempty,url,max=255"`
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	u, err := h.svc.Register(c.Request.Context(), authfeature.RegisterInput{
		Email:       req.Email,
		Password:    req.Password,
		Fullname:    req.Fullname,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.Created(c, u)
}

type loginReq struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	out, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, gin.H{"access_token": out.AccessToken, "user": out.User})
}

// CheckToken 中间件已验签，这里复核主体仍存在
func (h *AuthHandler) CheckToken(c *gin.Context) {
	uid := c.GetString(middleware.KeyUserID)
	u, err := h.svc.CheckToken(c.Request.Context(), uid)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, gin.H{"valid": true, "user": u})
}
