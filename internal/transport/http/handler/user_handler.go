package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	userfeature "go-user-service/internal/feature/user"
	"go-user-service/internal/transport/http/middleware"
	resp "go-user-service/internal/transport/http/response"
)

type UserHandler struct {
	svc *userfeature.Service
	log *zap.Logger
}

func NewUserHandler(svc *userfeature.Service, log *zap.Logger) *UserHandler {
	return &UserHandler{svc: svc, log: log}
}

type listReq struct {
	Page   int    `form:"page,default=1" binding:"gte=1"`
	Limit  int    `form:"limit,default=10" binding:"gte=1,lte=100"`
	Search string `form:"search" binding:"omitempty,max=100"`
}

func (h *UserHandler) List(c *gin.Context) {
	var req listReq
	if err := c.ShouldBindQuery(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	items, meta, err := h.svc.List(c.Request.Context(), req.Page, req.Limit, req.Search)
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, gin.H{"data": items, "meta": meta})
}

func (h *UserHandler) Get(c *gin.Context) {
	u, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, u)
}

type updateReq struct {
	Fullname    *string `json:"fullname" binding:"omitempty,max=100"`
	PhoneNumber *string `json:"phone_number" binding:"omitempty,max=32"`
	Position    *string `json:"position" binding:"omitempty,max=64"`
	PhotoURL    *string `json:"photo_url" binding:"omitempty,url,max=255"`
}

func (h *UserHandler) Update(c *gin.Context) {
	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.Fail(c, http.StatusBadRequest, err.Error())
		return
	}
	actorID := c.GetString(middleware.KeyUserID)
	u, err := h.svc.Update(c.Request.Context(), actorID, c.Param("id"), userfeature.UpdateInput{
		Fullname:    req.Fullname,
		PhoneNumber: req.PhoneNumber,
		Position:    req.Position,
		PhotoURL:    req.PhotoURL,
	})
	if err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, u)
}

func (h *UserHandler) Delete(c *gin.Context) {
	actorID := c.GetString(middleware.KeyUserID)
	id := c.Param("id")
	if err := h.svc.Delete(c.Request.Context(), actorID, id); err != nil {
		writeError(c, h.log, err)
		return
	}
	resp.JSON(c, gin.H{"id": id, "message": "user deleted"})
}
