package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type FollowerHandler struct {
	svc    *service.FollowerService
	notify *service.NotifyService
}

func NewFollowerHandler(svc *service.FollowerService, notify *service.NotifyService) *FollowerHandler {
	return &FollowerHandler{svc: svc, notify: notify}
}

type followerReq struct {
	UserID uint64 `json:"user_id" binding:"required"`
}

// Send 发送好友请求接口
func (h *FollowerHandler) Send(c *gin.Context) {
	var req followerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	if err := h.svc.Send(c.Request.Context(), uid, req.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		case errors.Is(err, model.ErrFollowerAlreadyExists):
			c.JSON(http.StatusConflict, gin.H{"msg": err.Error()})
		case errors.Is(err, model.ErrSelfFollower):
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "send failed"})
		}
		return
	}
	// 提醒邮件走后台，不阻塞响应
	go h.notify.NotifyRequest(context.Background(), uid, req.UserID)
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Accept 接受好友请求接口，user_id 是发起方
func (h *FollowerHandler) Accept(c *gin.Context) {
	var req followerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)
	if err := h.svc.Accept(c.Request.Context(), uid, req.UserID); err != nil {
		switch {
		case errors.Is(err, model.ErrUserNotFound), errors.Is(err, model.ErrFollowerNotFound):
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"msg": "accept failed"})
		}
		return
	}
	go h.notify.NotifyAccept(context.Background(), uid, req.UserID)
	c.JSON(http.StatusOK, gin.H{"msg": "ok"})
}

// Relation 获取与某个用户的关系视图
func (h *FollowerHandler) Relation(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Query("subject_id"), 10, 64)
	if err != nil || subjectID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid subject id"})
		return
	}
	uid := userIDFromCtx(c)
	info, err := h.svc.Relation(c.Request.Context(), uid, subjectID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "relation failed"})
		return
	}
	c.JSON(http.StatusOK, info)
}

// Profile 资料页：对方信息 + 对方的好友列表
func (h *FollowerHandler) Profile(c *gin.Context) {
	subjectID, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || subjectID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid user id"})
		return
	}
	uid := userIDFromCtx(c)
	view, err := h.svc.Profile(c.Request.Context(), uid, subjectID)
	if err != nil {
		if errors.Is(err, model.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "profile failed"})
		return
	}
	c.JSON(http.StatusOK, view)
}

// List 已接受好友的分页列表
func (h *FollowerHandler) List(c *gin.Context) {
	h.paginate(c, true)
}

// ListAll 全部用户（带关系标注）的分页列表
func (h *FollowerHandler) ListAll(c *gin.Context) {
	h.paginate(c, false)
}

func (h *FollowerHandler) paginate(c *gin.Context, acceptedOnly bool) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	uid := userIDFromCtx(c)
	result, err := h.svc.Paginate(c.Request.Context(), uid, acceptedOnly, page, limit)
	if err != nil {
		if errors.Is(err, pkg.ErrInvalidPage) || errors.Is(err, pkg.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "list failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}

// pageParams 解析页码参数，缺省 page=1 limit=10；只拦非数字，
// 负值留给核心报 invalid argument
func pageParams(c *gin.Context) (page, limit int, ok bool) {
	page, limit = 1, 10
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid page"})
			return 0, 0, false
		}
		page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid limit"})
			return 0, 0, false
		}
		limit = n
	}
	return page, limit, true
}

func userIDFromCtx(c *gin.Context) uint64 {
	if v, ok := c.Get("user_id"); ok {
		if id, ok2 := v.(uint64); ok2 {
			return id
		}
	}
	return 0
}
