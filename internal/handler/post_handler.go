package handler

import (
	"errors"
	"net/http"
	"strconv"

	"Lee_Social/internal/model"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	svc *service.FeedService
}

type createPostReq struct {
	Content string `json:"content" binding:"required"`
}

func NewPostHandler(svc *service.FeedService) *PostHandler {
	return &PostHandler{svc: svc}
}

// CreatePost 发帖接口，扇出到已接受好友的时间线
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req createPostReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid params"})
		return
	}
	uid := userIDFromCtx(c)

	post, err := h.svc.CreatePost(uid, req.Content)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"id": post.ID})
}

// GetPost 单帖查询接口
func (h *PostHandler) GetPost(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"msg": "invalid post id"})
		return
	}

	post, err := h.svc.GetPost(id)
	if err != nil {
		if errors.Is(err, model.ErrPostNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "get post failed"})
		return
	}
	c.JSON(http.StatusOK, post)
}
