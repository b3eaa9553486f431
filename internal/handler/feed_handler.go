package handler

import (
	"errors"
	"net/http"

	"Lee_Social/internal/pkg"
	"Lee_Social/internal/service"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Feed 当前用户的时间线接口
func (h *FeedHandler) Feed(c *gin.Context) {
	page, limit, ok := pageParams(c)
	if !ok {
		return
	}
	uid := userIDFromCtx(c)
	result, err := h.svc.Paginate(uid, page, limit)
	if err != nil {
		if errors.Is(err, pkg.ErrInvalidPage) || errors.Is(err, pkg.ErrInvalidLimit) {
			c.JSON(http.StatusBadRequest, gin.H{"msg": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"msg": "feed failed"})
		return
	}
	c.JSON(http.StatusOK, result)
}
