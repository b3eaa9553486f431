package mysql

import (
	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type FeedRepository struct {
	DB *gorm.DB
}

// PaginateByOwner 按时间倒序取某个用户的时间线，同一时间点用 id 倒序打破并列。
// total 是该用户的全量条数，越界页返回空切片
func (r *FeedRepository) PaginateByOwner(ownerID uint64, offset, limit int) ([]model.Feed, int64, error) {
	var total int64
	if err := r.DB.Model(&model.Feed{}).
		Where("user_id = ?", ownerID).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var list []model.Feed
	err := r.DB.
		Where("user_id = ?", ownerID).
		Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Preload("Post.Author").
		Find(&list).Error
	if err != nil {
		return nil, 0, err
	}
	return list, total, nil
}
