package mysql

import (
	"context"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// List 按批量大小取待投递事件
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.FollowerOutbox, error) {
	var list []model.FollowerOutbox
	if err := r.DB.WithContext(ctx).
		Where("status=0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败，记一次重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowerOutbox{}).Where("id=?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

// SuccessUpdate 投递成功
func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.FollowerOutbox{}).Where("id=?", id).
		Update("status", 1).Error
}
