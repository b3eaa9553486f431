package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type FollowerRepository struct {
	DB *gorm.DB
}

// Send 创建一条 pending 关系记录。对同一对用户（不论方向、不论状态）已有记录时
// 返回 model.ErrFollowerAlreadyExists。探测和写入在同一事务内，select for update
// 避免两个并发 Send 同时通过存在性检查。
func (r *FollowerRepository) Send(ctx context.Context, requesterID, targetID uint64) (*model.Follower, error) {
	var created model.Follower
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follower
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("(follower_user_id=? AND followed_user_id=?) OR (follower_user_id=? AND followed_user_id=?)",
				requesterID, targetID, targetID, requesterID).
			First(&rel).Error
		if err == nil {
			return model.ErrFollowerAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		created = model.Follower{
			FollowerUserID: requesterID,
			FollowedUserID: targetID,
			Status:         model.StatusPending,
		}
		if err = tx.Create(&created).Error; err != nil {
			return err
		}
		// 同事务写 outbox，事件与边要么都落库要么都不落
		return r.insertOutbox(tx, "request", requesterID, targetID)
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Accept 把 requesterID 发给 actorID 的 pending 记录置为 accepted。
// 没发过、已接受、actor 不是接收方，三种情况都落到同一个
// model.ErrFollowerNotFound：查找谓词只匹配 pending 且方向正确的行。
func (r *FollowerRepository) Accept(ctx context.Context, actorID, requesterID uint64) (*model.Follower, error) {
	var accepted model.Follower
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rel model.Follower
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("follower_user_id=? AND followed_user_id=? AND status=?",
				requesterID, actorID, model.StatusPending).
			First(&rel).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return model.ErrFollowerNotFound
			}
			return err
		}
		// 谓词带 status 条件，重复接受不可能命中
		if err = tx.Model(&model.Follower{}).
			Where("id=? AND status=?", rel.ID, model.StatusPending).
			Update("status", model.StatusAccepted).Error; err != nil {
			return err
		}
		rel.Status = model.StatusAccepted
		accepted = rel
		return r.insertOutbox(tx, "accept", requesterID, actorID)
	})
	if err != nil {
		return nil, err
	}
	return &accepted, nil
}

// FindByPair 查无序对上的那条记录，不存在时返回 (nil, nil)
func (r *FollowerRepository) FindByPair(ctx context.Context, aID, bID uint64) (*model.Follower, error) {
	var rel model.Follower
	err := r.DB.WithContext(ctx).
		Where("(follower_user_id=? AND followed_user_id=?) OR (follower_user_id=? AND followed_user_id=?)",
			aID, bID, bID, aID).
		First(&rel).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rel, nil
}

// 插入 outbox 事件
func (r *FollowerRepository) insertOutbox(tx *gorm.DB, event string, followerUser, followedUser uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time":    time.Now().UTC().Format(time.RFC3339Nano),
		"follower_user": followerUser,
		"followed_user": followedUser,
	})
	ob := &model.FollowerOutbox{
		EventType:    event,
		FollowerUser: followerUser,
		FollowedUser: followedUser,
		Payload:      string(payload),
		Status:       0,
	}
	return tx.Create(ob).Error
}
