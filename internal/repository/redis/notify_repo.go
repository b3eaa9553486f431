package redis

import (
	"context"
	"fmt"
	"time"
)

const (
	NotifyCooldown  = 10 * time.Minute
	NotifyKeyPrefix = "notify:follower" // 提醒邮件冷却
)

type NotifyRepository struct{}

// TryAcquire SETNX 占冷却位：返回 true 表示本次可以发提醒邮件，
// 冷却期内的重复事件直接静默
func (n *NotifyRepository) TryAcquire(ctx context.Context, event string, toUserID uint64) (bool, error) {
	key := fmt.Sprintf("%s:%s:%d", NotifyKeyPrefix, event, toUserID)
	return Client.SetNX(ctx, key, 1, NotifyCooldown).Result()
}
