package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	RelationTTL       = 10 * time.Minute
	RelationKeyPrefix = "relation:pair" // 无序对 -> 关系状态
	// RelationNone 标记“确认无记录”，和缓存未命中区分开
	RelationNone int8 = 0
)

type RelationCacheRepository struct {
	ttl time.Duration
}

func NewRelationCacheRepository() *RelationCacheRepository {
	return &RelationCacheRepository{ttl: RelationTTL}
}

// pairKey 把无序对归一化成 小id:大id，两个方向共用一个键
func (r *RelationCacheRepository) pairKey(aID, bID uint64) string {
	if aID > bID {
		aID, bID = bID, aID
	}
	return fmt.Sprintf("%s:%d:%d", RelationKeyPrefix, aID, bID)
}

// GetStatus 读路径：值编码为 "status:发起方id"，pending 记录缺了方向没法解释。
// 返回 (状态, 发起方, 是否命中)，未命中由调用方回源 MySQL
func (r *RelationCacheRepository) GetStatus(ctx context.Context, aID, bID uint64) (int8, uint64, bool, error) {
	val, err := Client.Get(ctx, r.pairKey(aID, bID)).Result()
	if errors.Is(err, redis.Nil) {
		return 0, 0, false, nil
	}
	if err != nil {
		return 0, 0, false, err
	}
	var status int8
	var initiator uint64
	if _, err = fmt.Sscanf(val, "%d:%d", &status, &initiator); err != nil {
		// 脏值当未命中处理
		return 0, 0, false, nil
	}
	return status, initiator, true, nil
}

// SetStatus 回源后回填，RelationNone 也写入，避免不存在的对反复穿透
func (r *RelationCacheRepository) SetStatus(ctx context.Context, aID, bID uint64, status int8, initiator uint64) error {
	val := fmt.Sprintf("%d:%d", status, initiator)
	return Client.Set(ctx, r.pairKey(aID, bID), val, r.ttl).Err()
}

// Invalidate 写路径（send/accept）成功后删除键，读侧惰性重建
func (r *RelationCacheRepository) Invalidate(ctx context.Context, aID, bID uint64) error {
	err := Client.Del(ctx, r.pairKey(aID, bID)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	return nil
}
