package model

import "time"

const (
	// StatusPending 请求已发出，等待对方接受
	StatusPending int8 = 1
	// StatusAccepted 双方已互为好友
	StatusAccepted int8 = 2
)

// Follower 有向关系记录：FollowerUserID 是发起方，FollowedUserID 是接收方。
// 任意一对用户（不论方向）最多只存一行；接受只翻转解释，不会写反向行。
type Follower struct {
	ID             uint64    `gorm:"primaryKey" json:"id"`
	FollowerUserID uint64    `gorm:"not null;index:idx_follower_user;uniqueIndex:uk_pair" json:"follower_user_id"`
	FollowedUserID uint64    `gorm:"not null;index:idx_followed_user;uniqueIndex:uk_pair" json:"followed_user_id"`
	Status         int8      `gorm:"not null;default:1;comment:'1=pending,2=accepted'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// TableName sets table name for Follower
func (Follower) TableName() string {
	return "followers"
}

// FollowerOutbox 关系事件外发表
type FollowerOutbox struct {
	ID           uint64 `gorm:"primaryKey"`
	EventType    string `gorm:"size:16;not null"` // request / accept
	FollowerUser uint64 `gorm:"not null"`
	FollowedUser uint64 `gorm:"not null"`
	Payload      string `gorm:"type:json;not null"`
	Status       int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry        int    `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (FollowerOutbox) TableName() string { return "follower_outbox" }
