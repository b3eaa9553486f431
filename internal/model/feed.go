package model

import "time"

// Feed 扇出记录：某条 Post 投递到某个用户的时间线。
// 每个 (user, post) 对只有一行；读取侧按 created_at 倒序分页。
type Feed struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	UserID    uint64    `gorm:"not null;index:idx_owner_time;uniqueIndex:uk_owner_post" json:"user_id"`
	PostID    uint64    `gorm:"not null;uniqueIndex:uk_owner_post" json:"post_id"`
	Post      Post      `gorm:"foreignKey:PostID" json:"post"`
	CreatedAt time.Time `gorm:"index:idx_owner_time" json:"created_at"`
}

// TableName sets table name for Feed
func (Feed) TableName() string {
	return "feeds"
}
