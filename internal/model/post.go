package model

import "time"

type Post struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	AuthorID  uint64    `gorm:"not null;index:idx_author_time" json:"author_id"`
	Author    User      `gorm:"foreignKey:AuthorID" json:"author"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	CreatedAt time.Time `gorm:"index:idx_author_time" json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
