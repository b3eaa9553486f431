package model

import "time"

type User struct {
	ID        uint64     `gorm:"primaryKey" json:"id"`
	Username  string     `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Password  string     `gorm:"size:255;not null" json:"-"`
	Email     string     `gorm:"uniqueIndex;size:64;not null" json:"email"`
	FirstName string     `gorm:"size:64" json:"first_name"`
	LastName  string     `gorm:"size:64" json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Age       int        `json:"age"`
	Gender    string     `gorm:"size:16" json:"gender"`
	Interests string     `gorm:"size:255" json:"interests"`
	City      string     `gorm:"size:64" json:"city"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`

	// Followers 由查询层手动挂载：相对某个观察者，至多一条关系记录
	Followers []Follower `gorm:"-" json:"-"`
}

// Follower 取与观察者相关的那条关系记录（没有则返回 nil）
func (u *User) Follower() *Follower {
	if len(u.Followers) == 0 {
		return nil
	}
	return &u.Followers[0]
}

// UserInfo 资料字段 + 关系视图的组合响应体
type UserInfo struct {
	ID        uint64     `json:"id"`
	Username  string     `json:"username"`
	Email     string     `json:"email"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	Age       int        `json:"age"`
	Gender    string     `json:"gender"`
	Interests string     `json:"interests"`
	City      string     `json:"city"`

	RelationInfo
}

// Info 以 viewerID 的视角组装 UserInfo
func (u *User) Info(viewerID uint64) UserInfo {
	return UserInfo{
		ID:           u.ID,
		Username:     u.Username,
		Email:        u.Email,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    u.BirthDate,
		Age:          u.Age,
		Gender:       u.Gender,
		Interests:    u.Interests,
		City:         u.City,
		RelationInfo: Resolve(u.Follower(), viewerID, u.ID),
	}
}
