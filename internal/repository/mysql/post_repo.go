package mysql

import (
	"errors"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type PostRepository struct {
	DB *gorm.DB
}

func (r *PostRepository) FindByID(id uint64) (*model.Post, error) {
	var post model.Post
	err := r.DB.Preload("Author").First(&post, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// CreateWithFanout 建帖并扇出：同一事务里写 Post，再为作者和每个接收者各写一条
// Feed 记录。谁该收到由调用方决定（已接受好友），这里只保证原子性。
func (r *PostRepository) CreateWithFanout(post *model.Post, recipientIDs []uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(post).Error; err != nil {
			return err
		}
		feeds := make([]model.Feed, 0, len(recipientIDs)+1)
		feeds = append(feeds, model.Feed{
			UserID:    post.AuthorID,
			PostID:    post.ID,
			CreatedAt: post.CreatedAt,
		})
		for _, id := range recipientIDs {
			if id == post.AuthorID {
				continue
			}
			feeds = append(feeds, model.Feed{
				UserID:    id,
				PostID:    post.ID,
				CreatedAt: post.CreatedAt,
			})
		}
		return tx.Create(&feeds).Error
	})
}
