package service

import (
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
)

// FeedStore 时间线读取的存储协作方
type FeedStore interface {
	PaginateByOwner(ownerID uint64, offset, limit int) ([]model.Feed, int64, error)
}

// PostStore 帖子的存储协作方，CreateWithFanout 要求原子的“建帖 + 扇出”
type PostStore interface {
	CreateWithFanout(post *model.Post, recipientIDs []uint64) error
	FindByID(id uint64) (*model.Post, error)
}

type FeedService struct {
	feeds FeedStore
	posts PostStore
	users UserDirectory
}

func NewFeedService(feeds FeedStore, posts PostStore, users UserDirectory) *FeedService {
	return &FeedService{feeds: feeds, posts: posts, users: users}
}

// Paginate 某个用户的时间线，created_at 倒序、id 倒序打破并列。
// 越界页返回空列表，页码/容量非法时报错
func (s *FeedService) Paginate(ownerID uint64, page, limit int) (pkg.Pagination[model.Feed], error) {
	offset, err := pkg.Window(page, limit)
	if err != nil {
		return pkg.Pagination[model.Feed]{}, err
	}
	list, total, err := s.feeds.PaginateByOwner(ownerID, offset, limit)
	if err != nil {
		return pkg.Pagination[model.Feed]{}, err
	}
	return pkg.NewPagination(list, page, limit, total), nil
}

// CreatePost 建帖并扇出到已接受好友（含作者本人）的时间线
func (s *FeedService) CreatePost(authorID uint64, content string) (*model.Post, error) {
	if content == "" {
		return nil, errors.New("content required")
	}

	friends, err := s.users.FindAllWithFollower(authorID, true)
	if err != nil {
		return nil, err
	}
	recipients := make([]uint64, 0, len(friends))
	for id := range friends {
		recipients = append(recipients, id)
	}

	post := &model.Post{
		AuthorID: authorID,
		Content:  content,
	}
	if err := s.posts.CreateWithFanout(post, recipients); err != nil {
		return nil, err
	}
	return post, nil
}

// GetPost 单帖查询，带作者信息
func (s *FeedService) GetPost(id uint64) (*model.Post, error) {
	return s.posts.FindByID(id)
}

var (
	_ FeedStore = (*mysql.FeedRepository)(nil)
	_ PostStore = (*mysql.PostRepository)(nil)
)
