package mysql

import (
	"errors"

	"Lee_Social/internal/model"

	"gorm.io/gorm"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ? OR email = ?", username, username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

// FindOneWithFollower 取 subject 的资料，并挂上与 viewer 相关的那条关系记录。
// subject 不存在时返回 model.ErrUserNotFound。
func (r *UserRepository) FindOneWithFollower(viewerID, subjectID uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, subjectID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, model.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if viewerID != subjectID {
		var rel model.Follower
		err = r.DB.Where("(follower_user_id=? AND followed_user_id=?) OR (follower_user_id=? AND followed_user_id=?)",
			viewerID, subjectID, subjectID, viewerID).
			First(&rel).Error
		if err == nil {
			user.Followers = []model.Follower{rel}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}
	return &user, nil
}

// FindAllWithFollower 返回除 viewer 外的全部用户并挂上各自相对 viewer 的关系记录；
// acceptedOnly 时只保留已接受的
func (r *UserRepository) FindAllWithFollower(viewerID uint64, acceptedOnly bool) (map[uint64]*model.User, error) {
	rels, err := r.pairRecords(viewerID)
	if err != nil {
		return nil, err
	}

	var users []model.User
	if acceptedOnly {
		ids := acceptedIDs(rels)
		if len(ids) == 0 {
			return map[uint64]*model.User{}, nil
		}
		if err = r.DB.Where("id IN ?", ids).Order("id").Find(&users).Error; err != nil {
			return nil, err
		}
	} else {
		if err = r.DB.Where("id <> ?", viewerID).Order("id").Find(&users).Error; err != nil {
			return nil, err
		}
	}

	result := make(map[uint64]*model.User, len(users))
	for i := range users {
		attachFollower(&users[i], rels)
		result[users[i].ID] = &users[i]
	}
	return result, nil
}

// PaginateAllWithFollower 同上，但按 id 稳定排序做偏移分页。
// total 始终是过滤后的全量，越界页返回空切片
func (r *UserRepository) PaginateAllWithFollower(viewerID uint64, acceptedOnly bool, offset, limit int) ([]model.User, int64, error) {
	rels, err := r.pairRecords(viewerID)
	if err != nil {
		return nil, 0, err
	}

	var users []model.User
	var total int64
	if acceptedOnly {
		ids := acceptedIDs(rels)
		total = int64(len(ids))
		if len(ids) == 0 {
			return nil, 0, nil
		}
		if err = r.DB.Where("id IN ?", ids).Order("id").
			Offset(offset).Limit(limit).Find(&users).Error; err != nil {
			return nil, 0, err
		}
	} else {
		if err = r.DB.Model(&model.User{}).Where("id <> ?", viewerID).
			Count(&total).Error; err != nil {
			return nil, 0, err
		}
		if err = r.DB.Where("id <> ?", viewerID).Order("id").
			Offset(offset).Limit(limit).Find(&users).Error; err != nil {
			return nil, 0, err
		}
	}

	for i := range users {
		attachFollower(&users[i], rels)
	}
	return users, total, nil
}

// pairRecords 一次取出 viewer 参与的全部关系记录，按对端用户 id 建索引
func (r *UserRepository) pairRecords(viewerID uint64) (map[uint64]model.Follower, error) {
	var rows []model.Follower
	err := r.DB.Where("follower_user_id = ? OR followed_user_id = ?", viewerID, viewerID).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	rels := make(map[uint64]model.Follower, len(rows))
	for _, rel := range rows {
		other := rel.FollowerUserID
		if other == viewerID {
			other = rel.FollowedUserID
		}
		rels[other] = rel
	}
	return rels, nil
}

func acceptedIDs(rels map[uint64]model.Follower) []uint64 {
	ids := make([]uint64, 0, len(rels))
	for id, rel := range rels {
		if rel.Status == model.StatusAccepted {
			ids = append(ids, id)
		}
	}
	return ids
}

func attachFollower(user *model.User, rels map[uint64]model.Follower) {
	if rel, ok := rels[user.ID]; ok {
		user.Followers = []model.Follower{rel}
	}
}
