package model

import "errors"

// 领域错误：调用方可见、可恢复，用 errors.Is 判别。
// 存储层的意外失败不在此列，按原样向上传播。
var (
	ErrFollowerAlreadyExists = errors.New("follower already exists")
	ErrFollowerNotFound      = errors.New("follower does not exist")
	ErrUserNotFound          = errors.New("user not found")
	ErrPostNotFound          = errors.New("post not found")
	ErrSelfFollower          = errors.New("cannot send request to self")
)
