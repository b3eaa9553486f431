package service

import (
	"errors"

	"Lee_Social/internal/model"
	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/mysql"
	"Lee_Social/internal/repository/redis"

	"golang.org/x/crypto/bcrypt"
)

// UserStore 账号存储协作方
type UserStore interface {
	Create(user *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	UpdatePassword(user *model.User, newPassword string) error
}

type UserService struct {
	repo  UserStore
	rUser *redis.UserRepository
}

func NewUserService(repo UserStore) *UserService {
	return &UserService{
		repo:  repo,
		rUser: &redis.UserRepository{},
	}
}

// Register 注册：user.Password 传明文，落库前 bcrypt
func (s *UserService) Register(user *model.User) error {
	if user.Username == "" || user.Password == "" || user.Email == "" {
		return errors.New("username/password/email required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	user.Password = string(hash)

	return s.repo.Create(user)
}

func (s *UserService) Login(username, password string) (*pkg.TokenPair, error) {
	user, err := s.repo.FindByUsername(username)
	if err != nil {
		return nil, errors.New("user not found")
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid password")
	}
	// 将 token 写入 redis，单点登录
	token, err := pkg.GeneratePair(user.ID)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(user.ID, token.AccessToken); err != nil {
		return nil, err
	}
	return token, nil
}

func (s *UserService) Logout(usrID uint64) error {
	return s.rUser.DeleteUserToken(usrID)
}

// Refresh 换发 token 对，并同步 redis 里的会话 token，
// 否则新 access token 过不了登录态校验
func (s *UserService) Refresh(refreshToken string) (*pkg.TokenPair, error) {
	pair, err := pkg.RefreshPair(refreshToken)
	if err != nil {
		return nil, err
	}
	claims, err := pkg.ParseAccess(pair.AccessToken)
	if err != nil {
		return nil, err
	}
	if err = s.rUser.AddUserToken(claims.UserID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

// ChangePassword 登录态修改密码，成功后踢掉当前会话
func (s *UserService) ChangePassword(usrID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(usrID)
	if err != nil {
		return err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)) != nil {
		return errors.New("old password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	if err = s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}

	return s.Logout(usrID)
}

var _ UserStore = (*mysql.UserRepository)(nil)
