package service

import (
	"context"
	"log"

	"Lee_Social/internal/pkg"
	"Lee_Social/internal/repository/redis"
)

// NotifyService 好友请求相关的提醒邮件。尽力而为：失败只记日志，
// 不影响主流程
type NotifyService struct {
	emailCfg pkg.SMTPConfig
	users    UserDirectory
	rds      *redis.NotifyRepository
}

func NewNotifyService(cfg pkg.SMTPConfig, users UserDirectory) *NotifyService {
	return &NotifyService{emailCfg: cfg, users: users, rds: &redis.NotifyRepository{}}
}

// NotifyRequest 提醒 target：requester 发来了好友请求
func (s *NotifyService) NotifyRequest(ctx context.Context, requesterID, targetID uint64) {
	s.send(ctx, "request", requesterID, targetID, "新的好友请求", pkg.RequestNoticeHTML)
}

// NotifyAccept 提醒 requester：target 接受了请求
func (s *NotifyService) NotifyAccept(ctx context.Context, targetID, requesterID uint64) {
	s.send(ctx, "accept", targetID, requesterID, "好友请求已接受", pkg.AcceptNoticeHTML)
}

func (s *NotifyService) send(ctx context.Context, event string, fromID, toID uint64, subject string, body func(string) string) {
	// 冷却位拿不到就静默，避免轰炸
	ok, err := s.rds.TryAcquire(ctx, event, toID)
	if err != nil || !ok {
		return
	}

	from, err := s.users.FindByID(fromID)
	if err != nil {
		return
	}
	to, err := s.users.FindByID(toID)
	if err != nil {
		return
	}

	if err = pkg.SendEmail(s.emailCfg, to.Email, subject, body(from.Username)); err != nil {
		log.Printf("notify email err: %v", err)
	}
}
