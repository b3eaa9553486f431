package pkg

import (
	"crypto/tls"
	"fmt"

	"gopkg.in/gomail.v2"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string // 发件人邮箱
	Password string // 授权码/密码
	From     string // 显示的发件人，可与 Username 相同
}

func SendEmail(cfg SMTPConfig, to, subject, htmlBody string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password)
	d.TLSConfig = &tls.Config{InsecureSkipVerify: false}
	return d.DialAndSend(m)
}

// RequestNoticeHTML 收到好友请求的提醒邮件
func RequestNoticeHTML(fromUsername string) string {
	return fmt.Sprintf(`<p>您好，</p><p>用户 <b>%s</b> 向您发送了好友请求，登录后即可处理。</p>`, fromUsername)
}

// AcceptNoticeHTML 请求被接受的提醒邮件
func AcceptNoticeHTML(fromUsername string) string {
	return fmt.Sprintf(`<p>您好，</p><p>用户 <b>%s</b> 接受了您的好友请求，你们现在是好友了。</p>`, fromUsername)
}
