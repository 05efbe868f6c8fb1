package service

import (
	"crypto/tls"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gopkg.in/mail.v2"

	"github.com/gongye19/OnlineStore/config"
	"github.com/gongye19/OnlineStore/internal/common"
	"github.com/gongye19/OnlineStore/internal/util"
)

// EmailService 负责通过 SMTP 发送邮件
type EmailService struct {
	smtpHost string
	smtpPort int
	username string
	password string
}

func NewEmailService() *EmailService {
	return &EmailService{
		smtpHost: config.AppConfig.SMTPHost,
		smtpPort: config.AppConfig.SMTPPort,
		username: config.AppConfig.SMTPUsername,
		password: config.AppConfig.SMTPPassword,
	}
}

// SendOTPEmail 异步发送邮箱验证码
func (s *EmailService) SendOTPEmail(email, nickname, code string) {
	subject := "您的验证码"
	body := fmt.Sprintf("亲爱的 %s，<br><br>您的验证码是：<b>%s</b><br><br>验证码将在10分钟后过期，请勿泄露给他人。", nickname, code)
	s.sendEmailAsync(email, subject, body)
}

func (s *EmailService) sendEmailAsync(to, subject, body string) {
	go func() {
		// SMTP 偶发网络抖动时重试，邮件发送不在请求路径上
		err := common.WithRetry(func() error {
			return s.sendEmail(to, subject, body)
		}, 3)
		if err != nil {
			util.Logger.Error("异步发送邮件失败", zap.Error(err), zap.String("to", to))
		}
	}()
}

func (s *EmailService) sendEmail(to, subject, body string) error {
	util.Logger.Info("开始发送邮件",
		zap.String("to", to),
		zap.String("subject", subject))

	m := mail.NewMessage()
	m.SetHeader("From", s.username)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := mail.NewDialer(s.smtpHost, s.smtpPort, s.username, s.password)
	d.Timeout = 20 * time.Second
	d.SSL = true
	d.TLSConfig = &tls.Config{ServerName: s.smtpHost}

	if err := d.DialAndSend(m); err != nil {
		util.Logger.Error("发送邮件失败", zap.Error(err))
		return err
	}

	util.Logger.Info("邮件发送成功", zap.String("to", to))
	return nil
}
