package service

import (
	"crypto/tls"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/mail"
	"net/smtp"
	"net/textproto"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/gemdesk/internal/config"
	"github.com/gemdesk/internal/constants"
	"github.com/gemdesk/internal/i18n"
	"github.com/gemdesk/internal/models"
)

const smtpDialTimeout = 10 * time.Second

// EmailService 邮件发送服务，配置可在运行时替换
type EmailService struct {
	mu  sync.RWMutex
	cfg config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	s := &EmailService{}
	s.SetConfig(cfg)
	return s
}

// SetConfig 替换运行时邮件配置
func (s *EmailService) SetConfig(cfg *config.EmailConfig) {
	if cfg == nil {
		return
	}
	s.mu.Lock()
	s.cfg = *cfg
	s.mu.Unlock()
}

func (s *EmailService) snapshot() config.EmailConfig {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cfg
}

// Enabled 邮件服务是否可用
func (s *EmailService) Enabled() bool {
	return s != nil && s.snapshot().Enabled
}

// OrderStatusEmailInput 订单状态邮件输入
type OrderStatusEmailInput struct {
	OrderNo      string
	CustomerName string
	Status       string
	Amount       models.Money
}

// SendOrderStatusEmail 发送订单状态通知
func (s *EmailService) SendOrderStatusEmail(toEmail string, input OrderStatusEmailInput, locale string) error {
	subject, body := buildOrderStatusContent(input, locale)
	return s.send(toEmail, subject, body)
}

// VendorReviewEmailInput 供应商审核邮件输入
type VendorReviewEmailInput struct {
	Name         string
	BusinessName string
	VendorStatus string
	Reason       string
}

// SendVendorReviewEmail 发送供应商审核结果通知
func (s *EmailService) SendVendorReviewEmail(toEmail string, input VendorReviewEmailInput, locale string) error {
	subject, body := buildVendorReviewContent(input, locale)
	return s.send(toEmail, subject, body)
}

// SendCustomEmail 发送测试邮件，主题和正文为空时使用默认文案
func (s *EmailService) SendCustomEmail(toEmail, subject, body string) error {
	if subject = strings.TrimSpace(subject); subject == "" {
		subject = i18n.T(i18n.DefaultLocale, "email.test.subject")
	}
	if body = strings.TrimSpace(body); body == "" {
		body = i18n.T(i18n.DefaultLocale, "email.test.body")
	}
	return s.send(toEmail, subject, body)
}

func (s *EmailService) send(toEmail, subject, body string) error {
	cfg := s.snapshot()
	if !cfg.Enabled {
		return ErrEmailServiceDisabled
	}
	if cfg.Host == "" || cfg.Port == 0 || cfg.From == "" {
		return ErrEmailServiceNotConfigured
	}
	to, err := mail.ParseAddress(toEmail)
	if err != nil {
		return ErrInvalidEmail
	}
	msg := composeMessage(cfg, to.Address, subject, body)
	return deliver(cfg, to.Address, msg)
}

func buildOrderStatusContent(input OrderStatusEmailInput, locale string) (string, string) {
	normalized := normalizeLocale(locale)
	status := strings.ToLower(strings.TrimSpace(input.Status))
	statusKey := "order.status." + status
	statusLabel := i18n.T(normalized, statusKey)
	if statusLabel == statusKey {
		statusLabel = input.Status
	}
	name := strings.TrimSpace(input.CustomerName)
	if name == "" {
		name = i18n.T(normalized, "email.customer_fallback")
	}
	subject := i18n.Sprintf(normalized, "email.order_status.subject", input.OrderNo, statusLabel)
	amount := input.Amount.String()
	switch status {
	case constants.OrderStatusShipped:
		return subject, i18n.Sprintf(normalized, "email.order_status.body_shipped", name, input.OrderNo, amount)
	case constants.OrderStatusDelivered:
		return subject, i18n.Sprintf(normalized, "email.order_status.body_delivered", name, input.OrderNo, amount)
	case constants.OrderStatusCancelled:
		return subject, i18n.Sprintf(normalized, "email.order_status.body_cancelled", name, input.OrderNo, amount)
	default:
		return subject, i18n.Sprintf(normalized, "email.order_status.body", name, input.OrderNo, statusLabel, amount)
	}
}

func buildVendorReviewContent(input VendorReviewEmailInput, locale string) (string, string) {
	normalized := normalizeLocale(locale)
	name := strings.TrimSpace(input.Name)
	if name == "" {
		name = strings.TrimSpace(input.BusinessName)
	}
	if input.VendorStatus == constants.VendorStatusApproved {
		return i18n.T(normalized, "email.vendor_review.subject_approved"),
			i18n.Sprintf(normalized, "email.vendor_review.body_approved", name, input.BusinessName)
	}
	reason := strings.TrimSpace(input.Reason)
	if reason == "" {
		reason = "-"
	}
	return i18n.T(normalized, "email.vendor_review.subject_rejected"),
		i18n.Sprintf(normalized, "email.vendor_review.body_rejected", name, input.BusinessName, reason)
}

func normalizeLocale(locale string) string {
	if normalized := i18n.NormalizeLocale(locale); normalized != "" {
		return normalized
	}
	return i18n.DefaultLocale
}

func composeMessage(cfg config.EmailConfig, to, subject, body string) []byte {
	from := cfg.From
	if name := strings.TrimSpace(cfg.FromName); name != "" {
		from = (&mail.Address{Name: name, Address: cfg.From}).String()
	}
	headers := []string{
		"From: " + from,
		"To: " + to,
		"Subject: " + mime.QEncoding.Encode("UTF-8", subject),
		"Date: " + time.Now().Format(time.RFC1123Z),
		"MIME-Version: 1.0",
		"Content-Type: text/plain; charset=UTF-8",
		"Content-Transfer-Encoding: 8bit",
	}
	return []byte(strings.Join(headers, "\r\n") + "\r\n\r\n" + body)
}

// dialSMTP use_ssl 走隐式 TLS，use_tls 在明文连接上升级 STARTTLS
func dialSMTP(cfg config.EmailConfig) (*smtp.Client, error) {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dialer := &net.Dialer{Timeout: smtpDialTimeout}
	tlsConfig := &tls.Config{ServerName: cfg.Host, MinVersion: tls.VersionTLS12}

	var conn net.Conn
	var err error
	if cfg.UseSSL {
		conn, err = tls.DialWithDialer(dialer, "tcp", addr, tlsConfig)
	} else {
		conn, err = dialer.Dial("tcp", addr)
	}
	if err != nil {
		return nil, fmt.Errorf("dial smtp %s: %w", addr, err)
	}
	client, err := smtp.NewClient(conn, cfg.Host)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if cfg.UseTLS && !cfg.UseSSL {
		if err := client.StartTLS(tlsConfig); err != nil {
			_ = client.Close()
			return nil, fmt.Errorf("starttls: %w", err)
		}
	}
	return client, nil
}

func deliver(cfg config.EmailConfig, to string, msg []byte) error {
	client, err := dialSMTP(cfg)
	if err != nil {
		return err
	}
	defer client.Close()

	if cfg.Username != "" || cfg.Password != "" {
		if ok, _ := client.Extension("AUTH"); ok {
			if err := client.Auth(smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)); err != nil {
				return fmt.Errorf("smtp auth: %w", err)
			}
		}
	}
	if err := client.Mail(cfg.From); err != nil {
		return err
	}
	if err := client.Rcpt(to); err != nil {
		return classifyRcptError(err)
	}
	w, err := client.Data()
	if err != nil {
		return err
	}
	if _, err := w.Write(msg); err != nil {
		return err
	}
	if err := w.Close(); err != nil {
		return err
	}
	return client.Quit()
}

// classifyRcptError 将收件人不存在类的 5xx 应答映射为 ErrEmailRecipientRejected
func classifyRcptError(err error) error {
	var protoErr *textproto.Error
	if errors.As(err, &protoErr) {
		switch protoErr.Code {
		case 550, 551, 553:
			return fmt.Errorf("%w: %s", ErrEmailRecipientRejected, protoErr.Msg)
		}
		return err
	}
	message := strings.ToLower(err.Error())
	for _, hint := range []string{"no such user", "user unknown", "recipient address rejected", "mailbox unavailable"} {
		if strings.Contains(message, hint) {
			return fmt.Errorf("%w: %s", ErrEmailRecipientRejected, err.Error())
		}
	}
	return err
}
