package services

import (
	"context"
	"fmt"
	"html"
	"net/smtp"
	"strings"
	"sync"

	"github.com/dimitrije/showcase-api/internal/config"
	"github.com/dimitrije/showcase-api/internal/events"
	"github.com/dimitrije/showcase-api/internal/models"
	"go.uber.org/zap"
)

// headerBreaks folds line breaks so user text cannot start a new header.
var headerBreaks = strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ")

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

type EmailService struct {
	cfg      config.SMTPConfig
	sendMail sendFunc
}

func NewEmailService(cfg config.SMTPConfig) *EmailService {
	return &EmailService{cfg: cfg, sendMail: smtp.SendMail}
}

func (s *EmailService) IsConfigured() bool {
	return s.cfg.Host != "" && s.cfg.Username != "" && s.cfg.Password != "" && s.cfg.From != ""
}

func (s *EmailService) Send(to, subject, body string) error {
	if !s.IsConfigured() {
		return nil
	}

	addr := fmt.Sprintf("%s:%s", s.cfg.Host, s.cfg.Port)
	auth := smtp.PlainAuth("", s.cfg.Username, s.cfg.Password, s.cfg.Host)

	to = headerBreaks.Replace(to)
	subject = headerBreaks.Replace(subject)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/html; charset=\"UTF-8\"\r\n\r\n%s",
		s.cfg.From, to, subject, body)

	return s.sendMail(addr, auth, s.cfg.From, []string{to}, []byte(msg))
}

// SendInquiryNotice tells the site owner about a new contact form
// submission.
func (s *EmailService) SendInquiryNotice(to string, inquiry models.Record) error {
	name := inquiry.String("name")
	if name == "" {
		name = inquiry.String(models.FieldEmail)
	}
	subject := fmt.Sprintf("New inquiry from %s", name)
	body := fmt.Sprintf(`
		<html>
		<body>
			<h2>New Inquiry</h2>
			<p><strong>From:</strong> %s &lt;%s&gt;</p>
			<p><strong>Company:</strong> %s</p>
			<p><strong>Product:</strong> %s</p>
			<p>%s</p>
		</body>
		</html>
	`,
		html.EscapeString(name),
		html.EscapeString(inquiry.String(models.FieldEmail)),
		html.EscapeString(inquiry.String("company")),
		html.EscapeString(inquiry.String("product_interest")),
		html.EscapeString(inquiry.String("message")))

	return s.Send(to, subject, body)
}

// InquiryNotifier mails a notice for every created inquiry. Sends run off
// the publisher's goroutine; Wait blocks until they have finished.
type InquiryNotifier struct {
	email  *EmailService
	to     string
	logger *zap.Logger

	mu      sync.Mutex
	stopped bool
	wg      sync.WaitGroup
}

func NewInquiryNotifier(email *EmailService, to string, logger *zap.Logger) *InquiryNotifier {
	return &InquiryNotifier{email: email, to: to, logger: logger}
}

// Enabled reports whether notices can be delivered at all.
func (n *InquiryNotifier) Enabled() bool {
	return n.to != "" && n.email.IsConfigured()
}

// Notify has the events.Listener shape.
func (n *InquiryNotifier) Notify(ev events.Event) {
	if ev.Kind != events.KindCreated || ev.Resource != models.ResourceInquiries || !n.Enabled() {
		return
	}
	rec := ev.Record.Clone()

	n.mu.Lock()
	defer n.mu.Unlock()
	if n.stopped {
		return
	}
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		if err := n.email.SendInquiryNotice(n.to, rec); err != nil {
			n.logger.Warn("failed to send inquiry notice",
				zap.String("inquiry_id", ev.RecordID),
				zap.Error(err))
		}
	}()
}

// Wait stops accepting events and blocks until pending sends finish or ctx
// is done.
func (n *InquiryNotifier) Wait(ctx context.Context) error {
	n.mu.Lock()
	n.stopped = true
	n.mu.Unlock()

	done := make(chan struct{})
	go func() {
		n.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
