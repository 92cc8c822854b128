// Package email sends account notices over SMTP
package email

import (
	"context"
	"crypto/tls"
	"fmt"
	"html"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

// Notifier tells users about the outcome of their registration review
type Notifier interface {
	SendAccountReviewed(ctx context.Context, toEmail, toName string, approved bool) error
}

// SMTPConfig holds configuration for SMTP server
type SMTPConfig struct {
	Host      string
	Port      int
	Username  string
	Password  string
	FromName  string
	FromEmail string
	UseTLS    bool
	// LoginURL is linked from the approval notice
	LoginURL  string
}

type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// SMTPNotifier implements Notifier
type SMTPNotifier struct {
	config   SMTPConfig
	logger   zerolog.Logger
	sendMail sendFunc
}

// NewSMTPNotifier creates a new SMTPNotifier
func NewSMTPNotifier(config SMTPConfig, logger zerolog.Logger) *SMTPNotifier {
	n := &SMTPNotifier{
		config: config,
		logger: logger,
	}
	n.sendMail = smtp.SendMail
	if config.UseTLS {
		n.sendMail = n.sendMailTLS
	}
	return n
}

// SendAccountReviewed sends the approval or rejection notice
func (n *SMTPNotifier) SendAccountReviewed(ctx context.Context, toEmail, toName string, approved bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	subject, body := reviewMessage(toName, approved, n.config.LoginURL)

	// Development setups run without SMTP credentials
	if n.config.Username == "" || n.config.Password == "" {
		n.logger.Warn().
			Str("toEmail", toEmail).
			Bool("approved", approved).
			Str("subject", subject).
			Msg("SMTP credentials not configured, review notice not sent")
		return nil
	}

	msg := buildMessage(n.from(), toEmail, subject, body)
	addr := n.config.Host + ":" + strconv.Itoa(n.config.Port)
	auth := smtp.PlainAuth("", n.config.Username, n.config.Password, n.config.Host)

	if err := n.sendMail(addr, auth, n.config.FromEmail, []string{toEmail}, msg); err != nil {
		n.logger.Error().Err(err).Str("server", addr).Msg("Failed to send email")
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func (n *SMTPNotifier) from() string {
	if n.config.FromName == "" {
		return n.config.FromEmail
	}
	return fmt.Sprintf("%s <%s>", n.config.FromName, n.config.FromEmail)
}

// sendMailTLS speaks SMTP over an implicit TLS connection (port 465 style)
func (n *SMTPNotifier) sendMailTLS(addr string, a smtp.Auth, from string, to []string, msg []byte) error {
	conn, err := tls.Dial("tcp", addr, &tls.Config{ServerName: n.config.Host, MinVersion: tls.VersionTLS12})
	if err != nil {
		return fmt.Errorf("failed to connect to SMTP server: %w", err)
	}
	defer conn.Close()

	client, err := smtp.NewClient(conn, n.config.Host)
	if err != nil {
		return fmt.Errorf("failed to create SMTP client: %w", err)
	}
	defer client.Quit()

	if err = client.Auth(a); err != nil {
		return fmt.Errorf("SMTP authentication failed: %w", err)
	}
	if err = client.Mail(from); err != nil {
		return fmt.Errorf("failed to set sender: %w", err)
	}
	for _, rcpt := range to {
		if err = client.Rcpt(rcpt); err != nil {
			return fmt.Errorf("failed to set recipient: %w", err)
		}
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("failed to get data writer: %w", err)
	}
	if _, err = w.Write(msg); err != nil {
		return fmt.Errorf("failed to write email message: %w", err)
	}
	return w.Close()
}

func reviewMessage(toName string, approved bool, loginURL string) (subject, body string) {
	name := html.EscapeString(toName)
	if approved {
		subject = "Your AtCampus account has been approved"
		body = fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<h2 style="color: #333;">Welcome to AtCampus!</h2>
		<p>Hello %s,</p>
		<p>Your registration has been approved. You can now sign in and start collaborating on research.</p>
		<div style="text-align: center; margin: 30px 0;">
			<a href="%s" style="background-color: #4a86e8; color: white; padding: 12px 24px; text-decoration: none; border-radius: 4px; font-weight: bold;">Sign in</a>
		</div>
		<p>Best regards,<br>The AtCampus Team</p>
	</div>
</body>
</html>`, name, html.EscapeString(loginURL))
		return subject, body
	}

	subject = "Your AtCampus registration"
	body = fmt.Sprintf(`<html>
<body>
	<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
		<p>Hello %s,</p>
		<p>Unfortunately, your account registration has been rejected.</p>
		<p>Best regards,<br>The AtCampus Team</p>
	</div>
</body>
</html>`, name)
	return subject, body
}

// buildMessage renders headers in a fixed order followed by the HTML body
func buildMessage(from, to, subject, htmlBody string) []byte {
	var b strings.Builder
	headers := [][2]string{
		{"From", from},
		{"To", to},
		{"Subject", subject},
		{"MIME-Version", "1.0"},
		{"Content-Type", "text/html; charset=UTF-8"},
	}
	for _, h := range headers {
		fmt.Fprintf(&b, "%s: %s\r\n", h[0], h[1])
	}
	b.WriteString("\r\n")
	b.WriteString(htmlBody)
	return []byte(b.String())
}
