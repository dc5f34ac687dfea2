package notify

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"log"
	"mime/multipart"
	"net/smtp"
	"net/textproto"
	"os"
	"path/filepath"
)

// RecipientSource resolves who receives alert emails. The database layer
// implements it with the active users table.
type RecipientSource interface {
	GetAlertRecipients(ctx context.Context) ([]string, error)
}

// Email sends alert mail over SMTP with an optional snapshot attachment.
type Email struct {
	host       string
	port       int
	username   string
	password   string
	adminEmail string
	recipients RecipientSource
}

func NewEmail(host string, port int, username, password, adminEmail string, recipients RecipientSource) *Email {
	return &Email{
		host:       host,
		port:       port,
		username:   username,
		password:   password,
		adminEmail: adminEmail,
		recipients: recipients,
	}
}

// Send delivers the alert to every resolved recipient. Per-recipient
// failures are logged with the recipient context and do not stop the rest.
func (e *Email) Send(ctx context.Context, subject, message, imagePath string) {
	recipients := e.resolveRecipients(ctx)
	if len(recipients) == 0 {
		log.Println("Notify: no email recipients configured")
		return
	}

	body, err := e.buildMessage(subject, message, imagePath)
	if err != nil {
		log.Printf("Notify: failed to build email: %v", err)
		return
	}

	addr := fmt.Sprintf("%s:%d", e.host, e.port)
	auth := smtp.PlainAuth("", e.username, e.password, e.host)

	for _, recipient := range recipients {
		msg := append([]byte(fmt.Sprintf("To: %s\r\n", recipient)), body...)
		if err := smtp.SendMail(addr, auth, e.username, []string{recipient}, msg); err != nil {
			log.Printf("Notify: failed to send email to %s: %v", recipient, err)
			continue
		}
		log.Printf("Notify: email sent to %s", recipient)
	}
}

func (e *Email) resolveRecipients(ctx context.Context) []string {
	if e.recipients != nil {
		emails, err := e.recipients.GetAlertRecipients(ctx)
		if err != nil {
			log.Printf("Notify: failed to resolve recipients: %v", err)
		} else if len(emails) > 0 {
			return emails
		}
	}
	if e.adminEmail != "" {
		return []string{e.adminEmail}
	}
	return nil
}

func (e *Email) buildMessage(subject, message, imagePath string) ([]byte, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", e.username)
	fmt.Fprintf(&buf, "Subject: %s\r\n", subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	fmt.Fprintf(&buf, "Content-Type: multipart/mixed; boundary=%s\r\n\r\n", writer.Boundary())

	textHeader := make(textproto.MIMEHeader)
	textHeader.Set("Content-Type", "text/plain; charset=utf-8")
	part, err := writer.CreatePart(textHeader)
	if err != nil {
		return nil, fmt.Errorf("create text part: %w", err)
	}
	fmt.Fprintf(part, "%s\r\n", message)

	// Attach the snapshot when it exists; a missing image just means a
	// text-only notification.
	if imagePath != "" {
		if data, err := os.ReadFile(imagePath); err == nil {
			attachHeader := make(textproto.MIMEHeader)
			attachHeader.Set("Content-Type", "image/jpeg")
			attachHeader.Set("Content-Transfer-Encoding", "base64")
			attachHeader.Set("Content-Disposition",
				fmt.Sprintf("attachment; filename=%s", filepath.Base(imagePath)))

			attach, err := writer.CreatePart(attachHeader)
			if err != nil {
				return nil, fmt.Errorf("create attachment part: %w", err)
			}
			encoder := base64.NewEncoder(base64.StdEncoding, attach)
			if _, err := encoder.Write(data); err != nil {
				return nil, fmt.Errorf("encode attachment: %w", err)
			}
			encoder.Close()
		} else {
			log.Printf("Notify: cannot attach snapshot %s: %v", imagePath, err)
		}
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close message: %w", err)
	}

	buf.Write(body.Bytes())
	return buf.Bytes(), nil
}
