// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package mailer sends notification email via SMTP. Delivery is best
// effort: failures are logged and reported as a boolean so callers never
// fail a request over a lost notification.
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"log/slog"
	"net/smtp"

	"github.com/microcosm-cc/bluemonday"

	"github.com/intravvel/console-go/internal/model"
)

// htmlSanitizer strips dangerous markup from user-supplied text before it
// is interpolated into notification email bodies.
var htmlSanitizer = bluemonday.StrictPolicy()

// Config holds SMTP configuration.
type Config struct {
	Host       string
	Port       string
	Username   string
	Password   string
	AdminEmail string
}

// sendFunc matches smtp.SendMail; tests substitute a recorder.
type sendFunc func(addr string, a smtp.Auth, from string, to []string, msg []byte) error

// Mailer sends notification email.
type Mailer struct {
	config Config
	logger *slog.Logger
	send   sendFunc
}

// New creates a Mailer. An incomplete config produces a mailer whose
// Notify always returns false.
func New(config Config, logger *slog.Logger) *Mailer {
	return &Mailer{
		config: config,
		logger: logger,
		send:   smtp.SendMail,
	}
}

// Configured returns true if the mailer has enough configuration to send.
func (m *Mailer) Configured() bool {
	return m.config.Host != "" && m.config.Username != "" && m.config.Password != ""
}

// Notify sends an HTML email to the given recipient. Returns true when
// the message was handed to the SMTP server, false otherwise.
func (m *Mailer) Notify(to, subject, htmlBody string) bool {
	if !m.Configured() {
		m.logger.Warn("email not configured, skipping notification",
			"category", model.EventCategoryMail, "subject", subject)
		return false
	}

	var msg bytes.Buffer
	fmt.Fprintf(&msg, "To: %s\r\n", to)
	fmt.Fprintf(&msg, "From: %s\r\n", m.config.Username)
	fmt.Fprintf(&msg, "Subject: %s\r\n", subject)
	fmt.Fprintf(&msg, "MIME-Version: 1.0\r\n")
	fmt.Fprintf(&msg, "Content-Type: text/html; charset=UTF-8\r\n")
	fmt.Fprintf(&msg, "\r\n")
	fmt.Fprintf(&msg, "%s\r\n", htmlBody)

	addr := m.config.Host + ":" + m.config.Port
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := m.send(addr, auth, m.config.Username, []string{to}, msg.Bytes()); err != nil {
		m.logger.Warn("email delivery failed",
			"category", model.EventCategoryMail, "to", to, "error", err)
		return false
	}

	m.logger.Info("notification email sent", "to", to, "subject", subject)
	return true
}

// contactTemplate renders the admin notification for a contact form
// submission. Field values are sanitized before execution.
var contactTemplate = template.Must(template.New("contact").Parse(`<html>
<body>
<h2>New contact message</h2>
<p><strong>From:</strong> {{.Name}} &lt;{{.Email}}&gt;</p>
<p><strong>Subject:</strong> {{.Subject}}</p>
<p>{{.Body}}</p>
</body>
</html>`))

// NotifyContact emails the site admin about a new contact message.
// Returns false when no admin address is configured or delivery fails.
func (m *Mailer) NotifyContact(msg model.Message) bool {
	if m.config.AdminEmail == "" {
		m.logger.Warn("no admin email configured, skipping contact notification",
			"category", model.EventCategoryMail)
		return false
	}

	data := struct {
		Name, Email, Subject, Body string
	}{
		Name:    htmlSanitizer.Sanitize(msg.Name),
		Email:   htmlSanitizer.Sanitize(msg.Email),
		Subject: htmlSanitizer.Sanitize(msg.Subject),
		Body:    htmlSanitizer.Sanitize(msg.Body),
	}

	var body bytes.Buffer
	if err := contactTemplate.Execute(&body, data); err != nil {
		m.logger.Error("rendering contact notification failed",
			"category", model.EventCategoryMail, "error", err)
		return false
	}

	return m.Notify(m.config.AdminEmail, "New contact message: "+data.Subject, body.String())
}
