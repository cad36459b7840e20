// Package mailer delivers transactional email.
package mailer

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net"
	"strconv"
	"time"

	"github.com/emersion/go-message/mail"
	"github.com/emersion/go-sasl"
	"github.com/emersion/go-smtp"
)

type Message struct {
	To      string
	Subject string
	HTML    string
}

type Mailer interface {
	Send(ctx context.Context, msg Message) error
}

// SMTP submits mail to a relay, authenticating with PLAIN when a username
// is configured. STARTTLS is used when the server offers it.
type SMTP struct {
	addr     string
	from     string
	username string
	password string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		addr:     net.JoinHostPort(host, strconv.Itoa(port)),
		from:     from,
		username: username,
		password: password,
	}
}

func (s *SMTP) Send(ctx context.Context, msg Message) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	body, err := Compose(s.from, msg, time.Now())
	if err != nil {
		return err
	}

	var auth sasl.Client
	if s.username != "" {
		auth = sasl.NewPlainClient("", s.username, s.password)
	}
	if err := smtp.SendMail(s.addr, auth, s.from, []string{msg.To}, bytes.NewReader(body)); err != nil {
		return fmt.Errorf("smtp send to %s: %w", msg.To, err)
	}
	return nil
}

// Compose renders msg as a single-part HTML RFC 5322 message.
func Compose(from string, msg Message, date time.Time) ([]byte, error) {
	var h mail.Header
	h.SetDate(date)
	h.SetAddressList("From", []*mail.Address{{Address: from}})
	h.SetAddressList("To", []*mail.Address{{Address: msg.To}})
	h.SetSubject(msg.Subject)
	h.SetContentType("text/html", map[string]string{"charset": "utf-8"})

	var buf bytes.Buffer
	w, err := mail.CreateSingleInlineWriter(&buf, h)
	if err != nil {
		return nil, fmt.Errorf("compose mail: %w", err)
	}
	if _, err := io.WriteString(w, msg.HTML); err != nil {
		return nil, fmt.Errorf("compose mail: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("compose mail: %w", err)
	}
	return buf.Bytes(), nil
}

// Log stands in for SMTP when no relay is configured. It records that a
// message would have been sent, without its body.
type Log struct {
	Logger *slog.Logger
}

func (l Log) Send(_ context.Context, msg Message) error {
	logger := l.Logger
	if logger == nil {
		logger = slog.Default()
	}
	logger.Warn("mail delivery disabled, message dropped", "to", msg.To, "subject", msg.Subject)
	return nil
}
