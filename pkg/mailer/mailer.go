package mailer

import (
	"fmt"
	"net"
	"net/smtp"
	"strings"
)

// Mail is one outbound message.
type Mail struct {
	Recipient string
	Subject   string
	Message   string
}

// Sender delivers mail. Implementations must treat delivery as best-effort;
// callers never fail a request over a Send error.
type Sender interface {
	Send(mail Mail) error
}

// AdoptionForm is the form a prospective adopter submits with a request.
type AdoptionForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

// RenderAdoptionForm builds the plain-text body mailed to the pet's owner.
func RenderAdoptionForm(form AdoptionForm) string {
	var b strings.Builder
	b.WriteString("You have received a new adoption request.\n\n")
	fmt.Fprintf(&b, "Name: %s\n", form.Name)
	fmt.Fprintf(&b, "Email: %s\n", form.Email)
	fmt.Fprintf(&b, "Phone: %s\n", form.Phone)
	if form.Message != "" {
		fmt.Fprintf(&b, "\n%s\n", form.Message)
	}
	return b.String()
}

// SMTPMailer sends mail through a plain SMTP endpoint.
type SMTPMailer struct {
	addr string
	from string
	auth smtp.Auth
}

// NewSMTPMailer creates an SMTPMailer. With an empty username the mailer
// connects unauthenticated, which suits local relays and test servers.
func NewSMTPMailer(addr, from, username, password string) *SMTPMailer {
	var auth smtp.Auth
	if username != "" {
		host, _, err := net.SplitHostPort(addr)
		if err != nil {
			host = addr
		}
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPMailer{
		addr: addr,
		from: from,
		auth: auth,
	}
}

// Send delivers one message.
func (m *SMTPMailer) Send(mail Mail) error {
	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\n\r\n%s\r\n",
		m.from, mail.Recipient, mail.Subject, mail.Message)
	if err := smtp.SendMail(m.addr, m.auth, m.from, []string{mail.Recipient}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send mail to %s: %w", mail.Recipient, err)
	}
	return nil
}
