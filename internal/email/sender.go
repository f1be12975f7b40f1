package email

import (
	"fmt"

	"gopkg.in/gomail.v2"
)

// TransportError is a per-recipient delivery failure. The dispatcher
// catches it and keeps going with the rest of the batch.
type TransportError struct {
	To     string
	Reason string
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("send to %s failed: %s", e.To, e.Reason)
}

type Sender struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// Send delivers a single rendered message over SMTP. Any failure comes
// back as a *TransportError so callers can fold it into per-recipient
// accounting.
func (s *Sender) Send(to, subject, htmlBody string) error {

	m := gomail.NewMessage()
	m.SetHeader("From", s.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)

	d := gomail.NewDialer(s.Host, s.Port, s.Username, s.Password)

	if err := d.DialAndSend(m); err != nil {
		return &TransportError{To: to, Reason: err.Error()}
	}

	return nil
}
