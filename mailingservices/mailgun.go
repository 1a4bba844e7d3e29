package mailingservices

import (
	"context"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/teamuphq/teamup/config"
)

// Mailer sends transactional mail. Delivery is best effort; callers never
// block a request on it.
type Mailer interface {
	SendConnectionAccepted(recipientEmail, recipientName, accepterName string)
	SendWelcome(recipientEmail, recipientName string)
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func (m *Mailgun) Init(c *config.Config) {
	m.Client = mailgun.NewMailgun(c.MgDomain, c.MailgunApiKey)
	m.From = c.MgEmailFrom
}

func (m *Mailgun) send(to, subject, body string) {
	if m.Client == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		message := m.Client.NewMessage(m.From, subject, body, to)
		if _, _, err := m.Client.Send(ctx, message); err != nil {
			log.Printf("mailgun send error: %v", err)
		}
	}()
}

func (m *Mailgun) SendConnectionAccepted(recipientEmail, recipientName, accepterName string) {
	m.send(recipientEmail,
		"Your connection request was accepted",
		"Hi "+recipientName+",\n\n"+accepterName+" accepted your connection request on TeamUP. You can now message each other directly.\n")
}

func (m *Mailgun) SendWelcome(recipientEmail, recipientName string) {
	m.send(recipientEmail,
		"Welcome to TeamUP",
		"Hi "+recipientName+",\n\nYour TeamUP account is ready. Build your profile and start connecting.\n")
}
