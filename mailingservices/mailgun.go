package mailingservices

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mailgun/mailgun-go/v4"
	"github.com/techagentng/wayvee/config"
)

// Mailer sends transactional mail. Delivery is best effort; callers log
// and continue on failure.
type Mailer interface {
	SendResetPasswordMail(recipient, resetLink string) error
	SendWelcomeMail(recipient, firstname string) error
	SendBookingConfirmation(recipient, stayTitle string, checkIn, checkOut time.Time) error
}

type Mailgun struct {
	Client *mailgun.MailgunImpl
	From   string
}

func NewMailgun(conf *config.Config) *Mailgun {
	return &Mailgun{
		Client: mailgun.NewMailgun(conf.MgDomain, conf.MailgunApiKey),
		From:   conf.MgEmailFrom,
	}
}

func (m *Mailgun) send(recipient, subject, body string) error {
	message := m.Client.NewMessage(m.From, subject, body, recipient)
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*30)
	defer cancel()

	_, id, err := m.Client.Send(ctx, message)
	if err != nil {
		return err
	}
	log.Printf("mail queued: id=%s to=%s subject=%q", id, recipient, subject)
	return nil
}

func (m *Mailgun) SendResetPasswordMail(recipient, resetLink string) error {
	body := fmt.Sprintf("You requested a password reset.\n\nFollow this link to choose a new password: %s\n\nThe link expires in one hour. If you didn't request this, ignore this mail.", resetLink)
	return m.send(recipient, "Reset your Wayvee password", body)
}

func (m *Mailgun) SendWelcomeMail(recipient, firstname string) error {
	body := fmt.Sprintf("Hi %s,\n\nWelcome to Wayvee. Your account is ready - verify your phone number to unlock bookings and messaging.", firstname)
	return m.send(recipient, "Welcome to Wayvee", body)
}

func (m *Mailgun) SendBookingConfirmation(recipient, stayTitle string, checkIn, checkOut time.Time) error {
	body := fmt.Sprintf("Your booking request for %q (%s - %s) has been received and is pending confirmation by the host.",
		stayTitle, checkIn.Format("Jan 2, 2006"), checkOut.Format("Jan 2, 2006"))
	return m.send(recipient, "Your Wayvee booking request", body)
}
