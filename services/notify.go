package services

import (
	"context"
	"fmt"
	"html"
	"strings"

	"golang.org/x/sync/errgroup"
)

// Notification is a short message for the site owner.
type Notification struct {
	Subject string
	Text    string
	HTML    string
}

// ContactNotification announces a new contact form submission.
func ContactNotification(name, email, message string) Notification {
	subject := fmt.Sprintf("New message from %s", name)
	return Notification{
		Subject: subject,
		Text:    fmt.Sprintf("%s <%s>: %s", name, email, truncate(message, 280)),
		HTML: fmt.Sprintf("<p><strong>%s</strong> &lt;%s&gt; wrote:</p><p>%s</p>",
			html.EscapeString(name), html.EscapeString(email),
			strings.ReplaceAll(html.EscapeString(message), "\n", "<br>")),
	}
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

type Notifier interface {
	Notify(ctx context.Context, n Notification) error
}

// Notifiers delivers to every channel at once. One failing channel does not stop
// the others; the first error is returned after all have finished.
type Notifiers []Notifier

func (ns Notifiers) Notify(ctx context.Context, n Notification) error {
	var g errgroup.Group
	for _, notifier := range ns {
		g.Go(func() error {
			return notifier.Notify(ctx, n)
		})
	}
	return g.Wait()
}

// EmailNotifier mails the notification to fixed recipients.
type EmailNotifier struct {
	Mailer     *Mailer
	Recipients []string
}

func (e EmailNotifier) Notify(ctx context.Context, n Notification) error {
	return e.Mailer.SendEmail(ctx, n.Subject, n.HTML, e.Recipients)
}

// SMSNotifier texts the notification to one phone number.
type SMSNotifier struct {
	Sender *SMSSender
	To     string
}

func (s SMSNotifier) Notify(ctx context.Context, n Notification) error {
	return s.Sender.SendSMS(ctx, s.To, n.Text)
}
