package service

import (
	"context"
	"fmt"
	"html"
	"strings"

	"github.com/sendgrid/rest"
	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
)

// MailSender is the part of the SendGrid client the notifier uses.
type MailSender interface {
	SendWithContext(ctx context.Context, email *mail.SGMailV3) (*rest.Response, error)
}

type sendGridNotifier struct {
	client    MailSender
	fromEmail string
	fromName  string
}

// NewSendGridNotifier e-mails customers through SendGrid.
func NewSendGridNotifier(apiKey, fromEmail, fromName string) Notifier {
	return NewMailNotifier(sendgrid.NewSendClient(apiKey), fromEmail, fromName)
}

func NewMailNotifier(client MailSender, fromEmail, fromName string) Notifier {
	return &sendGridNotifier{client: client, fromEmail: fromEmail, fromName: fromName}
}

func (n *sendGridNotifier) RequestStatusChanged(ctx context.Context, req *domain.Request) error {
	subject, plainText, htmlContent, ok := statusMessage(req)
	if !ok {
		return nil
	}

	from := mail.NewEmail(n.fromName, n.fromEmail)
	to := mail.NewEmail(req.Name, req.Email)
	message := mail.NewSingleEmail(from, subject, to, plainText, htmlContent)

	logger.ExternalServiceCall("sendgrid", "send", "request_id", req.ID, "status", req.Status)
	response, err := n.client.SendWithContext(ctx, message)
	if err == nil && response.StatusCode >= 400 {
		err = fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	logger.ExternalServiceResult("sendgrid", "send", err, "request_id", req.ID)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func statusMessage(req *domain.Request) (subject, plainText, htmlContent string, ok bool) {
	var verb string
	switch req.Status {
	case domain.RequestStatusConfirmed:
		verb = "confirmed"
	case domain.RequestStatusCancelled:
		verb = "cancelled"
	default:
		return "", "", "", false
	}

	subject = fmt.Sprintf("Your rental request has been %s", verb)
	var b strings.Builder
	fmt.Fprintf(&b, "Hello %s,\n\n", req.Name)
	fmt.Fprintf(&b, "your request for %s from %s to %s has been %s.\n", req.VehicleName, req.StartDate, req.EndDate, verb)
	plainText = b.String()
	htmlContent = fmt.Sprintf(`<html>
	<body>
		<p>Hello %s,</p>
		<p>your request for <strong>%s</strong> from %s to %s has been <strong>%s</strong>.</p>
	</body>
</html>`, html.EscapeString(req.Name), html.EscapeString(req.VehicleName),
		html.EscapeString(req.StartDate), html.EscapeString(req.EndDate), verb)
	return subject, plainText, htmlContent, true
}

// NoopNotifier is used when no mail provider is configured.
type NoopNotifier struct{}

func (NoopNotifier) RequestStatusChanged(ctx context.Context, req *domain.Request) error {
	logger.Debug("Notification skipped, no mail provider", "request_id", req.ID, "status", req.Status)
	return nil
}
