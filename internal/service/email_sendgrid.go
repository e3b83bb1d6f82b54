package service

import (
	"context"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"pujcovna-backend/internal/logger"
)

type sendgridEmailService struct {
	apiKey        string
	fromEmail     string
	fromName      string
	operatorEmail string
}

func NewSendGridEmailService(apiKey, fromEmail, fromName, operatorEmail string) EmailService {
	return &sendgridEmailService{
		apiKey:        apiKey,
		fromEmail:     fromEmail,
		fromName:      fromName,
		operatorEmail: operatorEmail,
	}
}

func (s *sendgridEmailService) Send(ctx context.Context, msg EmailMessage) bool {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", msg.To)

	message := mail.NewSingleEmail(from, msg.Subject, recipient, msg.Text, msg.HTML)
	for _, att := range msg.Attachments {
		attachment := mail.NewAttachment()
		attachment.SetContent(att.ContentBase64)
		attachment.SetType(att.MIMEType)
		attachment.SetFilename(att.Filename)
		attachment.SetDisposition("attachment")
		message.AddAttachment(attachment)
	}

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		logger.Error("Failed to send email via SendGrid", "to", msg.To, "subject", msg.Subject, "error", err)
		return false
	}
	if response.StatusCode >= 400 {
		logger.Error("SendGrid rejected email",
			"to", msg.To, "status", response.StatusCode, "body", response.Body)
		return false
	}
	return true
}

func (s *sendgridEmailService) SendContractEmails(ctx context.Context, customerEmail, customerName, orderNumber string, pdf []byte) (bool, bool) {
	customer, operator := buildContractEmails(s.fromEmail, s.operatorEmail, customerEmail, customerName, orderNumber, pdf)
	return s.Send(ctx, customer), s.Send(ctx, operator)
}
