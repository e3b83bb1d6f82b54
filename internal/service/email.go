package service

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"gopkg.in/gomail.v2"

	"pujcovna-backend/internal/logger"
)

type smtpEmailService struct {
	host          string
	port          int
	username      string
	password      string
	from          string
	operatorEmail string
}

func NewSMTPEmailService(host string, port int, username, password, from, operatorEmail string) EmailService {
	return &smtpEmailService{
		host:          host,
		port:          port,
		username:      username,
		password:      password,
		from:          from,
		operatorEmail: operatorEmail,
	}
}

func (s *smtpEmailService) Send(ctx context.Context, msg EmailMessage) bool {
	m := gomail.NewMessage()
	from := msg.From
	if from == "" {
		from = s.from
	}
	m.SetHeader("From", from)
	m.SetHeader("To", msg.To)
	m.SetHeader("Subject", msg.Subject)
	if msg.HTML != "" {
		m.SetBody("text/html", msg.HTML)
		if msg.Text != "" {
			m.AddAlternative("text/plain", msg.Text)
		}
	} else {
		m.SetBody("text/plain", msg.Text)
	}

	for _, att := range msg.Attachments {
		content, err := base64.StdEncoding.DecodeString(att.ContentBase64)
		if err != nil {
			logger.Error("Failed to decode email attachment", "filename", att.Filename, "error", err)
			return false
		}
		m.Attach(att.Filename,
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
			gomail.SetHeader(map[string][]string{"Content-Type": {att.MIMEType}}))
	}

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		logger.Error("Failed to send email via SMTP", "to", msg.To, "subject", msg.Subject, "error", err)
		return false
	}
	return true
}

func (s *smtpEmailService) SendContractEmails(ctx context.Context, customerEmail, customerName, orderNumber string, pdf []byte) (bool, bool) {
	customer, operator := buildContractEmails(s.from, s.operatorEmail, customerEmail, customerName, orderNumber, pdf)
	return s.Send(ctx, customer), s.Send(ctx, operator)
}

// buildContractEmails assembles the customer confirmation and the operator
// notice for one completed reservation, both carrying the contract PDF.
func buildContractEmails(from, operatorEmail, customerEmail, customerName, orderNumber string, pdf []byte) (EmailMessage, EmailMessage) {
	attachment := EmailAttachment{
		Filename:      fmt.Sprintf("smlouva-%s.pdf", orderNumber),
		ContentBase64: base64.StdEncoding.EncodeToString(pdf),
		MIMEType:      "application/pdf",
	}

	customer := EmailMessage{
		To:      customerEmail,
		From:    from,
		Subject: fmt.Sprintf("Potvrzení rezervace %s", orderNumber),
		Text: fmt.Sprintf(
			"Dobrý den, %s,\n\n"+
				"děkujeme za Vaši rezervaci číslo %s.\n\n"+
				"V příloze najdete smlouvu o pronájmu s platebními údaji včetně QR kódu.\n"+
				"Vybavení si vyzvednete v dohodnutém termínu na zvoleném odběrném místě.\n\n"+
				"S pozdravem,\nPůjčovna vybavení",
			customerName, orderNumber),
		HTML: fmt.Sprintf(
			"<p>Dobrý den, %s,</p>"+
				"<p>děkujeme za Vaši rezervaci číslo <strong>%s</strong>.</p>"+
				"<p>V příloze najdete smlouvu o pronájmu s platebními údaji včetně QR kódu.</p>"+
				"<h3>Důležité informace:</h3>"+
				"<ul><li>Vybavení si vyzvednete v dohodnutém termínu na zvoleném odběrném místě.</li>"+
				"<li>Smlouvu podepíšeme při předání.</li></ul>"+
				"<p>S pozdravem,<br>Půjčovna vybavení</p>",
			customerName, orderNumber),
		Attachments: []EmailAttachment{attachment},
	}

	operator := EmailMessage{
		To:      operatorEmail,
		From:    from,
		Subject: fmt.Sprintf("Nová rezervace %s", orderNumber),
		Text: fmt.Sprintf(
			"Nová rezervace %s od zákazníka %s (%s).\n\nSmlouva je v příloze.",
			orderNumber, customerName, customerEmail),
		HTML: fmt.Sprintf(
			"<h2>Nová objednávka byla vytvořena</h2>"+
				"<p><strong>Číslo objednávky:</strong> %s</p>"+
				"<p><strong>Zákazník:</strong> %s</p>"+
				"<p><strong>Email zákazníka:</strong> %s</p>",
			orderNumber, customerName, customerEmail),
		Attachments: []EmailAttachment{attachment},
	}

	return customer, operator
}
