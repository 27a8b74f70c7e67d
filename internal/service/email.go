package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"

	"rentbridge-backend/internal/domain"
	"rentbridge-backend/internal/logger"
)

type emailService struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

func NewEmailService(apiKey, fromEmail, fromName string) EmailService {
	return &emailService{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  fromName,
	}
}

func (s *emailService) send(ctx context.Context, toEmail, subject, plain, html string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail("", toEmail)
	message := mail.NewSingleEmail(from, subject, to, plain, html)

	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("email provider returned status %d", resp.StatusCode)
	}
	logger.Debug("email sent", "to", toEmail, "subject", subject)
	return nil
}

func (s *emailService) SendReturnRequestNotification(ctx context.Context, vendorEmail, customerName, requestNumber, orderNumber string) error {
	subject := fmt.Sprintf("New return request %s", requestNumber)
	plain := fmt.Sprintf("%s has requested a return for order %s. Review it in your dashboard.", customerName, orderNumber)
	html := fmt.Sprintf("<p><strong>%s</strong> has requested a return for order <strong>%s</strong>.</p><p>Review it in your dashboard.</p>", customerName, orderNumber)
	return s.send(ctx, vendorEmail, subject, plain, html)
}

func (s *emailService) SendReturnRequestStatusNotification(ctx context.Context, customerEmail, requestNumber string, status domain.ReturnRequestStatus, vendorNotes string) error {
	subject := fmt.Sprintf("Return request %s %s", requestNumber, status)
	plain := fmt.Sprintf("Your return request %s is now %s.", requestNumber, status)
	if vendorNotes != "" {
		plain += " Vendor notes: " + vendorNotes
	}
	html := fmt.Sprintf("<p>Your return request <strong>%s</strong> is now <strong>%s</strong>.</p>", requestNumber, status)
	if vendorNotes != "" {
		html += fmt.Sprintf("<p>Vendor notes: %s</p>", vendorNotes)
	}
	return s.send(ctx, customerEmail, subject, plain, html)
}

func (s *emailService) SendReturnReminder(ctx context.Context, customerEmail, orderNumber string, returnDate time.Time, overdue bool) error {
	due := returnDate.Format("Jan 2, 2006")
	subject := fmt.Sprintf("Return reminder for order %s", orderNumber)
	plain := fmt.Sprintf("Your rental order %s is due back on %s.", orderNumber, due)
	if overdue {
		subject = fmt.Sprintf("Order %s is overdue", orderNumber)
		plain = fmt.Sprintf("Your rental order %s was due back on %s. Late fees may apply.", orderNumber, due)
	}
	html := "<p>" + plain + "</p>"
	return s.send(ctx, customerEmail, subject, plain, html)
}
