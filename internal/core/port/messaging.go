package port

import (
	"context"
)

type EmailMessage struct {
	To      []string
	Subject string
	HTML    string
	Text    string
}

type EmailSenderPort interface {
	SendEmail(ctx context.Context, msg EmailMessage) error
}

type SMSSenderPort interface {
	SendSMS(ctx context.Context, phone, message string) error
}
