package aws_adapter

import (
	"context"
	"fmt"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
)

const charsetUTF8 = "UTF-8"

// SESEmailSender implements port.EmailSenderPort over Amazon SES.
type SESEmailSender struct {
	client SESAPI
	from   string
}

func NewSESEmailSender(client SESAPI, from string) (*SESEmailSender, error) {
	if client == nil {
		return nil, fmt.Errorf("ses client cannot be nil")
	}
	if from == "" {
		return nil, fmt.Errorf("sender address cannot be empty")
	}
	return &SESEmailSender{client: client, from: from}, nil
}

func content(s string) *types.Content {
	return &types.Content{Data: aws.String(s), Charset: aws.String(charsetUTF8)}
}

func (s *SESEmailSender) SendEmail(ctx context.Context, msg port.EmailMessage) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component":  "SESEmailSender",
		"recipients": len(msg.To),
	})
	if len(msg.To) == 0 {
		return fmt.Errorf("email has no recipients")
	}

	body := &types.Body{}
	if msg.Text != "" {
		body.Text = content(msg.Text)
	}
	if msg.HTML != "" {
		body.Html = content(msg.HTML)
	}

	out, err := s.client.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{ToAddresses: msg.To},
		Message: &types.Message{
			Subject: content(msg.Subject),
			Body:    body,
		},
		Source: aws.String(s.from),
	})
	if err != nil {
		logger.Error("SES SendEmail failed", err, nil)
		return fmt.Errorf("failed to send email: %w", err)
	}
	logger.Info("Email sent", port.Fields{"message_id": aws.ToString(out.MessageId)})
	return nil
}
