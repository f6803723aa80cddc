package aws_adapter

import (
	"context"
	"fmt"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
)

// SNSSMSSender implements port.SMSSenderPort with direct SNS publishes.
type SNSSMSSender struct {
	client   SNSAPI
	senderID string
}

func NewSNSSMSSender(client SNSAPI, senderID string) (*SNSSMSSender, error) {
	if client == nil {
		return nil, fmt.Errorf("sns client cannot be nil")
	}
	return &SNSSMSSender{client: client, senderID: senderID}, nil
}

// ToE164 converts a local Egyptian mobile number (01xxxxxxxxx) to +201xxxxxxxxx.
func ToE164(phone string) string {
	p := strings.TrimSpace(phone)
	switch {
	case strings.HasPrefix(p, "+"):
		return p
	case strings.HasPrefix(p, "20"):
		return "+" + p
	case strings.HasPrefix(p, "0"):
		return "+20" + strings.TrimPrefix(p, "0")
	}
	return p
}

func (s *SNSSMSSender) SendSMS(ctx context.Context, phone, message string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{"component": "SNSSMSSender"})

	input := &sns.PublishInput{
		PhoneNumber: aws.String(ToE164(phone)),
		Message:     aws.String(message),
		MessageAttributes: map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SMSType": {DataType: aws.String("String"), StringValue: aws.String("Transactional")},
		},
	}
	if s.senderID != "" {
		input.MessageAttributes["AWS.SNS.SMS.SenderID"] = snstypes.MessageAttributeValue{
			DataType: aws.String("String"), StringValue: aws.String(s.senderID),
		}
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		logger.Error("SNS Publish failed", err, nil)
		return fmt.Errorf("failed to send sms: %w", err)
	}
	logger.Info("SMS sent", port.Fields{"message_id": aws.ToString(out.MessageId)})
	return nil
}
