// internal/common/sms/sms.go
package sms

import (
	"context"
	"fmt"

	awsclient "medassist-workers/internal/common/aws"
	"medassist-workers/internal/common/config"
)

const (
	ProviderSNS    = "sns"
	ProviderTwilio = "twilio"
)

// Sender delivers one text message to an E.164 phone number.
type Sender interface {
	SendSMS(ctx context.Context, to, body string) error
}

// New builds the sender selected by notifications.sms.provider.
func New(ctx context.Context, cfg config.NotificationConfig) (Sender, error) {
	switch cfg.SMS.Provider {
	case "", ProviderSNS:
		c, err := awsclient.NewSNSClient(ctx, cfg.AWS.Region)
		if err != nil {
			return nil, err
		}
		return c, nil
	case ProviderTwilio:
		t, err := NewTwilioSender(cfg.Twilio.AccountSID, cfg.Twilio.AuthToken, cfg.Twilio.FromNumber)
		if err != nil {
			return nil, err
		}
		return t, nil
	default:
		return nil, fmt.Errorf("unknown sms provider %q", cfg.SMS.Provider)
	}
}
