// internal/common/sms/sms_test.go
package sms

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"medassist-workers/internal/common/config"
)

type mockCreator struct {
	params *twilioApi.CreateMessageParams
	err    error
}

func (m *mockCreator) CreateMessage(params *twilioApi.CreateMessageParams) (*twilioApi.ApiV2010Message, error) {
	m.params = params
	if m.err != nil {
		return nil, m.err
	}
	return &twilioApi.ApiV2010Message{}, nil
}

func TestTwilioSender_SendSMS(t *testing.T) {
	creator := &mockCreator{}
	sender := &TwilioSender{api: creator, from: "+15550001111"}

	require.NoError(t, sender.SendSMS(context.Background(), "+919800000000", "Time for Cetirizine"))
	require.NotNil(t, creator.params)
	assert.Equal(t, "+919800000000", *creator.params.To)
	assert.Equal(t, "+15550001111", *creator.params.From)
	assert.Equal(t, "Time for Cetirizine", *creator.params.Body)
}

func TestTwilioSender_Errors(t *testing.T) {
	sender := &TwilioSender{api: &mockCreator{err: errors.New("21211 invalid number")}, from: "+1"}
	assert.Error(t, sender.SendSMS(context.Background(), "bad", "x"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.SendSMS(ctx, "+1", "x"), context.Canceled)
}

func TestNewTwilioSender_RequiresCredentials(t *testing.T) {
	_, err := NewTwilioSender("", "token", "+1")
	assert.Error(t, err)
	_, err = NewTwilioSender("AC123", "token", "")
	assert.Error(t, err)

	s, err := NewTwilioSender("AC123", "token", "+15550001111")
	require.NoError(t, err)
	assert.Equal(t, "+15550001111", s.from)
}

func TestNew_UnknownProvider(t *testing.T) {
	cfg := config.NotificationConfig{}
	cfg.SMS.Provider = "carrier-pigeon"
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}
