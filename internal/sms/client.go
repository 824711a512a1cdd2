package sms

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"

	"github.com/yoshispizza/storefront/internal/config"
)

// Client sends text messages to the business owner's phone through Twilio.
type Client struct {
	api    *twilio.RestClient
	from   string
	to     string
	logger *logrus.Logger
}

func NewClient(cfg *config.Config, logger *logrus.Logger) (*Client, error) {
	if err := cfg.TwilioConfigured(); err != nil {
		return nil, err
	}

	rest := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: cfg.TwilioAccountSID,
		Password: cfg.TwilioAuthToken,
	})

	return &Client{
		api:    rest,
		from:   FormatPhoneNumber(cfg.TwilioPhoneNumber),
		to:     FormatPhoneNumber(cfg.BusinessPhoneNumber),
		logger: logger,
	}, nil
}

// Send delivers one message and returns the provider's message id.
func (c *Client) Send(body string) (string, error) {
	params := &twilioapi.CreateMessageParams{}
	params.SetBody(body)
	params.SetFrom(c.from)
	params.SetTo(c.to)

	msg, err := c.api.Api.CreateMessage(params)
	if err != nil {
		return "", fmt.Errorf("failed to send SMS: %w", err)
	}

	var sid, status string
	if msg.Sid != nil {
		sid = *msg.Sid
	}
	if msg.Status != nil {
		status = *msg.Status
	}

	c.logger.WithFields(logrus.Fields{
		"message_sid": sid,
		"status":      status,
		"length":      len(body),
	}).Info("SMS sent")

	return sid, nil
}

// OrderAlert composes the new-order notification text.
func OrderAlert(name, phone, pickupDate string, total float64) string {
	return fmt.Sprintf("🍕 NEW ORDER RECEIVED!\n%s %s %s\n$%.2f", name, phone, pickupDate, total)
}
