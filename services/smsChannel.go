package services

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// SMSChannel posts messages to a Twilio-style HTTP gateway.
type SMSChannel struct {
	gatewayURL string
	accountSID string
	authToken  string
	fromNumber string
	client     *http.Client
}

func NewSMSChannel(gatewayURL, accountSID, authToken, fromNumber string) *SMSChannel {
	return &SMSChannel{
		gatewayURL: gatewayURL,
		accountSID: accountSID,
		authToken:  authToken,
		fromNumber: fromNumber,
		client:     http.DefaultClient,
	}
}

func (s *SMSChannel) Send(ctx context.Context, recipient string, message Message) error {
	form := url.Values{}
	form.Set("From", s.fromNumber)
	form.Set("To", recipient)
	form.Set("Body", message.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.gatewayURL, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to build sms request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetBasicAuth(s.accountSID, s.authToken)

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("sms gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("sms gateway returned %s for %s", resp.Status, recipient)
	}
	return nil
}
