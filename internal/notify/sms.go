package notify

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

var e164 = regexp.MustCompile(`^\+\d{10,15}$`)

// SMSSender sends OTP text messages through Twilio.
type SMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSender creates a Twilio-backed sender. Returns nil when Twilio
// credentials are not configured.
func NewSMSSender(accountSID, authToken, from string) *SMSSender {
	if accountSID == "" || authToken == "" || from == "" {
		return nil
	}
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &SMSSender{client: client, from: from}
}

// SendOTP delivers a verification code to the given phone number.
func (s *SMSSender) SendOTP(phone, code string) error {
	if s == nil {
		return fmt.Errorf("sms sender not configured")
	}
	to := FormatPhone(phone)
	if !e164.MatchString(to) {
		return fmt.Errorf("invalid phone number format: %s", phone)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetFrom(s.from)
	params.SetTo(to)
	params.SetBody(fmt.Sprintf("Your OTP for phone verification is: %s. Valid for 10 minutes.", code))

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("send otp sms: %w", err)
	}
	return nil
}

// FormatPhone normalizes a local number to E.164, defaulting to the
// +92 country code when none is present.
func FormatPhone(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	cleaned := b.String()

	switch {
	case strings.HasPrefix(cleaned, "0"):
		return "+92" + cleaned[1:]
	case !strings.HasPrefix(cleaned, "92"):
		return "+92" + cleaned
	default:
		return "+" + cleaned
	}
}
