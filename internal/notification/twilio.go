package notification

import (
	"context"
	"fmt"

	"github.com/twilio/twilio-go"
	twilioapi "github.com/twilio/twilio-go/rest/api/v2010"
)

// twilioTransport sends WhatsApp messages through the Twilio REST API.
type twilioTransport struct {
	client *twilio.RestClient
	from   string
}

func newTwilioTransport(accountSID, authToken, from string) *twilioTransport {
	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: accountSID,
		Password: authToken,
	})
	return &twilioTransport{client: client, from: from}
}

func (t *twilioTransport) send(_ context.Context, to, body string) error {
	params := &twilioapi.CreateMessageParams{}
	params.SetTo("whatsapp:" + to)
	params.SetFrom("whatsapp:" + t.from)
	params.SetBody(body)

	if _, err := t.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("twilio send to %s: %w", to, err)
	}
	return nil
}
