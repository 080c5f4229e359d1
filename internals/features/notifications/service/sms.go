package service

import (
	"errors"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"

	"rentix_backend/internals/configs"
)

/* ===================== SMS (Twilio) ===================== */

type SMSSender struct {
	client *twilio.RestClient
	from   string
}

// NewSMSSenderFromEnv devolve nil quando o Twilio não está configurado.
func NewSMSSenderFromEnv() *SMSSender {
	sid := configs.GetEnv("TWILIO_ACCOUNT_SID")
	token := configs.GetEnv("TWILIO_AUTH_TOKEN")
	from := configs.GetEnv("TWILIO_FROM_NUMBER")
	if sid == "" || token == "" || from == "" {
		return nil
	}

	client := twilio.NewRestClientWithParams(twilio.ClientParams{
		Username: sid,
		Password: token,
	})
	return &SMSSender{client: client, from: from}
}

func (s *SMSSender) SendSMS(to, body string) error {
	if s == nil || s.client == nil {
		return errors.New("twilio não configurado")
	}
	if to == "" {
		return errors.New("número de destino vazio")
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(to)
	params.SetFrom(s.from)
	params.SetBody(body)

	_, err := s.client.Api.CreateMessage(params)
	return err
}
